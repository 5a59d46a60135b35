// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/storage"
)

// AccountCache - accounts and their alternate identifiers
type AccountCache struct {
	regIDs    *kvcache.Composite[entities.RegID, keyIDValue]
	nickIDs   *kvcache.Composite[string, keyIDValue]
	accounts  *kvcache.Composite[entities.KeyID, entities.Account]
	bestBlock *kvcache.Simple[hashValue]
	all       parts
}

type keyIDValue struct {
	KeyID entities.KeyID
}

func (k keyIDValue) IsEmpty() bool {
	return k.KeyID.IsEmpty()
}

// NewAccountCache - root cache over the account partition
func NewAccountCache(store storage.Access, reg *kvcache.UndoRegistry) *AccountCache {
	c := &AccountCache{
		regIDs:    kvcache.NewComposite[entities.RegID, keyIDValue](store, storage.PrefixRegIDKeyID, entities.RegIDKey, codec.RLP[keyIDValue]{}, reg),
		nickIDs:   kvcache.NewComposite[string, keyIDValue](store, storage.PrefixNickIDKeyID, codec.StringKey{}, codec.RLP[keyIDValue]{}, reg),
		accounts:  kvcache.NewComposite[entities.KeyID, entities.Account](store, storage.PrefixKeyIDAccount, entities.KeyIDKey, codec.RLP[entities.Account]{}, reg),
		bestBlock: kvcache.NewSimple[hashValue](store, storage.PrefixBestBlockHash, hashValues, reg),
	}
	c.all = parts{c.regIDs, c.nickIDs, c.accounts, c.bestBlock}
	return c
}

// NewChild - cache layered over this one
func (c *AccountCache) NewChild(reg *kvcache.UndoRegistry) *AccountCache {
	n := &AccountCache{
		regIDs:    kvcache.NewCompositeChild(c.regIDs, reg),
		nickIDs:   kvcache.NewCompositeChild(c.nickIDs, reg),
		accounts:  kvcache.NewCompositeChild(c.accounts, reg),
		bestBlock: kvcache.NewSimpleChild(c.bestBlock, reg),
	}
	n.all = parts{n.regIDs, n.nickIDs, n.accounts, n.bestBlock}
	return n
}

// SetBaseView - rebind an empty child
func (c *AccountCache) SetBaseView(parent *AccountCache) {
	c.regIDs.SetBase(parent.regIDs)
	c.nickIDs.SetBase(parent.nickIDs)
	c.accounts.SetBase(parent.accounts)
	c.bestBlock.SetBase(parent.bestBlock)
}

func (c *AccountCache) Flush()                          { c.all.flush() }
func (c *AccountCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *AccountCache) Size() int                       { return c.all.size() }

// GetAccount - account by keyid, the result is a private copy
func (c *AccountCache) GetAccount(keyID entities.KeyID) (*entities.Account, bool) {
	a, found := c.accounts.GetData(keyID)
	if !found {
		return nil, false
	}
	return a.Clone(), true
}

// GetAccountByRegID - account by registration id
func (c *AccountCache) GetAccountByRegID(regID entities.RegID) (*entities.Account, bool) {
	k, found := c.regIDs.GetData(regID)
	if !found {
		return nil, false
	}
	return c.GetAccount(k.KeyID)
}

// GetKeyID - resolve any user id to a keyid
func (c *AccountCache) GetKeyID(uid entities.UserID) (entities.KeyID, bool) {
	switch uid.Type {
	case entities.UserRegID:
		r, ok := uid.RegID()
		if !ok {
			return entities.KeyID{}, false
		}
		k, found := c.regIDs.GetData(r)
		return k.KeyID, found

	case entities.UserKeyID, entities.UserPubKey:
		return uid.KeyID()

	case entities.UserNickID:
		n, _ := uid.NickID()
		k, found := c.nickIDs.GetData(n)
		return k.KeyID, found
	}
	return entities.KeyID{}, false
}

// GetAccountByUID - account by any user id
func (c *AccountCache) GetAccountByUID(uid entities.UserID) (*entities.Account, bool) {
	k, ok := c.GetKeyID(uid)
	if !ok {
		return nil, false
	}
	return c.GetAccount(k)
}

// HaveAccount - account exists
func (c *AccountCache) HaveAccount(keyID entities.KeyID) bool {
	return c.accounts.HasData(keyID)
}

// SetAccount - store an account with its regid and nickname indexes
func (c *AccountCache) SetAccount(a *entities.Account) bool {
	if !c.accounts.SetData(a.KeyID, *a.Clone()) {
		return false
	}
	if a.IsRegistered() {
		c.regIDs.SetData(a.RegID, keyIDValue{KeyID: a.KeyID})
	}
	if "" != a.NickID {
		c.nickIDs.SetData(a.NickID, keyIDValue{KeyID: a.KeyID})
	}
	return true
}

// SaveAccounts - store several accounts, stops at the first failure
func (c *AccountCache) SaveAccounts(accounts []*entities.Account) bool {
	for _, a := range accounts {
		if !c.SetAccount(a) {
			return false
		}
	}
	return true
}

// EraseAccount - remove an account and its indexes
func (c *AccountCache) EraseAccount(keyID entities.KeyID) bool {
	a, found := c.accounts.GetData(keyID)
	if !found {
		return true
	}
	if a.IsRegistered() {
		c.regIDs.EraseData(a.RegID)
	}
	if "" != a.NickID {
		c.nickIDs.EraseData(a.NickID)
	}
	return c.accounts.EraseData(keyID)
}

// ListAccounts - accounts in keyid order
func (c *AccountCache) ListAccounts(max int) ([]*entities.Account, bool) {
	elements, more := c.accounts.GetAllElements(nil, max)
	accounts := make([]*entities.Account, 0, len(elements))
	for _, e := range elements {
		accounts = append(accounts, e.Value.Clone())
	}
	return accounts, more
}

// GetBestBlock - hash of the block the state corresponds to
func (c *AccountCache) GetBestBlock() common.Hash {
	h, _ := c.bestBlock.GetData()
	return h.Hash
}

// SetBestBlock - record the tip
func (c *AccountCache) SetBestBlock(hash common.Hash) bool {
	return c.bestBlock.SetData(hashValue{Hash: hash})
}
