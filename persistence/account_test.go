// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/persistence"
	"github.com/waykichain/wiccd/storage"
)

func TestAccountIndexes(t *testing.T) {
	store := openStore(t, storage.Account)
	defer store.Close()

	root := persistence.NewAccountCache(store, kvcache.NewUndoRegistry())
	c := root.NewChild(kvcache.NewUndoRegistry())

	a := entities.NewAccount(entities.KeyID{1, 2, 3})
	a.RegID = entities.RegID{Height: 100, Index: 4}
	a.NickID = "alice"
	assert.Nil(t, a.OperateBalance(entities.SymbolWICC, entities.AddFree, 500), "balance")
	assert.True(t, c.SetAccount(a), "set")

	byRegID, found := c.GetAccountByRegID(a.RegID)
	assert.True(t, found, "by regid")
	assert.Equal(t, a.KeyID, byRegID.KeyID, "regid lookup keyid")

	for _, uid := range []entities.UserID{
		entities.NewRegIDUser(a.RegID),
		entities.NewKeyIDUser(a.KeyID),
		entities.NewNickIDUser("alice"),
	} {
		acct, found := c.GetAccountByUID(uid)
		assert.True(t, found, "%s: not found", uid)
		assert.Equal(t, uint64(500), acct.FreeBalance(entities.SymbolWICC), "%s: balance", uid)
	}

	c.Flush()
	root.Flush()
	assert.True(t, root.HaveAccount(a.KeyID), "flushed to root")

	c = root.NewChild(kvcache.NewUndoRegistry())
	assert.True(t, c.EraseAccount(a.KeyID), "erase")
	_, found = c.GetAccountByRegID(a.RegID)
	assert.False(t, found, "regid index survived erase")
	_, found = c.GetAccountByUID(entities.NewNickIDUser("alice"))
	assert.False(t, found, "nick index survived erase")
	assert.True(t, root.HaveAccount(a.KeyID), "erase leaked upstream")
}

// modifying a returned account must not change the cache
func TestAccountCopies(t *testing.T) {
	store := openStore(t, storage.Account)
	defer store.Close()

	c := persistence.NewAccountCache(store, kvcache.NewUndoRegistry())
	a := entities.NewAccount(entities.KeyID{9})
	assert.Nil(t, a.OperateBalance(entities.SymbolWICC, entities.AddFree, 10), "balance")
	c.SetAccount(a)

	assert.Nil(t, a.OperateBalance(entities.SymbolWICC, entities.AddFree, 5), "change after set")
	got, _ := c.GetAccount(a.KeyID)
	assert.Equal(t, uint64(10), got.FreeBalance(entities.SymbolWICC), "set did not copy")

	assert.Nil(t, got.OperateBalance(entities.SymbolWICC, entities.SubFree, 10), "change after get")
	again, _ := c.GetAccount(a.KeyID)
	assert.Equal(t, uint64(10), again.FreeBalance(entities.SymbolWICC), "get did not copy")
}

func TestAccountUndo(t *testing.T) {
	store := openStore(t, storage.Account)
	defer store.Close()

	root := persistence.NewAccountCache(store, kvcache.NewUndoRegistry())
	a := entities.NewAccount(entities.KeyID{5})
	assert.Nil(t, a.OperateBalance(entities.SymbolWUSD, entities.AddFree, 70), "balance")
	root.SetAccount(a)
	root.Flush()

	reg := kvcache.NewUndoRegistry()
	c := root.NewChild(reg)
	logs := kvcache.NewOpLogMap()
	c.SetOpLogMap(logs)

	b, _ := c.GetAccount(a.KeyID)
	assert.Nil(t, b.OperateBalance(entities.SymbolWUSD, entities.SubFree, 70), "spend")
	c.SetAccount(b)
	c.SetAccount(entities.NewAccount(entities.KeyID{6}))
	c.SetBestBlock(common.HexToHash("0x01"))

	c.SetOpLogMap(nil)
	reg.Undo(logs)

	restored, _ := c.GetAccount(a.KeyID)
	assert.Equal(t, uint64(70), restored.FreeBalance(entities.SymbolWUSD), "balance not restored")
	assert.False(t, c.HaveAccount(entities.KeyID{6}), "created account not removed")
	assert.Equal(t, common.Hash{}, c.GetBestBlock(), "best block not restored")
}

func TestAccountList(t *testing.T) {
	store := openStore(t, storage.Account)
	defer store.Close()

	c := persistence.NewAccountCache(store, kvcache.NewUndoRegistry())
	for i := byte(1); i <= 5; i += 1 {
		c.SetAccount(entities.NewAccount(entities.KeyID{i}))
	}
	list, more := c.ListAccounts(3)
	assert.True(t, more, "more")
	assert.Equal(t, 3, len(list), "count")
	assert.Equal(t, entities.KeyID{1}, list[0].KeyID, "order")
}
