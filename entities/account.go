// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

import (
	"math"
	"sort"

	"github.com/waykichain/wiccd/fault"
)

// core coin symbols
const (
	SymbolWICC = "WICC"
	SymbolWGRT = "WGRT"
	SymbolWUSD = "WUSD"
	SymbolWCNY = "WCNY"
)

// account permission bits
const (
	PermSendCoin uint64 = 1 << iota
	PermStakeCoin
	PermProposeGovern
	PermMineBlock
	PermDex
	PermCdp
	PermContract
	PermAxc

	AllPerms = PermSendCoin | PermStakeCoin | PermProposeGovern | PermMineBlock | PermDex | PermCdp | PermContract | PermAxc
)

// BalanceOp - movement between the parts of a token balance
type BalanceOp uint8

// balance operations
const (
	AddFree BalanceOp = iota + 1
	SubFree
	Freeze
	Unfreeze
	SubFrozen
	Pledge
	Unpledge
	Vote
	Unvote
)

// Token - balance of one symbol
type Token struct {
	Symbol  string
	Free    uint64
	Frozen  uint64 // held by open dex orders
	Pledged uint64 // collateral in a cdp
	Voted   uint64
}

// Account - account state keyed by keyid
type Account struct {
	KeyID          KeyID
	RegID          RegID
	NickID         string
	OwnerPubKey    PubKey
	MinerPubKey    PubKey
	Tokens         []Token // ascending by symbol
	ReceivedVotes  uint64
	LastVoteHeight uint64
	PermsSum       uint64
}

// NewAccount - empty balances with all permissions
func NewAccount(keyID KeyID) *Account {
	return &Account{
		KeyID:    keyID,
		PermsSum: AllPerms,
	}
}

// Clone - deep copy, cached values must not share token storage
func (a Account) Clone() *Account {
	c := a
	c.Tokens = append([]Token(nil), a.Tokens...)
	c.OwnerPubKey = append(PubKey(nil), a.OwnerPubKey...)
	c.MinerPubKey = append(PubKey(nil), a.MinerPubKey...)
	return &c
}

// IsEmpty - absent account
func (a Account) IsEmpty() bool {
	return a.KeyID.IsEmpty()
}

// IsRegistered - has a regid
func (a Account) IsRegistered() bool {
	return !a.RegID.IsEmpty()
}

// HasPerms - all bits of perms are set
func (a Account) HasPerms(perms uint64) bool {
	return perms == a.PermsSum&perms
}

// UserID - preferred identifier, regid when registered
func (a Account) UserID() UserID {
	if a.IsRegistered() {
		return NewRegIDUser(a.RegID)
	}
	return NewKeyIDUser(a.KeyID)
}

// IsSelfUID - the identifier refers to this account
func (a Account) IsSelfUID(uid UserID) bool {
	switch uid.Type {
	case UserRegID:
		r, ok := uid.RegID()
		return ok && r == a.RegID
	case UserKeyID, UserPubKey:
		k, ok := uid.KeyID()
		return ok && k == a.KeyID
	case UserNickID:
		n, ok := uid.NickID()
		return ok && "" != n && n == a.NickID
	}
	return false
}

// GetToken - balance of a symbol, zero if never held
func (a *Account) GetToken(symbol string) Token {
	i := a.find(symbol)
	if i < len(a.Tokens) && symbol == a.Tokens[i].Symbol {
		return a.Tokens[i]
	}
	return Token{Symbol: symbol}
}

// FreeBalance - spendable amount of a symbol
func (a *Account) FreeBalance(symbol string) uint64 {
	return a.GetToken(symbol).Free
}

func (a *Account) find(symbol string) int {
	return sort.Search(len(a.Tokens), func(i int) bool {
		return a.Tokens[i].Symbol >= symbol
	})
}

func (a *Account) setToken(t Token) {
	i := a.find(t.Symbol)
	if i < len(a.Tokens) && t.Symbol == a.Tokens[i].Symbol {
		a.Tokens[i] = t
		return
	}
	a.Tokens = append(a.Tokens, Token{})
	copy(a.Tokens[i+1:], a.Tokens[i:])
	a.Tokens[i] = t
}

// OperateBalance - apply one balance operation
//
// the account is unchanged on error
func (a *Account) OperateBalance(symbol string, op BalanceOp, amount uint64) error {
	t := a.GetToken(symbol)
	var err error

	switch op {
	case AddFree:
		t.Free, err = add(t.Free, amount)
	case SubFree:
		t.Free, err = sub(t.Free, amount)
	case Freeze:
		err = move(&t.Free, &t.Frozen, amount)
	case Unfreeze:
		err = move(&t.Frozen, &t.Free, amount)
	case SubFrozen:
		t.Frozen, err = sub(t.Frozen, amount)
	case Pledge:
		err = move(&t.Free, &t.Pledged, amount)
	case Unpledge:
		err = move(&t.Pledged, &t.Free, amount)
	case Vote:
		err = move(&t.Free, &t.Voted, amount)
	case Unvote:
		err = move(&t.Voted, &t.Free, amount)
	default:
		return fault.ErrUnknownBalanceOperation
	}
	if nil != err {
		return err
	}

	a.setToken(t)
	return nil
}

func add(a uint64, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fault.ErrOverflow
	}
	return a + b, nil
}

func sub(a uint64, b uint64) (uint64, error) {
	if a < b {
		return 0, fault.ErrInsufficientFunds
	}
	return a - b, nil
}

func move(from *uint64, to *uint64, amount uint64) error {
	f, err := sub(*from, amount)
	if nil != err {
		return err
	}
	t, err := add(*to, amount)
	if nil != err {
		return err
	}
	*from = f
	*to = t
	return nil
}
