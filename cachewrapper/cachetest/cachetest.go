// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cachetest - in-memory cache chains for package tests
package cachetest

import (
	"testing"

	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/storage"
	"github.com/waykichain/wiccd/transaction"
)

// Env - a manager over memory databases and a wrapper on top of it
type Env struct {
	Params  *chain.Parameters
	Manager *cachewrapper.Manager
	Cache   *cachewrapper.CacheWrapper
	stores  []*storage.DBAccess
}

// New - regtest parameters, empty databases and a funded risk reserve
func New(t *testing.T) *Env {
	params, err := chain.Get(chain.Regtest)
	if nil != err {
		t.Fatalf("chain parameters error: %s", err)
	}

	env := &Env{Params: params}
	stores := make(map[storage.Partition]storage.Access, len(storage.Partitions))
	for _, partition := range storage.Partitions {
		store, err := storage.OpenMemory(partition)
		if nil != err {
			env.Close()
			t.Fatalf("open memory store: %s  error: %s", partition, err)
		}
		stores[partition] = store
		env.stores = append(env.stores, store)
	}

	env.Manager, err = cachewrapper.NewManager(stores, params)
	if nil != err {
		env.Close()
		t.Fatalf("new manager error: %s", err)
	}
	env.Cache = cachewrapper.NewFromManager(env.Manager)

	reserve := entities.NewAccount(entities.KeyID{0xff, 0xee})
	reserve.RegID = params.RiskReserveRegID
	env.Cache.Account.SetAccount(reserve)
	return env
}

// Close - release the databases
func (env *Env) Close() {
	for _, store := range env.stores {
		store.Close()
	}
	env.stores = nil
}

// Context - execution context at a height
func (env *Env) Context(height uint32, feed transaction.PriceFeed) *transaction.Context {
	return &transaction.Context{
		Height:    height,
		TxIndex:   1,
		Params:    env.Params,
		Cache:     env.Cache,
		State:     &transaction.State{},
		PriceFeed: feed,
	}
}

// Account - registered account holding free balances
func (env *Env) Account(t *testing.T, regID entities.RegID, balances map[string]uint64) *entities.Account {
	var keyID entities.KeyID
	keyID[0] = 0x01
	keyID[1] = byte(regID.Height >> 8)
	keyID[2] = byte(regID.Height)
	keyID[3] = byte(regID.Index)

	a := entities.NewAccount(keyID)
	a.RegID = regID
	for symbol, amount := range balances {
		if err := a.OperateBalance(symbol, entities.AddFree, amount); nil != err {
			t.Fatalf("fund: %s error: %s", symbol, err)
		}
	}
	if !env.Cache.Account.SetAccount(a) {
		t.Fatalf("save account: %s failed", regID)
	}
	return a
}

// Reload - current stored copy of an account
func (env *Env) Reload(t *testing.T, regID entities.RegID) *entities.Account {
	a, found := env.Cache.Account.GetAccountByRegID(regID)
	if !found {
		t.Fatalf("account: %s not found", regID)
	}
	return a
}
