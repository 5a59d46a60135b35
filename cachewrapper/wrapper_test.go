// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cachewrapper_test

import (
	"errors"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/storage"
)

var (
	keyA = entities.KeyID{0x0a}
	keyB = entities.KeyID{0x0b}
)

func fundedAccount(keyID entities.KeyID, regID entities.RegID, wicc uint64) *entities.Account {
	a := entities.NewAccount(keyID)
	a.RegID = regID
	a.OperateBalance(entities.SymbolWICC, entities.AddFree, wicc)
	return a
}

func TestManagerMissingPartition(t *testing.T) {
	stores, done := memoryStores(t)
	defer done()

	delete(stores, storage.Axc)
	params, _ := chain.Get(chain.Regtest)
	_, err := cachewrapper.NewManager(stores, params)
	assert.Equal(t, fault.ErrPartitionNotFound, err, "missing partition accepted")
}

func TestSiblingIsolation(t *testing.T) {
	stores, done := memoryStores(t)
	defer done()

	cw := cachewrapper.NewFromManager(newManager(t, stores))
	a := cachewrapper.NewChild(cw)
	b := cachewrapper.NewChild(cw)

	a.Account.SetAccount(fundedAccount(keyA, entities.RegID{Height: 1, Index: 1}, 100))
	_, found := a.Account.GetAccount(keyA)
	assert.True(t, found, "read your writes")
	_, found = b.Account.GetAccount(keyA)
	assert.False(t, found, "sibling saw write")
	_, found = cw.Account.GetAccount(keyA)
	assert.False(t, found, "parent saw write before flush")

	a.Flush()
	_, found = cw.Account.GetAccount(keyA)
	assert.True(t, found, "parent after flush")
	_, found = b.Account.GetAccount(keyA)
	assert.True(t, found, "sibling reads through parent after flush")
	assert.Equal(t, 0, a.Size(), "flushed child not empty")
}

func TestExecuteTxAndUndo(t *testing.T) {
	stores, done := memoryStores(t)
	defer done()

	m := newManager(t, stores)
	cw := cachewrapper.NewFromManager(m)

	// state before the block
	cw.Account.SetAccount(fundedAccount(keyA, entities.RegID{Height: 1, Index: 1}, 1000))
	cw.Flush()
	assert.Nil(t, m.Flush(), "initial flush")

	block := cachewrapper.NewFromManager(m)

	tx1 := common.HexToHash("0x01")
	err := block.ExecuteTx(tx1, func(c *cachewrapper.CacheWrapper) error {
		a, _ := c.Account.GetAccount(keyA)
		if err := a.OperateBalance(entities.SymbolWICC, entities.SubFree, 400); nil != err {
			return err
		}
		c.Account.SetAccount(a)
		c.Account.SetAccount(fundedAccount(keyB, entities.RegID{Height: 2, Index: 1}, 400))
		return nil
	})
	assert.Nil(t, err, "tx1")

	tx2 := common.HexToHash("0x02")
	err = block.ExecuteTx(tx2, func(c *cachewrapper.CacheWrapper) error {
		c.Account.EraseAccount(keyB)
		c.SysGovern.AddGovernor(entities.RegID{Height: 2, Index: 1})
		return nil
	})
	assert.Nil(t, err, "tx2")

	failed := errors.New("failed")
	err = block.ExecuteTx(common.HexToHash("0x03"), func(c *cachewrapper.CacheWrapper) error {
		c.Account.EraseAccount(keyA)
		return failed
	})
	assert.Equal(t, failed, err, "tx3 error")
	_, found := block.Account.GetAccount(keyA)
	assert.True(t, found, "failed tx leaked a write")

	undo := block.BlockUndo()
	assert.Equal(t, 2, len(undo.TxUndos), "one undo per successful tx")
	assert.Equal(t, tx2, undo.TxUndos[1].TxID, "execution order")
	assert.True(t, block.BlockUndo().IsEmpty(), "undo not reset")

	// the undo survives storage beside the block
	packed, err := undo.Pack()
	assert.Nil(t, err, "pack")
	undo, err = cachewrapper.UnpackBlockUndo(packed)
	assert.Nil(t, err, "unpack")

	block.Flush()
	assert.Nil(t, m.Flush(), "block flush")

	disconnect := cachewrapper.NewFromManager(m)
	disconnect.UndoBlock(undo)
	disconnect.Flush()
	assert.Nil(t, m.Flush(), "undo flush")

	after := cachewrapper.NewFromManager(m)
	a, found := after.Account.GetAccount(keyA)
	assert.True(t, found, "account a")
	assert.Equal(t, uint64(1000), a.FreeBalance(entities.SymbolWICC), "balance restored")
	_, found = after.Account.GetAccount(keyB)
	assert.False(t, found, "account b not removed")
	_, found = after.Account.GetAccountByRegID(entities.RegID{Height: 2, Index: 1})
	assert.False(t, found, "regid index not removed")
	assert.False(t, after.SysGovern.CheckIsGovernor(entities.RegID{Height: 2, Index: 1}), "governor not removed")
}

// cdp record and both indexes commit in one batch
func TestNewCDPAtomicFlush(t *testing.T) {
	stores, done := memoryStores(t)
	defer done()

	m := newManager(t, stores)
	cw := cachewrapper.NewFromManager(m)

	cdp := &entities.CDP{
		ID:                common.HexToHash("0xc0"),
		Owner:             entities.RegID{Height: 5, Index: 1},
		BcoinSymbol:       entities.SymbolWICC,
		ScoinSymbol:       entities.SymbolWUSD,
		BlockHeight:       5,
		TotalStakedBcoins: 1000,
		TotalOwedScoins:   100,
	}
	assert.Nil(t, cw.Cdp.NewCDP(cdp), "create")
	cw.Flush()
	assert.NotEqual(t, 0, m.Size(), "roots empty before flush")
	assert.Nil(t, m.Flush(), "flush")
	assert.Equal(t, 0, m.Size(), "roots not empty after flush")

	fresh := cachewrapper.NewFromManager(newManager(t, stores))
	pair := entities.CoinPair{Bcoin: entities.SymbolWICC, Scoin: entities.SymbolWUSD}
	_, found := fresh.Cdp.GetCDP(cdp.ID)
	assert.True(t, found, "record")
	_, found = fresh.Cdp.GetCDPByOwner(cdp.Owner, pair)
	assert.True(t, found, "owner index")
	assert.Equal(t, 1, len(fresh.Cdp.GetCdpListByRatio(pair, 10000, entities.PriceBoost, 0)), "ratio index")
	assert.Equal(t, uint64(1000), fresh.Cdp.GetGlobalData(pair).TotalStakedAssets, "globals")
}

func TestRoundTripAcrossReopen(t *testing.T) {
	dir, err := os.MkdirTemp("", "wiccd-reopen")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	params, _ := chain.Get(chain.Regtest)

	err = storage.Initialise(dir, storage.ReadWrite, true)
	assert.Nil(t, err, "initialise")
	m, err := cachewrapper.Open(params)
	assert.Nil(t, err, "open")

	cw := cachewrapper.NewFromManager(m)
	cw.Account.SetAccount(fundedAccount(keyA, entities.RegID{Height: 9, Index: 2}, 55))
	cw.SysParam.SetNewTotalBpsSize(21, 100)
	cw.Flush()
	assert.Nil(t, m.Flush(), "flush")
	storage.Finalise()

	err = storage.Initialise(dir, storage.ReadOnly, false)
	assert.Nil(t, err, "reopen")
	defer storage.Finalise()

	m, err = cachewrapper.Open(params)
	assert.Nil(t, err, "open after reopen")
	cw = cachewrapper.NewFromManager(m)

	a, found := cw.Account.GetAccountByRegID(entities.RegID{Height: 9, Index: 2})
	assert.True(t, found, "account")
	assert.Equal(t, uint64(55), a.FreeBalance(entities.SymbolWICC), "balance")
	assert.Equal(t, uint8(21), cw.SysParam.GetTotalBpsSize(100), "bps size")
}
