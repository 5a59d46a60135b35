// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/cachewrapper/cachetest"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/fixtures"
	"github.com/waykichain/wiccd/transaction"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

var sender = entities.RegID{Height: 10, Index: 1}

func TestStateKeepsFirstFailure(t *testing.T) {
	s := transaction.State{}
	assert.True(t, s.IsValid(), "initial")

	err := s.DoS(100, fault.RejectInvalid, "first", "value: %d", 1)
	assert.True(t, fault.IsErrValidation(err), "error type")
	s.Invalid(fault.RejectDust, "second", "ignored")

	assert.False(t, s.IsValid(), "valid after failure")
	assert.Equal(t, "first", s.Reason(), "reason")
	assert.Equal(t, 100, s.DoSScore(), "score")
	assert.Equal(t, "value: 1", s.Err().Message, "message")

	s.Reset()
	assert.True(t, s.IsValid(), "reset")
}

func TestCheckFee(t *testing.T) {
	env := cachetest.New(t)
	defer env.Close()
	ctx := env.Context(100, nil)

	minFee, _ := entities.CdpStakeTx.DefaultFee(entities.SymbolWICC)
	tx := &transaction.BaseTx{
		TxType:    entities.CdpStakeTx,
		FeeSymbol: entities.SymbolWICC,
		Fees:      minFee,
	}
	assert.Nil(t, tx.CheckFee(ctx), "minimum fee")

	tx.Fees = minFee - 1
	assert.Equal(t, "bad-tx-fee-toosmall", fault.Reason(tx.CheckFee(ctx)), "low fee")

	tx.FeeSymbol = entities.SymbolWGRT
	assert.Equal(t, "bad-tx-fee-symbol", fault.Reason(tx.CheckFee(ctx)), "fee symbol")
}

func TestDeductFee(t *testing.T) {
	env := cachetest.New(t)
	defer env.Close()
	ctx := env.Context(100, nil)

	account := env.Account(t, sender, map[string]uint64{
		entities.SymbolWICC: 1000,
		entities.SymbolWUSD: 1000,
	})

	tx := &transaction.BaseTx{
		TxType:    entities.CdpStakeTx,
		TxUID:     entities.NewRegIDUser(sender),
		FeeSymbol: entities.SymbolWICC,
		Fees:      300,
	}
	receipts, err := tx.DeductFee(ctx, account)
	assert.Nil(t, err, "wicc fee")
	assert.True(t, receipts.IsEmpty(), "wicc fee receipts")
	assert.Equal(t, uint64(700), account.FreeBalance(entities.SymbolWICC), "wicc balance")

	tx.FeeSymbol = entities.SymbolWUSD
	receipts, err = tx.DeductFee(ctx, account)
	assert.Nil(t, err, "wusd fee")
	assert.Equal(t, 1, len(receipts), "wusd fee receipt")
	assert.Equal(t, entities.ReceiptTransferFeeToReserve, receipts[0].Code, "receipt code")
	assert.Equal(t, uint64(700), account.FreeBalance(entities.SymbolWUSD), "wusd balance")
	assert.Equal(t, uint64(300), env.Reload(t, env.Params.RiskReserveRegID).FreeBalance(entities.SymbolWUSD), "reserve")

	tx.Fees = 701
	_, err = tx.DeductFee(ctx, account)
	assert.Equal(t, "insufficient-account-coin", fault.Reason(err), "insufficient")
	assert.Equal(t, uint64(700), account.FreeBalance(entities.SymbolWUSD), "balance after failure")
}

// spends coins then fails when told to
type spendTx struct {
	transaction.BaseTx
	amount uint64
	fail   bool
}

func (tx *spendTx) Check(ctx *transaction.Context) error {
	return tx.CheckFee(ctx)
}

func (tx *spendTx) Execute(ctx *transaction.Context) error {
	account, err := tx.TxAccount(ctx)
	if nil != err {
		return err
	}
	if err := account.OperateBalance(entities.SymbolWICC, entities.SubFree, tx.amount); nil != err {
		return ctx.State.DoS(100, fault.UpdateAccountFail, "insufficient-account-coin", "%s", err)
	}
	if err := transaction.SaveAccount(ctx, account); nil != err {
		return err
	}
	if tx.fail {
		return ctx.State.DoS(10, fault.RejectInvalid, "told-to-fail", "after spending")
	}
	return nil
}

func TestProcess(t *testing.T) {
	env := cachetest.New(t)
	defer env.Close()
	env.Account(t, sender, map[string]uint64{entities.SymbolWICC: 1000})

	minFee, _ := entities.CdpStakeTx.DefaultFee(entities.SymbolWICC)
	base := transaction.BaseTx{
		TxType:    entities.CdpStakeTx,
		TxID:      common.HexToHash("0x01"),
		TxUID:     entities.NewRegIDUser(sender),
		FeeSymbol: entities.SymbolWICC,
		Fees:      minFee,
	}

	ctx := env.Context(100, nil)
	err := transaction.Process(ctx, &spendTx{BaseTx: base, amount: 100})
	assert.Nil(t, err, "success")
	assert.Equal(t, uint64(900), env.Reload(t, sender).FreeBalance(entities.SymbolWICC), "spent")

	base.TxID = common.HexToHash("0x02")
	ctx = env.Context(101, nil)
	err = transaction.Process(ctx, &spendTx{BaseTx: base, amount: 100, fail: true})
	assert.Equal(t, "told-to-fail", fault.Reason(err), "failure")
	assert.Equal(t, "told-to-fail", ctx.State.Reason(), "state")
	assert.Equal(t, uint64(900), env.Reload(t, sender).FreeBalance(entities.SymbolWICC), "partial change survived")

	f, found := env.Cache.Log.GetExecuteFail(101, base.TxID)
	assert.True(t, found, "failure record")
	assert.Equal(t, "told-to-fail", f.Reason, "recorded reason")

	// both transactions and the failure record are undoable
	undo := env.Cache.BlockUndo()
	assert.Equal(t, 2, len(undo.TxUndos), "undo entries")
	env.Cache.UndoBlock(undo)
	assert.Equal(t, uint64(1000), env.Reload(t, sender).FreeBalance(entities.SymbolWICC), "undone")
	_, found = env.Cache.Log.GetExecuteFail(101, base.TxID)
	assert.False(t, found, "failure record undone")
}
