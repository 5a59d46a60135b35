// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
)

// BaseTx - fields common to every transaction
type BaseTx struct {
	TxType    entities.TxType
	TxID      common.Hash
	TxUID     entities.UserID
	FeeSymbol string
	Fees      uint64
}

// Tx - a transaction that can be checked and executed
type Tx interface {
	Base() *BaseTx
	Check(*Context) error
	Execute(*Context) error
}

// Base - the common fields
func (tx *BaseTx) Base() *BaseTx {
	return tx
}

// CheckFee - fee symbol and minimum amount
func (tx *BaseTx) CheckFee(ctx *Context) error {
	if !ctx.Params.IsFeeSymbol(tx.FeeSymbol) {
		return ctx.State.DoS(100, fault.RejectInvalid, "bad-tx-fee-symbol",
			"fee symbol: %q is not a fee symbol", tx.FeeSymbol)
	}
	minFee, ok := ctx.Cache.SysParam.GetMinerFee(tx.TxType, tx.FeeSymbol)
	if !ok {
		return ctx.State.DoS(100, fault.RejectInvalid, "bad-tx-fee-symbol",
			"tx type: %s has no fee in: %s", tx.TxType, tx.FeeSymbol)
	}
	if tx.Fees < minFee {
		return ctx.State.DoS(100, fault.RejectInvalid, "bad-tx-fee-toosmall",
			"fees: %d %s below minimum: %d", tx.Fees, tx.FeeSymbol, minFee)
	}
	return nil
}

// TxAccount - the account of the sender
func (tx *BaseTx) TxAccount(ctx *Context) (*entities.Account, error) {
	account, found := ctx.Cache.Account.GetAccountByUID(tx.TxUID)
	if !found {
		return nil, ctx.State.DoS(100, fault.ReadAccountFail, "bad-read-accountdb",
			"read txUid: %s account info error", tx.TxUID)
	}
	return account, nil
}

// CheckPerms - the sender holds every bit of perms
func (tx *BaseTx) CheckPerms(ctx *Context, account *entities.Account, perms uint64) error {
	if !account.HasPerms(perms) {
		return ctx.State.DoS(100, fault.RejectInvalid, "account-lacks-perms",
			"account: %s perms: %x required: %x", tx.TxUID, account.PermsSum, perms)
	}
	return nil
}

// DeductFee - take the fee from the sender
//
// stablecoin fees go to the risk reserve, others to the block producer
// outside of this core
func (tx *BaseTx) DeductFee(ctx *Context, account *entities.Account) (entities.Receipts, error) {
	if 0 == tx.Fees {
		return nil, nil
	}
	err := account.OperateBalance(tx.FeeSymbol, entities.SubFree, tx.Fees)
	if nil != err {
		return nil, ctx.State.DoS(100, fault.UpdateAccountFail, "insufficient-account-coin",
			"account: %s fee: %d %s error: %s", tx.TxUID, tx.Fees, tx.FeeSymbol, err)
	}
	if entities.SymbolWUSD != tx.FeeSymbol {
		return nil, nil
	}

	// the sender may itself be the reserve
	if account.RegID == ctx.Params.RiskReserveRegID {
		err = account.OperateBalance(tx.FeeSymbol, entities.AddFree, tx.Fees)
	} else {
		err = CreditReserve(ctx, tx.FeeSymbol, tx.Fees)
	}
	if nil != err {
		return nil, err
	}
	receipts := entities.Receipts{{
		From:   tx.TxUID,
		To:     entities.NewRegIDUser(ctx.Params.RiskReserveRegID),
		Symbol: tx.FeeSymbol,
		Amount: tx.Fees,
		Code:   entities.ReceiptTransferFeeToReserve,
	}}
	return receipts, nil
}

// CreditReserve - add free coins to the risk reserve account
func CreditReserve(ctx *Context, symbol string, amount uint64) error {
	reserve, found := ctx.Cache.Account.GetAccountByRegID(ctx.Params.RiskReserveRegID)
	if !found {
		return ctx.State.DoS(100, fault.ReadAccountFail, "bad-read-accountdb",
			"risk reserve account: %s not found", ctx.Params.RiskReserveRegID)
	}
	err := reserve.OperateBalance(symbol, entities.AddFree, amount)
	if nil != err {
		return ctx.State.DoS(100, fault.UpdateAccountFail, "operate-reserve-account-failed",
			"add %d %s error: %s", amount, symbol, err)
	}
	return SaveAccount(ctx, reserve)
}

// SaveAccount - write back a modified account
func SaveAccount(ctx *Context, account *entities.Account) error {
	if !ctx.Cache.Account.SetAccount(account) {
		return ctx.State.DoS(100, fault.WriteAccountFail, "bad-write-accountdb",
			"save account: %s error", account.KeyID)
	}
	return nil
}

// WriteReceipts - record the coin movements of a transaction
func (tx *BaseTx) WriteReceipts(ctx *Context, receipts entities.Receipts) error {
	if receipts.IsEmpty() {
		return nil
	}
	if !ctx.Cache.TxReceipt.SetTxReceipts(tx.TxID, receipts) {
		return ctx.State.DoS(100, fault.WriteReceiptFail, "write-tx-receipt-failed",
			"txid: %s", tx.TxID.Hex())
	}
	return nil
}
