// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/transaction"
)

func checkCoinTransfer(ctx *transaction.Context, tx *transaction.BaseTx, p *entities.CoinTransfer) error {
	if entities.ProposalRequestTx == tx.TxType {
		requester, found := ctx.Cache.Account.GetAccountByUID(tx.TxUID)
		if found && requester.IsSelfUID(p.From) {
			return ctx.State.DoS(100, fault.RejectDust, "tx_uid-can't-be-from_uid",
				"requester: %s cannot transfer from itself", tx.TxUID)
		}
	}
	if "" == p.Token {
		return ctx.State.DoS(100, fault.RejectInvalid, "invalid-coin-symbol",
			"token symbol is empty")
	}
	if p.Amount < ctx.Params.DustAmountThreshold {
		return ctx.State.DoS(100, fault.RejectDust, "invalid-coin-amount",
			"amount: %d below dust threshold: %d", p.Amount, ctx.Params.DustAmountThreshold)
	}
	if _, found := ctx.Cache.Account.GetAccountByUID(p.From); !found {
		return ctx.State.DoS(100, fault.ReadAccountFail, "account-not-exist",
			"source account: %s not found", p.From)
	}
	if _, found := ctx.Cache.Account.GetAccountByUID(p.To); !found && !canCreateAccount(p.To) {
		return ctx.State.DoS(100, fault.ReadAccountFail, "account-not-exist",
			"destination account: %s not found", p.To)
	}
	return nil
}

// only a keyid or public key identifies an account that does not exist yet
func canCreateAccount(uid entities.UserID) bool {
	_, ok := uid.KeyID()
	return ok
}

func executeCoinTransfer(ctx *transaction.Context, p *entities.CoinTransfer) (entities.Receipts, error) {
	from, found := ctx.Cache.Account.GetAccountByUID(p.From)
	if !found {
		return nil, ctx.State.DoS(100, fault.ReadAccountFail, "account-not-exist",
			"source account: %s not found", p.From)
	}
	err := from.OperateBalance(p.Token, entities.SubFree, p.Amount)
	if nil != err {
		return nil, ctx.State.DoS(100, fault.UpdateAccountFail, "operate-minus-account-failed",
			"source account: %s sub %d %s error: %s", p.From, p.Amount, p.Token, err)
	}
	err = transaction.SaveAccount(ctx, from)
	if nil != err {
		return nil, err
	}

	to, found := ctx.Cache.Account.GetAccountByUID(p.To)
	if !found {
		keyID, ok := p.To.KeyID()
		if !ok {
			return nil, ctx.State.DoS(100, fault.ReadAccountFail, "account-not-exist",
				"destination account: %s not found", p.To)
		}
		to = entities.NewAccount(keyID)
		if pubKey, ok := p.To.PubKey(); ok {
			to.OwnerPubKey = pubKey
		}
	}
	err = to.OperateBalance(p.Token, entities.AddFree, p.Amount)
	if nil != err {
		return nil, ctx.State.DoS(100, fault.UpdateAccountFail, "operate-add-account-failed",
			"destination account: %s add %d %s error: %s", p.To, p.Amount, p.Token, err)
	}
	err = transaction.SaveAccount(ctx, to)
	if nil != err {
		return nil, err
	}

	receipts := entities.Receipts{{
		From:   p.From,
		To:     p.To,
		Symbol: p.Token,
		Amount: p.Amount,
		Code:   entities.ReceiptTransferProposal,
	}}
	return receipts, nil
}
