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

func checkGovernorUpdate(ctx *transaction.Context, p *entities.GovernorUpdate) error {
	if entities.ProposalOpEnable != p.Op && entities.ProposalOpDisable != p.Op {
		return ctx.State.DoS(100, fault.RejectInvalid, "operate_type-illegal",
			"operate type: %d", p.Op)
	}
	if !p.RegID.IsMature(ctx.Height, ctx.Params.RegIDMaturity) {
		return ctx.State.DoS(100, fault.RejectInvalid, "regid-not-matured",
			"regid: %s not mature at height: %d", p.RegID, ctx.Height)
	}
	if _, found := ctx.Cache.Account.GetAccountByRegID(p.RegID); !found {
		return ctx.State.DoS(100, fault.RejectInvalid, "regid-not-found",
			"regid: %s account not found", p.RegID)
	}

	isGovernor := ctx.Cache.SysGovern.CheckIsGovernor(p.RegID)
	if entities.ProposalOpDisable == p.Op && !isGovernor {
		return ctx.State.DoS(100, fault.RejectInvalid, "regid-not-governor",
			"regid: %s is not a governor", p.RegID)
	}
	if entities.ProposalOpEnable == p.Op && isGovernor {
		return ctx.State.DoS(100, fault.RejectInvalid, "regid-is-governor",
			"regid: %s is already a governor", p.RegID)
	}
	return nil
}

func executeGovernorUpdate(ctx *transaction.Context, p *entities.GovernorUpdate) error {
	ok := false
	switch p.Op {
	case entities.ProposalOpEnable:
		ok = ctx.Cache.SysGovern.AddGovernor(p.RegID)
	case entities.ProposalOpDisable:
		ok = ctx.Cache.SysGovern.EraseGovernor(p.RegID)
	}
	if !ok {
		return ctx.State.DoS(100, fault.WriteGovernanceFail, "governor-update-failed",
			"regid: %s operate type: %d", p.RegID, p.Op)
	}
	getLog().Infof("height: %d  governor: %s  operate: %d", ctx.Height, p.RegID, p.Op)
	return nil
}

func checkDexOperator(ctx *transaction.Context, p *entities.DexOperatorUpdate) error {
	if 0 == p.DexID {
		return ctx.State.DoS(100, fault.RejectInvalid, "operator0-can't-be-switched",
			"the main dex operator cannot be switched")
	}
	if entities.ProposalOpEnable != p.Op && entities.ProposalOpDisable != p.Op {
		return ctx.State.DoS(100, fault.RejectInvalid, "operate-type-error",
			"operate type: %d", p.Op)
	}
	operator, found := ctx.Cache.Dex.GetDexOperator(p.DexID)
	if !found {
		return ctx.State.DoS(100, fault.RejectInvalid, "dexoperator-not-exist",
			"dex operator: %d not found", p.DexID)
	}
	if operator.Activated == (entities.ProposalOpEnable == p.Op) {
		return ctx.State.DoS(100, fault.RejectInvalid, "need-not-update",
			"dex operator: %d activated: %t", p.DexID, operator.Activated)
	}
	return nil
}

func executeDexOperator(ctx *transaction.Context, p *entities.DexOperatorUpdate) error {
	old, found := ctx.Cache.Dex.GetDexOperator(p.DexID)
	if !found {
		return ctx.State.DoS(100, fault.RejectInvalid, "dexoperator-not-exist",
			"dex operator: %d not found", p.DexID)
	}
	operator := *old
	operator.Activated = entities.ProposalOpEnable == p.Op
	if !ctx.Cache.Dex.UpdateDexOperator(p.DexID, old, &operator) {
		return ctx.State.DoS(100, fault.WriteDexFail, "save-updated-operator-error",
			"dex operator: %d", p.DexID)
	}
	return nil
}

func checkAccountPerm(ctx *transaction.Context, p *entities.AccountPerm) error {
	if p.Account.IsEmpty() {
		return ctx.State.DoS(100, fault.RejectInvalid, "account-uid-empty",
			"target account uid is empty")
	}
	if 0 == p.PermsSum || p.PermsSum > entities.AllPerms {
		return ctx.State.DoS(100, fault.RejectInvalid, "invalid-perms",
			"perms: %x outside (0, %x]", p.PermsSum, entities.AllPerms)
	}
	return nil
}

func executeAccountPerm(ctx *transaction.Context, p *entities.AccountPerm) error {
	account, found := ctx.Cache.Account.GetAccountByUID(p.Account)
	if !found {
		return ctx.State.DoS(100, fault.ReadAccountFail, "bad-read-accountdb",
			"account: %s not found", p.Account)
	}
	account.PermsSum = p.PermsSum
	return transaction.SaveAccount(ctx, account)
}

func checkCancelOrder(ctx *transaction.Context, p *entities.CancelOrder) error {
	if (entities.DexOrderID{}) == p.OrderID {
		return ctx.State.DoS(100, fault.RejectInvalid, "invalid-order-id",
			"order id is empty")
	}
	return nil
}

// the frozen remainder goes back to the user who placed the order
func executeCancelOrder(ctx *transaction.Context, p *entities.CancelOrder) (entities.Receipts, error) {
	order, found := ctx.Cache.Dex.GetActiveOrder(p.OrderID)
	if !found {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "order-inactive",
			"order: %s is inactive", p.OrderID.Hex())
	}
	if entities.UserGenOrder != order.GenerateType {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "order-not-generated-by-user",
			"order: %s generate type: %d", p.OrderID.Hex(), order.GenerateType)
	}

	account, found := ctx.Cache.Account.GetAccountByRegID(order.UserRegID)
	if !found {
		return nil, ctx.State.DoS(100, fault.ReadAccountFail, "bad-read-accountdb",
			"order owner: %s not found", order.UserRegID)
	}

	symbol, amount, ok := order.FrozenRemainder()
	if !ok {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "order-side-error",
			"order: %s side: %d", p.OrderID.Hex(), order.OrderSide)
	}
	err := account.OperateBalance(symbol, entities.Unfreeze, amount)
	if nil != err {
		return nil, ctx.State.DoS(100, fault.UpdateAccountFail, "unfreeze-account-failed",
			"order: %s unfreeze %d %s error: %s", p.OrderID.Hex(), amount, symbol, err)
	}
	err = transaction.SaveAccount(ctx, account)
	if nil != err {
		return nil, err
	}
	if !ctx.Cache.Dex.EraseActiveOrder(p.OrderID) {
		return nil, ctx.State.DoS(100, fault.WriteDexFail, "erase-active-order-failed",
			"order: %s", p.OrderID.Hex())
	}

	code := entities.ReceiptDexUnfreezeCoinToBuyer
	if entities.OrderSell == order.OrderSide {
		code = entities.ReceiptDexUnfreezeAssetToSeller
	}
	receipts := entities.Receipts{{
		To:     account.UserID(),
		Symbol: symbol,
		Amount: amount,
		Code:   code,
	}}
	return receipts, nil
}
