// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cdp

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/sysparam"
	"github.com/waykichain/wiccd/transaction"
)

// RedeemTx - repay debt and release collateral
type RedeemTx struct {
	transaction.BaseTx
	CdpID          common.Hash
	ScoinsToRepay  uint64
	BcoinsToRedeem uint64
}

// NewRedeemTx - redeem with the cdp redeem tx type
func NewRedeemTx(base transaction.BaseTx, cdpID common.Hash, scoins uint64, bcoins uint64) *RedeemTx {
	base.TxType = entities.CdpRedeemTx
	return &RedeemTx{
		BaseTx:         base,
		CdpID:          cdpID,
		ScoinsToRepay:  scoins,
		BcoinsToRedeem: bcoins,
	}
}

// Check - the cdp exists and the global floor holds
func (tx *RedeemTx) Check(ctx *transaction.Context) error {
	if err := tx.CheckFee(ctx); nil != err {
		return err
	}
	if _, err := ownerAccount(ctx, &tx.BaseTx); nil != err {
		return err
	}
	if 0 == tx.ScoinsToRepay && 0 == tx.BcoinsToRedeem {
		return ctx.State.DoS(100, fault.RejectDust, "redeem-amount-zero",
			"nothing to repay or redeem")
	}

	cdp, err := loadCDP(ctx, tx.CdpID)
	if nil != err {
		return err
	}
	price, err := medianPrice(ctx, cdp.Pair())
	if nil != err {
		return err
	}
	return checkGlobalFloor(ctx, cdp.Pair(), price)
}

// Execute - settle interest, repay, release surplus collateral
//
// repaying everything owed releases all collateral and closes the cdp
func (tx *RedeemTx) Execute(ctx *transaction.Context) error {
	account, err := ownerAccount(ctx, &tx.BaseTx)
	if nil != err {
		return err
	}
	receipts, err := tx.DeductFee(ctx, account)
	if nil != err {
		return err
	}

	old, err := loadCDP(ctx, tx.CdpID)
	if nil != err {
		return err
	}
	if old.Owner != account.RegID {
		return ctx.State.DoS(100, fault.RejectInvalid, "not-cdp-owner",
			"cdp: %s owner: %s is not: %s", old.ID.Hex(), old.Owner, account.RegID)
	}
	if ctx.Height < old.BlockHeight {
		return ctx.State.DoS(100, fault.RejectInvalid, "height-error",
			"height: %d before cdp height: %d", ctx.Height, old.BlockHeight)
	}
	pair := old.Pair()
	price, err := medianPrice(ctx, pair)
	if nil != err {
		return err
	}

	interest, err := settleInterest(ctx, &tx.BaseTx, account, old)
	if nil != err {
		return err
	}
	receipts = append(receipts, interest...)

	repay := min(tx.ScoinsToRepay, old.TotalOwedScoins)
	owed := old.TotalOwedScoins - repay

	redeem := old.TotalStakedBcoins
	if 0 != owed {
		startRatio := ctx.Cache.SysParam.GetCdpParam(pair, sysparam.CdpStartCollateralRatio)
		required, ok := collateralFor(owed, startRatio, price)
		if !ok {
			return ctx.State.DoS(100, fault.RejectInvalid, "compute-collateral-error",
				"cdp: %s owed: %d price: %d", old.ID.Hex(), owed, price)
		}
		if required > old.TotalStakedBcoins {
			return ctx.State.DoS(100, fault.RejectInvalid, "cdp-collateral-insufficient",
				"cdp: %s requires: %d staked: %d", old.ID.Hex(), required, old.TotalStakedBcoins)
		}
		surplus := old.TotalStakedBcoins - required
		if tx.BcoinsToRedeem > surplus {
			return ctx.State.DoS(100, fault.RejectInvalid, "redeem-exceeds-surplus",
				"cdp: %s redeem: %d surplus: %d", old.ID.Hex(), tx.BcoinsToRedeem, surplus)
		}
		redeem = tx.BcoinsToRedeem
	}

	err = account.OperateBalance(pair.Scoin, entities.SubFree, repay)
	if nil != err {
		return ctx.State.DoS(100, fault.RejectInsufficient, "scoins-insufficient-error",
			"account: %s repay %d %s error: %s", tx.TxUID, repay, pair.Scoin, err)
	}
	err = account.OperateBalance(pair.Bcoin, entities.Unpledge, redeem)
	if nil != err {
		return ctx.State.DoS(100, fault.UpdateAccountFail, "unpledge-bcoins-failed",
			"account: %s unpledge %d %s error: %s", tx.TxUID, redeem, pair.Bcoin, err)
	}
	err = transaction.SaveAccount(ctx, account)
	if nil != err {
		return err
	}

	if 0 == owed {
		err = ctx.Cache.Cdp.EraseCDP(old)
	} else {
		cdp := *old
		cdp.Redeem(ctx.Height, redeem, repay)
		err = ctx.Cache.Cdp.UpdateCDP(old, &cdp)
	}
	if nil != err {
		return ctx.State.DoS(100, fault.WriteCdpFail, "bad-save-cdp",
			"cdp: %s error: %s", old.ID.Hex(), err)
	}

	getLog().Infof("height: %d  cdp: %s  repaid: %d %s  redeemed: %d %s  closed: %t",
		ctx.Height, old.ID.Hex(), repay, pair.Scoin, redeem, pair.Bcoin, 0 == owed)

	owner := entities.NewRegIDUser(account.RegID)
	receipts = append(receipts,
		entities.Receipt{
			From:   owner,
			Symbol: pair.Scoin,
			Amount: repay,
			Code:   entities.ReceiptCdpRepaidScoinFromOwner,
		},
		entities.Receipt{
			To:     owner,
			Symbol: pair.Bcoin,
			Amount: redeem,
			Code:   entities.ReceiptCdpRedeemedAssetToOwner,
		},
	)
	return tx.WriteReceipts(ctx, receipts)
}
