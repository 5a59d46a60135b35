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

// LiquidateTx - pay off part or all of an undercollateralised cdp
// in exchange for its collateral at a discount
type LiquidateTx struct {
	transaction.BaseTx
	CdpID             common.Hash
	ScoinsToLiquidate uint64
}

// NewLiquidateTx - liquidate with the cdp liquidate tx type
func NewLiquidateTx(base transaction.BaseTx, cdpID common.Hash, scoins uint64) *LiquidateTx {
	base.TxType = entities.CdpLiquidateTx
	return &LiquidateTx{
		BaseTx:            base,
		CdpID:             cdpID,
		ScoinsToLiquidate: scoins,
	}
}

// plan - division of a cdp between the liquidator and the owner
type plan struct {
	liquidatorBcoins  uint64 // collateral paid to the liquidator
	ownerBcoins       uint64 // collateral returned to the owner
	scoinsToLiquidate uint64 // scoins needed to liquidate all of it
	penalty           uint64 // part of scoinsToLiquidate above the debt
}

// Check - the liquidator account and the cdp exist
func (tx *LiquidateTx) Check(ctx *transaction.Context) error {
	if err := tx.CheckFee(ctx); nil != err {
		return err
	}
	if _, err := tx.TxAccount(ctx); nil != err {
		return err
	}
	if 0 == tx.ScoinsToLiquidate {
		return ctx.State.DoS(100, fault.RejectDust, "liquidate-amount-zero",
			"nothing to liquidate")
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

// Execute - apply the liquidation band for the cdp's current ratio
func (tx *LiquidateTx) Execute(ctx *transaction.Context) error {
	liquidator, err := tx.TxAccount(ctx)
	if nil != err {
		return err
	}
	receipts, err := tx.DeductFee(ctx, liquidator)
	if nil != err {
		return err
	}

	old, err := loadCDP(ctx, tx.CdpID)
	if nil != err {
		return err
	}
	pair := old.Pair()
	price, err := medianPrice(ctx, pair)
	if nil != err {
		return err
	}

	p, err := computePlan(ctx, old, price)
	if nil != err {
		return err
	}

	owner := liquidator
	if liquidator.RegID != old.Owner {
		var found bool
		owner, found = ctx.Cache.Account.GetAccountByRegID(old.Owner)
		if !found {
			return ctx.State.DoS(100, fault.ReadAccountFail, "bad-read-accountdb",
				"cdp: %s owner: %s not found", old.ID.Hex(), old.Owner)
		}
	}

	paid := tx.ScoinsToLiquidate
	full := paid >= p.scoinsToLiquidate
	var liquidatorBcoins, ownerBcoins, owedPart, penalty uint64
	if full {
		paid = p.scoinsToLiquidate
		liquidatorBcoins = p.liquidatorBcoins
		ownerBcoins = p.ownerBcoins
		owedPart = old.TotalOwedScoins
		penalty = p.penalty
	} else {
		var ok1, ok2, ok3 bool
		liquidatorBcoins, ok1 = mulDiv(p.liquidatorBcoins, paid, p.scoinsToLiquidate)
		ownerBcoins, ok2 = mulDiv(p.ownerBcoins, paid, p.scoinsToLiquidate)
		owedPart, ok3 = mulDiv(old.TotalOwedScoins, paid, p.scoinsToLiquidate)
		if !ok1 || !ok2 || !ok3 || owedPart > paid {
			return ctx.State.DoS(100, fault.RejectInvalid, "compute-liquidate-error",
				"cdp: %s paid: %d of: %d", old.ID.Hex(), paid, p.scoinsToLiquidate)
		}
		penalty = paid - owedPart
	}

	err = liquidator.OperateBalance(pair.Scoin, entities.SubFree, paid)
	if nil != err {
		return ctx.State.DoS(100, fault.RejectInsufficient, "scoins-insufficient-error",
			"liquidator: %s pay %d %s error: %s", tx.TxUID, paid, pair.Scoin, err)
	}
	err = liquidator.OperateBalance(pair.Bcoin, entities.AddFree, liquidatorBcoins)
	if nil != err {
		return ctx.State.DoS(100, fault.UpdateAccountFail, "add-bcoins-failed",
			"liquidator: %s add %d %s error: %s", tx.TxUID, liquidatorBcoins, pair.Bcoin, err)
	}

	// the liquidated collateral leaves the owner's pledge, the owner
	// keeps only its own share
	released := liquidatorBcoins + ownerBcoins
	if full {
		released = old.TotalStakedBcoins
	}
	err = owner.OperateBalance(pair.Bcoin, entities.Unpledge, released)
	if nil == err {
		err = owner.OperateBalance(pair.Bcoin, entities.SubFree, released-ownerBcoins)
	}
	if nil != err {
		return ctx.State.DoS(100, fault.UpdateAccountFail, "unpledge-bcoins-failed",
			"owner: %s release %d %s error: %s", old.Owner, released, pair.Bcoin, err)
	}

	if full {
		err = ctx.Cache.Cdp.EraseCDP(old)
	} else {
		cdp := *old
		cdp.LiquidatePartial(released, owedPart)
		err = ctx.Cache.Cdp.UpdateCDP(old, &cdp)
	}
	if nil != err {
		return ctx.State.DoS(100, fault.WriteCdpFail, "bad-save-cdp",
			"cdp: %s error: %s", old.ID.Hex(), err)
	}

	err = transaction.SaveAccount(ctx, liquidator)
	if nil != err {
		return err
	}
	if owner != liquidator {
		err = transaction.SaveAccount(ctx, owner)
		if nil != err {
			return err
		}
	}

	penaltyReceipts, err := tx.processPenalty(ctx, pair, penalty)
	if nil != err {
		return err
	}

	getLog().Infof("height: %d  cdp: %s  liquidated: %d %s  full: %t  liquidator: %d %s  owner: %d %s  penalty: %d",
		ctx.Height, old.ID.Hex(), paid, pair.Scoin, full, liquidatorBcoins, pair.Bcoin, ownerBcoins, pair.Bcoin, penalty)

	ownerUID := entities.NewRegIDUser(old.Owner)
	receipts = append(receipts,
		entities.Receipt{
			From:   tx.TxUID,
			Symbol: pair.Scoin,
			Amount: paid,
			Code:   entities.ReceiptCdpScoinFromLiquidator,
		},
		entities.Receipt{
			To:     tx.TxUID,
			Symbol: pair.Bcoin,
			Amount: liquidatorBcoins,
			Code:   entities.ReceiptCdpAssetToLiquidator,
		},
	)
	if ownerBcoins > 0 {
		receipts = append(receipts, entities.Receipt{
			To:     ownerUID,
			Symbol: pair.Bcoin,
			Amount: ownerBcoins,
			Code:   entities.ReceiptCdpLiquidatedAssetToOwner,
		})
	}
	receipts = append(receipts, entities.Receipt{
		From:   tx.TxUID,
		Symbol: pair.Scoin,
		Amount: owedPart,
		Code:   entities.ReceiptCdpLiquidatedCloseoutScoin,
	})
	receipts = append(receipts, penaltyReceipts...)
	return tx.WriteReceipts(ctx, receipts)
}

// computePlan - the liquidation band for a cdp at price
//
//   ratio > start liquidate         not liquidatable
//   nonreturn < ratio               owner keeps collateral above nonreturn
//   force < ratio <= nonreturn      liquidator takes all at a discount
//   ratio <= force                  liquidator takes all for the debt
func computePlan(ctx *transaction.Context, cdp *entities.CDP, price uint64) (*plan, error) {
	pair := cdp.Pair()
	params := ctx.Cache.SysParam
	startLiquidate := params.GetCdpParam(pair, sysparam.CdpStartLiquidateRatio)
	nonReturn := params.GetCdpParam(pair, sysparam.CdpNonReturnLiquidateRatio)
	force := params.GetCdpParam(pair, sysparam.CdpForceLiquidateRatio)
	discount := params.GetCdpParam(pair, sysparam.CdpLiquidateDiscountRatio)

	ratio := cdp.CollateralRatio(price)
	if ratio > startLiquidate {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "cdp-not-liquidate-ready",
			"cdp: %s ratio: %d above: %d", cdp.ID.Hex(), ratio, startLiquidate)
	}

	owed := cdp.TotalOwedScoins
	staked := cdp.TotalStakedBcoins
	p := &plan{}
	ok := true

	switch {
	case ratio > nonReturn:
		var a, b bool
		p.liquidatorBcoins, a = mulMulDiv(owed, nonReturn, entities.PriceBoost, price*entities.RatioBoost)
		p.scoinsToLiquidate, b = mulMulDiv(owed, nonReturn, discount, entities.RatioBoost*entities.RatioBoost)
		ok = a && b && p.liquidatorBcoins <= staked
		p.ownerBcoins = staked - min(staked, p.liquidatorBcoins)
	case ratio > force:
		p.liquidatorBcoins = staked
		p.scoinsToLiquidate, ok = mulMulDiv(staked, price, discount, entities.PriceBoost*entities.RatioBoost)
	default:
		p.liquidatorBcoins = staked
		p.scoinsToLiquidate = owed
	}
	if !ok || 0 == p.scoinsToLiquidate {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "compute-liquidate-error",
			"cdp: %s ratio: %d price: %d", cdp.ID.Hex(), ratio, price)
	}
	if p.scoinsToLiquidate > owed {
		p.penalty = p.scoinsToLiquidate - owed
	}
	return p, nil
}

// half of a penalty above the minimum buys fcoins to burn, the rest
// goes to the risk reserve
func (tx *LiquidateTx) processPenalty(ctx *transaction.Context, pair entities.CoinPair, penalty uint64) (entities.Receipts, error) {
	if 0 == penalty {
		return nil, nil
	}
	reserveUID := entities.NewRegIDUser(ctx.Params.RiskReserveRegID)

	minimum := ctx.Cache.SysParam.GetCdpParam(pair, sysparam.CdpSysOrderPenaltyFeeMin)
	if penalty <= minimum {
		err := transaction.CreditReserve(ctx, pair.Scoin, penalty)
		if nil != err {
			return nil, err
		}
		return entities.Receipts{{
			From:   tx.TxUID,
			To:     reserveUID,
			Symbol: pair.Scoin,
			Amount: penalty,
			Code:   entities.ReceiptCdpPenaltyToReserve,
		}}, nil
	}

	half := penalty / 2
	burn := penalty - half
	err := transaction.CreditReserve(ctx, pair.Scoin, half)
	if nil != err {
		return nil, err
	}
	err = createBurnOrder(ctx, &tx.BaseTx, pair.Scoin, burn)
	if nil != err {
		return nil, err
	}
	receipts := entities.Receipts{
		{
			From:   tx.TxUID,
			To:     reserveUID,
			Symbol: pair.Scoin,
			Amount: half,
			Code:   entities.ReceiptCdpPenaltyToReserve,
		},
		{
			From:   tx.TxUID,
			Symbol: pair.Scoin,
			Amount: burn,
			Code:   entities.ReceiptCdpPenaltyBuyDeflateFcoins,
		},
	}
	return receipts, nil
}
