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

// PriceFeed - source of the bcoin median price
type PriceFeed = transaction.PriceFeed

// CoinPairs - pairs a cdp may be opened for
var CoinPairs = []entities.CoinPair{
	{Bcoin: entities.SymbolWICC, Scoin: entities.SymbolWUSD},
}

// IsCdpCoinPair - pair is one of CoinPairs
func IsCdpCoinPair(pair entities.CoinPair) bool {
	for _, p := range CoinPairs {
		if p == pair {
			return true
		}
	}
	return false
}

func medianPrice(ctx *transaction.Context, pair entities.CoinPair) (uint64, error) {
	if nil == ctx.PriceFeed {
		return 0, ctx.State.DoS(100, fault.RejectInvalid, "bcoin-median-price-missing",
			"no price feed for pair: %s", pair)
	}
	price, ok := ctx.PriceFeed.GetMedianPrice(pair)
	if !ok || 0 == price {
		return 0, ctx.State.DoS(100, fault.RejectInvalid, "bcoin-median-price-missing",
			"no median price for pair: %s", pair)
	}
	return price, nil
}

// the cdp system is running and the global ratio is above its floor
func checkGlobalFloor(ctx *transaction.Context, pair entities.CoinPair, price uint64) error {
	if ctx.Cache.Cdp.IsCdpHalt() {
		return ctx.State.DoS(100, fault.RejectInvalid, "cdp-halted",
			"cdp operations are halted")
	}
	floor := ctx.Cache.SysParam.GetCdpParam(pair, sysparam.CdpGlobalCollateralRatioMin)
	if ctx.Cache.Cdp.CheckGlobalCollateralFloorReached(pair, price, floor) {
		return ctx.State.DoS(100, fault.RejectInvalid, "global-collateral-floor-reached",
			"pair: %s global collateral ratio below: %d", pair, floor)
	}
	return nil
}

// the owner of a cdp must be a registered account
func ownerAccount(ctx *transaction.Context, tx *transaction.BaseTx) (*entities.Account, error) {
	account, err := tx.TxAccount(ctx)
	if nil != err {
		return nil, err
	}
	if !account.IsRegistered() {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "account-not-registered",
			"account: %s has no regid", tx.TxUID)
	}
	return account, nil
}

func loadCDP(ctx *transaction.Context, id common.Hash) (*entities.CDP, error) {
	if (common.Hash{}) == id {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "empty-cdpid",
			"cdp id is empty")
	}
	cdp, found := ctx.Cache.Cdp.GetCDP(id)
	if !found {
		return nil, ctx.State.DoS(100, fault.ReadCdpFail, "cdp-not-exist",
			"cdp: %s not found", id.Hex())
	}
	return cdp, nil
}

// interest owed from the last settlement up to the block before height,
// integrated over the interest parameter regimes in force
func computeInterest(ctx *transaction.Context, cdp *entities.CDP) (uint64, error) {
	if ctx.Height <= cdp.BlockHeight || 0 == cdp.TotalOwedScoins {
		return 0, nil
	}

	regimes := ctx.Cache.SysParam.GetCdpInterestParamChanges(cdp.Pair(), uint64(cdp.BlockHeight), uint64(ctx.Height)-1)
	total := uint64(0)
	for _, r := range regimes {
		blocks := r.EndHeight - r.BeginHeight + 1
		interest, ok := Interest(cdp.TotalOwedScoins, blocks, ctx.Params.DayBlocks, r.ParamA, r.ParamB)
		if !ok || total+interest < total {
			return 0, ctx.State.DoS(100, fault.RejectInvalid, "compute-interest-error",
				"cdp: %s interest overflow", cdp.ID.Hex())
		}
		total += interest
	}
	return total, nil
}

// system order spending scoins on WGRT to be burnt
func createBurnOrder(ctx *transaction.Context, tx *transaction.BaseTx, scoinSymbol string, amount uint64) error {
	order := entities.NewSysBuyMarketOrder(scoinSymbol, entities.SymbolWGRT, amount, ctx.Height, ctx.TxIndex)
	if !ctx.Cache.Dex.CreateActiveOrder(tx.TxID, order) {
		return ctx.State.DoS(100, fault.WriteDexFail, "create-sys-order-failed",
			"txid: %s buy %s with %d %s", tx.TxID.Hex(), entities.SymbolWGRT, amount, scoinSymbol)
	}
	return nil
}

// charge the interest due to the owner and spend it on a burn order
func settleInterest(ctx *transaction.Context, tx *transaction.BaseTx, account *entities.Account, cdp *entities.CDP) (entities.Receipts, error) {
	interest, err := computeInterest(ctx, cdp)
	if nil != err {
		return nil, err
	}
	if 0 == interest {
		return nil, nil
	}

	err = account.OperateBalance(cdp.ScoinSymbol, entities.SubFree, interest)
	if nil != err {
		return nil, ctx.State.DoS(100, fault.RejectInsufficient, "interest-insufficient-error",
			"account: %s interest: %d %s error: %s", tx.TxUID, interest, cdp.ScoinSymbol, err)
	}
	err = createBurnOrder(ctx, tx, cdp.ScoinSymbol, interest)
	if nil != err {
		return nil, err
	}

	getLog().Debugf("cdp: %s  height: %d  interest: %d", cdp.ID.Hex(), ctx.Height, interest)

	receipts := entities.Receipts{{
		From:   tx.TxUID,
		Symbol: cdp.ScoinSymbol,
		Amount: interest,
		Code:   entities.ReceiptCdpInterestBuyDeflateFcoins,
	}}
	return receipts, nil
}
