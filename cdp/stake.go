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

// StakeTx - open a cdp or add collateral and debt to one
//
// a zero CdpID opens a new cdp identified by this transaction's txid
type StakeTx struct {
	transaction.BaseTx
	CdpID         common.Hash
	BcoinSymbol   string
	ScoinSymbol   string
	BcoinsToStake uint64
	ScoinsToMint  uint64
}

// NewStakeTx - stake with the cdp stake tx type
func NewStakeTx(base transaction.BaseTx, cdpID common.Hash, pair entities.CoinPair, bcoins uint64, scoins uint64) *StakeTx {
	base.TxType = entities.CdpStakeTx
	return &StakeTx{
		BaseTx:        base,
		CdpID:         cdpID,
		BcoinSymbol:   pair.Bcoin,
		ScoinSymbol:   pair.Scoin,
		BcoinsToStake: bcoins,
		ScoinsToMint:  scoins,
	}
}

// Pair - the staked and minted symbols
func (tx *StakeTx) Pair() entities.CoinPair {
	return entities.CoinPair{Bcoin: tx.BcoinSymbol, Scoin: tx.ScoinSymbol}
}

func (tx *StakeTx) isNew() bool {
	return (common.Hash{}) == tx.CdpID
}

// Check - pair, global limits and the owner account
func (tx *StakeTx) Check(ctx *transaction.Context) error {
	if err := tx.CheckFee(ctx); nil != err {
		return err
	}
	account, err := ownerAccount(ctx, &tx.BaseTx)
	if nil != err {
		return err
	}
	if err := tx.CheckPerms(ctx, account, entities.PermCdp); nil != err {
		return err
	}

	pair := tx.Pair()
	if !IsCdpCoinPair(pair) {
		return ctx.State.DoS(100, fault.RejectInvalid, "invalid-cdp-coin-pair",
			"pair: %s cannot be staked", pair)
	}
	if 0 == tx.BcoinsToStake && 0 == tx.ScoinsToMint {
		return ctx.State.DoS(100, fault.RejectDust, "stake-amount-zero",
			"nothing to stake or mint")
	}

	price, err := medianPrice(ctx, pair)
	if nil != err {
		return err
	}
	if err := checkGlobalFloor(ctx, pair, price); nil != err {
		return err
	}

	ceiling := ctx.Cache.SysParam.GetCdpParam(pair, sysparam.CdpGlobalCollateralCeilingAmount)
	if ctx.Cache.Cdp.CheckGlobalCollateralCeilingReached(pair, tx.BcoinsToStake, ceiling) {
		return ctx.State.DoS(100, fault.RejectInvalid, "global-collateral-ceiling-reached",
			"pair: %s stake: %d exceeds ceiling: %d", pair, tx.BcoinsToStake, ceiling)
	}

	if tx.isNew() {
		if _, found := ctx.Cache.Cdp.GetCDPByOwner(account.RegID, pair); found {
			return ctx.State.DoS(100, fault.RejectInvalid, "has-open-cdp",
				"owner: %s already has a cdp for: %s", account.RegID, pair)
		}
	}
	return nil
}

// Execute - settle interest, move the collateral and mint the debt
func (tx *StakeTx) Execute(ctx *transaction.Context) error {
	account, err := ownerAccount(ctx, &tx.BaseTx)
	if nil != err {
		return err
	}
	receipts, err := tx.DeductFee(ctx, account)
	if nil != err {
		return err
	}

	pair := tx.Pair()
	price, err := medianPrice(ctx, pair)
	if nil != err {
		return err
	}
	startRatio := ctx.Cache.SysParam.GetCdpParam(pair, sysparam.CdpStartCollateralRatio)
	partialRatio := entities.CollateralRatio(tx.BcoinsToStake, tx.ScoinsToMint, price)

	cdpID := tx.CdpID
	if tx.isNew() {
		cdpID = tx.TxID
		err = tx.open(ctx, account, price, partialRatio, startRatio)
	} else {
		var interest entities.Receipts
		interest, err = tx.add(ctx, account, price, partialRatio, startRatio)
		receipts = append(receipts, interest...)
	}
	if nil != err {
		return err
	}

	err = account.OperateBalance(tx.BcoinSymbol, entities.Pledge, tx.BcoinsToStake)
	if nil != err {
		return ctx.State.DoS(100, fault.RejectInsufficient, "bcoins-insufficient-error",
			"account: %s pledge %d %s error: %s", tx.TxUID, tx.BcoinsToStake, tx.BcoinSymbol, err)
	}
	err = account.OperateBalance(tx.ScoinSymbol, entities.AddFree, tx.ScoinsToMint)
	if nil != err {
		return ctx.State.DoS(100, fault.UpdateAccountFail, "mint-scoins-failed",
			"account: %s mint %d %s error: %s", tx.TxUID, tx.ScoinsToMint, tx.ScoinSymbol, err)
	}
	err = transaction.SaveAccount(ctx, account)
	if nil != err {
		return err
	}

	getLog().Infof("height: %d  cdp: %s  owner: %s  staked: %d %s  minted: %d %s",
		ctx.Height, cdpID.Hex(), account.RegID, tx.BcoinsToStake, tx.BcoinSymbol, tx.ScoinsToMint, tx.ScoinSymbol)

	owner := entities.NewRegIDUser(account.RegID)
	receipts = append(receipts,
		entities.Receipt{
			From:   owner,
			Symbol: tx.BcoinSymbol,
			Amount: tx.BcoinsToStake,
			Code:   entities.ReceiptCdpStakedAssetFromOwner,
		},
		entities.Receipt{
			To:     owner,
			Symbol: tx.ScoinSymbol,
			Amount: tx.ScoinsToMint,
			Code:   entities.ReceiptCdpMintedScoinToOwner,
		},
	)
	return tx.WriteReceipts(ctx, receipts)
}

func (tx *StakeTx) open(ctx *transaction.Context, account *entities.Account, price uint64, ratio uint64, startRatio uint64) error {
	pair := tx.Pair()
	if ratio < startRatio {
		return ctx.State.DoS(100, fault.RejectInvalid, "cdp-collateral-ratio-toosmall",
			"collateral ratio: %d below start ratio: %d", ratio, startRatio)
	}

	minValue := ctx.Cache.SysParam.GetCdpParam(pair, sysparam.CdpBcoinsToStakeAmountMinInScoin)
	value, ok := mulDiv(tx.BcoinsToStake, price, entities.PriceBoost)
	if !ok || value < minValue {
		return ctx.State.DoS(100, fault.RejectInvalid, "bcoins-too-small-to-stake",
			"stake value: %d %s below minimum: %d", value, tx.ScoinSymbol, minValue)
	}

	cdp := &entities.CDP{
		ID:                tx.TxID,
		Owner:             account.RegID,
		BcoinSymbol:       tx.BcoinSymbol,
		ScoinSymbol:       tx.ScoinSymbol,
		BlockHeight:       ctx.Height,
		TotalStakedBcoins: tx.BcoinsToStake,
		TotalOwedScoins:   tx.ScoinsToMint,
	}
	err := ctx.Cache.Cdp.NewCDP(cdp)
	if nil != err {
		return ctx.State.DoS(100, fault.WriteCdpFail, "save-new-cdp-failed",
			"cdp: %s error: %s", cdp.ID.Hex(), err)
	}
	return nil
}

func (tx *StakeTx) add(ctx *transaction.Context, account *entities.Account, price uint64, partialRatio uint64, startRatio uint64) (entities.Receipts, error) {
	old, err := loadCDP(ctx, tx.CdpID)
	if nil != err {
		return nil, err
	}
	if old.Owner != account.RegID {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "not-cdp-owner",
			"cdp: %s owner: %s is not: %s", old.ID.Hex(), old.Owner, account.RegID)
	}
	if old.Pair() != tx.Pair() {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "cdp-coin-pair-mismatch",
			"cdp: %s pair: %s is not: %s", old.ID.Hex(), old.Pair(), tx.Pair())
	}
	if ctx.Height < old.BlockHeight {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "height-error",
			"height: %d before cdp height: %d", ctx.Height, old.BlockHeight)
	}

	staked := old.TotalStakedBcoins + tx.BcoinsToStake
	owed := old.TotalOwedScoins + tx.ScoinsToMint
	if staked < old.TotalStakedBcoins || owed < old.TotalOwedScoins {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "cdp-amount-overflow",
			"cdp: %s totals overflow", old.ID.Hex())
	}
	totalRatio := entities.CollateralRatio(staked, owed, price)
	if partialRatio < startRatio && totalRatio < startRatio {
		return nil, ctx.State.DoS(100, fault.RejectInvalid, "cdp-collateral-ratio-toosmall",
			"collateral ratio partial: %d total: %d below start ratio: %d", partialRatio, totalRatio, startRatio)
	}

	receipts, err := settleInterest(ctx, &tx.BaseTx, account, old)
	if nil != err {
		return nil, err
	}

	cdp := *old
	cdp.AddStake(ctx.Height, tx.BcoinsToStake, tx.ScoinsToMint)
	err = ctx.Cache.Cdp.UpdateCDP(old, &cdp)
	if nil != err {
		return nil, ctx.State.DoS(100, fault.WriteCdpFail, "save-changed-cdp-failed",
			"cdp: %s error: %s", cdp.ID.Hex(), err)
	}
	return receipts, nil
}
