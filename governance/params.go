// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/sysparam"
	"github.com/waykichain/wiccd/transaction"
)

// maximum settings in one parameter proposal
const paramListSizeMax = 50

func checkParamGovern(ctx *transaction.Context, p *entities.ParamGovern) error {
	if 0 == len(p.Params) || len(p.Params) > paramListSizeMax {
		return ctx.State.DoS(100, fault.RejectInvalid, "invalid-params-size",
			"params size: %d outside (0, %d]", len(p.Params), paramListSizeMax)
	}

	for _, setting := range p.Params {
		info, ok := setting.Type.Info()
		if !ok {
			return ctx.State.DoS(100, fault.RejectInvalid, "params-error",
				"parameter: %d is not a system parameter", setting.Type)
		}
		if msg := setting.Type.CheckValue(setting.Value); "" != msg {
			return ctx.State.DoS(100, fault.RejectInvalid, "params-range-error",
				"%s: %s", info.Name, msg)
		}
		if info.IsRegID {
			regID := entities.NewRegIDFromUint64(setting.Value)
			if regID.IsEmpty() {
				return ctx.State.DoS(100, fault.RejectInvalid, "account-not-exist",
					"%s: empty regid", info.Name)
			}
			if _, found := ctx.Cache.Account.GetAccountByRegID(regID); !found {
				return ctx.State.DoS(100, fault.RejectInvalid, "account-not-exist",
					"%s: account: %s not found", info.Name, regID)
			}
		}
	}
	return nil
}

func executeParamGovern(ctx *transaction.Context, p *entities.ParamGovern) error {
	for _, setting := range p.Params {
		if !ctx.Cache.SysParam.SetParam(setting.Type, setting.Value) {
			return ctx.State.DoS(100, fault.WriteParamFail, "save-sysparam-failed",
				"parameter: %s", setting.Type)
		}
		if sysparam.BpDelegateVoteMin == setting.Type {
			ctx.Cache.Delegate.SetLastVoteHeight(uint64(ctx.Height))
		}
		getLog().Infof("height: %d  %s = %d", ctx.Height, setting.Type, setting.Value)
	}
	return nil
}

func checkCdpParamGovern(ctx *transaction.Context, p *entities.CdpParamGovern) error {
	if 0 == len(p.Params) || len(p.Params) > paramListSizeMax {
		return ctx.State.DoS(100, fault.RejectInvalid, "invalid-params-size",
			"params size: %d outside (0, %d]", len(p.Params), paramListSizeMax)
	}
	if p.Pair.IsEmpty() {
		return ctx.State.DoS(100, fault.RejectInvalid, "invalid-coin-pair",
			"empty coin pair")
	}

	for _, setting := range p.Params {
		info, ok := setting.Type.Info()
		if !ok {
			return ctx.State.DoS(100, fault.RejectInvalid, "params-error",
				"parameter: %d is not a cdp parameter", setting.Type)
		}
		if msg := setting.Type.CheckValue(setting.Value); "" != msg {
			return ctx.State.DoS(100, fault.RejectInvalid, "params-range-error",
				"%s: %s", info.Name, msg)
		}
	}
	return checkLiquidateRatios(ctx, p)
}

// the liquidation bands must stay ordered and the discounted force
// liquidation value must still cover the debt
func checkLiquidateRatios(ctx *transaction.Context, p *entities.CdpParamGovern) error {
	ratios := make(map[sysparam.CdpParamType]uint64)
	for _, t := range sysparam.CdpParams() {
		if t.IsLiquidateRatioParam() {
			ratios[t] = ctx.Cache.SysParam.GetCdpParam(p.Pair, t)
		}
	}
	changed := false
	for _, setting := range p.Params {
		if setting.Type.IsLiquidateRatioParam() {
			ratios[setting.Type] = setting.Value
			changed = true
		}
	}
	if !changed {
		return nil
	}

	start := ratios[sysparam.CdpStartCollateralRatio]
	startLiquidate := ratios[sysparam.CdpStartLiquidateRatio]
	force := ratios[sysparam.CdpForceLiquidateRatio]
	discount := ratios[sysparam.CdpLiquidateDiscountRatio]

	if start <= startLiquidate || startLiquidate <= force || start <= force {
		return ctx.State.DoS(100, fault.RejectInvalid, "params-relation-error",
			"start: %d start liquidate: %d force: %d not descending", start, startLiquidate, force)
	}
	if force*discount < entities.RatioBoost*entities.RatioBoost {
		return ctx.State.DoS(100, fault.RejectInvalid, "params-check-error",
			"force: %d × discount: %d below %d", force, discount, entities.RatioBoost*entities.RatioBoost)
	}
	return nil
}

func executeCdpParamGovern(ctx *transaction.Context, p *entities.CdpParamGovern) error {
	for _, setting := range p.Params {
		if !ctx.Cache.SysParam.SetCdpParam(p.Pair, setting.Type, setting.Value) {
			return ctx.State.DoS(100, fault.WriteParamFail, "setparam-error",
				"pair: %s parameter: %s", p.Pair, setting.Type)
		}
		if setting.Type.IsInterestParam() &&
			!ctx.Cache.SysParam.SetCdpInterestParam(p.Pair, setting.Type, uint64(ctx.Height), setting.Value) {
			return ctx.State.DoS(100, fault.WriteParamFail, "setcdpinterestparam-error",
				"pair: %s parameter: %s", p.Pair, setting.Type)
		}
		getLog().Infof("height: %d  pair: %s  %s = %d", ctx.Height, p.Pair, setting.Type, setting.Value)
	}
	return nil
}

func checkMinerFee(ctx *transaction.Context, p *entities.MinerFee) error {
	if !ctx.Params.IsFeeSymbol(p.FeeSymbol) {
		return ctx.State.DoS(100, fault.RejectInvalid, "feesymbol-error",
			"fee symbol: %q is invalid", p.FeeSymbol)
	}
	info, ok := p.TxType.Info()
	if !ok {
		return ctx.State.DoS(100, fault.RejectInvalid, "txtype-error",
			"tx type: %d is invalid", p.TxType)
	}
	if !info.Updatable {
		return ctx.State.DoS(100, fault.RejectInvalid, "can-not-update",
			"tx type: %s miner fee cannot be updated", p.TxType)
	}
	if 0 == p.Amount {
		return ctx.State.DoS(100, fault.RejectInvalid, "can-not-be-zero",
			"tx type: %s miner fee cannot be zero", p.TxType)
	}
	return nil
}

func executeMinerFee(ctx *transaction.Context, p *entities.MinerFee) error {
	if !ctx.Cache.SysParam.SetMinerFee(p.TxType, p.FeeSymbol, p.Amount) {
		return ctx.State.DoS(100, fault.WriteParamFail, "save-minerfee-failed",
			"tx type: %s symbol: %s", p.TxType, p.FeeSymbol)
	}
	return nil
}

func checkBpCount(ctx *transaction.Context, tx *transaction.BaseTx, p *entities.BpCount) error {
	if 0 == p.TotalBpsSize {
		return ctx.State.DoS(100, fault.RejectInvalid, "bad-bp-count",
			"total bps size must be between 1 and 255")
	}
	if entities.ProposalRequestTx == tx.TxType {
		earliest := uint64(ctx.Height) + ctx.Params.BpCountEffectiveBlocks
		if p.EffectiveHeight < earliest {
			return ctx.State.DoS(100, fault.RejectInvalid, "bad-effective-height",
				"effective height: %d must be >= %d", p.EffectiveHeight, earliest)
		}
	}
	return nil
}

func executeBpCount(ctx *transaction.Context, p *entities.BpCount) error {
	current := ctx.Cache.SysParam.GetTotalBpsSize(uint64(ctx.Height))
	if !ctx.Cache.SysParam.SetCurrentTotalBpsSize(current) {
		return ctx.State.DoS(100, fault.RejectInvalid, "save-currtotalbpssize-failed",
			"save current bp count: %d failed", current)
	}
	if !ctx.Cache.SysParam.SetNewTotalBpsSize(p.TotalBpsSize, p.EffectiveHeight) {
		return ctx.State.DoS(100, fault.RejectInvalid, "save-newtotalbpssize-failed",
			"save new bp count: %d failed", p.TotalBpsSize)
	}
	return nil
}
