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

// Category - who approves a proposal
func Category(p entities.Proposal) entities.ApproverCategory {
	switch p.(type) {
	case *entities.GovernorUpdate, *entities.BpCount, *entities.CoinTransfer:
		return entities.ApprovedByDelegates
	case *entities.ParamGovern,
		*entities.MinerFee,
		*entities.CdpParamGovern,
		*entities.DexOperatorUpdate,
		*entities.AccountPerm,
		*entities.CancelOrder:
		return entities.ApprovedByGovernors
	}
	fault.Panicf("governance: unknown proposal: %T", p)
	return entities.ApprovedByGovernors
}

// Check - validate a proposal against the current state
//
// tx is the request or the approval being executed, some rules only
// apply when the proposal is first requested
func Check(ctx *transaction.Context, tx *transaction.BaseTx, p entities.Proposal) error {
	switch proposal := p.(type) {
	case *entities.ParamGovern:
		return checkParamGovern(ctx, proposal)
	case *entities.GovernorUpdate:
		return checkGovernorUpdate(ctx, proposal)
	case *entities.CoinTransfer:
		return checkCoinTransfer(ctx, tx, proposal)
	case *entities.BpCount:
		return checkBpCount(ctx, tx, proposal)
	case *entities.MinerFee:
		return checkMinerFee(ctx, proposal)
	case *entities.CdpParamGovern:
		return checkCdpParamGovern(ctx, proposal)
	case *entities.DexOperatorUpdate:
		return checkDexOperator(ctx, proposal)
	case *entities.AccountPerm:
		return checkAccountPerm(ctx, proposal)
	case *entities.CancelOrder:
		return checkCancelOrder(ctx, proposal)
	}
	fault.Panicf("governance: unknown proposal: %T", p)
	return nil
}

// Execute - apply an approved proposal
func Execute(ctx *transaction.Context, tx *transaction.BaseTx, p entities.Proposal) (entities.Receipts, error) {
	switch proposal := p.(type) {
	case *entities.ParamGovern:
		return nil, executeParamGovern(ctx, proposal)
	case *entities.GovernorUpdate:
		return nil, executeGovernorUpdate(ctx, proposal)
	case *entities.CoinTransfer:
		return executeCoinTransfer(ctx, proposal)
	case *entities.BpCount:
		return nil, executeBpCount(ctx, proposal)
	case *entities.MinerFee:
		return nil, executeMinerFee(ctx, proposal)
	case *entities.CdpParamGovern:
		return nil, executeCdpParamGovern(ctx, proposal)
	case *entities.DexOperatorUpdate:
		return nil, executeDexOperator(ctx, proposal)
	case *entities.AccountPerm:
		return nil, executeAccountPerm(ctx, proposal)
	case *entities.CancelOrder:
		return executeCancelOrder(ctx, proposal)
	}
	fault.Panicf("governance: unknown proposal: %T", p)
	return nil, nil
}
