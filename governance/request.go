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

// RequestTx - submit a proposal for approval
//
// the proposal is stored under the request txid, which is the
// identifier approvals refer to
type RequestTx struct {
	transaction.BaseTx
	Proposal entities.Proposal
}

// NewRequestTx - request with the proposal request tx type
func NewRequestTx(base transaction.BaseTx, p entities.Proposal) *RequestTx {
	base.TxType = entities.ProposalRequestTx
	return &RequestTx{
		BaseTx:   base,
		Proposal: p,
	}
}

// Check - fee, requester and proposal validity
func (tx *RequestTx) Check(ctx *transaction.Context) error {
	if nil == tx.Proposal {
		return ctx.State.DoS(100, fault.RejectInvalid, "proposal-empty",
			"request carries no proposal")
	}
	if err := tx.CheckFee(ctx); nil != err {
		return err
	}
	account, err := tx.TxAccount(ctx)
	if nil != err {
		return err
	}
	if err := tx.CheckPerms(ctx, account, entities.PermProposeGovern); nil != err {
		return err
	}
	return Check(ctx, &tx.BaseTx, tx.Proposal)
}

// Execute - pay the fee and store the proposal with its approval terms
func (tx *RequestTx) Execute(ctx *transaction.Context) error {
	account, err := tx.TxAccount(ctx)
	if nil != err {
		return err
	}
	receipts, err := tx.DeductFee(ctx, account)
	if nil != err {
		return err
	}
	err = transaction.SaveAccount(ctx, account)
	if nil != err {
		return err
	}

	category := Category(tx.Proposal)
	activeDelegates := len(ctx.Cache.Delegate.GetActiveDelegates())
	record := entities.ProposalRecord{
		Proposal:         tx.Proposal,
		ExpireHeight:     uint64(ctx.Height) + ctx.Cache.SysParam.GetParam(sysparam.ProposalExpireBlockCount),
		ApprovalMinCount: ctx.Cache.SysGovern.GetGovernorApprovalMinCount(category, activeDelegates),
	}
	if !ctx.Cache.SysGovern.SetProposal(tx.TxID, record) {
		return ctx.State.DoS(100, fault.WriteProposalFail, "save-proposal-error",
			"proposal: %s", tx.TxID.Hex())
	}

	getLog().Infof("height: %d  proposal: %s  type: %s  approvers: %s  expire: %d  min count: %d",
		ctx.Height, tx.TxID.Hex(), tx.Proposal.Type(), category, record.ExpireHeight, record.ApprovalMinCount)

	return tx.WriteReceipts(ctx, receipts)
}
