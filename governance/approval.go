// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/transaction"
)

// ApprovalTx - one approver's vote for a stored proposal
type ApprovalTx struct {
	transaction.BaseTx
	ProposalID common.Hash
}

// NewApprovalTx - approval with the proposal approval tx type
func NewApprovalTx(base transaction.BaseTx, proposalID common.Hash) *ApprovalTx {
	base.TxType = entities.ProposalApprovalTx
	return &ApprovalTx{
		BaseTx:     base,
		ProposalID: proposalID,
	}
}

// Check - fee and an approver account
func (tx *ApprovalTx) Check(ctx *transaction.Context) error {
	if (common.Hash{}) == tx.ProposalID {
		return ctx.State.DoS(100, fault.RejectInvalid, "proposal-id-empty",
			"approval carries no proposal id")
	}
	if err := tx.CheckFee(ctx); nil != err {
		return err
	}
	_, err := tx.TxAccount(ctx)
	return err
}

// Execute - record the approval, run the proposal on the approval
// that reaches the threshold
func (tx *ApprovalTx) Execute(ctx *transaction.Context) error {
	account, err := tx.TxAccount(ctx)
	if nil != err {
		return err
	}

	record, found := ctx.Cache.SysGovern.GetProposal(tx.ProposalID)
	if !found {
		return ctx.State.DoS(100, fault.ReadProposalFail, "proposal-not-found",
			"proposal: %s not found", tx.ProposalID.Hex())
	}

	if err := checkApprover(ctx, account, Category(record.Proposal)); nil != err {
		return err
	}

	approvals := ctx.Cache.SysGovern.GetApprovalCount(tx.ProposalID)
	if approvals >= int(record.ApprovalMinCount) {
		return ctx.State.DoS(100, fault.RejectInvalid, "proposal-executed",
			"proposal: %s already has %d of %d approvals", tx.ProposalID.Hex(), approvals, record.ApprovalMinCount)
	}
	if uint64(ctx.Height) > record.ExpireHeight {
		return ctx.State.DoS(100, fault.RejectInvalid, "proposal-expired",
			"proposal: %s expired at: %d", tx.ProposalID.Hex(), record.ExpireHeight)
	}
	if ctx.Cache.SysGovern.GetApprovalList(tx.ProposalID).Contains(account.RegID) {
		return ctx.State.DoS(100, fault.RejectDuplicate, "governor-approved-already",
			"approver: %s already approved proposal: %s", account.RegID, tx.ProposalID.Hex())
	}

	receipts, err := tx.DeductFee(ctx, account)
	if nil != err {
		return err
	}
	err = transaction.SaveAccount(ctx, account)
	if nil != err {
		return err
	}

	if !ctx.Cache.SysGovern.SetApproval(tx.ProposalID, account.RegID) {
		return ctx.State.DoS(100, fault.WriteGovernanceFail, "set-approval-failed",
			"approver: %s proposal: %s", account.RegID, tx.ProposalID.Hex())
	}
	approvals += 1

	getLog().Debugf("height: %d  proposal: %s  approver: %s  approvals: %d/%d",
		ctx.Height, tx.ProposalID.Hex(), account.RegID, approvals, record.ApprovalMinCount)

	if approvals == int(record.ApprovalMinCount) {
		if err := Check(ctx, &tx.BaseTx, record.Proposal); nil != err {
			return err
		}
		executed, err := Execute(ctx, &tx.BaseTx, record.Proposal)
		if nil != err {
			return err
		}
		receipts = append(receipts, executed...)

		getLog().Infof("height: %d  proposal: %s  type: %s  executed",
			ctx.Height, tx.ProposalID.Hex(), record.Proposal.Type())
	}

	return tx.WriteReceipts(ctx, receipts)
}

func checkApprover(ctx *transaction.Context, account *entities.Account, category entities.ApproverCategory) error {
	if !account.IsRegistered() {
		return ctx.State.DoS(100, fault.RejectInvalid, "approver-not-registered",
			"approver: %s has no regid", account.KeyID)
	}

	authorized := false
	switch category {
	case entities.ApprovedByDelegates:
		authorized = ctx.Cache.Delegate.IsActiveDelegate(account.RegID)
	default:
		authorized = ctx.Cache.SysGovern.CheckIsGovernor(account.RegID)
	}
	if !authorized {
		return ctx.State.DoS(100, fault.RejectInvalid, "approver-not-authorized",
			"approver: %s is not one of the %s", account.RegID, category)
	}
	return nil
}
