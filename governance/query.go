// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
)

// Status - a stored proposal with its approvals
type Status struct {
	ID               common.Hash       `json:"proposal_id"`
	Type             string            `json:"proposal_type"`
	Approvers        string            `json:"approvers"`
	ExpireHeight     uint64            `json:"expire_height"`
	ApprovalMinCount uint8             `json:"approval_min_count"`
	Approvals        []string          `json:"approvals"`
	Executed         bool              `json:"executed"`
	Proposal         entities.Proposal `json:"proposal"`
}

// GetProposal - the current status of a proposal
func GetProposal(cw *cachewrapper.CacheWrapper, id common.Hash) (*Status, error) {
	record, found := cw.SysGovern.GetProposal(id)
	if !found {
		return nil, fault.ErrProposalNotFound
	}
	return status(cw, id, record), nil
}

// ListProposals - status of stored proposals in id order
func ListProposals(cw *cachewrapper.CacheWrapper, max int) ([]*Status, bool) {
	elements, more := cw.SysGovern.ListProposals(max)
	list := make([]*Status, 0, len(elements))
	for _, e := range elements {
		list = append(list, status(cw, e.Key, e.Value))
	}
	return list, more
}

func status(cw *cachewrapper.CacheWrapper, id common.Hash, record entities.ProposalRecord) *Status {
	approvals := cw.SysGovern.GetApprovalList(id)
	s := &Status{
		ID:               id,
		Type:             record.Proposal.Type().String(),
		Approvers:        Category(record.Proposal).String(),
		ExpireHeight:     record.ExpireHeight,
		ApprovalMinCount: record.ApprovalMinCount,
		Approvals:        make([]string, 0, len(approvals)),
		Executed:         len(approvals) >= int(record.ApprovalMinCount),
		Proposal:         record.Proposal,
	}
	for _, r := range approvals {
		s.Approvals = append(s.Approvals, r.String())
	}
	return s
}
