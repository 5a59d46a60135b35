// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/storage"
)

// SysGovernCache - governors, proposals and their approvals
type SysGovernCache struct {
	governors *kvcache.Simple[entities.RegIDList]
	proposals *kvcache.Composite[common.Hash, entities.ProposalRecord]
	approvals *kvcache.Composite[common.Hash, entities.RegIDList]
	bootstrap entities.RegIDList
	all       parts
}

// NewSysGovernCache - root cache over the governance partition
//
// bootstrap is the governor list until one is stored
func NewSysGovernCache(store storage.Access, bootstrap entities.RegIDList, reg *kvcache.UndoRegistry) *SysGovernCache {
	c := &SysGovernCache{
		governors: kvcache.NewSimple[entities.RegIDList](store, storage.PrefixGovernors, codec.RLP[entities.RegIDList]{}, reg),
		proposals: kvcache.NewComposite[common.Hash, entities.ProposalRecord](store, storage.PrefixProposal, codec.HashKey{}, codec.RLP[entities.ProposalRecord]{}, reg),
		approvals: kvcache.NewComposite[common.Hash, entities.RegIDList](store, storage.PrefixApprovals, codec.HashKey{}, codec.RLP[entities.RegIDList]{}, reg),
		bootstrap: append(entities.RegIDList{}, bootstrap...),
	}
	c.all = parts{c.governors, c.proposals, c.approvals}
	return c
}

// NewChild - cache layered over this one
func (c *SysGovernCache) NewChild(reg *kvcache.UndoRegistry) *SysGovernCache {
	n := &SysGovernCache{
		governors: kvcache.NewSimpleChild(c.governors, reg),
		proposals: kvcache.NewCompositeChild(c.proposals, reg),
		approvals: kvcache.NewCompositeChild(c.approvals, reg),
		bootstrap: c.bootstrap,
	}
	n.all = parts{n.governors, n.proposals, n.approvals}
	return n
}

// SetBaseView - rebind an empty child
func (c *SysGovernCache) SetBaseView(parent *SysGovernCache) {
	c.governors.SetBase(parent.governors)
	c.proposals.SetBase(parent.proposals)
	c.approvals.SetBase(parent.approvals)
	c.bootstrap = parent.bootstrap
}

func (c *SysGovernCache) Flush()                          { c.all.flush() }
func (c *SysGovernCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *SysGovernCache) Size() int                       { return c.all.size() }

// GetGovernors - stored governors or the bootstrap list
func (c *SysGovernCache) GetGovernors() entities.RegIDList {
	if g, found := c.governors.GetData(); found {
		return append(entities.RegIDList{}, g...)
	}
	return append(entities.RegIDList{}, c.bootstrap...)
}

// CheckIsGovernor - regid is a governor
func (c *SysGovernCache) CheckIsGovernor(regID entities.RegID) bool {
	return c.GetGovernors().Contains(regID)
}

// AddGovernor - add to the governor list
func (c *SysGovernCache) AddGovernor(regID entities.RegID) bool {
	if regID.IsEmpty() {
		return false
	}
	return c.governors.SetData(c.GetGovernors().Add(regID))
}

// EraseGovernor - remove from the governor list
//
// the last governor cannot be removed
func (c *SysGovernCache) EraseGovernor(regID entities.RegID) bool {
	g := c.GetGovernors()
	if !g.Contains(regID) {
		return true
	}
	n := g.Remove(regID)
	if n.IsEmpty() {
		return false
	}
	return c.governors.SetData(n)
}

// GetProposal - proposal by creating txid
func (c *SysGovernCache) GetProposal(id common.Hash) (entities.ProposalRecord, bool) {
	return c.proposals.GetData(id)
}

// SetProposal - store a proposal under its creating txid
func (c *SysGovernCache) SetProposal(id common.Hash, record entities.ProposalRecord) bool {
	return c.proposals.SetData(id, record)
}

// ListProposals - proposals in id order
func (c *SysGovernCache) ListProposals(max int) ([]kvcache.Element[common.Hash, entities.ProposalRecord], bool) {
	return c.proposals.GetAllElements(nil, max)
}

// GetApprovalList - approvers in approval order
func (c *SysGovernCache) GetApprovalList(id common.Hash) entities.RegIDList {
	l, _ := c.approvals.GetData(id)
	return append(entities.RegIDList{}, l...)
}

// GetApprovalCount - number of approvers
func (c *SysGovernCache) GetApprovalCount(id common.Hash) int {
	l, _ := c.approvals.GetData(id)
	return len(l)
}

// SetApproval - append an approver, false if already approved
func (c *SysGovernCache) SetApproval(id common.Hash, regID entities.RegID) bool {
	l := c.GetApprovalList(id)
	if l.Contains(regID) {
		return false
	}
	return c.approvals.SetData(id, l.Add(regID))
}

// GetGovernorApprovalMinCount - approvals needed by a category
//
// two thirds of the pool rounded up, at least one
func (c *SysGovernCache) GetGovernorApprovalMinCount(category entities.ApproverCategory, activeDelegates int) uint8 {
	n := len(c.GetGovernors())
	if entities.ApprovedByDelegates == category {
		n = activeDelegates
	}
	return ApprovalThreshold(n)
}

// ApprovalThreshold - ceil(2n/3), at least one
func ApprovalThreshold(n int) uint8 {
	t := (2*n + 2) / 3
	if t < 1 {
		t = 1
	}
	if t > 255 {
		t = 255
	}
	return uint8(t)
}
