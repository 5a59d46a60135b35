// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/sysparam"
)

// ProposalType - governance proposal kind, the stored type tag
type ProposalType uint8

// proposal kinds
const (
	NullProposal           ProposalType = 0
	ParamGovernProposal    ProposalType = 1
	GovernorUpdateProposal ProposalType = 2
	CoinTransferProposal   ProposalType = 3
	BpCountProposal        ProposalType = 4
	MinerFeeProposal       ProposalType = 5
	CdpParamGovernProposal ProposalType = 6
	DexOperatorProposal    ProposalType = 7
	AccountPermProposal    ProposalType = 8
	CancelOrderProposal    ProposalType = 9
)

// ProposalTypes - every known kind in tag order
var ProposalTypes = []ProposalType{
	ParamGovernProposal,
	GovernorUpdateProposal,
	CoinTransferProposal,
	BpCountProposal,
	MinerFeeProposal,
	CdpParamGovernProposal,
	DexOperatorProposal,
	AccountPermProposal,
	CancelOrderProposal,
}

var proposalNames = map[ProposalType]string{
	ParamGovernProposal:    "PARAM_GOVERN",
	GovernorUpdateProposal: "GOVERNOR_UPDATE",
	CoinTransferProposal:   "COIN_TRANSFER",
	BpCountProposal:        "BP_COUNT_UPDATE",
	MinerFeeProposal:       "MINER_FEE_UPDATE",
	CdpParamGovernProposal: "CDP_PARAM_GOVERN",
	DexOperatorProposal:    "DEX_OPERATOR_UPDATE",
	AccountPermProposal:    "ACCOUNT_PERM_UPDATE",
	CancelOrderProposal:    "CANCEL_ORDER",
}

func (t ProposalType) String() string {
	if s, ok := proposalNames[t]; ok {
		return s
	}
	return "NULL_PROPOSAL"
}

// ApproverCategory - which pool approves a proposal
type ApproverCategory uint8

// approver pools
const (
	ApprovedByGovernors ApproverCategory = iota
	ApprovedByDelegates
)

func (c ApproverCategory) String() string {
	if ApprovedByDelegates == c {
		return "delegates"
	}
	return "governors"
}

// ProposalOperateType - enable or disable
type ProposalOperateType uint8

// operations
const (
	ProposalOpNull    ProposalOperateType = 0
	ProposalOpEnable  ProposalOperateType = 1
	ProposalOpDisable ProposalOperateType = 2
)

// Proposal - closed set of governance proposal variants
type Proposal interface {
	Type() ProposalType
	isProposal()
}

// SysParamSetting - one parameter change
type SysParamSetting struct {
	Type  sysparam.SysParamType
	Value uint64
}

// ParamGovern - change system parameters
type ParamGovern struct {
	Params []SysParamSetting
}

// GovernorUpdate - add or remove a governor
type GovernorUpdate struct {
	RegID RegID
	Op    ProposalOperateType
}

// CoinTransfer - move coins between accounts
type CoinTransfer struct {
	Token  string
	Amount uint64
	From   UserID
	To     UserID
}

// BpCount - change the number of block producers from a height
type BpCount struct {
	TotalBpsSize    uint8
	EffectiveHeight uint64
}

// MinerFee - change the minimum fee of a transaction type
type MinerFee struct {
	TxType    TxType
	FeeSymbol string
	Amount    uint64
}

// CdpParamSetting - one cdp parameter change
type CdpParamSetting struct {
	Type  sysparam.CdpParamType
	Value uint64
}

// CdpParamGovern - change cdp parameters of a coin pair
type CdpParamGovern struct {
	Pair   CoinPair
	Params []CdpParamSetting
}

// DexOperatorUpdate - activate or deactivate a dex operator
type DexOperatorUpdate struct {
	DexID uint32
	Op    ProposalOperateType
}

// AccountPerm - replace the permissions of an account
type AccountPerm struct {
	Account  UserID
	PermsSum uint64
}

// CancelOrder - cancel an active dex order
type CancelOrder struct {
	OrderID common.Hash
}

func (*ParamGovern) Type() ProposalType       { return ParamGovernProposal }
func (*GovernorUpdate) Type() ProposalType    { return GovernorUpdateProposal }
func (*CoinTransfer) Type() ProposalType      { return CoinTransferProposal }
func (*BpCount) Type() ProposalType           { return BpCountProposal }
func (*MinerFee) Type() ProposalType          { return MinerFeeProposal }
func (*CdpParamGovern) Type() ProposalType    { return CdpParamGovernProposal }
func (*DexOperatorUpdate) Type() ProposalType { return DexOperatorProposal }
func (*AccountPerm) Type() ProposalType       { return AccountPermProposal }
func (*CancelOrder) Type() ProposalType       { return CancelOrderProposal }

func (*ParamGovern) isProposal()       {}
func (*GovernorUpdate) isProposal()    {}
func (*CoinTransfer) isProposal()      {}
func (*BpCount) isProposal()           {}
func (*MinerFee) isProposal()          {}
func (*CdpParamGovern) isProposal()    {}
func (*DexOperatorUpdate) isProposal() {}
func (*AccountPerm) isProposal()       {}
func (*CancelOrder) isProposal()       {}

// NewProposal - zero value of a variant, for decoding
func NewProposal(t ProposalType) (Proposal, error) {
	switch t {
	case ParamGovernProposal:
		return &ParamGovern{}, nil
	case GovernorUpdateProposal:
		return &GovernorUpdate{}, nil
	case CoinTransferProposal:
		return &CoinTransfer{}, nil
	case BpCountProposal:
		return &BpCount{}, nil
	case MinerFeeProposal:
		return &MinerFee{}, nil
	case CdpParamGovernProposal:
		return &CdpParamGovern{}, nil
	case DexOperatorProposal:
		return &DexOperatorUpdate{}, nil
	case AccountPermProposal:
		return &AccountPerm{}, nil
	case CancelOrderProposal:
		return &CancelOrder{}, nil
	}
	return nil, fault.ErrInvalidProposalType
}

// ProposalRecord - stored proposal with its approval terms
type ProposalRecord struct {
	Proposal         Proposal
	ExpireHeight     uint64
	ApprovalMinCount uint8
}

// stored form: the variant body is tagged by its type
type proposalEnvelope struct {
	Type             ProposalType
	ExpireHeight     uint64
	ApprovalMinCount uint8
	Body             []byte
}

// IsEmpty - absent record
func (r ProposalRecord) IsEmpty() bool {
	return nil == r.Proposal
}

// EncodeRLP - implement rlp.Encoder
func (r ProposalRecord) EncodeRLP(w io.Writer) error {
	if nil == r.Proposal {
		return rlp.Encode(w, proposalEnvelope{})
	}
	body, err := rlp.EncodeToBytes(r.Proposal)
	if nil != err {
		return err
	}
	return rlp.Encode(w, proposalEnvelope{
		Type:             r.Proposal.Type(),
		ExpireHeight:     r.ExpireHeight,
		ApprovalMinCount: r.ApprovalMinCount,
		Body:             body,
	})
}

// DecodeRLP - implement rlp.Decoder
func (r *ProposalRecord) DecodeRLP(s *rlp.Stream) error {
	var e proposalEnvelope
	err := s.Decode(&e)
	if nil != err {
		return err
	}
	if NullProposal == e.Type {
		*r = ProposalRecord{}
		return nil
	}

	p, err := NewProposal(e.Type)
	if nil != err {
		return err
	}
	err = rlp.DecodeBytes(e.Body, p)
	if nil != err {
		return fmt.Errorf("proposal type: %s  body: %w", e.Type, err)
	}

	*r = ProposalRecord{
		Proposal:         p,
		ExpireHeight:     e.ExpireHeight,
		ApprovalMinCount: e.ApprovalMinCount,
	}
	return nil
}
