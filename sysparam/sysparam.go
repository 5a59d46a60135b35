// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sysparam

import (
	"fmt"
	"sort"
)

// COIN - sawi per coin
const COIN = 100000000

// SysParamType - global parameter
type SysParamType uint8

// system parameters
const (
	NullSysParam                       SysParamType = 0
	MedianPriceSlideWindowBlockCount   SysParamType = 1
	PriceFeedBcoinStakeAmountMin       SysParamType = 2
	PriceFeedContinuousDeviateTimesMax SysParamType = 3
	PriceFeedTimeoutBlocks             SysParamType = 6
	AssetIssueFee                      SysParamType = 19
	AssetUpdateFee                     SysParamType = 20
	DexOperatorRegisterFee             SysParamType = 21
	DexOperatorUpdateFee               SysParamType = 22
	ProposalExpireBlockCount           SysParamType = 23
	TransferScoinReserveFeeRatio       SysParamType = 25
	AssetRiskFeeRatio                  SysParamType = 26
	DexOperatorRiskFeeRatio            SysParamType = 27
	AxcSwapFeeRatio                    SysParamType = 28
	AxcSwapGatewayRegID                SysParamType = 29
	DexMatchSvcRegID                   SysParamType = 30
	VotingContractRegID                SysParamType = 31
	BpDelegateVoteMin                  SysParamType = 50
)

// Info - static description of a parameter
type Info struct {
	Name    string
	Default uint64
	Min     uint64
	Max     uint64
	IsRegID bool // value is a packed regid of an existing account
}

var sysParams = map[SysParamType]Info{
	MedianPriceSlideWindowBlockCount:   {"MEDIAN_PRICE_SLIDE_WINDOW_BLOCKCOUNT", 11, 1, 1000, false},
	PriceFeedBcoinStakeAmountMin:       {"PRICE_FEED_BCOIN_STAKE_AMOUNT_MIN", 210000, 0, 0, false},
	PriceFeedContinuousDeviateTimesMax: {"PRICE_FEED_CONTINUOUS_DEVIATE_TIMES_MAX", 10, 0, 0, false},
	PriceFeedTimeoutBlocks:             {"PRICE_FEED_TIMEOUT_BLOCKS", 1200, 0, 0, false},
	AssetIssueFee:                      {"ASSET_ISSUE_FEE", 550 * COIN, 0, 0, false},
	AssetUpdateFee:                     {"ASSET_UPDATE_FEE", 110 * COIN, 0, 0, false},
	DexOperatorRegisterFee:             {"DEX_OPERATOR_REGISTER_FEE", 1100 * COIN, 0, 0, false},
	DexOperatorUpdateFee:               {"DEX_OPERATOR_UPDATE_FEE", 110 * COIN, 0, 0, false},
	ProposalExpireBlockCount:           {"PROPOSAL_EXPIRE_BLOCK_COUNT", 1200, 0, 0, false},
	TransferScoinReserveFeeRatio:       {"TRANSFER_SCOIN_RESERVE_FEE_RATIO", 0, 0, 10000, false},
	AssetRiskFeeRatio:                  {"ASSET_RISK_FEE_RATIO", 4000, 0, 10000, false},
	DexOperatorRiskFeeRatio:            {"DEX_OPERATOR_RISK_FEE_RATIO", 4000, 0, 10000, false},
	AxcSwapFeeRatio:                    {"AXC_SWAP_FEE_RATIO", 20, 0, 1000, false},
	AxcSwapGatewayRegID:                {"AXC_SWAP_GATEWAY_REGID", 0, 0, 0, true},
	DexMatchSvcRegID:                   {"DEX_MATCH_SVC_REGID", 0, 0, 0, true},
	VotingContractRegID:                {"VOTING_CONTRACT_REGID", 0, 0, 0, true},
	BpDelegateVoteMin:                  {"BP_DELEGATE_VOTE_MIN", 21000, 0, 0, false},
}

var sysParamNames = make(map[string]SysParamType)

// CdpParamType - per coin pair parameter
type CdpParamType uint8

// cdp parameters
const (
	NullCdpParam                     CdpParamType = 0
	CdpScoinReserveFeeRatio          CdpParamType = 1
	CdpGlobalCollateralCeilingAmount CdpParamType = 2
	CdpGlobalCollateralRatioMin      CdpParamType = 3
	CdpStartCollateralRatio          CdpParamType = 4
	CdpStartLiquidateRatio           CdpParamType = 5
	CdpNonReturnLiquidateRatio       CdpParamType = 6
	CdpForceLiquidateRatio           CdpParamType = 7
	CdpLiquidateDiscountRatio        CdpParamType = 8
	CdpBcoinsToStakeAmountMinInScoin CdpParamType = 9
	CdpInterestParamA                CdpParamType = 10
	CdpInterestParamB                CdpParamType = 11
	CdpSysOrderPenaltyFeeMin         CdpParamType = 12
)

var cdpParams = map[CdpParamType]Info{
	CdpScoinReserveFeeRatio:          {"CDP_SCOIN_RESERVE_FEE_RATIO", 0, 0, 10000, false},
	CdpGlobalCollateralCeilingAmount: {"CDP_GLOBAL_COLLATERAL_CEILING_AMOUNT", 52500000, 0, 0, false},
	CdpGlobalCollateralRatioMin:      {"CDP_GLOBAL_COLLATERAL_RATIO_MIN", 8000, 0, 0, false},
	CdpStartCollateralRatio:          {"CDP_START_COLLATERAL_RATIO", 19000, 10000, 100000, false},
	CdpStartLiquidateRatio:           {"CDP_START_LIQUIDATE_RATIO", 15000, 10000, 100000, false},
	CdpNonReturnLiquidateRatio:       {"CDP_NONRETURN_LIQUIDATE_RATIO", 11300, 10000, 100000, false},
	CdpForceLiquidateRatio:           {"CDP_FORCE_LIQUIDATE_RATIO", 10400, 10000, 100000, false},
	CdpLiquidateDiscountRatio:        {"CDP_LIQUIDATE_DISCOUNT_RATIO", 9700, 1, 10000, false},
	CdpBcoinsToStakeAmountMinInScoin: {"CDP_BCOINSTOSTAKE_AMOUNT_MIN_IN_SCOIN", 90000000, 0, 0, false},
	CdpInterestParamA:                {"CDP_INTEREST_PARAM_A", 2, 0, 0, false},
	CdpInterestParamB:                {"CDP_INTEREST_PARAM_B", 1, 0, 0, false},
	CdpSysOrderPenaltyFeeMin:         {"CDP_SYSORDER_PENALTY_FEE_MIN", 10, 0, 0, false},
}

var cdpParamNames = make(map[string]CdpParamType)

func init() {
	for t, info := range sysParams {
		sysParamNames[info.Name] = t
	}
	for t, info := range cdpParams {
		cdpParamNames[info.Name] = t
	}
}

// Info - description of a known parameter
func (t SysParamType) Info() (Info, bool) {
	info, ok := sysParams[t]
	return info, ok
}

// Default - value used while no proposal has set one
func (t SysParamType) Default() uint64 {
	return sysParams[t].Default
}

func (t SysParamType) String() string {
	if info, ok := sysParams[t]; ok {
		return info.Name
	}
	return fmt.Sprintf("SYS_PARAM_%d", uint8(t))
}

// CheckValue - empty string when acceptable, otherwise the reason
func (t SysParamType) CheckValue(value uint64) string {
	info, ok := sysParams[t]
	if !ok {
		return fmt.Sprintf("unknown param type: %d", t)
	}
	return checkRange(info, value)
}

// Info - description of a known parameter
func (t CdpParamType) Info() (Info, bool) {
	info, ok := cdpParams[t]
	return info, ok
}

// Default - value used while no proposal has set one
func (t CdpParamType) Default() uint64 {
	return cdpParams[t].Default
}

func (t CdpParamType) String() string {
	if info, ok := cdpParams[t]; ok {
		return info.Name
	}
	return fmt.Sprintf("CDP_PARAM_%d", uint8(t))
}

// CheckValue - empty string when acceptable, otherwise the reason
func (t CdpParamType) CheckValue(value uint64) string {
	info, ok := cdpParams[t]
	if !ok {
		return fmt.Sprintf("unknown cdp param type: %d", t)
	}
	return checkRange(info, value)
}

// IsInterestParam - changes are kept in the interest history
func (t CdpParamType) IsInterestParam() bool {
	return CdpInterestParamA == t || CdpInterestParamB == t
}

// IsLiquidateRatioParam - must keep the ratio ordering intact
func (t CdpParamType) IsLiquidateRatioParam() bool {
	switch t {
	case CdpStartCollateralRatio, CdpStartLiquidateRatio, CdpForceLiquidateRatio, CdpLiquidateDiscountRatio:
		return true
	}
	return false
}

func checkRange(info Info, value uint64) string {
	if 0 == info.Min && 0 == info.Max {
		return ""
	}
	if value < info.Min || value > info.Max {
		return fmt.Sprintf("%s range is [%d, %d] but value is %d", info.Name, info.Min, info.Max, value)
	}
	return ""
}

// ParamByName - system parameter from its upper case name
func ParamByName(name string) (SysParamType, bool) {
	t, ok := sysParamNames[name]
	return t, ok
}

// CdpParamByName - cdp parameter from its upper case name
func CdpParamByName(name string) (CdpParamType, bool) {
	t, ok := cdpParamNames[name]
	return t, ok
}

// SysParams - all system parameters in type order
func SysParams() []SysParamType {
	list := make([]SysParamType, 0, len(sysParams))
	for t := range sysParams {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// CdpParams - all cdp parameters in type order
func CdpParams() []CdpParamType {
	list := make([]CdpParamType, 0, len(cdpParams))
	for t := range cdpParams {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}
