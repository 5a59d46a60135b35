// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

// TxType - transaction kind
type TxType uint8

// transaction kinds handled by the state core
const (
	NullTx               TxType = 0
	BlockRewardTx        TxType = 1
	AccountRegisterTx    TxType = 2
	BcoinTransferTx      TxType = 3
	DelegateVoteTx       TxType = 6
	UcoinTransferTx      TxType = 11
	PriceFeedTx          TxType = 16
	PriceMedianTx        TxType = 17
	CdpStakeTx           TxType = 21
	CdpRedeemTx          TxType = 22
	CdpLiquidateTx       TxType = 23
	ProposalRequestTx    TxType = 30
	ProposalApprovalTx   TxType = 31
	DexLimitBuyOrderTx   TxType = 84
	DexLimitSellOrderTx  TxType = 85
	DexMarketBuyOrderTx  TxType = 86
	DexMarketSellOrderTx TxType = 87
	DexCancelOrderTx     TxType = 88
)

// TxTypeInfo - static properties of a transaction kind
type TxTypeInfo struct {
	Name      string
	WiccFee   uint64 // default minimum fee in sawi
	WusdFee   uint64
	Updatable bool // fee can be changed by proposal
}

var txTypes = map[TxType]TxTypeInfo{
	BlockRewardTx:        {"BLOCK_REWARD_TX", 0, 0, false},
	AccountRegisterTx:    {"ACCOUNT_REGISTER_TX", 10000, 10000, true},
	BcoinTransferTx:      {"BCOIN_TRANSFER_TX", 10000, 10000, true},
	DelegateVoteTx:       {"DELEGATE_VOTE_TX", 10000, 10000, true},
	UcoinTransferTx:      {"UCOIN_TRANSFER_TX", 10000, 10000, true},
	PriceFeedTx:          {"PRICE_FEED_TX", 10000, 10000, true},
	PriceMedianTx:        {"PRICE_MEDIAN_TX", 0, 0, false},
	CdpStakeTx:           {"CDP_STAKE_TX", 100000, 100000, true},
	CdpRedeemTx:          {"CDP_REDEEM_TX", 100000, 100000, true},
	CdpLiquidateTx:       {"CDP_LIQUIDATE_TX", 100000, 100000, true},
	ProposalRequestTx:    {"PROPOSAL_REQUEST_TX", 10000, 10000, true},
	ProposalApprovalTx:   {"PROPOSAL_APPROVAL_TX", 10000, 10000, true},
	DexLimitBuyOrderTx:   {"DEX_LIMIT_BUY_ORDER_TX", 10000, 10000, true},
	DexLimitSellOrderTx:  {"DEX_LIMIT_SELL_ORDER_TX", 10000, 10000, true},
	DexMarketBuyOrderTx:  {"DEX_MARKET_BUY_ORDER_TX", 10000, 10000, true},
	DexMarketSellOrderTx: {"DEX_MARKET_SELL_ORDER_TX", 10000, 10000, true},
	DexCancelOrderTx:     {"DEX_CANCEL_ORDER_TX", 10000, 10000, true},
}

// Info - properties of a known transaction kind
func (t TxType) Info() (TxTypeInfo, bool) {
	info, ok := txTypes[t]
	return info, ok
}

func (t TxType) String() string {
	if info, ok := txTypes[t]; ok {
		return info.Name
	}
	return "NULL_TX"
}

// DefaultFee - fee used until a proposal changes it
func (t TxType) DefaultFee(symbol string) (uint64, bool) {
	info, ok := txTypes[t]
	if !ok {
		return 0, false
	}
	switch symbol {
	case SymbolWICC:
		return info.WiccFee, true
	case SymbolWUSD:
		return info.WusdFee, true
	}
	return 0, false
}
