// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

// ReceiptCode - reason for a recorded coin movement
type ReceiptCode uint16

// receipt codes
const (
	ReceiptTransferFeeToReserve ReceiptCode = 201
	ReceiptTransferActualCoins  ReceiptCode = 202
	ReceiptTransferProposal     ReceiptCode = 203

	ReceiptCdpStakedAssetFromOwner     ReceiptCode = 401
	ReceiptCdpMintedScoinToOwner       ReceiptCode = 402
	ReceiptCdpInterestBuyDeflateFcoins ReceiptCode = 403

	ReceiptCdpRepaidScoinFromOwner ReceiptCode = 420
	ReceiptCdpRedeemedAssetToOwner ReceiptCode = 421

	ReceiptCdpScoinFromLiquidator     ReceiptCode = 440
	ReceiptCdpAssetToLiquidator       ReceiptCode = 441
	ReceiptCdpLiquidatedAssetToOwner  ReceiptCode = 442
	ReceiptCdpLiquidatedCloseoutScoin ReceiptCode = 443
	ReceiptCdpPenaltyToReserve        ReceiptCode = 444
	ReceiptCdpPenaltyBuyDeflateFcoins ReceiptCode = 445

	ReceiptDexUnfreezeCoinToBuyer   ReceiptCode = 505
	ReceiptDexUnfreezeAssetToSeller ReceiptCode = 506

	ReceiptProposalFee ReceiptCode = 801
)

var receiptNames = map[ReceiptCode]string{
	ReceiptTransferFeeToReserve:        "transferred fee to risk reserve",
	ReceiptTransferActualCoins:         "actual transferred coins",
	ReceiptTransferProposal:            "coins transferred by proposal",
	ReceiptCdpStakedAssetFromOwner:     "staked assets from cdp owner",
	ReceiptCdpMintedScoinToOwner:       "minted scoins to cdp owner",
	ReceiptCdpInterestBuyDeflateFcoins: "cdp interest scoins to buy fcoins for deflating",
	ReceiptCdpRepaidScoinFromOwner:     "actual repaid scoins from cdp owner",
	ReceiptCdpRedeemedAssetToOwner:     "redeemed assets to cdp owner",
	ReceiptCdpScoinFromLiquidator:      "cdp scoins from liquidator",
	ReceiptCdpAssetToLiquidator:        "cdp assets to liquidator",
	ReceiptCdpLiquidatedAssetToOwner:   "cdp liquidated assets to owner",
	ReceiptCdpLiquidatedCloseoutScoin:  "cdp liquidated closeout scoins",
	ReceiptCdpPenaltyToReserve:         "cdp half penalty scoins to risk reserve directly",
	ReceiptCdpPenaltyBuyDeflateFcoins:  "cdp half penalty scoins to buy fcoins for deflating",
	ReceiptDexUnfreezeCoinToBuyer:      "dex unfreeze coins to buyer for canceling order",
	ReceiptDexUnfreezeAssetToSeller:    "dex unfreeze asset to seller for canceling order",
	ReceiptProposalFee:                 "proposal fee",
}

func (c ReceiptCode) String() string {
	if s, ok := receiptNames[c]; ok {
		return s
	}
	return "unknown"
}

// Receipt - one coin movement made by a transaction
type Receipt struct {
	From   UserID
	To     UserID
	Symbol string
	Amount uint64
	Code   ReceiptCode
}

// Receipts - all movements of one transaction
type Receipts []Receipt

// IsEmpty - no movements
func (r Receipts) IsEmpty() bool {
	return 0 == len(r)
}

// ExecuteFail - record of a transaction that failed inside a block
type ExecuteFail struct {
	Code    uint8
	Reason  string
	Message string
}

// IsEmpty - absent record
func (e ExecuteFail) IsEmpty() bool {
	return 0 == e.Code && "" == e.Reason
}
