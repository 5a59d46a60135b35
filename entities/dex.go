// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

import (
	"github.com/ethereum/go-ethereum/common"
)

// OrderSide - buy or sell
type OrderSide uint8

// order sides
const (
	OrderBuy  OrderSide = 1
	OrderSell OrderSide = 2
)

// OrderType - limit or market
type OrderType uint8

// order types
const (
	OrderLimitPrice  OrderType = 1
	OrderMarketPrice OrderType = 2
)

// OrderGenerateType - who created an order
type OrderGenerateType uint8

// order origins
const (
	UserGenOrder   OrderGenerateType = 1
	SystemGenOrder OrderGenerateType = 2
)

// DexOrder - an active order
type DexOrder struct {
	GenerateType         OrderGenerateType
	OrderType            OrderType
	OrderSide            OrderSide
	CoinSymbol           string
	AssetSymbol          string
	CoinAmount           uint64
	AssetAmount          uint64
	Price                uint64
	Height               uint32
	TxIndex              uint32
	UserRegID            RegID
	TotalDealCoinAmount  uint64
	TotalDealAssetAmount uint64
}

// IsEmpty - absent order
func (o DexOrder) IsEmpty() bool {
	return 0 == o.GenerateType
}

// NewSysBuyMarketOrder - system order spending coins on an asset
//
// used to burn interest and penalty by buying the fund coin
func NewSysBuyMarketOrder(coinSymbol string, assetSymbol string, coinAmount uint64, height uint32, txIndex uint32) *DexOrder {
	return &DexOrder{
		GenerateType: SystemGenOrder,
		OrderType:    OrderMarketPrice,
		OrderSide:    OrderBuy,
		CoinSymbol:   coinSymbol,
		AssetSymbol:  assetSymbol,
		CoinAmount:   coinAmount,
		Height:       height,
		TxIndex:      txIndex,
	}
}

// NewSysSellMarketOrder - system order selling an asset for coins
func NewSysSellMarketOrder(coinSymbol string, assetSymbol string, assetAmount uint64, height uint32, txIndex uint32) *DexOrder {
	return &DexOrder{
		GenerateType: SystemGenOrder,
		OrderType:    OrderMarketPrice,
		OrderSide:    OrderSell,
		CoinSymbol:   coinSymbol,
		AssetSymbol:  assetSymbol,
		AssetAmount:  assetAmount,
		Height:       height,
		TxIndex:      txIndex,
	}
}

// FrozenRemainder - symbol and amount still frozen by the order
func (o DexOrder) FrozenRemainder() (string, uint64, bool) {
	switch o.OrderSide {
	case OrderBuy:
		return o.CoinSymbol, o.CoinAmount - o.TotalDealCoinAmount, true
	case OrderSell:
		return o.AssetSymbol, o.AssetAmount - o.TotalDealAssetAmount, true
	}
	return "", 0, false
}

// DexOperator - registered exchange operator
type DexOperator struct {
	OwnerRegID  RegID
	FeeReceiver RegID
	Name        string
	PortalURL   string
	MakerFee    uint64
	TakerFee    uint64
	Memo        string
	Activated   bool
}

// IsEmpty - absent operator
func (d DexOperator) IsEmpty() bool {
	return d.OwnerRegID.IsEmpty()
}

// DexOrderID - identifier of an order, the creating txid for user orders
type DexOrderID = common.Hash
