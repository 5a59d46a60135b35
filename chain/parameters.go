// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
)

// Parameters - consensus constants of one network
//
// selected once at startup and passed explicitly to everything that
// needs them
type Parameters struct {
	Name string

	// leading byte of base58check account addresses
	AddressPrefix byte

	// governor list used until the first governor update
	GovernorBootstrap entities.RegIDList

	// account that receives fees and cdp penalties
	RiskReserveRegID entities.RegID

	// minimum gap between a bp count proposal and its effective height
	BpCountEffectiveBlocks uint64

	// bp count used until a proposal changes it
	InitialTotalBpsSize uint8

	// interest day length
	DayBlocks uint64

	// smallest transferable amount
	DustAmountThreshold uint64

	// blocks before a new regid may act as a governor
	RegIDMaturity uint32

	// operator 0, never stored
	DexMainOperator entities.DexOperator

	// symbols that can pay transaction fees
	FeeSymbols []string

	// cross chain pairs that exist without a proposal
	AxcSwapPairs []entities.AxcSwapPair
}

// IsFeeSymbol - symbol can pay transaction fees
func (p *Parameters) IsFeeSymbol(symbol string) bool {
	for _, s := range p.FeeSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}

var (
	governorBootstrap = entities.RegIDList{{Height: 4109388, Index: 2}}
	riskReserve       = entities.RegID{Height: 0, Index: 1}
	feeSymbols        = []string{entities.SymbolWICC, entities.SymbolWUSD}

	mainOperator = entities.DexOperator{
		OwnerRegID:  entities.RegID{Height: 0, Index: 1},
		FeeReceiver: entities.RegID{Height: 0, Index: 1},
		Name:        "wayki-dex",
		PortalURL:   "https://dex.waykichain.com",
		MakerFee:    40000,
		TakerFee:    40000,
		Memo:        "main operator",
		Activated:   true,
	}

	axcPairs = []entities.AxcSwapPair{
		{PeerSymbol: "BTC", SelfSymbol: "mBTC", PeerChain: "BITCOIN"},
		{PeerSymbol: "ETH", SelfSymbol: "mETH", PeerChain: "ETHEREUM"},
		{PeerSymbol: "USDT", SelfSymbol: "mUSDT", PeerChain: "ETHEREUM"},
	}
)

var networks = map[string]Parameters{
	Main: {
		Name:                   Main,
		AddressPrefix:          73,
		GovernorBootstrap:      governorBootstrap,
		RiskReserveRegID:       riskReserve,
		BpCountEffectiveBlocks: 3600,
		InitialTotalBpsSize:    11,
		DayBlocks:              8640,
		DustAmountThreshold:    10000,
		RegIDMaturity:          100,
		DexMainOperator:        mainOperator,
		FeeSymbols:             feeSymbols,
		AxcSwapPairs:           axcPairs,
	},
	Test: {
		Name:                   Test,
		AddressPrefix:          135,
		GovernorBootstrap:      governorBootstrap,
		RiskReserveRegID:       riskReserve,
		BpCountEffectiveBlocks: 3600,
		InitialTotalBpsSize:    11,
		DayBlocks:              8640,
		DustAmountThreshold:    10000,
		RegIDMaturity:          100,
		DexMainOperator:        mainOperator,
		FeeSymbols:             feeSymbols,
		AxcSwapPairs:           axcPairs,
	},
	Regtest: {
		Name:                   Regtest,
		AddressPrefix:          111,
		GovernorBootstrap:      governorBootstrap,
		RiskReserveRegID:       riskReserve,
		BpCountEffectiveBlocks: 50,
		InitialTotalBpsSize:    11,
		DayBlocks:              8640,
		DustAmountThreshold:    10000,
		RegIDMaturity:          100,
		DexMainOperator:        mainOperator,
		FeeSymbols:             feeSymbols,
		AxcSwapPairs:           axcPairs,
	},
}

// Get - parameters of a named chain
//
// returns a copy so callers may adjust it, tests in particular
func Get(name string) (*Parameters, error) {
	p, ok := networks[name]
	if !ok {
		return nil, fault.ErrInvalidChain
	}
	p.GovernorBootstrap = append(entities.RegIDList{}, p.GovernorBootstrap...)
	p.FeeSymbols = append([]string{}, p.FeeSymbols...)
	p.AxcSwapPairs = append([]entities.AxcSwapPair{}, p.AxcSwapPairs...)
	return &p, nil
}
