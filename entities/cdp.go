// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/waykichain/wiccd/codec"
)

// fixed point scales
const (
	RatioBoost = 10000
	PriceBoost = 100000000
)

// CoinPair - collateral (bcoin) and debt (scoin) symbols
type CoinPair struct {
	Bcoin string
	Scoin string
}

func (p CoinPair) String() string {
	return p.Bcoin + ":" + p.Scoin
}

// IsEmpty - either symbol missing
func (p CoinPair) IsEmpty() bool {
	return "" == p.Bcoin || "" == p.Scoin
}

// Append - append the key encoding to a tuple
func (p CoinPair) Append(b *codec.Builder) *codec.Builder {
	return b.String(p.Bcoin).String(p.Scoin)
}

// ReadCoinPair - read a pair from a tuple
func ReadCoinPair(r *codec.Reader) CoinPair {
	return CoinPair{
		Bcoin: r.String(),
		Scoin: r.String(),
	}
}

// CoinPairKey - key codec for pair keyed records
var CoinPairKey = codec.KeyFuncs[CoinPair]{
	Encode: func(p CoinPair) []byte {
		return p.Append(codec.NewBuilder()).Bytes()
	},
	Decode: func(buffer []byte) (CoinPair, error) {
		r := codec.NewReader(buffer)
		p := ReadCoinPair(r)
		return p, r.Done()
	},
	IsEmpty: CoinPair.IsEmpty,
}

// CDP - collateral locked against minted debt for one owner and pair
type CDP struct {
	ID                common.Hash // creating transaction
	Owner             RegID
	BcoinSymbol       string
	ScoinSymbol       string
	BlockHeight       uint32 // last interest settlement
	TotalStakedBcoins uint64
	TotalOwedScoins   uint64
}

// IsEmpty - absent cdp
func (c CDP) IsEmpty() bool {
	return common.Hash{} == c.ID
}

// Pair - the coin pair
func (c CDP) Pair() CoinPair {
	return CoinPair{Bcoin: c.BcoinSymbol, Scoin: c.ScoinSymbol}
}

// CollateralRatio - staked value over owed, boosted by RatioBoost
//
// nothing owed gives MaxUint64
func (c CDP) CollateralRatio(price uint64) uint64 {
	return CollateralRatio(c.TotalStakedBcoins, c.TotalOwedScoins, price)
}

// RatioBase - price independent sort key, staked·RatioBoost/owed
func (c CDP) RatioBase() uint64 {
	if 0 == c.TotalOwedScoins {
		return math.MaxUint64
	}
	r := new(uint256.Int).Mul(uint256.NewInt(c.TotalStakedBcoins), uint256.NewInt(RatioBoost))
	r.Div(r, uint256.NewInt(c.TotalOwedScoins))
	if !r.IsUint64() {
		return math.MaxUint64
	}
	return r.Uint64()
}

// AddStake - more collateral and debt, settles at height
func (c *CDP) AddStake(height uint32, bcoins uint64, scoins uint64) {
	c.BlockHeight = height
	c.TotalStakedBcoins += bcoins
	c.TotalOwedScoins += scoins
}

// Redeem - release collateral against repaid debt
func (c *CDP) Redeem(height uint32, bcoins uint64, scoins uint64) {
	c.BlockHeight = height
	c.TotalStakedBcoins -= bcoins
	c.TotalOwedScoins -= scoins
}

// LiquidatePartial - remove liquidated collateral and debt
//
// interest is not settled by liquidation so the height is kept
func (c *CDP) LiquidatePartial(bcoins uint64, scoins uint64) {
	c.TotalStakedBcoins -= bcoins
	c.TotalOwedScoins -= scoins
}

// IsFinished - nothing staked and nothing owed
func (c CDP) IsFinished() bool {
	return 0 == c.TotalStakedBcoins && 0 == c.TotalOwedScoins
}

func (c CDP) String() string {
	return fmt.Sprintf("cdp: %s owner: %s pair: %s height: %d staked: %d owed: %d",
		c.ID.Hex(), c.Owner, c.Pair(), c.BlockHeight, c.TotalStakedBcoins, c.TotalOwedScoins)
}

// CollateralRatio - staked·price·RatioBoost / (owed·PriceBoost)
func CollateralRatio(staked uint64, owed uint64, price uint64) uint64 {
	if 0 == owed {
		return math.MaxUint64
	}
	n := new(uint256.Int).Mul(uint256.NewInt(staked), uint256.NewInt(price))
	n.Mul(n, uint256.NewInt(RatioBoost))
	d := new(uint256.Int).Mul(uint256.NewInt(owed), uint256.NewInt(PriceBoost))
	n.Div(n, d)
	if !n.IsUint64() {
		return math.MaxUint64
	}
	return n.Uint64()
}

// CdpGlobalData - totals over all live cdps of a pair
type CdpGlobalData struct {
	TotalStakedAssets uint64
	TotalOwedScoins   uint64
}

// IsEmpty - no live cdp
func (g CdpGlobalData) IsEmpty() bool {
	return 0 == g.TotalStakedAssets && 0 == g.TotalOwedScoins
}

// CollateralRatio - global ratio at a price
func (g CdpGlobalData) CollateralRatio(price uint64) uint64 {
	return CollateralRatio(g.TotalStakedAssets, g.TotalOwedScoins, price)
}
