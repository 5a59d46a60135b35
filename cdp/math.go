// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cdp

import (
	"github.com/holiman/uint256"

	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/sysparam"
)

const (
	// 10^18, scale of fixed point logarithms
	logScale = 1000000000000000000

	// log10(2)·10^18
	log10Of2 = 301029995663981195

	// fractional bits computed by log2
	log2Precision = 64

	daysPerTenYears = 3650
)

// mulDiv - a·b/c truncated, false if c is zero or the result overflows
func mulDiv(a uint64, b uint64, c uint64) (uint64, bool) {
	if 0 == c {
		return 0, false
	}
	r := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	r.Div(r, uint256.NewInt(c))
	if !r.IsUint64() {
		return 0, false
	}
	return r.Uint64(), true
}

// mulMulDiv - a·b·c/d truncated
func mulMulDiv(a uint64, b uint64, c uint64, d uint64) (uint64, bool) {
	if 0 == d {
		return 0, false
	}
	r := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	r.Mul(r, uint256.NewInt(c))
	r.Div(r, uint256.NewInt(d))
	if !r.IsUint64() {
		return 0, false
	}
	return r.Uint64(), true
}

// Log10 - log10(x)·10^18 for x ≥ 1
//
// the binary logarithm is computed bit by bit by repeated squaring so
// the result does not depend on floating point hardware
func Log10(x *uint256.Int) *uint256.Int {
	if x.IsZero() {
		return new(uint256.Int)
	}

	n := uint(x.BitLen() - 1)

	// y = x / 2^n in [1, 2) with 127 fractional bits
	y := new(uint256.Int)
	if n <= 127 {
		y.Lsh(x, 127-n)
	} else {
		y.Rsh(x, n-127)
	}
	two := new(uint256.Int).Lsh(uint256.NewInt(1), 128)

	frac := uint64(0)
	for i := 1; i <= log2Precision; i += 1 {
		y.Mul(y, y)
		y.Rsh(y, 127)
		if !y.Lt(two) {
			y.Rsh(y, 1)
			frac |= 1 << uint(log2Precision-i)
		}
	}

	// log2 = n + frac/2^64, log10 = log2·log10(2)
	log2 := new(uint256.Int).Lsh(uint256.NewInt(uint64(n)), log2Precision)
	log2.Or(log2, uint256.NewInt(frac))
	log2.Mul(log2, uint256.NewInt(log10Of2))
	return log2.Rsh(log2, log2Precision)
}

// Interest - scoins due on owed scoins over a number of blocks
//
//   L        = log10(COIN + B·N)·10^18 - 8·10^18
//   days     = max(1, ceil(blocks/dayBlocks))
//   interest = N·days·A·10^18 / (3650·L)
//
// false on overflow, zero interest when L is not positive
func Interest(owed uint64, blocks uint64, dayBlocks uint64, paramA uint64, paramB uint64) (uint64, bool) {
	if 0 == owed || 0 == blocks || 0 == paramA {
		return 0, true
	}
	if 0 == dayBlocks {
		return 0, false
	}

	days := (blocks + dayBlocks - 1) / dayBlocks
	if days < 1 {
		days = 1
	}

	v := new(uint256.Int).Mul(uint256.NewInt(paramB), uint256.NewInt(owed))
	v.AddUint64(v, sysparam.COIN)
	l := Log10(v)
	base := new(uint256.Int).Mul(uint256.NewInt(8), uint256.NewInt(logScale))
	if !l.Gt(base) {
		return 0, true
	}
	l.Sub(l, base)

	r := new(uint256.Int).Mul(uint256.NewInt(owed), uint256.NewInt(days))
	r.Mul(r, uint256.NewInt(paramA))
	r.Mul(r, uint256.NewInt(logScale))
	d := new(uint256.Int).Mul(uint256.NewInt(daysPerTenYears), l)
	r.Div(r, d)
	if !r.IsUint64() {
		return 0, false
	}
	return r.Uint64(), true
}

// collateralFor - bcoins needed for owed scoins to reach ratio at price,
// rounded up
func collateralFor(owed uint64, ratio uint64, price uint64) (uint64, bool) {
	if 0 == price {
		return 0, false
	}
	n := new(uint256.Int).Mul(uint256.NewInt(owed), uint256.NewInt(ratio))
	n.Mul(n, uint256.NewInt(entities.PriceBoost))
	d := new(uint256.Int).Mul(uint256.NewInt(price), uint256.NewInt(entities.RatioBoost))
	q, m := new(uint256.Int).DivMod(n, d, new(uint256.Int))
	if !m.IsZero() {
		q.AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return 0, false
	}
	return q.Uint64(), true
}
