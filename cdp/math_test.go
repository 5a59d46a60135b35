// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cdp_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/cdp"
)

func TestLog10(t *testing.T) {
	items := []struct {
		x        uint64
		expected string
	}{
		{1, "0"},
		{2, "301029995663981195"},
		{10, "999999999999999999"},
		{1000, "2999999999999999997"},
		{100000000, "7999999999999999994"},
	}
	for _, item := range items {
		actual := cdp.Log10(uint256.NewInt(item.x))
		assert.Equal(t, item.expected, actual.Dec(), "log10(%d)", item.x)
	}

	assert.True(t, cdp.Log10(uint256.NewInt(0)).IsZero(), "log10(0)")
}

func TestInterest(t *testing.T) {
	items := []struct {
		owed     uint64
		blocks   uint64
		a        uint64
		b        uint64
		expected uint64
	}{
		{100000000000, 100, 2, 1, 18262197},
		{100000000000, 8641, 2, 1, 36524395},
		{100000000000, 100, 3, 1, 27393296},
		{200000000000, 100, 2, 1, 33196255},
		{20000000000, 100, 2, 1, 4758129},
		{20000000000, 8641, 2, 1, 9516258},
		{0, 100, 2, 1, 0},
		{100000000000, 0, 2, 1, 0},
		{100000000000, 100, 0, 1, 0},

		// log10(COIN + B·N) not above 8 charges nothing
		{100000000000, 100, 2, 0, 0},
	}
	for i, item := range items {
		interest, ok := cdp.Interest(item.owed, item.blocks, 8640, item.a, item.b)
		assert.True(t, ok, "%d: overflow", i)
		assert.Equal(t, item.expected, interest, "%d: interest", i)
	}

	_, ok := cdp.Interest(100000000000, 100, 0, 2, 1)
	assert.False(t, ok, "zero day blocks accepted")
}

// one day of blocks costs the same as a single block
func TestInterestRoundsUpToDays(t *testing.T) {
	one, ok := cdp.Interest(100000000000, 1, 8640, 2, 1)
	assert.True(t, ok, "overflow")
	day, ok := cdp.Interest(100000000000, 8640, 8640, 2, 1)
	assert.True(t, ok, "overflow")
	assert.Equal(t, one, day, "partial day")
}
