// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
)

func TestValid(t *testing.T) {
	for _, name := range []string{chain.Main, chain.Test, chain.Regtest} {
		assert.True(t, chain.Valid(name), "%s: not valid", name)
		p, err := chain.Get(name)
		assert.Nil(t, err, "%s: get", name)
		assert.Equal(t, name, p.Name, "%s: name", name)
	}
	assert.False(t, chain.Valid("bitmark"), "foreign chain valid")

	_, err := chain.Get("nonesuch")
	assert.Equal(t, fault.ErrInvalidChain, err, "unknown chain")
}

func TestParameters(t *testing.T) {
	p, err := chain.Get(chain.Main)
	assert.Nil(t, err, "get")
	assert.Equal(t, entities.RegIDList{{Height: 4109388, Index: 2}}, p.GovernorBootstrap, "bootstrap governor")
	assert.Equal(t, uint64(3600), p.BpCountEffectiveBlocks, "bp effective blocks")
	assert.True(t, p.IsFeeSymbol(entities.SymbolWUSD), "WUSD fee")
	assert.False(t, p.IsFeeSymbol(entities.SymbolWGRT), "WGRT fee")

	r, err := chain.Get(chain.Regtest)
	assert.Nil(t, err, "get")
	assert.Equal(t, uint64(50), r.BpCountEffectiveBlocks, "regtest bp effective blocks")

	// copies are independent
	p.GovernorBootstrap[0] = entities.RegID{Height: 1, Index: 1}
	q, _ := chain.Get(chain.Main)
	assert.Equal(t, entities.RegID{Height: 4109388, Index: 2}, q.GovernorBootstrap[0], "shared bootstrap list")
}
