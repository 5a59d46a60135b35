// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/entities"
)

// PriceFeed - median prices computed by the price feed subsystem
type PriceFeed interface {
	// bcoin price in scoin boosted by entities.PriceBoost, false if
	// no median is available for the pair
	GetMedianPrice(pair entities.CoinPair) (uint64, bool)
}

// Context - everything a transaction may read or change
type Context struct {
	Height    uint32
	TxIndex   uint32
	Params    *chain.Parameters
	Cache     *cachewrapper.CacheWrapper
	State     *State
	PriceFeed PriceFeed
}

// WithCache - copy of the context writing to another cache
func (ctx *Context) WithCache(cw *cachewrapper.CacheWrapper) *Context {
	c := *ctx
	c.Cache = cw
	return &c
}
