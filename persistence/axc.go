// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence

import (
	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/storage"
)

// AxcCache - cross chain swap records and token mappings
type AxcCache struct {
	swapIns    *kvcache.Composite[entities.SwapInKey, amountValue]
	peerToSelf *kvcache.Composite[string, entities.AxcSwapPair]
	selfToPeer *kvcache.Composite[string, entities.AxcSwapPair]
	builtIn    []entities.AxcSwapPair
	all        parts
}

// NewAxcCache - root cache over the axc partition
//
// builtIn pairs exist without being stored and cannot be erased
func NewAxcCache(store storage.Access, builtIn []entities.AxcSwapPair, reg *kvcache.UndoRegistry) *AxcCache {
	values := codec.RLP[entities.AxcSwapPair]{}
	c := &AxcCache{
		swapIns:    kvcache.NewComposite[entities.SwapInKey, amountValue](store, storage.PrefixAxcSwapIn, entities.SwapInKeyCodec, amountValues, reg),
		peerToSelf: kvcache.NewComposite[string, entities.AxcSwapPair](store, storage.PrefixAxcPeerToSelf, codec.StringKey{}, values, reg),
		selfToPeer: kvcache.NewComposite[string, entities.AxcSwapPair](store, storage.PrefixAxcSelfToPeer, codec.StringKey{}, values, reg),
		builtIn:    append([]entities.AxcSwapPair{}, builtIn...),
	}
	c.all = parts{c.swapIns, c.peerToSelf, c.selfToPeer}
	return c
}

// NewChild - cache layered over this one
func (c *AxcCache) NewChild(reg *kvcache.UndoRegistry) *AxcCache {
	n := &AxcCache{
		swapIns:    kvcache.NewCompositeChild(c.swapIns, reg),
		peerToSelf: kvcache.NewCompositeChild(c.peerToSelf, reg),
		selfToPeer: kvcache.NewCompositeChild(c.selfToPeer, reg),
		builtIn:    c.builtIn,
	}
	n.all = parts{n.swapIns, n.peerToSelf, n.selfToPeer}
	return n
}

// SetBaseView - rebind an empty child
func (c *AxcCache) SetBaseView(parent *AxcCache) {
	c.swapIns.SetBase(parent.swapIns)
	c.peerToSelf.SetBase(parent.peerToSelf)
	c.selfToPeer.SetBase(parent.selfToPeer)
	c.builtIn = parent.builtIn
}

func (c *AxcCache) Flush()                          { c.all.flush() }
func (c *AxcCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *AxcCache) Size() int                       { return c.all.size() }

// SetSwapInMintRecord - amount minted for an inbound peer transaction
func (c *AxcCache) SetSwapInMintRecord(peerChain string, peerTxID string, amount uint64) bool {
	return c.swapIns.SetData(entities.SwapInKey{PeerChain: peerChain, PeerTxID: peerTxID}, amountValue{Amount: amount})
}

// GetSwapInMintRecord - amount minted, false if never minted
func (c *AxcCache) GetSwapInMintRecord(peerChain string, peerTxID string) (uint64, bool) {
	a, found := c.swapIns.GetData(entities.SwapInKey{PeerChain: peerChain, PeerTxID: peerTxID})
	return a.Amount, found
}

// AddAxcSwapPair - register a mapping in both directions
func (c *AxcCache) AddAxcSwapPair(pair entities.AxcSwapPair) bool {
	if pair.IsEmpty() || c.isBuiltIn(pair) {
		return false
	}
	return c.peerToSelf.SetData(pair.PeerSymbol, pair) && c.selfToPeer.SetData(pair.SelfSymbol, pair)
}

// EraseAxcSwapPair - remove a registered mapping
func (c *AxcCache) EraseAxcSwapPair(peerSymbol string) bool {
	pair, found := c.peerToSelf.GetData(peerSymbol)
	if !found {
		return false
	}
	c.selfToPeer.EraseData(pair.SelfSymbol)
	return c.peerToSelf.EraseData(peerSymbol)
}

// GetAxcCoinPairByPeerSymbol - mapping of a peer chain token
func (c *AxcCache) GetAxcCoinPairByPeerSymbol(peerSymbol string) (entities.AxcSwapPair, bool) {
	for _, p := range c.builtIn {
		if p.PeerSymbol == peerSymbol {
			return p, true
		}
	}
	return c.peerToSelf.GetData(peerSymbol)
}

// GetAxcCoinPairBySelfSymbol - mapping of a minted token
func (c *AxcCache) GetAxcCoinPairBySelfSymbol(selfSymbol string) (entities.AxcSwapPair, bool) {
	for _, p := range c.builtIn {
		if p.SelfSymbol == selfSymbol {
			return p, true
		}
	}
	return c.selfToPeer.GetData(selfSymbol)
}

func (c *AxcCache) isBuiltIn(pair entities.AxcSwapPair) bool {
	for _, p := range c.builtIn {
		if p.PeerSymbol == pair.PeerSymbol || p.SelfSymbol == pair.SelfSymbol {
			return true
		}
	}
	return false
}
