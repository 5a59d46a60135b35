// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence

import (
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/storage"
	"github.com/waykichain/wiccd/sysparam"
)

// CdpCache - cdps with owner and collateral ratio indexes
type CdpCache struct {
	cdps    *kvcache.Composite[common.Hash, entities.CDP]
	owners  *kvcache.Composite[ownerPairKey, hashValue]
	ratios  *kvcache.Composite[ratioKey, entities.CDP]
	globals *kvcache.Composite[entities.CoinPair, entities.CdpGlobalData]
	halt    *kvcache.Simple[haltFlag]
	all     parts
}

type ownerPairKey struct {
	Owner entities.RegID
	Pair  entities.CoinPair
}

var ownerPairKeys = codec.KeyFuncs[ownerPairKey]{
	Encode: func(k ownerPairKey) []byte {
		return k.Pair.Append(k.Owner.Append(codec.NewBuilder())).Bytes()
	},
	Decode: func(buffer []byte) (ownerPairKey, error) {
		r := codec.NewReader(buffer)
		k := ownerPairKey{
			Owner: entities.ReadRegID(r),
			Pair:  entities.ReadCoinPair(r),
		}
		return k, r.Done()
	},
	IsEmpty: func(k ownerPairKey) bool {
		return k.Owner.IsEmpty() || k.Pair.IsEmpty()
	},
}

// ratio index: scanning a pair gives the riskiest cdp first
type ratioKey struct {
	Pair      entities.CoinPair
	RatioBase uint64
	ID        common.Hash
}

var ratioKeys = codec.KeyFuncs[ratioKey]{
	Encode: func(k ratioKey) []byte {
		return k.Pair.Append(codec.NewBuilder()).Uint64(k.RatioBase).Raw(k.ID.Bytes()).Bytes()
	},
	Decode: func(buffer []byte) (ratioKey, error) {
		r := codec.NewReader(buffer)
		k := ratioKey{
			Pair:      entities.ReadCoinPair(r),
			RatioBase: r.Uint64(),
			ID:        common.BytesToHash(r.Raw(common.HashLength)),
		}
		return k, r.Done()
	},
	IsEmpty: func(k ratioKey) bool {
		return k.Pair.IsEmpty() || common.Hash{} == k.ID
	},
}

func ratioKeyOf(c *entities.CDP) ratioKey {
	return ratioKey{
		Pair:      c.Pair(),
		RatioBase: c.RatioBase(),
		ID:        c.ID,
	}
}

type haltFlag struct {
	Halted bool
}

func (h haltFlag) IsEmpty() bool {
	return !h.Halted
}

// NewCdpCache - root cache over the cdp partition
func NewCdpCache(store storage.Access, reg *kvcache.UndoRegistry) *CdpCache {
	c := &CdpCache{
		cdps:    kvcache.NewComposite[common.Hash, entities.CDP](store, storage.PrefixCdp, codec.HashKey{}, codec.RLP[entities.CDP]{}, reg),
		owners:  kvcache.NewComposite[ownerPairKey, hashValue](store, storage.PrefixRegIDCdp, ownerPairKeys, hashValues, reg),
		ratios:  kvcache.NewComposite[ratioKey, entities.CDP](store, storage.PrefixCdpRatio, ratioKeys, codec.RLP[entities.CDP]{}, reg),
		globals: kvcache.NewComposite[entities.CoinPair, entities.CdpGlobalData](store, storage.PrefixCdpGlobal, entities.CoinPairKey, codec.RLP[entities.CdpGlobalData]{}, reg),
		halt:    kvcache.NewSimple[haltFlag](store, storage.PrefixCdpHalt, codec.RLP[haltFlag]{}, reg),
	}
	c.all = parts{c.cdps, c.owners, c.ratios, c.globals, c.halt}
	return c
}

// NewChild - cache layered over this one
func (c *CdpCache) NewChild(reg *kvcache.UndoRegistry) *CdpCache {
	n := &CdpCache{
		cdps:    kvcache.NewCompositeChild(c.cdps, reg),
		owners:  kvcache.NewCompositeChild(c.owners, reg),
		ratios:  kvcache.NewCompositeChild(c.ratios, reg),
		globals: kvcache.NewCompositeChild(c.globals, reg),
		halt:    kvcache.NewSimpleChild(c.halt, reg),
	}
	n.all = parts{n.cdps, n.owners, n.ratios, n.globals, n.halt}
	return n
}

// SetBaseView - rebind an empty child
func (c *CdpCache) SetBaseView(parent *CdpCache) {
	c.cdps.SetBase(parent.cdps)
	c.owners.SetBase(parent.owners)
	c.ratios.SetBase(parent.ratios)
	c.globals.SetBase(parent.globals)
	c.halt.SetBase(parent.halt)
}

func (c *CdpCache) Flush()                          { c.all.flush() }
func (c *CdpCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *CdpCache) Size() int                       { return c.all.size() }

// NewCDP - store a new cdp with its indexes and add it to the totals
func (c *CdpCache) NewCDP(cdp *entities.CDP) error {
	if cdp.IsEmpty() || cdp.Owner.IsEmpty() || cdp.Pair().IsEmpty() {
		return fault.ErrInvalidCoinPair
	}
	if c.cdps.HasData(cdp.ID) {
		return fault.ErrCdpAlreadyExists
	}
	owner := ownerPairKey{Owner: cdp.Owner, Pair: cdp.Pair()}
	if c.owners.HasData(owner) {
		return fault.ErrCdpAlreadyExists
	}

	c.cdps.SetData(cdp.ID, *cdp)
	c.owners.SetData(owner, hashValue{Hash: cdp.ID})
	c.ratios.SetData(ratioKeyOf(cdp), *cdp)

	g := c.GetGlobalData(cdp.Pair())
	g.TotalStakedAssets += cdp.TotalStakedBcoins
	g.TotalOwedScoins += cdp.TotalOwedScoins
	c.globals.SetData(cdp.Pair(), g)
	return nil
}

// EraseCDP - remove a cdp, its indexes and its share of the totals
func (c *CdpCache) EraseCDP(cdp *entities.CDP) error {
	stored, found := c.cdps.GetData(cdp.ID)
	if !found {
		return fault.ErrCdpNotFound
	}

	c.cdps.EraseData(stored.ID)
	c.owners.EraseData(ownerPairKey{Owner: stored.Owner, Pair: stored.Pair()})
	c.ratios.EraseData(ratioKeyOf(&stored))

	g := c.GetGlobalData(stored.Pair())
	g.TotalStakedAssets -= min(g.TotalStakedAssets, stored.TotalStakedBcoins)
	g.TotalOwedScoins -= min(g.TotalOwedScoins, stored.TotalOwedScoins)
	c.globals.SetData(stored.Pair(), g)
	return nil
}

// UpdateCDP - replace a cdp, moving its ratio index entry
func (c *CdpCache) UpdateCDP(old *entities.CDP, cdp *entities.CDP) error {
	if old.ID != cdp.ID || old.Owner != cdp.Owner || old.Pair() != cdp.Pair() {
		return fault.ErrCdpNotFound
	}
	if !c.cdps.HasData(old.ID) {
		return fault.ErrCdpNotFound
	}

	c.ratios.EraseData(ratioKeyOf(old))
	c.ratios.SetData(ratioKeyOf(cdp), *cdp)
	c.cdps.SetData(cdp.ID, *cdp)

	g := c.GetGlobalData(cdp.Pair())
	g.TotalStakedAssets = g.TotalStakedAssets - min(g.TotalStakedAssets, old.TotalStakedBcoins) + cdp.TotalStakedBcoins
	g.TotalOwedScoins = g.TotalOwedScoins - min(g.TotalOwedScoins, old.TotalOwedScoins) + cdp.TotalOwedScoins
	c.globals.SetData(cdp.Pair(), g)
	return nil
}

// GetCDP - cdp by id
func (c *CdpCache) GetCDP(id common.Hash) (*entities.CDP, bool) {
	cdp, found := c.cdps.GetData(id)
	if !found {
		return nil, false
	}
	return &cdp, true
}

// GetCDPByOwner - the single cdp of an owner for a pair
func (c *CdpCache) GetCDPByOwner(owner entities.RegID, pair entities.CoinPair) (*entities.CDP, bool) {
	id, found := c.owners.GetData(ownerPairKey{Owner: owner, Pair: pair})
	if !found {
		return nil, false
	}
	return c.GetCDP(id.Hash)
}

// GetCDPList - every cdp of an owner
func (c *CdpCache) GetCDPList(owner entities.RegID) []*entities.CDP {
	prefix := owner.Append(codec.NewBuilder()).Bytes()
	it := c.owners.NewIterator(prefix)
	defer it.Close()

	list := make([]*entities.CDP, 0)
	for ok := it.First(); ok; ok = it.Next() {
		if cdp, found := c.GetCDP(it.Value().Hash); found {
			list = append(list, cdp)
		}
	}
	return list
}

// GetCdpListByRatio - cdps of a pair whose collateral ratio at price is
// at most maxRatio, riskiest first, at most max (0 is unlimited)
func (c *CdpCache) GetCdpListByRatio(pair entities.CoinPair, maxRatio uint64, price uint64, max int) []*entities.CDP {
	list := make([]*entities.CDP, 0)
	if 0 == price {
		return list
	}

	// collateral ratio = ratio base · price / PriceBoost
	bound := new(uint256.Int).Mul(uint256.NewInt(maxRatio), uint256.NewInt(entities.PriceBoost))
	bound.Div(bound, uint256.NewInt(price))
	maxBase := uint64(math.MaxUint64)
	if bound.IsUint64() {
		maxBase = bound.Uint64()
	}

	it := c.ratios.NewIterator(pair.Append(codec.NewBuilder()).Bytes())
	defer it.Close()

	for ok := it.First(); ok; ok = it.Next() {
		if it.Key().RatioBase > maxBase {
			break
		}
		if 0 != max && len(list) >= max {
			break
		}
		cdp := it.Value()
		list = append(list, &cdp)
	}
	return list
}

// GetGlobalData - totals of a pair, zero if no cdp was ever opened
func (c *CdpCache) GetGlobalData(pair entities.CoinPair) entities.CdpGlobalData {
	g, _ := c.globals.GetData(pair)
	return g
}

// CheckGlobalCollateralFloorReached - global ratio fell below ratioMin
func (c *CdpCache) CheckGlobalCollateralFloorReached(pair entities.CoinPair, price uint64, ratioMin uint64) bool {
	g := c.GetGlobalData(pair)
	if 0 == g.TotalOwedScoins {
		return false
	}
	return g.CollateralRatio(price) < ratioMin
}

// CheckGlobalCollateralCeilingReached - a new stake would exceed the ceiling
//
// the ceiling is in whole coins
func (c *CdpCache) CheckGlobalCollateralCeilingReached(pair entities.CoinPair, newStake uint64, ceiling uint64) bool {
	g := c.GetGlobalData(pair)
	total := new(uint256.Int).Add(uint256.NewInt(newStake), uint256.NewInt(g.TotalStakedAssets))
	limit := new(uint256.Int).Mul(uint256.NewInt(ceiling), uint256.NewInt(sysparam.COIN))
	return total.Gt(limit)
}

// SetCdpHalt - stop or resume cdp operations
func (c *CdpCache) SetCdpHalt(halted bool) bool {
	return c.halt.SetData(haltFlag{Halted: halted})
}

// IsCdpHalt - cdp operations are stopped
func (c *CdpCache) IsCdpHalt() bool {
	h, _ := c.halt.GetData()
	return h.Halted
}
