// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence

import (
	"sort"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/storage"
	"github.com/waykichain/wiccd/sysparam"
)

// SysParamCache - governed parameters, fees and producer count
type SysParamCache struct {
	params     *kvcache.Composite[sysparam.SysParamType, paramValue]
	cdpParams  *kvcache.Composite[cdpParamKey, paramValue]
	interest   *kvcache.Composite[entities.CoinPair, interestHistory]
	minerFees  *kvcache.Composite[minerFeeKey, paramValue]
	currentBps *kvcache.Simple[bpsSize]
	newBps     *kvcache.Simple[bpsSize]
	initialBps uint8
	all        parts
}

// governed values are always present once set, zero included
type paramValue struct {
	Value uint64
	Set   bool
}

func (p paramValue) IsEmpty() bool {
	return !p.Set
}

type cdpParamKey struct {
	Pair entities.CoinPair
	Type sysparam.CdpParamType
}

var cdpParamKeys = codec.KeyFuncs[cdpParamKey]{
	Encode: func(k cdpParamKey) []byte {
		return k.Pair.Append(codec.NewBuilder()).Uint8(uint8(k.Type)).Bytes()
	},
	Decode: func(buffer []byte) (cdpParamKey, error) {
		r := codec.NewReader(buffer)
		k := cdpParamKey{
			Pair: entities.ReadCoinPair(r),
			Type: sysparam.CdpParamType(r.Uint8()),
		}
		return k, r.Done()
	},
	IsEmpty: func(k cdpParamKey) bool {
		return k.Pair.IsEmpty() || sysparam.NullCdpParam == k.Type
	},
}

type minerFeeKey struct {
	TxType entities.TxType
	Symbol string
}

var minerFeeKeys = codec.KeyFuncs[minerFeeKey]{
	Encode: func(k minerFeeKey) []byte {
		return codec.NewBuilder().Uint8(uint8(k.TxType)).String(k.Symbol).Bytes()
	},
	Decode: func(buffer []byte) (minerFeeKey, error) {
		r := codec.NewReader(buffer)
		k := minerFeeKey{
			TxType: entities.TxType(r.Uint8()),
			Symbol: r.String(),
		}
		return k, r.Done()
	},
	IsEmpty: func(k minerFeeKey) bool {
		return entities.NullTx == k.TxType || "" == k.Symbol
	},
}

// InterestChange - interest parameters in force from a height
type InterestChange struct {
	Height uint64
	A      uint64
	B      uint64
}

// ascending by height
type interestHistory struct {
	Changes []InterestChange
}

func (h interestHistory) IsEmpty() bool {
	return 0 == len(h.Changes)
}

type bpsSize struct {
	Size            uint8
	EffectiveHeight uint64
}

func (b bpsSize) IsEmpty() bool {
	return 0 == b.Size
}

// InterestParamRegime - interest parameters over a closed height range
type InterestParamRegime struct {
	BeginHeight uint64
	EndHeight   uint64
	ParamA      uint64
	ParamB      uint64
}

// NewSysParamCache - root cache over the sysparam partition
func NewSysParamCache(store storage.Access, initialBpsSize uint8, reg *kvcache.UndoRegistry) *SysParamCache {
	c := &SysParamCache{
		params:     kvcache.NewComposite[sysparam.SysParamType, paramValue](store, storage.PrefixSysParam, uint8Key[sysparam.SysParamType](), codec.RLP[paramValue]{}, reg),
		cdpParams:  kvcache.NewComposite[cdpParamKey, paramValue](store, storage.PrefixCdpParam, cdpParamKeys, codec.RLP[paramValue]{}, reg),
		interest:   kvcache.NewComposite[entities.CoinPair, interestHistory](store, storage.PrefixCdpInterest, entities.CoinPairKey, codec.RLP[interestHistory]{}, reg),
		minerFees:  kvcache.NewComposite[minerFeeKey, paramValue](store, storage.PrefixMinerFee, minerFeeKeys, codec.RLP[paramValue]{}, reg),
		currentBps: kvcache.NewSimple[bpsSize](store, storage.PrefixCurrentBpsSize, codec.RLP[bpsSize]{}, reg),
		newBps:     kvcache.NewSimple[bpsSize](store, storage.PrefixNewBpsSize, codec.RLP[bpsSize]{}, reg),
		initialBps: initialBpsSize,
	}
	c.all = parts{c.params, c.cdpParams, c.interest, c.minerFees, c.currentBps, c.newBps}
	return c
}

// NewChild - cache layered over this one
func (c *SysParamCache) NewChild(reg *kvcache.UndoRegistry) *SysParamCache {
	n := &SysParamCache{
		params:     kvcache.NewCompositeChild(c.params, reg),
		cdpParams:  kvcache.NewCompositeChild(c.cdpParams, reg),
		interest:   kvcache.NewCompositeChild(c.interest, reg),
		minerFees:  kvcache.NewCompositeChild(c.minerFees, reg),
		currentBps: kvcache.NewSimpleChild(c.currentBps, reg),
		newBps:     kvcache.NewSimpleChild(c.newBps, reg),
		initialBps: c.initialBps,
	}
	n.all = parts{n.params, n.cdpParams, n.interest, n.minerFees, n.currentBps, n.newBps}
	return n
}

// SetBaseView - rebind an empty child
func (c *SysParamCache) SetBaseView(parent *SysParamCache) {
	c.params.SetBase(parent.params)
	c.cdpParams.SetBase(parent.cdpParams)
	c.interest.SetBase(parent.interest)
	c.minerFees.SetBase(parent.minerFees)
	c.currentBps.SetBase(parent.currentBps)
	c.newBps.SetBase(parent.newBps)
	c.initialBps = parent.initialBps
}

func (c *SysParamCache) Flush()                          { c.all.flush() }
func (c *SysParamCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *SysParamCache) Size() int                       { return c.all.size() }

// GetParam - governed value or the default
func (c *SysParamCache) GetParam(t sysparam.SysParamType) uint64 {
	if v, found := c.params.GetData(t); found {
		return v.Value
	}
	return t.Default()
}

// SetParam - record a governed value
func (c *SysParamCache) SetParam(t sysparam.SysParamType, value uint64) bool {
	return c.params.SetData(t, paramValue{Value: value, Set: true})
}

// GetCdpParam - governed value for a pair or the default
func (c *SysParamCache) GetCdpParam(pair entities.CoinPair, t sysparam.CdpParamType) uint64 {
	if v, found := c.cdpParams.GetData(cdpParamKey{Pair: pair, Type: t}); found {
		return v.Value
	}
	return t.Default()
}

// SetCdpParam - record a governed value for a pair
func (c *SysParamCache) SetCdpParam(pair entities.CoinPair, t sysparam.CdpParamType, value uint64) bool {
	return c.cdpParams.SetData(cdpParamKey{Pair: pair, Type: t}, paramValue{Value: value, Set: true})
}

// GetMinerFee - governed minimum fee or the default
func (c *SysParamCache) GetMinerFee(txType entities.TxType, symbol string) (uint64, bool) {
	if v, found := c.minerFees.GetData(minerFeeKey{TxType: txType, Symbol: symbol}); found {
		return v.Value, true
	}
	return txType.DefaultFee(symbol)
}

// SetMinerFee - record a governed minimum fee
func (c *SysParamCache) SetMinerFee(txType entities.TxType, symbol string, amount uint64) bool {
	return c.minerFees.SetData(minerFeeKey{TxType: txType, Symbol: symbol}, paramValue{Value: amount, Set: true})
}

// GetTotalBpsSize - producer count in force at height
func (c *SysParamCache) GetTotalBpsSize(height uint64) uint8 {
	if n, found := c.newBps.GetData(); found && height >= n.EffectiveHeight {
		return n.Size
	}
	if b, found := c.currentBps.GetData(); found {
		return b.Size
	}
	return c.initialBps
}

// SetCurrentTotalBpsSize - producer count in force now
func (c *SysParamCache) SetCurrentTotalBpsSize(size uint8) bool {
	return c.currentBps.SetData(bpsSize{Size: size})
}

// SetNewTotalBpsSize - producer count from a future height
func (c *SysParamCache) SetNewTotalBpsSize(size uint8, effectiveHeight uint64) bool {
	return c.newBps.SetData(bpsSize{Size: size, EffectiveHeight: effectiveHeight})
}

// SetCdpInterestParam - record an A or B change from height
//
// the other parameter keeps its value in force at that height
func (c *SysParamCache) SetCdpInterestParam(pair entities.CoinPair, t sysparam.CdpParamType, height uint64, value uint64) bool {
	if !t.IsInterestParam() {
		return false
	}

	h, _ := c.interest.GetData(pair)
	changes := append([]InterestChange(nil), h.Changes...)

	current := interestAt(changes, height)
	current.Height = height
	switch t {
	case sysparam.CdpInterestParamA:
		current.A = value
	case sysparam.CdpInterestParamB:
		current.B = value
	}

	i := sort.Search(len(changes), func(i int) bool {
		return changes[i].Height >= height
	})
	if i < len(changes) && height == changes[i].Height {
		changes[i] = current
	} else {
		changes = append(changes, InterestChange{})
		copy(changes[i+1:], changes[i:])
		changes[i] = current
	}
	return c.interest.SetData(pair, interestHistory{Changes: changes})
}

// parameters in force at height: the latest change at or before it,
// the defaults if there is none
func interestAt(changes []InterestChange, height uint64) InterestChange {
	i := sort.Search(len(changes), func(i int) bool {
		return changes[i].Height > height
	})
	if i > 0 {
		return changes[i-1]
	}
	return InterestChange{
		A: sysparam.CdpInterestParamA.Default(),
		B: sysparam.CdpInterestParamB.Default(),
	}
}

// GetCdpInterestParamChanges - contiguous regimes covering [begin, end]
//
// never empty, the first regime starts at begin and the last ends at end
func (c *SysParamCache) GetCdpInterestParamChanges(pair entities.CoinPair, begin uint64, end uint64) []InterestParamRegime {
	h, _ := c.interest.GetData(pair)

	first := interestAt(h.Changes, begin)
	regimes := []InterestParamRegime{{
		BeginHeight: begin,
		EndHeight:   end,
		ParamA:      first.A,
		ParamB:      first.B,
	}}

	for _, change := range h.Changes {
		if change.Height <= begin {
			continue
		}
		if change.Height > end {
			break
		}
		last := &regimes[len(regimes)-1]
		last.EndHeight = change.Height - 1
		regimes = append(regimes, InterestParamRegime{
			BeginHeight: change.Height,
			EndHeight:   end,
			ParamA:      change.A,
			ParamB:      change.B,
		})
	}
	return regimes
}
