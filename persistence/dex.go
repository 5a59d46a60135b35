// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/storage"
)

// DexMainOperatorID - operator synthesised from chain parameters
const DexMainOperatorID = 0

// DexCache - active orders and the operator registry
type DexCache struct {
	orders       *kvcache.Composite[common.Hash, entities.DexOrder]
	blockOrders  *kvcache.Composite[blockOrderKey, entities.DexOrder]
	operators    *kvcache.Composite[uint32, entities.DexOperator]
	owners       *kvcache.Composite[entities.RegID, amountValue]
	nextID       *kvcache.Simple[amountValue]
	mainOperator entities.DexOperator
	all          parts
}

type blockOrderKey struct {
	Height       uint32
	GenerateType entities.OrderGenerateType
	OrderID      common.Hash
}

var blockOrderKeys = codec.KeyFuncs[blockOrderKey]{
	Encode: func(k blockOrderKey) []byte {
		return codec.NewBuilder().Uint32(k.Height).Uint8(uint8(k.GenerateType)).Raw(k.OrderID.Bytes()).Bytes()
	},
	Decode: func(buffer []byte) (blockOrderKey, error) {
		r := codec.NewReader(buffer)
		k := blockOrderKey{
			Height:       r.Uint32(),
			GenerateType: entities.OrderGenerateType(r.Uint8()),
			OrderID:      common.BytesToHash(r.Raw(common.HashLength)),
		}
		return k, r.Done()
	},
	IsEmpty: func(k blockOrderKey) bool {
		return common.Hash{} == k.OrderID
	},
}

func blockOrderKeyOf(id common.Hash, order *entities.DexOrder) blockOrderKey {
	return blockOrderKey{
		Height:       order.Height,
		GenerateType: order.GenerateType,
		OrderID:      id,
	}
}

// NewDexCache - root cache over the dex partition
func NewDexCache(store storage.Access, mainOperator entities.DexOperator, reg *kvcache.UndoRegistry) *DexCache {
	c := &DexCache{
		orders:       kvcache.NewComposite[common.Hash, entities.DexOrder](store, storage.PrefixDexActiveOrder, codec.HashKey{}, codec.RLP[entities.DexOrder]{}, reg),
		blockOrders:  kvcache.NewComposite[blockOrderKey, entities.DexOrder](store, storage.PrefixDexBlockOrders, blockOrderKeys, codec.RLP[entities.DexOrder]{}, reg),
		operators:    kvcache.NewComposite[uint32, entities.DexOperator](store, storage.PrefixDexOperator, codec.Uint32Key{}, codec.RLP[entities.DexOperator]{}, reg),
		owners:       kvcache.NewComposite[entities.RegID, amountValue](store, storage.PrefixDexOwner, entities.RegIDKey, amountValues, reg),
		nextID:       kvcache.NewSimple[amountValue](store, storage.PrefixDexNextID, amountValues, reg),
		mainOperator: mainOperator,
	}
	c.all = parts{c.orders, c.blockOrders, c.operators, c.owners, c.nextID}
	return c
}

// NewChild - cache layered over this one
func (c *DexCache) NewChild(reg *kvcache.UndoRegistry) *DexCache {
	n := &DexCache{
		orders:       kvcache.NewCompositeChild(c.orders, reg),
		blockOrders:  kvcache.NewCompositeChild(c.blockOrders, reg),
		operators:    kvcache.NewCompositeChild(c.operators, reg),
		owners:       kvcache.NewCompositeChild(c.owners, reg),
		nextID:       kvcache.NewSimpleChild(c.nextID, reg),
		mainOperator: c.mainOperator,
	}
	n.all = parts{n.orders, n.blockOrders, n.operators, n.owners, n.nextID}
	return n
}

// SetBaseView - rebind an empty child
func (c *DexCache) SetBaseView(parent *DexCache) {
	c.orders.SetBase(parent.orders)
	c.blockOrders.SetBase(parent.blockOrders)
	c.operators.SetBase(parent.operators)
	c.owners.SetBase(parent.owners)
	c.nextID.SetBase(parent.nextID)
	c.mainOperator = parent.mainOperator
}

func (c *DexCache) Flush()                          { c.all.flush() }
func (c *DexCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *DexCache) Size() int                       { return c.all.size() }

// CreateActiveOrder - add an order, it must not exist
func (c *DexCache) CreateActiveOrder(id common.Hash, order *entities.DexOrder) bool {
	if c.orders.HasData(id) {
		return false
	}
	if !c.orders.SetData(id, *order) {
		return false
	}
	return c.blockOrders.SetData(blockOrderKeyOf(id, order), *order)
}

// GetActiveOrder - order by id
func (c *DexCache) GetActiveOrder(id common.Hash) (*entities.DexOrder, bool) {
	o, found := c.orders.GetData(id)
	if !found {
		return nil, false
	}
	return &o, true
}

// UpdateActiveOrder - replace an existing order
func (c *DexCache) UpdateActiveOrder(id common.Hash, order *entities.DexOrder) bool {
	old, found := c.orders.GetData(id)
	if !found {
		return false
	}
	if old.Height != order.Height || old.GenerateType != order.GenerateType {
		c.blockOrders.EraseData(blockOrderKeyOf(id, &old))
	}
	c.orders.SetData(id, *order)
	return c.blockOrders.SetData(blockOrderKeyOf(id, order), *order)
}

// EraseActiveOrder - remove an order and its block index entry
func (c *DexCache) EraseActiveOrder(id common.Hash) bool {
	old, found := c.orders.GetData(id)
	if !found {
		return false
	}
	c.blockOrders.EraseData(blockOrderKeyOf(id, &old))
	return c.orders.EraseData(id)
}

// BlockOrder - order with its id
type BlockOrder struct {
	ID    common.Hash
	Order entities.DexOrder
}

// ListBlockOrders - active orders created at a height, user orders first
func (c *DexCache) ListBlockOrders(height uint32) []BlockOrder {
	it := c.blockOrders.NewIterator(codec.NewBuilder().Uint32(height).Bytes())
	defer it.Close()

	list := make([]BlockOrder, 0)
	for ok := it.First(); ok; ok = it.Next() {
		list = append(list, BlockOrder{ID: it.Key().OrderID, Order: it.Value()})
	}
	return list
}

// IncDexID - allocate the next operator id, ids start at 1
func (c *DexCache) IncDexID() uint32 {
	n, _ := c.nextID.GetData()
	n.Amount += 1
	c.nextID.SetData(n)
	return uint32(n.Amount)
}

// CreateDexOperator - register an operator under an allocated id
func (c *DexCache) CreateDexOperator(id uint32, operator *entities.DexOperator) bool {
	if DexMainOperatorID == id || c.operators.HasData(id) || c.owners.HasData(operator.OwnerRegID) {
		return false
	}
	c.operators.SetData(id, *operator)
	return c.owners.SetData(operator.OwnerRegID, amountValue{Amount: uint64(id)})
}

// UpdateDexOperator - replace an operator, maintaining the owner index
func (c *DexCache) UpdateDexOperator(id uint32, old *entities.DexOperator, operator *entities.DexOperator) bool {
	if DexMainOperatorID == id || !c.operators.HasData(id) {
		return false
	}
	if old.OwnerRegID != operator.OwnerRegID {
		if c.owners.HasData(operator.OwnerRegID) {
			return false
		}
		c.owners.EraseData(old.OwnerRegID)
		c.owners.SetData(operator.OwnerRegID, amountValue{Amount: uint64(id)})
	}
	return c.operators.SetData(id, *operator)
}

// GetDexOperator - operator by id, 0 is the built in main operator
func (c *DexCache) GetDexOperator(id uint32) (*entities.DexOperator, bool) {
	if DexMainOperatorID == id {
		o := c.mainOperator
		return &o, true
	}
	o, found := c.operators.GetData(id)
	if !found {
		return nil, false
	}
	return &o, true
}

// GetDexOperatorByOwner - operator id and record of an owner
func (c *DexCache) GetDexOperatorByOwner(owner entities.RegID) (uint32, *entities.DexOperator, bool) {
	if owner == c.mainOperator.OwnerRegID {
		o := c.mainOperator
		return DexMainOperatorID, &o, true
	}
	id, found := c.owners.GetData(owner)
	if !found {
		return 0, nil, false
	}
	o, found := c.GetDexOperator(uint32(id.Amount))
	return uint32(id.Amount), o, found
}
