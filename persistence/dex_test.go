// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/persistence"
	"github.com/waykichain/wiccd/storage"
)

var mainOperator = entities.DexOperator{
	OwnerRegID:  entities.RegID{Height: 0, Index: 1},
	FeeReceiver: entities.RegID{Height: 0, Index: 1},
	Name:        "main",
	Activated:   true,
}

func TestActiveOrders(t *testing.T) {
	store := openStore(t, storage.Dex)
	defer store.Close()

	c := persistence.NewDexCache(store, mainOperator, kvcache.NewUndoRegistry())

	system := entities.NewSysBuyMarketOrder(entities.SymbolWUSD, entities.SymbolWGRT, 500, 20, 1)
	user := &entities.DexOrder{
		GenerateType: entities.UserGenOrder,
		OrderType:    entities.OrderLimitPrice,
		OrderSide:    entities.OrderSell,
		CoinSymbol:   entities.SymbolWUSD,
		AssetSymbol:  entities.SymbolWICC,
		AssetAmount:  1000,
		Price:        entities.PriceBoost,
		Height:       20,
		UserRegID:    entities.RegID{Height: 5, Index: 1},
	}

	sysID := common.HexToHash("0x01")
	userID := common.HexToHash("0x02")
	assert.True(t, c.CreateActiveOrder(sysID, system), "system order")
	assert.True(t, c.CreateActiveOrder(userID, user), "user order")
	assert.False(t, c.CreateActiveOrder(userID, user), "duplicate")

	list := c.ListBlockOrders(20)
	assert.Equal(t, 2, len(list), "block orders")
	assert.Equal(t, userID, list[0].ID, "user orders first")
	assert.Equal(t, sysID, list[1].ID, "system order second")
	assert.Equal(t, 0, len(c.ListBlockOrders(21)), "other height")

	moved := *user
	moved.Height = 21
	moved.TotalDealAssetAmount = 10
	assert.True(t, c.UpdateActiveOrder(userID, &moved), "update")
	assert.Equal(t, 1, len(c.ListBlockOrders(20)), "left old height")
	assert.Equal(t, 1, len(c.ListBlockOrders(21)), "at new height")

	got, found := c.GetActiveOrder(userID)
	assert.True(t, found, "get")
	assert.Equal(t, uint64(10), got.TotalDealAssetAmount, "updated value")

	assert.True(t, c.EraseActiveOrder(userID), "erase")
	assert.False(t, c.EraseActiveOrder(userID), "erase twice")
	assert.Equal(t, 0, len(c.ListBlockOrders(21)), "block index cleared")
}

func TestDexOperators(t *testing.T) {
	store := openStore(t, storage.Dex)
	defer store.Close()

	c := persistence.NewDexCache(store, mainOperator, kvcache.NewUndoRegistry())

	op, found := c.GetDexOperator(persistence.DexMainOperatorID)
	assert.True(t, found, "main operator")
	assert.Equal(t, mainOperator, *op, "main operator value")

	id, _, found := c.GetDexOperatorByOwner(mainOperator.OwnerRegID)
	assert.True(t, found, "main operator by owner")
	assert.Equal(t, uint32(persistence.DexMainOperatorID), id, "main operator id")

	assert.Equal(t, uint32(1), c.IncDexID(), "first id")
	assert.Equal(t, uint32(2), c.IncDexID(), "second id")

	owner := entities.RegID{Height: 40, Index: 2}
	created := &entities.DexOperator{OwnerRegID: owner, FeeReceiver: owner, Name: "second", Activated: true}
	assert.True(t, c.CreateDexOperator(2, created), "create")
	assert.False(t, c.CreateDexOperator(3, created), "owner already has one")
	assert.False(t, c.CreateDexOperator(persistence.DexMainOperatorID, created), "main id reserved")

	id, op, found = c.GetDexOperatorByOwner(owner)
	assert.True(t, found, "by owner")
	assert.Equal(t, uint32(2), id, "id")
	assert.Equal(t, "second", op.Name, "name")

	disabled := *created
	disabled.Activated = false
	disabled.OwnerRegID = entities.RegID{Height: 41, Index: 2}
	assert.True(t, c.UpdateDexOperator(2, created, &disabled), "update")

	_, _, found = c.GetDexOperatorByOwner(owner)
	assert.False(t, found, "old owner index")
	id, op, found = c.GetDexOperatorByOwner(disabled.OwnerRegID)
	assert.True(t, found, "new owner index")
	assert.Equal(t, uint32(2), id, "new owner id")
	assert.False(t, op.Activated, "deactivated")
}
