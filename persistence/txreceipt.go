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

// TxReceiptCache - coin movements of each transaction
type TxReceiptCache struct {
	receipts *kvcache.Composite[common.Hash, entities.Receipts]
	all      parts
}

// NewTxReceiptCache - root cache over the txreceipt partition
func NewTxReceiptCache(store storage.Access, reg *kvcache.UndoRegistry) *TxReceiptCache {
	c := &TxReceiptCache{
		receipts: kvcache.NewComposite[common.Hash, entities.Receipts](store, storage.PrefixTxReceipt, codec.HashKey{}, codec.RLP[entities.Receipts]{}, reg),
	}
	c.all = parts{c.receipts}
	return c
}

// NewChild - cache layered over this one
func (c *TxReceiptCache) NewChild(reg *kvcache.UndoRegistry) *TxReceiptCache {
	n := &TxReceiptCache{
		receipts: kvcache.NewCompositeChild(c.receipts, reg),
	}
	n.all = parts{n.receipts}
	return n
}

// SetBaseView - rebind an empty child
func (c *TxReceiptCache) SetBaseView(parent *TxReceiptCache) {
	c.receipts.SetBase(parent.receipts)
}

func (c *TxReceiptCache) Flush()                          { c.all.flush() }
func (c *TxReceiptCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *TxReceiptCache) Size() int                       { return c.all.size() }

// SetTxReceipts - replace the receipts of a transaction
func (c *TxReceiptCache) SetTxReceipts(txID common.Hash, receipts entities.Receipts) bool {
	return c.receipts.SetData(txID, append(entities.Receipts{}, receipts...))
}

// GetTxReceipts - receipts of a transaction
func (c *TxReceiptCache) GetTxReceipts(txID common.Hash) (entities.Receipts, bool) {
	return c.receipts.GetData(txID)
}
