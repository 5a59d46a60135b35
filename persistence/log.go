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

// LogCache - failures of transactions included in blocks
type LogCache struct {
	fails *kvcache.Composite[execFailKey, entities.ExecuteFail]
	all   parts
}

type execFailKey struct {
	Height uint32
	TxID   common.Hash
}

var execFailKeys = codec.KeyFuncs[execFailKey]{
	Encode: func(k execFailKey) []byte {
		return codec.NewBuilder().Uint32(k.Height).Raw(k.TxID.Bytes()).Bytes()
	},
	Decode: func(buffer []byte) (execFailKey, error) {
		r := codec.NewReader(buffer)
		k := execFailKey{
			Height: r.Uint32(),
			TxID:   common.BytesToHash(r.Raw(common.HashLength)),
		}
		return k, r.Done()
	},
	IsEmpty: func(k execFailKey) bool {
		return common.Hash{} == k.TxID
	},
}

// NewLogCache - root cache over the log partition
func NewLogCache(store storage.Access, reg *kvcache.UndoRegistry) *LogCache {
	c := &LogCache{
		fails: kvcache.NewComposite[execFailKey, entities.ExecuteFail](store, storage.PrefixTxExecuteFail, execFailKeys, codec.RLP[entities.ExecuteFail]{}, reg),
	}
	c.all = parts{c.fails}
	return c
}

// NewChild - cache layered over this one
func (c *LogCache) NewChild(reg *kvcache.UndoRegistry) *LogCache {
	n := &LogCache{
		fails: kvcache.NewCompositeChild(c.fails, reg),
	}
	n.all = parts{n.fails}
	return n
}

// SetBaseView - rebind an empty child
func (c *LogCache) SetBaseView(parent *LogCache) {
	c.fails.SetBase(parent.fails)
}

func (c *LogCache) Flush()                          { c.all.flush() }
func (c *LogCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *LogCache) Size() int                       { return c.all.size() }

// SetExecuteFail - record why a transaction failed
func (c *LogCache) SetExecuteFail(height uint32, txID common.Hash, code uint8, reason string, message string) bool {
	return c.fails.SetData(execFailKey{Height: height, TxID: txID}, entities.ExecuteFail{
		Code:    code,
		Reason:  reason,
		Message: message,
	})
}

// GetExecuteFail - failure record of a transaction
func (c *LogCache) GetExecuteFail(height uint32, txID common.Hash) (entities.ExecuteFail, bool) {
	return c.fails.GetData(execFailKey{Height: height, TxID: txID})
}

// ExecuteFailRecord - failure with its transaction
type ExecuteFailRecord struct {
	TxID common.Hash
	Fail entities.ExecuteFail
}

// ListExecuteFails - all failures recorded at a height
func (c *LogCache) ListExecuteFails(height uint32) []ExecuteFailRecord {
	elements, _ := c.fails.GetAllElements(codec.NewBuilder().Uint32(height).Bytes(), 0)
	list := make([]ExecuteFailRecord, 0, len(elements))
	for _, e := range elements {
		list = append(list, ExecuteFailRecord{TxID: e.Key.TxID, Fail: e.Value})
	}
	return list
}
