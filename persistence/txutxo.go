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

// TxUTXOCache - locked coin outputs and their password proofs
type TxUTXOCache struct {
	utxos  *kvcache.Composite[entities.OutPoint, entities.Utxo]
	proofs *kvcache.Composite[entities.PasswordProofKey, hashValue]
	all    parts
}

// NewTxUTXOCache - root cache over the txutxo partition
func NewTxUTXOCache(store storage.Access, reg *kvcache.UndoRegistry) *TxUTXOCache {
	c := &TxUTXOCache{
		utxos:  kvcache.NewComposite[entities.OutPoint, entities.Utxo](store, storage.PrefixUtxo, entities.OutPointKey, codec.RLP[entities.Utxo]{}, reg),
		proofs: kvcache.NewComposite[entities.PasswordProofKey, hashValue](store, storage.PrefixUtxoPassword, entities.PasswordProofKeyCodec, hashValues, reg),
	}
	c.all = parts{c.utxos, c.proofs}
	return c
}

// NewChild - cache layered over this one
func (c *TxUTXOCache) NewChild(reg *kvcache.UndoRegistry) *TxUTXOCache {
	n := &TxUTXOCache{
		utxos:  kvcache.NewCompositeChild(c.utxos, reg),
		proofs: kvcache.NewCompositeChild(c.proofs, reg),
	}
	n.all = parts{n.utxos, n.proofs}
	return n
}

// SetBaseView - rebind an empty child
func (c *TxUTXOCache) SetBaseView(parent *TxUTXOCache) {
	c.utxos.SetBase(parent.utxos)
	c.proofs.SetBase(parent.proofs)
}

func (c *TxUTXOCache) Flush()                          { c.all.flush() }
func (c *TxUTXOCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *TxUTXOCache) Size() int                       { return c.all.size() }

// SetUtxoTx - record an unspent output
func (c *TxUTXOCache) SetUtxoTx(point entities.OutPoint, utxo entities.Utxo) bool {
	return c.utxos.SetData(point, utxo)
}

// GetUtxoTx - unspent output
func (c *TxUTXOCache) GetUtxoTx(point entities.OutPoint) (entities.Utxo, bool) {
	return c.utxos.GetData(point)
}

// DelUtxoTx - spend an output
func (c *TxUTXOCache) DelUtxoTx(point entities.OutPoint) bool {
	return c.utxos.EraseData(point)
}

// SetUtxoPasswordProof - proof hash submitted by a spender
func (c *TxUTXOCache) SetUtxoPasswordProof(key entities.PasswordProofKey, proof common.Hash) bool {
	return c.proofs.SetData(key, hashValue{Hash: proof})
}

// GetUtxoPasswordProof - proof hash of a spender
func (c *TxUTXOCache) GetUtxoPasswordProof(key entities.PasswordProofKey) (common.Hash, bool) {
	h, found := c.proofs.GetData(key)
	return h.Hash, found
}

// DelUtxoPasswordProof - remove a proof
func (c *TxUTXOCache) DelUtxoPasswordProof(key entities.PasswordProofKey) bool {
	return c.proofs.EraseData(key)
}
