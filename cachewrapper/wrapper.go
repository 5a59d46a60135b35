// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cachewrapper

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/persistence"
)

// CacheWrapper - one level of every domain cache
type CacheWrapper struct {
	Account   *persistence.AccountCache
	Cdp       *persistence.CdpCache
	Delegate  *persistence.DelegateCache
	Dex       *persistence.DexCache
	SysParam  *persistence.SysParamCache
	SysGovern *persistence.SysGovernCache
	Log       *persistence.LogCache
	TxReceipt *persistence.TxReceiptCache
	TxUTXO    *persistence.TxUTXOCache
	Axc       *persistence.AxcCache

	manager   *Manager // set when stacked directly on the roots
	reg       *kvcache.UndoRegistry
	blockUndo BlockUndo
}

// NewFromManager - wrapper stacked on the root caches
func NewFromManager(m *Manager) *CacheWrapper {
	reg := kvcache.NewUndoRegistry()
	cw := &CacheWrapper{
		Account:   m.account.NewChild(reg),
		Cdp:       m.cdp.NewChild(reg),
		Delegate:  m.delegate.NewChild(reg),
		Dex:       m.dex.NewChild(reg),
		SysParam:  m.sysParam.NewChild(reg),
		SysGovern: m.sysGovern.NewChild(reg),
		Log:       m.txLog.NewChild(reg),
		TxReceipt: m.receipt.NewChild(reg),
		TxUTXO:    m.utxo.NewChild(reg),
		Axc:       m.axc.NewChild(reg),
		manager:   m,
		reg:       reg,
	}
	return cw
}

// NewChild - wrapper stacked on another wrapper
func NewChild(parent *CacheWrapper) *CacheWrapper {
	reg := kvcache.NewUndoRegistry()
	cw := &CacheWrapper{
		Account:   parent.Account.NewChild(reg),
		Cdp:       parent.Cdp.NewChild(reg),
		Delegate:  parent.Delegate.NewChild(reg),
		Dex:       parent.Dex.NewChild(reg),
		SysParam:  parent.SysParam.NewChild(reg),
		SysGovern: parent.SysGovern.NewChild(reg),
		Log:       parent.Log.NewChild(reg),
		TxReceipt: parent.TxReceipt.NewChild(reg),
		TxUTXO:    parent.TxUTXO.NewChild(reg),
		Axc:       parent.Axc.NewChild(reg),
		reg:       reg,
	}
	return cw
}

// SetBaseView - rebind an empty wrapper onto another parent
func (cw *CacheWrapper) SetBaseView(parent *CacheWrapper) {
	cw.Account.SetBaseView(parent.Account)
	cw.Cdp.SetBaseView(parent.Cdp)
	cw.Delegate.SetBaseView(parent.Delegate)
	cw.Dex.SetBaseView(parent.Dex)
	cw.SysParam.SetBaseView(parent.SysParam)
	cw.SysGovern.SetBaseView(parent.SysGovern)
	cw.Log.SetBaseView(parent.Log)
	cw.TxReceipt.SetBaseView(parent.TxReceipt)
	cw.TxUTXO.SetBaseView(parent.TxUTXO)
	cw.Axc.SetBaseView(parent.Axc)
	cw.manager = nil
}

func (cw *CacheWrapper) caches() []persistence.Cache {
	return []persistence.Cache{
		cw.Account,
		cw.Cdp,
		cw.Delegate,
		cw.Dex,
		cw.SysParam,
		cw.SysGovern,
		cw.Log,
		cw.TxReceipt,
		cw.TxUTXO,
		cw.Axc,
	}
}

// Flush - push every level up to the parent
func (cw *CacheWrapper) Flush() {
	for _, c := range cw.caches() {
		c.Flush()
	}
	if nil != cw.manager {
		cw.manager.updateSizeMetrics()
	}
}

// SetOpLogMap - record prior values of every write into m, nil stops
func (cw *CacheWrapper) SetOpLogMap(m *kvcache.OpLogMap) {
	for _, c := range cw.caches() {
		c.SetOpLogMap(m)
	}
}

// Size - bytes held locally
func (cw *CacheWrapper) Size() int {
	n := 0
	for _, c := range cw.caches() {
		n += c.Size()
	}
	return n
}

// ExecuteTx - run fn against a child wrapper
//
// on success the child is flushed into this wrapper and its op-log
// appended to the block undo, on error the child is discarded
func (cw *CacheWrapper) ExecuteTx(txID common.Hash, fn func(*CacheWrapper) error) error {
	child := NewChild(cw)
	opLogs := kvcache.NewOpLogMap()
	child.SetOpLogMap(opLogs)

	err := fn(child)
	if nil != err {
		return err
	}

	child.SetOpLogMap(nil)
	child.Flush()
	cw.blockUndo.TxUndos = append(cw.blockUndo.TxUndos, TxUndo{
		TxID:   txID,
		OpLogs: *opLogs,
	})
	return nil
}

// BlockUndo - undo accumulated by ExecuteTx since the last call,
// which also resets it
func (cw *CacheWrapper) BlockUndo() BlockUndo {
	b := cw.blockUndo
	cw.blockUndo = BlockUndo{}
	return b
}

// UndoBlock - reverse a block, last transaction first
func (cw *CacheWrapper) UndoBlock(undo BlockUndo) {
	for i := len(undo.TxUndos) - 1; i >= 0; i -= 1 {
		cw.reg.Undo(&undo.TxUndos[i].OpLogs)
	}
}
