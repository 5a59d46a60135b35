// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cachewrapper

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/persistence"
	"github.com/waykichain/wiccd/storage"
)

// Manager - root caches over the opened partitions
type Manager struct {
	sync.Mutex

	log    *logger.L
	params *chain.Parameters
	stores map[storage.Partition]storage.Access
	roots  map[storage.Partition]persistence.Cache

	account   *persistence.AccountCache
	cdp       *persistence.CdpCache
	delegate  *persistence.DelegateCache
	dex       *persistence.DexCache
	sysParam  *persistence.SysParamCache
	sysGovern *persistence.SysGovernCache
	txLog     *persistence.LogCache
	receipt   *persistence.TxReceiptCache
	utxo      *persistence.TxUTXOCache
	axc       *persistence.AxcCache
}

// Open - manager over the partitions opened by storage.Initialise
func Open(params *chain.Parameters) (*Manager, error) {
	stores := make(map[storage.Partition]storage.Access, len(storage.Partitions))
	for _, partition := range storage.Partitions {
		store, err := storage.Database(partition)
		if nil != err {
			return nil, err
		}
		stores[partition] = store
	}
	return NewManager(stores, params)
}

// NewManager - manager over an explicit set of stores
//
// every partition must be present
func NewManager(stores map[storage.Partition]storage.Access, params *chain.Parameters) (*Manager, error) {
	if nil == params {
		return nil, fault.ErrInvalidChain
	}
	for _, partition := range storage.Partitions {
		if _, ok := stores[partition]; !ok {
			return nil, fault.ErrPartitionNotFound
		}
	}

	// root levels never record op-logs, their registry only
	// guards against two caches sharing a prefix
	reg := kvcache.NewUndoRegistry()

	m := &Manager{
		log:       logger.New("cachewrapper"),
		params:    params,
		stores:    stores,
		account:   persistence.NewAccountCache(stores[storage.Account], reg),
		cdp:       persistence.NewCdpCache(stores[storage.Cdp], reg),
		delegate:  persistence.NewDelegateCache(stores[storage.Delegate], reg),
		dex:       persistence.NewDexCache(stores[storage.Dex], params.DexMainOperator, reg),
		sysParam:  persistence.NewSysParamCache(stores[storage.SysParam], params.InitialTotalBpsSize, reg),
		sysGovern: persistence.NewSysGovernCache(stores[storage.Governance], params.GovernorBootstrap, reg),
		txLog:     persistence.NewLogCache(stores[storage.Log], reg),
		receipt:   persistence.NewTxReceiptCache(stores[storage.TxReceipt], reg),
		utxo:      persistence.NewTxUTXOCache(stores[storage.TxUTXO], reg),
		axc:       persistence.NewAxcCache(stores[storage.Axc], params.AxcSwapPairs, reg),
	}
	m.roots = map[storage.Partition]persistence.Cache{
		storage.Account:    m.account,
		storage.Cdp:        m.cdp,
		storage.Delegate:   m.delegate,
		storage.Dex:        m.dex,
		storage.SysParam:   m.sysParam,
		storage.Governance: m.sysGovern,
		storage.Log:        m.txLog,
		storage.TxReceipt:  m.receipt,
		storage.TxUTXO:     m.utxo,
		storage.Axc:        m.axc,
	}

	m.log.Infof("chain: %s  partitions: %d", params.Name, len(stores))
	return m, nil
}

// Params - chain parameters the roots were built with
func (m *Manager) Params() *chain.Parameters {
	return m.params
}

// Size - bytes held by the unflushed roots
func (m *Manager) Size() int {
	m.Lock()
	defer m.Unlock()

	n := 0
	for _, c := range m.roots {
		n += c.Size()
	}
	return n
}

// publish the unflushed size of each root
func (m *Manager) updateSizeMetrics() {
	m.Lock()
	defer m.Unlock()

	stats := storage.Stats()
	for partition, c := range m.roots {
		stats.SetCacheBytes(partition, uint64(c.Size()))
	}
}

// Flush - write every root cache to its database
//
// each partition receives exactly one batch, so all records of one
// partition written since the last flush land together or not at all
func (m *Manager) Flush() error {
	m.Lock()
	defer m.Unlock()

	begun := make([]storage.Access, 0, len(storage.Partitions))
	abort := func() {
		for _, store := range begun {
			store.Abort()
		}
	}

	for _, partition := range storage.Partitions {
		store := m.stores[partition]
		err := store.Begin()
		if nil != err {
			m.log.Errorf("begin: %s  error: %s", partition, err)
			abort()
			return err
		}
		begun = append(begun, store)
	}

	stats := storage.Stats()
	for _, partition := range storage.Partitions {
		c := m.roots[partition]
		size := c.Size()
		c.Flush()
		if 0 != size {
			stats.ObserveCacheFlush(partition)
		}
		stats.SetCacheBytes(partition, 0)
	}

	for i, partition := range storage.Partitions {
		err := m.stores[partition].Commit()
		if nil != err {
			// earlier partitions are already on disk
			m.log.Criticalf("commit: %s  error: %s", partition, err)
			begun = begun[i+1:]
			abort()
			return err
		}
	}

	m.log.Debug("flushed")
	return nil
}
