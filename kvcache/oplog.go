// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvcache

import (
	"sort"
	"sync"

	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/storage"
)

// OpLog - the value a key held before a write
//
// an empty Value means the key was absent
type OpLog struct {
	Key   []byte
	Value []byte
}

// PrefixLogs - op-logs for one record type in write order
type PrefixLogs struct {
	Prefix storage.Prefix
	Logs   []OpLog
}

// OpLogMap - op-logs of one transaction
type OpLogMap struct {
	Entries []PrefixLogs
}

// NewOpLogMap - an empty map
func NewOpLogMap() *OpLogMap {
	return &OpLogMap{}
}

// Add - record a prior value
func (m *OpLogMap) Add(prefix storage.Prefix, op OpLog) {
	for i := range m.Entries {
		if prefix == m.Entries[i].Prefix {
			m.Entries[i].Logs = append(m.Entries[i].Logs, op)
			return
		}
	}
	m.Entries = append(m.Entries, PrefixLogs{
		Prefix: prefix,
		Logs:   []OpLog{op},
	})
}

// Get - logs of a prefix in write order
func (m *OpLogMap) Get(prefix storage.Prefix) []OpLog {
	for _, e := range m.Entries {
		if prefix == e.Prefix {
			return e.Logs
		}
	}
	return nil
}

// IsEmpty - true if nothing was written
func (m *OpLogMap) IsEmpty() bool {
	return 0 == len(m.Entries)
}

// Count - total number of records
func (m *OpLogMap) Count() int {
	n := 0
	for _, e := range m.Entries {
		n += len(e.Logs)
	}
	return n
}

// UndoFunc - replay a prefix's op-logs in reverse
type UndoFunc func([]OpLog)

// UndoRegistry - undo functions of one cache chain level, by prefix
type UndoRegistry struct {
	sync.Mutex
	funcs map[storage.Prefix]UndoFunc
}

// NewUndoRegistry - an empty registry
func NewUndoRegistry() *UndoRegistry {
	return &UndoRegistry{
		funcs: make(map[storage.Prefix]UndoFunc),
	}
}

func (r *UndoRegistry) register(prefix storage.Prefix, fn UndoFunc) {
	r.Lock()
	defer r.Unlock()

	if _, ok := r.funcs[prefix]; ok {
		fault.Panicf("undo registry: prefix: %q already registered", prefix)
	}
	r.funcs[prefix] = fn
}

// Prefixes - registered prefixes in ascending order
func (r *UndoRegistry) Prefixes() []storage.Prefix {
	r.Lock()
	defer r.Unlock()

	prefixes := make([]storage.Prefix, 0, len(r.funcs))
	for p := range r.funcs {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}

// Undo - reverse all writes recorded in a map
//
// a prefix with no registered cache is a bug in the caller
func (r *UndoRegistry) Undo(m *OpLogMap) {
	if nil == m {
		return
	}
	for _, e := range m.Entries {
		r.Lock()
		fn, ok := r.funcs[e.Prefix]
		r.Unlock()
		if !ok {
			fault.Panicf("undo registry: prefix: %q not registered", e.Prefix)
		}
		fn(e.Logs)
	}
}
