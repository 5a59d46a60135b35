// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvcache

import (
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/storage"
)

var (
	logOnce sync.Once
	log     *logger.L
)

func getLog() *logger.L {
	logOnce.Do(func() {
		log = logger.New("kvcache")
	})
	return log
}

type item[K any, V any] struct {
	key      K
	value    V
	deleted  bool
	modified bool
}

// upstream of a cache level, one of parentSource or storeSource
type source[K any, V any] interface {
	lookup(encoded string, key K) (V, bool)
	newLevel(scan []byte) level[K, V]
}

type parentSource[K any, V any] struct {
	parent *Composite[K, V]
}

type storeSource[K any, V any] struct {
	store storage.Access
	owner *Composite[K, V]
}

// Composite - keyed cache level for one record prefix
type Composite[K any, V any] struct {
	prefix storage.Prefix
	keys   codec.KeyCodec[K]
	values codec.ValueCodec[V]
	up     source[K, V]
	items  map[string]*item[K, V]
	opLogs *OpLogMap
	size   int
}

// NewComposite - root level over a database partition
func NewComposite[K any, V any](store storage.Access, prefix storage.Prefix, keys codec.KeyCodec[K], values codec.ValueCodec[V], reg *UndoRegistry) *Composite[K, V] {
	partition, ok := prefix.PartitionOf()
	if !ok || partition != store.Name() {
		fault.Panicf("kvcache: prefix: %q does not belong to partition: %q", prefix, store.Name())
	}
	c := &Composite[K, V]{
		prefix: prefix,
		keys:   keys,
		values: values,
		items:  make(map[string]*item[K, V]),
	}
	c.up = &storeSource[K, V]{
		store: store,
		owner: c,
	}
	reg.register(prefix, c.UndoDataList)
	return c
}

// NewCompositeChild - level above an existing one
func NewCompositeChild[K any, V any](parent *Composite[K, V], reg *UndoRegistry) *Composite[K, V] {
	c := &Composite[K, V]{
		prefix: parent.prefix,
		keys:   parent.keys,
		values: parent.values,
		up:     &parentSource[K, V]{parent: parent},
		items:  make(map[string]*item[K, V]),
	}
	reg.register(c.prefix, c.UndoDataList)
	return c
}

// Prefix - record type served
func (c *Composite[K, V]) Prefix() storage.Prefix {
	return c.prefix
}

// GetData - most local visible value
func (c *Composite[K, V]) GetData(key K) (V, bool) {
	if c.keys.IsEmptyKey(key) {
		var empty V
		return empty, false
	}
	return c.lookup(string(c.keys.EncodeKey(key)), key)
}

// HasData - GetData without the value
func (c *Composite[K, V]) HasData(key K) bool {
	_, found := c.GetData(key)
	return found
}

func (c *Composite[K, V]) lookup(encoded string, key K) (V, bool) {
	if it, ok := c.items[encoded]; ok {
		if it.deleted {
			var empty V
			return empty, false
		}
		return it.value, true
	}

	value, found := c.up.lookup(encoded, key)
	if found {
		c.items[encoded] = &item[K, V]{
			key:   key,
			value: value,
		}
	}
	return value, found
}

// SetData - write locally, fails only for the empty key
//
// writing an empty value is the same as EraseData
func (c *Composite[K, V]) SetData(key K, value V) bool {
	if c.keys.IsEmptyKey(key) {
		return false
	}
	encoded := string(c.keys.EncodeKey(key))
	c.addOpLog(encoded, key)
	c.put(encoded, &item[K, V]{
		key:      key,
		value:    value,
		deleted:  c.values.IsEmptyValue(value),
		modified: true,
	})
	return true
}

// EraseData - leave a tombstone if the key is visible
func (c *Composite[K, V]) EraseData(key K) bool {
	if c.keys.IsEmptyKey(key) {
		return false
	}
	encoded := string(c.keys.EncodeKey(key))
	if _, found := c.lookup(encoded, key); !found {
		return true
	}
	c.addOpLog(encoded, key)
	c.put(encoded, &item[K, V]{
		key:      key,
		deleted:  true,
		modified: true,
	})
	return true
}

func (c *Composite[K, V]) addOpLog(encoded string, key K) {
	if nil == c.opLogs {
		return
	}
	op := OpLog{
		Key: []byte(encoded),
	}
	if old, found := c.lookup(encoded, key); found {
		op.Value = c.values.EncodeValue(old)
	}
	c.opLogs.Add(c.prefix, op)
}

// replace a local entry keeping the size counter in step
func (c *Composite[K, V]) put(encoded string, it *item[K, V]) {
	if old, ok := c.items[encoded]; ok && old.modified {
		c.size -= c.itemSize(encoded, old)
	}
	c.items[encoded] = it
	c.size += c.itemSize(encoded, it)
}

func (c *Composite[K, V]) itemSize(encoded string, it *item[K, V]) int {
	if it.deleted {
		return len(encoded)
	}
	return len(encoded) + len(c.values.EncodeValue(it.value))
}

// Flush - push modified entries upstream and clear the level
func (c *Composite[K, V]) Flush() {
	if 0 == len(c.items) {
		return
	}

	switch up := c.up.(type) {
	case *parentSource[K, V]:
		for encoded, it := range c.items {
			if it.modified {
				up.parent.put(encoded, it)
			}
		}

	case *storeSource[K, V]:
		up.write(c.items)

	default:
		fault.Panicf("kvcache: %q has no upstream", c.prefix)
	}

	c.items = make(map[string]*item[K, V])
	c.size = 0
}

// UndoData - restore one prior value
func (c *Composite[K, V]) UndoData(op OpLog) {
	key, err := c.keys.DecodeKey(op.Key)
	if nil != err {
		fault.Panicf("kvcache: %q undo key: %x  error: %s", c.prefix, op.Key, err)
	}
	it := &item[K, V]{
		key:      key,
		deleted:  0 == len(op.Value),
		modified: true,
	}
	if !it.deleted {
		it.value, err = c.values.DecodeValue(op.Value)
		if nil != err {
			fault.Panicf("kvcache: %q undo value: %x  error: %s", c.prefix, op.Value, err)
		}
	}
	c.put(string(op.Key), it)
}

// UndoDataList - restore prior values, newest first
func (c *Composite[K, V]) UndoDataList(logs []OpLog) {
	for i := len(logs) - 1; i >= 0; i -= 1 {
		c.UndoData(logs[i])
	}
}

// SetBase - rebind onto a new parent
//
// only an empty level that is not a database root can be rebound
func (c *Composite[K, V]) SetBase(parent *Composite[K, V]) {
	if _, ok := c.up.(*storeSource[K, V]); ok {
		fault.Panicf("kvcache: %q cannot rebind a database root", c.prefix)
	}
	if 0 != len(c.items) {
		fault.Panicf("kvcache: %q cannot rebind with: %d local items", c.prefix, len(c.items))
	}
	c.up = &parentSource[K, V]{parent: parent}
}

// SetOpLogMap - attach (or with nil detach) the undo recorder
func (c *Composite[K, V]) SetOpLogMap(m *OpLogMap) {
	c.opLogs = m
}

// Size - bytes held by locally modified entries
func (c *Composite[K, V]) Size() int {
	return c.size
}

// Keys - locally modified keys in encoded order
func (c *Composite[K, V]) Keys() []K {
	encoded := make([]string, 0, len(c.items))
	for e, it := range c.items {
		if it.modified {
			encoded = append(encoded, e)
		}
	}
	sort.Strings(encoded)

	keys := make([]K, 0, len(encoded))
	for _, e := range encoded {
		keys = append(keys, c.items[e].key)
	}
	return keys
}

func (p *parentSource[K, V]) lookup(encoded string, key K) (V, bool) {
	return p.parent.lookup(encoded, key)
}

func (s *storeSource[K, V]) lookup(encoded string, _ K) (V, bool) {
	var empty V
	buffer, err := s.store.Get(s.owner.prefix.Key([]byte(encoded)))
	fault.PanicIfError("kvcache: database read", err)
	if nil == buffer {
		return empty, false
	}
	value, err := s.owner.values.DecodeValue(buffer)
	if nil != err {
		fault.Panicf("kvcache: %q corrupt value for key: %x  error: %s", s.owner.prefix, encoded, err)
	}
	if s.owner.values.IsEmptyValue(value) {
		return empty, false
	}
	return value, true
}

// join an open batch or run a batch of our own
func (s *storeSource[K, V]) write(items map[string]*item[K, V]) {
	ownBatch := !s.store.InUse()
	if ownBatch {
		err := s.store.Begin()
		fault.PanicIfError("kvcache: begin batch", err)
	}

	n := 0
	for encoded, it := range items {
		if !it.modified {
			continue
		}
		key := s.owner.prefix.Key([]byte(encoded))
		if it.deleted {
			s.store.Delete(key)
		} else {
			s.store.Put(key, s.owner.values.EncodeValue(it.value))
		}
		n += 1
	}

	if ownBatch {
		err := s.store.Commit()
		fault.PanicIfError("kvcache: commit batch", err)
	}
	getLog().Debugf("flush: %s  records: %d  own batch: %t", s.owner.prefix, n, ownBatch)
}
