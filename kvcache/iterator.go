// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvcache

import (
	"bytes"
	"sort"

	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/waykichain/wiccd/fault"
)

// one sorted source of entries in a cache chain
//
// keys are encoded keys without the record prefix
type level[K any, V any] interface {
	seek(key []byte)
	valid() bool
	key() []byte
	entry() (K, V, bool)
	next()
	release()
}

// Iterator - ascending scan of all live keys under an encoded prefix
//
// every level of the chain contributes, the most local entry for a
// key wins and tombstones are skipped
type Iterator[K any, V any] struct {
	cache  *Composite[K, V]
	root   level[K, V]
	prefix []byte
	key    K
	value  V
	ok     bool
}

// NewIterator - scan keys whose encoding starts with prefix
//
// a nil prefix scans the whole record type, a leading part of a tuple
// key is a valid prefix
func (c *Composite[K, V]) NewIterator(prefix []byte) *Iterator[K, V] {
	return &Iterator[K, V]{
		cache:  c,
		root:   c.newLevel(prefix),
		prefix: prefix,
	}
}

// First - position at the lowest key
func (it *Iterator[K, V]) First() bool {
	it.root.seek(it.prefix)
	return it.settle()
}

// Seek - position at the first key at or after key
func (it *Iterator[K, V]) Seek(key K) bool {
	encoded := it.cache.keys.EncodeKey(key)
	if bytes.Compare(encoded, it.prefix) < 0 {
		encoded = it.prefix
	}
	it.root.seek(encoded)
	return it.settle()
}

// SeekUpper - position after every key that starts with key
func (it *Iterator[K, V]) SeekUpper(key K) bool {
	limit := ldb_util.BytesPrefix(it.cache.keys.EncodeKey(key)).Limit
	if nil == limit {
		it.ok = false
		return false
	}
	if bytes.Compare(limit, it.prefix) < 0 {
		limit = it.prefix
	}
	it.root.seek(limit)
	return it.settle()
}

// Next - advance to the following live key
func (it *Iterator[K, V]) Next() bool {
	if !it.ok {
		return false
	}
	it.root.next()
	return it.settle()
}

// IsValid - positioned on a key within the prefix
func (it *Iterator[K, V]) IsValid() bool {
	return it.ok
}

// Key - current key
func (it *Iterator[K, V]) Key() K {
	return it.key
}

// Value - current value
func (it *Iterator[K, V]) Value() V {
	return it.value
}

// Close - release database resources
func (it *Iterator[K, V]) Close() {
	it.root.release()
	it.ok = false
}

// skip tombstones and stop at the end of the prefix
func (it *Iterator[K, V]) settle() bool {
	for it.root.valid() {
		if !bytes.HasPrefix(it.root.key(), it.prefix) {
			break
		}
		key, value, deleted := it.root.entry()
		if !deleted {
			it.key = key
			it.value = value
			it.ok = true
			return true
		}
		it.root.next()
	}
	var k K
	var v V
	it.key = k
	it.value = v
	it.ok = false
	return false
}

// Element - one key and value from GetAllElements
type Element[K any, V any] struct {
	Key   K
	Value V
}

// GetAllElements - up to max live entries under a prefix
//
// max of zero means no limit, more is true when entries were left
func (c *Composite[K, V]) GetAllElements(prefix []byte, max int) (elements []Element[K, V], more bool) {
	it := c.NewIterator(prefix)
	defer it.Close()

	for ok := it.First(); ok; ok = it.Next() {
		if 0 != max && len(elements) >= max {
			return elements, true
		}
		elements = append(elements, Element[K, V]{
			Key:   it.Key(),
			Value: it.Value(),
		})
	}
	return elements, false
}

// this level merged over its upstream
func (c *Composite[K, V]) newLevel(scan []byte) level[K, V] {
	local := &localLevel[K, V]{}
	for encoded, it := range c.items {
		if bytes.HasPrefix([]byte(encoded), scan) {
			local.keys = append(local.keys, encoded)
			local.items = append(local.items, it)
		}
	}
	sort.Sort(local)
	return &mergeLevel[K, V]{
		local: local,
		upper: c.up.newLevel(scan),
	}
}

func (p *parentSource[K, V]) newLevel(scan []byte) level[K, V] {
	return p.parent.newLevel(scan)
}

func (s *storeSource[K, V]) newLevel(scan []byte) level[K, V] {
	prefix := s.owner.prefix
	return &storeLevel[K, V]{
		owner: s.owner,
		iter:  s.store.Iterator(ldb_util.BytesPrefix(prefix.Key(scan))),
	}
}

// snapshot of a level's local entries
type localLevel[K any, V any] struct {
	keys  []string
	items []*item[K, V]
	index int
}

func (l *localLevel[K, V]) Len() int           { return len(l.keys) }
func (l *localLevel[K, V]) Less(i, j int) bool { return l.keys[i] < l.keys[j] }
func (l *localLevel[K, V]) Swap(i, j int) {
	l.keys[i], l.keys[j] = l.keys[j], l.keys[i]
	l.items[i], l.items[j] = l.items[j], l.items[i]
}

func (l *localLevel[K, V]) seek(key []byte) {
	k := string(key)
	l.index = sort.SearchStrings(l.keys, k)
}

func (l *localLevel[K, V]) valid() bool { return l.index < len(l.keys) }
func (l *localLevel[K, V]) key() []byte { return []byte(l.keys[l.index]) }
func (l *localLevel[K, V]) next()       { l.index += 1 }
func (l *localLevel[K, V]) release()    {}

func (l *localLevel[K, V]) entry() (K, V, bool) {
	it := l.items[l.index]
	return it.key, it.value, it.deleted
}

// a local level over everything above it
type mergeLevel[K any, V any] struct {
	local *localLevel[K, V]
	upper level[K, V]
}

func (m *mergeLevel[K, V]) seek(key []byte) {
	m.local.seek(key)
	m.upper.seek(key)
}

func (m *mergeLevel[K, V]) valid() bool {
	return m.local.valid() || m.upper.valid()
}

// negative: local is current, zero: same key, positive: upper is current
func (m *mergeLevel[K, V]) compare() int {
	switch {
	case !m.upper.valid():
		return -1
	case !m.local.valid():
		return 1
	default:
		return bytes.Compare(m.local.key(), m.upper.key())
	}
}

func (m *mergeLevel[K, V]) key() []byte {
	if m.compare() <= 0 {
		return m.local.key()
	}
	return m.upper.key()
}

func (m *mergeLevel[K, V]) entry() (K, V, bool) {
	if m.compare() <= 0 {
		return m.local.entry()
	}
	return m.upper.entry()
}

func (m *mergeLevel[K, V]) next() {
	c := m.compare()
	if c <= 0 {
		m.local.next()
	}
	if c >= 0 {
		m.upper.next()
	}
}

func (m *mergeLevel[K, V]) release() {
	m.local.release()
	m.upper.release()
}

// committed data of the root partition
type storeLevel[K any, V any] struct {
	owner *Composite[K, V]
	iter  iterator.Iterator
	ok    bool
}

func (s *storeLevel[K, V]) seek(key []byte) {
	s.ok = s.iter.Seek(s.owner.prefix.Key(key))
}

func (s *storeLevel[K, V]) valid() bool { return s.ok }

func (s *storeLevel[K, V]) key() []byte {
	return s.owner.prefix.Strip(s.iter.Key())
}

func (s *storeLevel[K, V]) next() {
	s.ok = s.iter.Next()
}

func (s *storeLevel[K, V]) release() {
	s.iter.Release()
	s.ok = false
}

func (s *storeLevel[K, V]) entry() (K, V, bool) {
	encoded := append([]byte{}, s.key()...)
	key, err := s.owner.keys.DecodeKey(encoded)
	if nil != err {
		fault.Panicf("kvcache: %q corrupt key: %x  error: %s", s.owner.prefix, encoded, err)
	}
	value, err := s.owner.values.DecodeValue(s.iter.Value())
	if nil != err {
		fault.Panicf("kvcache: %q corrupt value for key: %x  error: %s", s.owner.prefix, encoded, err)
	}
	return key, value, s.owner.values.IsEmptyValue(value)
}
