// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvcache

import (
	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/storage"
)

type unit struct{}

// the single slot is stored under the bare prefix
type unitKey struct{}

func (unitKey) EncodeKey(unit) []byte { return nil }
func (unitKey) DecodeKey(buffer []byte) (unit, error) {
	if 0 != len(buffer) {
		return unit{}, fault.ErrInvalidKeyLength
	}
	return unit{}, nil
}
func (unitKey) IsEmptyKey(unit) bool { return false }

// Simple - cache level holding a single value for one prefix
type Simple[V any] struct {
	c *Composite[unit, V]
}

// NewSimple - root level over a database partition
func NewSimple[V any](store storage.Access, prefix storage.Prefix, values codec.ValueCodec[V], reg *UndoRegistry) *Simple[V] {
	return &Simple[V]{
		c: NewComposite[unit, V](store, prefix, unitKey{}, values, reg),
	}
}

// NewSimpleChild - level above an existing one
func NewSimpleChild[V any](parent *Simple[V], reg *UndoRegistry) *Simple[V] {
	return &Simple[V]{
		c: NewCompositeChild(parent.c, reg),
	}
}

// GetData - most local visible value
func (s *Simple[V]) GetData() (V, bool) {
	return s.c.GetData(unit{})
}

// HasData - true if a value is visible
func (s *Simple[V]) HasData() bool {
	return s.c.HasData(unit{})
}

// SetData - write locally
func (s *Simple[V]) SetData(value V) bool {
	return s.c.SetData(unit{}, value)
}

// EraseData - leave a tombstone
func (s *Simple[V]) EraseData() bool {
	return s.c.EraseData(unit{})
}

// Flush - push the value upstream if modified
func (s *Simple[V]) Flush() {
	s.c.Flush()
}

// UndoData - restore one prior value
func (s *Simple[V]) UndoData(op OpLog) {
	s.c.UndoData(op)
}

// UndoDataList - restore prior values, newest first
func (s *Simple[V]) UndoDataList(logs []OpLog) {
	s.c.UndoDataList(logs)
}

// SetBase - rebind an empty level onto a new parent
func (s *Simple[V]) SetBase(parent *Simple[V]) {
	s.c.SetBase(parent.c)
}

// SetOpLogMap - attach the undo recorder
func (s *Simple[V]) SetOpLogMap(m *OpLogMap) {
	s.c.SetOpLogMap(m)
}

// Size - bytes held by a locally modified value
func (s *Simple[V]) Size() int {
	return s.c.Size()
}

// Prefix - record type served
func (s *Simple[V]) Prefix() storage.Prefix {
	return s.c.Prefix()
}
