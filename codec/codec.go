// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/fault"
)

// KeyCodec - encode a key type to its sortable byte form
//
// IsEmptyKey identifies the sentinel that must never be written
type KeyCodec[K any] interface {
	EncodeKey(K) []byte
	DecodeKey([]byte) (K, error)
	IsEmptyKey(K) bool
}

// KeyFuncs - build a KeyCodec from plain functions
type KeyFuncs[K any] struct {
	Encode  func(K) []byte
	Decode  func([]byte) (K, error)
	IsEmpty func(K) bool
}

func (f KeyFuncs[K]) EncodeKey(k K) []byte              { return f.Encode(k) }
func (f KeyFuncs[K]) DecodeKey(buffer []byte) (K, error) { return f.Decode(buffer) }
func (f KeyFuncs[K]) IsEmptyKey(k K) bool                { return f.IsEmpty(k) }

// StringKey - a whole-key string stored as raw bytes
//
// raw bytes keep partial string prefixes usable for prefix scans
type StringKey struct{}

func (StringKey) EncodeKey(s string) []byte                { return []byte(s) }
func (StringKey) DecodeKey(buffer []byte) (string, error) { return string(buffer), nil }
func (StringKey) IsEmptyKey(s string) bool                 { return "" == s }

// Uint64Key - sortable 8 byte key, zero is allowed
type Uint64Key struct{}

func (Uint64Key) EncodeKey(v uint64) []byte { return SortableUint64(v) }
func (Uint64Key) DecodeKey(buffer []byte) (uint64, error) {
	r := NewReader(buffer)
	v := r.Uint64()
	return v, r.Done()
}
func (Uint64Key) IsEmptyKey(uint64) bool { return false }

// Uint32Key - sortable 4 byte key, zero is allowed
type Uint32Key struct{}

func (Uint32Key) EncodeKey(v uint32) []byte { return NewBuilder().Uint32(v).Bytes() }
func (Uint32Key) DecodeKey(buffer []byte) (uint32, error) {
	r := NewReader(buffer)
	v := r.Uint32()
	return v, r.Done()
}
func (Uint32Key) IsEmptyKey(uint32) bool { return false }

// HashKey - 32 byte identifier, the zero hash is the empty sentinel
type HashKey struct{}

func (HashKey) EncodeKey(h common.Hash) []byte { return h.Bytes() }
func (HashKey) DecodeKey(buffer []byte) (common.Hash, error) {
	if common.HashLength != len(buffer) {
		return common.Hash{}, fault.ErrInvalidKeyLength
	}
	return common.BytesToHash(buffer), nil
}
func (HashKey) IsEmptyKey(h common.Hash) bool { return common.Hash{} == h }
