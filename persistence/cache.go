// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/kvcache"
)

// Cache - operations common to all domain caches
type Cache interface {
	Flush()
	SetOpLogMap(*kvcache.OpLogMap)
	Size() int
}

// flushable is satisfied by both Composite and Simple
type flushable interface {
	Flush()
	SetOpLogMap(*kvcache.OpLogMap)
	Size() int
}

type parts []flushable

func (p parts) flush() {
	for _, c := range p {
		c.Flush()
	}
}

func (p parts) setOpLogMap(m *kvcache.OpLogMap) {
	for _, c := range p {
		c.SetOpLogMap(m)
	}
}

func (p parts) size() int {
	n := 0
	for _, c := range p {
		n += c.Size()
	}
	return n
}

// hashValue - a txid or cdp id stored as a value
type hashValue struct {
	Hash common.Hash
}

func (h hashValue) IsEmpty() bool {
	return common.Hash{} == h.Hash
}

var hashValues = codec.RLP[hashValue]{}

// amountValue - a non-zero counter, zero is stored as absence
type amountValue struct {
	Amount uint64
}

func (a amountValue) IsEmpty() bool {
	return 0 == a.Amount
}

var amountValues = codec.RLP[amountValue]{}

// uint8Key - single byte enumerations
func uint8Key[T ~uint8]() codec.KeyFuncs[T] {
	return codec.KeyFuncs[T]{
		Encode: func(t T) []byte {
			return []byte{byte(t)}
		},
		Decode: func(buffer []byte) (T, error) {
			r := codec.NewReader(buffer)
			t := T(r.Uint8())
			return t, r.Done()
		},
		IsEmpty: func(t T) bool {
			return 0 == t
		},
	}
}
