// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/waykichain/wiccd/fault"
)

// ValueCodec - encode a stored value
//
// IsEmptyValue identifies values that stand for "absent", writing one
// is the same as erasing the key
type ValueCodec[V any] interface {
	EncodeValue(V) []byte
	DecodeValue([]byte) (V, error)
	IsEmptyValue(V) bool
}

// Emptier - implemented by values that have an empty state
type Emptier interface {
	IsEmpty() bool
}

// RLP - value codec for any RLP encodable type
type RLP[V any] struct{}

// EncodeValue - an encoding failure means the type is not encodable
// which is a programming error
func (RLP[V]) EncodeValue(v V) []byte {
	buffer, err := rlp.EncodeToBytes(v)
	fault.PanicIfError("rlp encode", err)
	return buffer
}

func (RLP[V]) DecodeValue(buffer []byte) (V, error) {
	var v V
	err := rlp.DecodeBytes(buffer, &v)
	return v, err
}

func (RLP[V]) IsEmptyValue(v V) bool {
	if e, ok := any(v).(Emptier); ok {
		return e.IsEmpty()
	}
	return false
}
