// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/binary"
	"math"
)

// Uint64Size - bytes in a sortable uint64
const Uint64Size = 8

// SortableUint64 - big endian so byte order equals numeric order
func SortableUint64(value uint64) []byte {
	buffer := make([]byte, Uint64Size)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer
}

// Descending - sortable key giving descending numeric order
//
// encodes MaxUint64 - value big endian so that ascending byte order
// of the keys corresponds to descending order of the values:
//
//   a > b  <=>  Descending(a) < Descending(b)
//
// the full range is covered: 0 maps to all 0xff bytes and MaxUint64
// maps to all zero bytes
func Descending(value uint64) []byte {
	return SortableUint64(math.MaxUint64 - value)
}

// FromDescending - recover the value from a Descending key
func FromDescending(buffer []byte) (uint64, error) {
	if len(buffer) < Uint64Size {
		return 0, errTruncated
	}
	return math.MaxUint64 - binary.BigEndian.Uint64(buffer), nil
}
