// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// AppendVarint64 - append the Varint64 form of a value to a buffer
//
// bytes 1..8 carry 7 bits each with the top bit as a continuation
// flag, a ninth byte (if reached) carries the remaining 8 bits
func AppendVarint64(buffer []byte, value uint64) []byte {
	for i := 0; i < Varint64MaximumBytes-1; i += 1 {
		if value < 0x80 {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value)|0x80)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// ReadVarint64 - decode a Varint64 from the start of a buffer
//
// returns the value and the number of bytes consumed,
// a truncated buffer gives 0, 0
func ReadVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	shift := uint(0)
	for count := 0; count < len(buffer) && count < Varint64MaximumBytes; count += 1 {
		b := uint64(buffer[count])
		if Varint64MaximumBytes-1 == count {
			return value | b<<shift, count + 1
		}
		value |= (b & 0x7f) << shift
		if 0 == b&0x80 {
			return value, count + 1
		}
		shift += 7
	}
	return 0, 0
}
