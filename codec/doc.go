// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - byte encodings for stored keys and values
//
// Keys must sort in LevelDB byte order the same way as their logical
// order, so every key component is either fixed width or self delimiting:
//
//   uint64/32/16/8 = big endian, fixed width
//   descending     = big endian (MaxUint64 - value), 8 bytes
//   hash           = 32 raw bytes
//   string         = raw bytes when it is the whole key
//                    varint length ++ bytes inside a tuple
//   tuple          = concatenation of its components
//
// Since a tuple is a plain concatenation, the encoding of its leading
// components is a byte prefix of the full key and can drive a LevelDB
// prefix scan.
//
// Values are RLP encoded.  An encoded value is never zero length so an
// empty byte slice is free to represent "absent" in undo logs.
package codec
