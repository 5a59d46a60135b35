// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/binary"
	"math"

	"github.com/waykichain/wiccd/fault"
)

var errTruncated = fault.ErrTruncatedKey

// Builder - accumulate the components of a tuple key
type Builder struct {
	buffer []byte
}

// NewBuilder - start a tuple key
func NewBuilder() *Builder {
	return &Builder{
		buffer: make([]byte, 0, 64),
	}
}

// Uint64 - append a fixed width big endian value
func (b *Builder) Uint64(value uint64) *Builder {
	b.buffer = binary.BigEndian.AppendUint64(b.buffer, value)
	return b
}

// Uint32 - append a fixed width big endian value
func (b *Builder) Uint32(value uint32) *Builder {
	b.buffer = binary.BigEndian.AppendUint32(b.buffer, value)
	return b
}

// Uint16 - append a fixed width big endian value
func (b *Builder) Uint16(value uint16) *Builder {
	b.buffer = binary.BigEndian.AppendUint16(b.buffer, value)
	return b
}

// Uint8 - append a single byte
func (b *Builder) Uint8(value uint8) *Builder {
	b.buffer = append(b.buffer, value)
	return b
}

// Descending - append a value that sorts in reverse numeric order
func (b *Builder) Descending(value uint64) *Builder {
	return b.Uint64(math.MaxUint64 - value)
}

// String - append a length prefixed string
func (b *Builder) String(s string) *Builder {
	b.buffer = AppendVarint64(b.buffer, uint64(len(s)))
	b.buffer = append(b.buffer, s...)
	return b
}

// Raw - append fixed width data, e.g. a hash
func (b *Builder) Raw(data []byte) *Builder {
	b.buffer = append(b.buffer, data...)
	return b
}

// Bytes - the encoded tuple
func (b *Builder) Bytes() []byte {
	return b.buffer
}

// Reader - decode the components of a tuple key in order
//
// the first failure is latched and all later reads return zero values
type Reader struct {
	buffer []byte
	err    error
}

// NewReader - start decoding a tuple key
func NewReader(buffer []byte) *Reader {
	return &Reader{
		buffer: buffer,
	}
}

func (r *Reader) take(n int) []byte {
	if nil != r.err {
		return nil
	}
	if len(r.buffer) < n {
		r.err = errTruncated
		return nil
	}
	data := r.buffer[:n]
	r.buffer = r.buffer[n:]
	return data
}

// Uint64 - read a fixed width value
func (r *Reader) Uint64() uint64 {
	data := r.take(8)
	if nil == data {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

// Uint32 - read a fixed width value
func (r *Reader) Uint32() uint32 {
	data := r.take(4)
	if nil == data {
		return 0
	}
	return binary.BigEndian.Uint32(data)
}

// Uint16 - read a fixed width value
func (r *Reader) Uint16() uint16 {
	data := r.take(2)
	if nil == data {
		return 0
	}
	return binary.BigEndian.Uint16(data)
}

// Uint8 - read a single byte
func (r *Reader) Uint8() uint8 {
	data := r.take(1)
	if nil == data {
		return 0
	}
	return data[0]
}

// Descending - read a value written by Builder.Descending
func (r *Reader) Descending() uint64 {
	data := r.take(8)
	if nil == data {
		return 0
	}
	return math.MaxUint64 - binary.BigEndian.Uint64(data)
}

// String - read a length prefixed string
func (r *Reader) String() string {
	if nil != r.err {
		return ""
	}
	length, n := ReadVarint64(r.buffer)
	if 0 == n {
		r.err = errTruncated
		return ""
	}
	r.buffer = r.buffer[n:]
	return string(r.take(int(length)))
}

// Raw - read n bytes of fixed width data
func (r *Reader) Raw(n int) []byte {
	data := r.take(n)
	if nil == data {
		return nil
	}
	result := make([]byte, n)
	copy(result, data)
	return result
}

// Done - final error check, all input must have been consumed
func (r *Reader) Done() error {
	if nil != r.err {
		return r.err
	}
	if 0 != len(r.buffer) {
		return fault.ErrInvalidKeyLength
	}
	return nil
}
