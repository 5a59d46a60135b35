// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - text form of account addresses
//
// an address is base58 of:
//
//   prefix (1 byte) ++ keyid (20 bytes) ++ checksum (4 bytes)
//
// the checksum is the start of SHA256(SHA256(prefix ++ keyid)), the
// prefix selects the network
package account

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
)

const (
	checksumLength = 4
	addressLength  = 1 + entities.KeyIDLength + checksumLength
)

// Address - keyid on a particular network
type Address struct {
	Prefix byte
	KeyID  entities.KeyID
}

// New - address of a keyid on the network of params
func New(params *chain.Parameters, keyID entities.KeyID) Address {
	return Address{
		Prefix: params.AddressPrefix,
		KeyID:  keyID,
	}
}

// FromBase58 - decode and verify the checksum, any network
func FromBase58(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if nil != err || addressLength != len(buffer) {
		return Address{}, fault.ErrCannotDecodeAddress
	}

	checksumStart := len(buffer) - checksumLength
	if !bytes.Equal(checksum(buffer[:checksumStart]), buffer[checksumStart:]) {
		return Address{}, fault.ErrChecksumMismatch
	}

	a := Address{Prefix: buffer[0]}
	copy(a.KeyID[:], buffer[1:checksumStart])
	return a, nil
}

// FromBase58ForNetwork - decode an address that must belong to params
func FromBase58ForNetwork(params *chain.Parameters, s string) (Address, error) {
	a, err := FromBase58(s)
	if nil != err {
		return Address{}, err
	}
	if !a.IsNetwork(params) {
		return Address{}, fault.ErrWrongNetworkForAddress
	}
	return a, nil
}

// IsNetwork - prefix matches the network of params
func (a Address) IsNetwork(params *chain.Parameters) bool {
	return params.AddressPrefix == a.Prefix
}

// Bytes - prefix and keyid
func (a Address) Bytes() []byte {
	return append([]byte{a.Prefix}, a.KeyID[:]...)
}

func (a Address) String() string {
	buffer := a.Bytes()
	return base58.Encode(append(buffer, checksum(buffer)...))
}

// MarshalText - base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - from the base58 JSON form
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}

func checksum(buffer []byte) []byte {
	first := sha256.Sum256(buffer)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}
