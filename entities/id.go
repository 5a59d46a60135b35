// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/fault"
)

// sizes of encoded identifiers
const (
	RegIDLength  = 6
	KeyIDLength  = 20
	PubKeyLength = 33
)

// RegID - account registered at (block height, tx index)
type RegID struct {
	Height uint32
	Index  uint16
}

// NewRegIDFromUint64 - unpack the form stored in a system parameter
//
// the height occupies the upper bits and the index the low 16 bits
func NewRegIDFromUint64(v uint64) RegID {
	return RegID{
		Height: uint32(v >> 16),
		Index:  uint16(v),
	}
}

// Uint64 - packed form, inverse of NewRegIDFromUint64
func (r RegID) Uint64() uint64 {
	return uint64(r.Height)<<16 | uint64(r.Index)
}

// ParseRegID - "height-index"
func ParseRegID(s string) (RegID, error) {
	parts := strings.Split(s, "-")
	if 2 != len(parts) {
		return RegID{}, fault.ErrInvalidRegID
	}
	height, err := strconv.ParseUint(parts[0], 10, 32)
	if nil != err {
		return RegID{}, fault.ErrInvalidRegID
	}
	index, err := strconv.ParseUint(parts[1], 10, 16)
	if nil != err {
		return RegID{}, fault.ErrInvalidRegID
	}
	return RegID{Height: uint32(height), Index: uint16(index)}, nil
}

func (r RegID) String() string {
	return fmt.Sprintf("%d-%d", r.Height, r.Index)
}

// MarshalText - "height-index" in JSON output
func (r RegID) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// IsEmpty - the zero regid is unassigned
func (r RegID) IsEmpty() bool {
	return 0 == r.Height && 0 == r.Index
}

// IsMature - registered at least maturity blocks before height
func (r RegID) IsMature(height uint32, maturity uint32) bool {
	return !r.IsEmpty() && uint64(r.Height)+uint64(maturity) <= uint64(height)
}

// Less - key order
func (r RegID) Less(other RegID) bool {
	if r.Height != other.Height {
		return r.Height < other.Height
	}
	return r.Index < other.Index
}

// Append - append the key encoding to a tuple
func (r RegID) Append(b *codec.Builder) *codec.Builder {
	return b.Uint32(r.Height).Uint16(r.Index)
}

// ReadRegID - read a regid from a tuple
func ReadRegID(r *codec.Reader) RegID {
	return RegID{
		Height: r.Uint32(),
		Index:  r.Uint16(),
	}
}

// RegIDKey - key codec for regid keyed records
var RegIDKey = codec.KeyFuncs[RegID]{
	Encode: func(r RegID) []byte {
		return r.Append(codec.NewBuilder()).Bytes()
	},
	Decode: func(buffer []byte) (RegID, error) {
		r := codec.NewReader(buffer)
		id := ReadRegID(r)
		return id, r.Done()
	},
	IsEmpty: RegID.IsEmpty,
}

// KeyID - Hash160 of an account public key
type KeyID [KeyIDLength]byte

// KeyIDFromBytes - copy a 20 byte hash
func KeyIDFromBytes(buffer []byte) (KeyID, error) {
	var k KeyID
	if KeyIDLength != len(buffer) {
		return k, fault.ErrInvalidKeyLength
	}
	copy(k[:], buffer)
	return k, nil
}

// ParseKeyID - base58 text form
func ParseKeyID(s string) (KeyID, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return KeyID{}, err
	}
	return KeyIDFromBytes(buffer)
}

func (k KeyID) String() string {
	return base58.Encode(k[:])
}

// MarshalText - base58 in JSON output
func (k KeyID) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsEmpty - the zero hash
func (k KeyID) IsEmpty() bool {
	return KeyID{} == k
}

// KeyIDKey - key codec for keyid keyed records
var KeyIDKey = codec.KeyFuncs[KeyID]{
	Encode:  func(k KeyID) []byte { return append([]byte{}, k[:]...) },
	Decode:  KeyIDFromBytes,
	IsEmpty: KeyID.IsEmpty,
}

// PubKey - compressed secp256k1 public key
type PubKey []byte

// IsValid - length check only, curve validation belongs to signing
func (p PubKey) IsValid() bool {
	return PubKeyLength == len(p) && (0x02 == p[0] || 0x03 == p[0])
}

// KeyID - RIPEMD160(SHA256(key))
func (p PubKey) KeyID() KeyID {
	s := sha256.Sum256(p)
	h := ripemd160.New()
	h.Write(s[:])
	var k KeyID
	copy(k[:], h.Sum(nil))
	return k
}

func (p PubKey) String() string {
	return hex.EncodeToString(p)
}

// UserIDType - which identifier a UserID carries
type UserIDType uint8

// user id kinds
const (
	UserNull   UserIDType = 0
	UserRegID  UserIDType = 1
	UserKeyID  UserIDType = 2
	UserPubKey UserIDType = 3
	UserNickID UserIDType = 4
)

// UserID - any identifier that resolves to an account
type UserID struct {
	Type UserIDType
	Data []byte
}

// NewRegIDUser - user id from a regid
func NewRegIDUser(r RegID) UserID {
	return UserID{Type: UserRegID, Data: RegIDKey.EncodeKey(r)}
}

// NewKeyIDUser - user id from a keyid
func NewKeyIDUser(k KeyID) UserID {
	return UserID{Type: UserKeyID, Data: append([]byte{}, k[:]...)}
}

// NewPubKeyUser - user id from a public key
func NewPubKeyUser(p PubKey) UserID {
	return UserID{Type: UserPubKey, Data: append([]byte{}, p...)}
}

// NewNickIDUser - user id from a nickname
func NewNickIDUser(nick string) UserID {
	return UserID{Type: UserNickID, Data: []byte(nick)}
}

// IsEmpty - no identifier
func (u UserID) IsEmpty() bool {
	return UserNull == u.Type || 0 == len(u.Data)
}

// RegID - the regid if that is what is held
func (u UserID) RegID() (RegID, bool) {
	if UserRegID != u.Type {
		return RegID{}, false
	}
	r, err := RegIDKey.DecodeKey(u.Data)
	return r, nil == err
}

// KeyID - the keyid if held directly or derivable from a public key
func (u UserID) KeyID() (KeyID, bool) {
	switch u.Type {
	case UserKeyID:
		k, err := KeyIDFromBytes(u.Data)
		return k, nil == err
	case UserPubKey:
		p := PubKey(u.Data)
		if !p.IsValid() {
			return KeyID{}, false
		}
		return p.KeyID(), true
	default:
		return KeyID{}, false
	}
}

// PubKey - the public key if that is what is held
func (u UserID) PubKey() (PubKey, bool) {
	if UserPubKey != u.Type {
		return nil, false
	}
	return PubKey(u.Data), true
}

// NickID - the nickname if that is what is held
func (u UserID) NickID() (string, bool) {
	if UserNickID != u.Type {
		return "", false
	}
	return string(u.Data), true
}

// Equal - same kind and same identifier
func (u UserID) Equal(other UserID) bool {
	return u.Type == other.Type && string(u.Data) == string(other.Data)
}

func (u UserID) String() string {
	switch u.Type {
	case UserRegID:
		if r, ok := u.RegID(); ok {
			return r.String()
		}
	case UserKeyID:
		if k, ok := u.KeyID(); ok {
			return k.String()
		}
	case UserPubKey:
		return PubKey(u.Data).String()
	case UserNickID:
		return string(u.Data)
	}
	return "null"
}

// ParseUserID - regid "h-i", base58 keyid or hex public key
func ParseUserID(s string) (UserID, error) {
	if r, err := ParseRegID(s); nil == err {
		return NewRegIDUser(r), nil
	}
	if k, err := ParseKeyID(s); nil == err {
		return NewKeyIDUser(k), nil
	}
	if buffer, err := hex.DecodeString(s); nil == err && PubKey(buffer).IsValid() {
		return NewPubKeyUser(buffer), nil
	}
	return UserID{}, fault.ErrInvalidUserID
}
