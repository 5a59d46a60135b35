// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/waykichain/wiccd/codec"
)

// OutPoint - one output of a coin utxo transaction
type OutPoint struct {
	TxID common.Hash
	Vout uint16
}

// IsEmpty - zero txid
func (o OutPoint) IsEmpty() bool {
	return common.Hash{} == o.TxID
}

// Append - append the key encoding to a tuple
func (o OutPoint) Append(b *codec.Builder) *codec.Builder {
	return b.Raw(o.TxID.Bytes()).Uint16(o.Vout)
}

// ReadOutPoint - read an outpoint from a tuple
func ReadOutPoint(r *codec.Reader) OutPoint {
	return OutPoint{
		TxID: common.BytesToHash(r.Raw(common.HashLength)),
		Vout: r.Uint16(),
	}
}

// OutPointKey - key codec for utxo records
var OutPointKey = codec.KeyFuncs[OutPoint]{
	Encode: func(o OutPoint) []byte {
		return o.Append(codec.NewBuilder()).Bytes()
	},
	Decode: func(buffer []byte) (OutPoint, error) {
		r := codec.NewReader(buffer)
		o := ReadOutPoint(r)
		return o, r.Done()
	},
	IsEmpty: OutPoint.IsEmpty,
}

// UtxoCondition - spending condition kind
type UtxoCondition uint8

// conditions
const (
	UtxoP2SA        UtxoCondition = 1 // single address
	UtxoP2MA        UtxoCondition = 2 // multi address
	UtxoP2PH        UtxoCondition = 3 // password hash
	UtxoClaimLock   UtxoCondition = 4
	UtxoReclaimLock UtxoCondition = 5
)

// Utxo - locked coin output
type Utxo struct {
	Symbol     string
	Amount     uint64
	Conditions []UtxoCondition
	Owner      UserID
}

// IsEmpty - absent output
func (u Utxo) IsEmpty() bool {
	return "" == u.Symbol && 0 == u.Amount
}

// PasswordProofKey - utxo spent with a password by a specific account
type PasswordProofKey struct {
	OutPoint OutPoint
	Spender  RegID
}

// PasswordProofKeyCodec - key codec for password proofs
var PasswordProofKeyCodec = codec.KeyFuncs[PasswordProofKey]{
	Encode: func(k PasswordProofKey) []byte {
		return k.Spender.Append(k.OutPoint.Append(codec.NewBuilder())).Bytes()
	},
	Decode: func(buffer []byte) (PasswordProofKey, error) {
		r := codec.NewReader(buffer)
		k := PasswordProofKey{
			OutPoint: ReadOutPoint(r),
			Spender:  ReadRegID(r),
		}
		return k, r.Done()
	},
	IsEmpty: func(k PasswordProofKey) bool {
		return k.OutPoint.IsEmpty() || k.Spender.IsEmpty()
	},
}

// AxcSwapPair - cross chain token mapping
type AxcSwapPair struct {
	PeerSymbol string
	SelfSymbol string
	PeerChain  string
}

// IsEmpty - absent mapping
func (a AxcSwapPair) IsEmpty() bool {
	return "" == a.PeerSymbol || "" == a.SelfSymbol
}

// SwapInKey - minted amount of one inbound peer chain transaction
type SwapInKey struct {
	PeerChain string
	PeerTxID  string
}

// SwapInKeyCodec - key codec for swap-in records
var SwapInKeyCodec = codec.KeyFuncs[SwapInKey]{
	Encode: func(k SwapInKey) []byte {
		return codec.NewBuilder().String(k.PeerChain).String(k.PeerTxID).Bytes()
	},
	Decode: func(buffer []byte) (SwapInKey, error) {
		r := codec.NewReader(buffer)
		k := SwapInKey{
			PeerChain: r.String(),
			PeerTxID:  r.String(),
		}
		return k, r.Done()
	},
	IsEmpty: func(k SwapInKey) bool {
		return "" == k.PeerChain || "" == k.PeerTxID
	},
}
