// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Partition - name of a separate database
type Partition string

// all partitions
const (
	SysParam   Partition = "sysparam"
	Account    Partition = "account"
	Delegate   Partition = "delegate"
	Cdp        Partition = "cdp"
	Dex        Partition = "dex"
	Governance Partition = "governance"
	Log        Partition = "log"
	TxReceipt  Partition = "txreceipt"
	TxUTXO     Partition = "txutxo"
	Axc        Partition = "axc"
)

// Partitions - in the order they are opened
var Partitions = []Partition{
	SysParam,
	Account,
	Delegate,
	Cdp,
	Dex,
	Governance,
	Log,
	TxReceipt,
	TxUTXO,
	Axc,
}

// Prefix - record type within a partition
type Prefix string

// record prefixes, layout is described in doc.go
const (
	PrefixSysParam         Prefix = "sysp"
	PrefixCdpParam         Prefix = "cdpp"
	PrefixCdpInterest      Prefix = "cdir"
	PrefixMinerFee         Prefix = "mfee"
	PrefixCurrentBpsSize   Prefix = "cbps"
	PrefixNewBpsSize       Prefix = "nbps"
	PrefixRegIDKeyID       Prefix = "rkey"
	PrefixNickIDKeyID      Prefix = "nkey"
	PrefixKeyIDAccount     Prefix = "idac"
	PrefixBestBlockHash    Prefix = "bbkh"
	PrefixVote             Prefix = "vote"
	PrefixRegIDVote        Prefix = "ridv"
	PrefixActiveDelegates  Prefix = "acdl"
	PrefixLastVoteHeight   Prefix = "lvht"
	PrefixCdp              Prefix = "ucdp"
	PrefixRegIDCdp         Prefix = "rcdp"
	PrefixCdpRatio         Prefix = "cdpr"
	PrefixCdpGlobal        Prefix = "cdpg"
	PrefixCdpHalt          Prefix = "cdph"
	PrefixDexActiveOrder   Prefix = "dato"
	PrefixDexBlockOrders   Prefix = "dbos"
	PrefixDexOperator      Prefix = "dexo"
	PrefixDexOwner         Prefix = "dexw"
	PrefixDexNextID        Prefix = "dexn"
	PrefixGovernors        Prefix = "govn"
	PrefixProposal         Prefix = "pgvn"
	PrefixApprovals        Prefix = "apvl"
	PrefixTxExecuteFail    Prefix = "txef"
	PrefixTxReceipt        Prefix = "txrc"
	PrefixUtxo             Prefix = "utxo"
	PrefixUtxoPassword     Prefix = "utxp"
	PrefixAxcSwapIn        Prefix = "axci"
	PrefixAxcPeerToSelf    Prefix = "axcp"
	PrefixAxcSelfToPeer    Prefix = "axcs"
)

// which partition holds each prefix
var prefixPartition = map[Prefix]Partition{
	PrefixSysParam:        SysParam,
	PrefixCdpParam:        SysParam,
	PrefixCdpInterest:     SysParam,
	PrefixMinerFee:        SysParam,
	PrefixCurrentBpsSize:  SysParam,
	PrefixNewBpsSize:      SysParam,
	PrefixRegIDKeyID:      Account,
	PrefixNickIDKeyID:     Account,
	PrefixKeyIDAccount:    Account,
	PrefixBestBlockHash:   Account,
	PrefixVote:            Delegate,
	PrefixRegIDVote:       Delegate,
	PrefixActiveDelegates: Delegate,
	PrefixLastVoteHeight:  Delegate,
	PrefixCdp:             Cdp,
	PrefixRegIDCdp:        Cdp,
	PrefixCdpRatio:        Cdp,
	PrefixCdpGlobal:       Cdp,
	PrefixCdpHalt:         Cdp,
	PrefixDexActiveOrder:  Dex,
	PrefixDexBlockOrders:  Dex,
	PrefixDexOperator:     Dex,
	PrefixDexOwner:        Dex,
	PrefixDexNextID:       Dex,
	PrefixGovernors:       Governance,
	PrefixProposal:        Governance,
	PrefixApprovals:       Governance,
	PrefixTxExecuteFail:   Log,
	PrefixTxReceipt:       TxReceipt,
	PrefixUtxo:            TxUTXO,
	PrefixUtxoPassword:    TxUTXO,
	PrefixAxcSwapIn:       Axc,
	PrefixAxcPeerToSelf:   Axc,
	PrefixAxcSelfToPeer:   Axc,
}

// PartitionOf - partition that stores a prefix
func (p Prefix) PartitionOf() (Partition, bool) {
	partition, ok := prefixPartition[p]
	return partition, ok
}

// Key - full LevelDB key for an encoded record key
func (p Prefix) Key(encoded []byte) []byte {
	key := make([]byte, 0, len(p)+len(encoded))
	key = append(key, p...)
	return append(key, encoded...)
}

// Strip - remove the prefix from a full LevelDB key
func (p Prefix) Strip(key []byte) []byte {
	return key[len(p):]
}
