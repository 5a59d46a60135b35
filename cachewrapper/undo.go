// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cachewrapper

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/waykichain/wiccd/kvcache"
)

// TxUndo - prior values overwritten by one transaction
type TxUndo struct {
	TxID   common.Hash
	OpLogs kvcache.OpLogMap
}

// BlockUndo - undo of every transaction of a block in execution order
type BlockUndo struct {
	TxUndos []TxUndo
}

// IsEmpty - no transaction changed anything
func (b BlockUndo) IsEmpty() bool {
	return 0 == len(b.TxUndos)
}

// Count - total number of op-logs
func (b BlockUndo) Count() int {
	n := 0
	for _, u := range b.TxUndos {
		n += u.OpLogs.Count()
	}
	return n
}

// Pack - serialise for storage beside the block
func (b BlockUndo) Pack() ([]byte, error) {
	return rlp.EncodeToBytes(b)
}

// UnpackBlockUndo - reverse of Pack
func UnpackBlockUndo(buffer []byte) (BlockUndo, error) {
	var b BlockUndo
	err := rlp.DecodeBytes(buffer, &b)
	return b, err
}
