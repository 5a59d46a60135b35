// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/fault"
)

// Process - check then execute a transaction in a child cache
//
// on success the changes and their undo reach ctx.Cache, on a
// validation failure only the execute failure record does
func Process(ctx *Context, tx Tx) error {
	base := tx.Base()

	err := ctx.Cache.ExecuteTx(base.TxID, func(cw *cachewrapper.CacheWrapper) error {
		txCtx := ctx.WithCache(cw)
		if err := tx.Check(txCtx); nil != err {
			return err
		}
		return tx.Execute(txCtx)
	})
	if nil == err {
		return nil
	}

	v, ok := err.(*fault.ValidationError)
	if !ok {
		return err
	}
	ctx.Cache.ExecuteTx(base.TxID, func(cw *cachewrapper.CacheWrapper) error {
		cw.Log.SetExecuteFail(ctx.Height, base.TxID, uint8(v.Code), v.Reason, v.Message)
		return nil
	})
	return err
}
