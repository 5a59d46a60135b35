// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package governance - proposal request and approval transactions
//
// A proposal is created by a RequestTx and stored under the request's
// txid together with its expiry height and the number of approvals it
// needs.  Each ApprovalTx appends one approver; the approval that
// reaches the threshold re-checks the proposal and executes it, so a
// proposal executes at most once and never after it expires.
//
// Proposals are a closed set of types, every operation on them is a
// single type switch and an unknown type is a programming error.
package governance

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

var (
	logOnce sync.Once
	log     *logger.L
)

func getLog() *logger.L {
	logOnce.Do(func() {
		log = logger.New("governance")
	})
	return log
}
