// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - execution context shared by all transactions
//
// Every transaction is checked and executed against a Context that
// carries the block height, the chain parameters, the cache to mutate
// and a State that receives the first validation failure.  Process
// runs one transaction in a child cache so that a failure leaves no
// partial changes behind, only an execute failure record.
package transaction
