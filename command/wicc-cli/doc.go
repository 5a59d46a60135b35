// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// wicc-cli - read only queries against a stopped node's databases
//
// prints proposals, system and cdp parameters, accounts and cdps as
// JSON
package main
