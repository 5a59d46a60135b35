// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entities - the records held in chain state
//
// Every persisted type is RLP encodable and implements IsEmpty where
// an empty value stands for "absent".
package entities
