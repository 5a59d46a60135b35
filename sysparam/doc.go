// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sysparam - governable system and cdp parameters
//
// each parameter has a name, a default and an optional value range,
// a range of [0, 0] means the value is not range checked
package sysparam
