// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Three kinds of failure are distinguished:
//
//   1. programming errors and storage corruption: fatal, see Panicf
//   2. expected absence: comma-ok returns in the cache layers
//   3. business rule violations: *ValidationError carrying a DoS score
package fault
