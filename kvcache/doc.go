// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kvcache - layered copy-on-write caches over a partition
//
// A cache level holds locally written entries and has exactly one
// upstream: either a parent level or a database partition.  Reads fall
// through to the upstream and memoise hits, writes stay local until
// Flush pushes modified entries one level up.
//
// Erasing leaves a tombstone at the current level, which hides any
// value held further up the chain.
//
// With an op-log map attached every write records the previous value
// of its key so that a transaction can be reversed by replaying the
// log backwards through the registry the level was constructed with.
package kvcache
