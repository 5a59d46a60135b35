// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package persistence - domain caches over the key/value cache layer
//
// every cache exists as a root, bound to a database partition, or as a
// child of another cache of the same kind.  Children collect the writes
// of a block or a transaction and push them up with Flush.
//
// all constructors register undo functions for their record prefixes
// in the registry supplied, a registry belongs to one level of the chain
package persistence
