// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cachewrapper - the full set of domain caches as one unit
//
// The Manager owns the root caches, one per partition, each writing
// straight to its database.  A CacheWrapper is one level of every
// domain cache stacked on the roots or on another wrapper.  Block
// processing runs each transaction in a child wrapper that records an
// op-log; the op-logs of a block form its BlockUndo, which is replayed
// in reverse to disconnect the block.
package cachewrapper
