// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// The state is split into a number of partitions, each partition is a
// separate LevelDB database in its own directory.  Within a partition
// every record kind has a short ASCII prefix, the full LevelDB key is:
//
//   prefix ++ encoded key
//
// Notes:
// 1. ++      = concatenation of byte data
// 2. regid   = height (big endian uint32) ++ index (big endian uint16)
// 3. keyid   = 20 byte Hash160 of public key
// 4. txid    = 32 byte transaction hash
// 5. symbol  = varint length ++ bytes (raw bytes when the whole key)
// 6. pair    = bcoin symbol ++ scoin symbol
// 7. desc    = big endian (MaxUint64 - value)
// 8. values are RLP encoded
//
// sysparam:
//
//   sysp ++ param type (uint8)                 - system parameter
//   cdpp ++ pair ++ param type (uint8)         - CDP parameter
//   cdir ++ pair                               - interest parameter change history
//   mfee ++ tx type (uint8) ++ symbol          - miner fee
//   cbps                                       - current total BP count
//   nbps                                       - scheduled total BP count
//
// account:
//
//   rkey ++ regid                              - keyid
//   nkey ++ nickid                             - keyid
//   idac ++ keyid                              - account
//   bbkh                                       - best block hash
//
// delegate:
//
//   vote ++ desc(votes) ++ regid               - 1 (descending vote order)
//   ridv ++ regid                              - votes received by candidate
//   acdl                                       - active delegates
//   lvht                                       - last vote height
//
// cdp:
//
//   ucdp ++ cdpid                              - cdp
//   rcdp ++ regid ++ pair                      - cdpid
//   cdpr ++ pair ++ ratio (uint64) ++ cdpid    - cdp (liquidation scan order)
//   cdpg ++ pair                               - global staked/owed totals
//   cdph                                       - global halt flag
//
// dex:
//
//   dato ++ orderid                            - active order
//   dbos ++ height (uint32) ++ gen type ++ orderid - active order
//   dexo ++ dexid (uint32)                     - operator
//   dexw ++ regid                              - dexid of owner
//   dexn                                       - last allocated dexid
//
// governance:
//
//   govn                                       - governor list
//   pgvn ++ txid                               - proposal
//   apvl ++ txid                               - approving governors
//
// log:
//
//   txef ++ height (uint32) ++ txid            - execute failure
//
// txreceipt:
//
//   txrc ++ txid                               - receipts
//
// txutxo:
//
//   utxo ++ txid ++ vout (uint16)              - unspent output
//   utxp ++ txid ++ vout (uint16) ++ regid     - password proof hash
//
// axc:
//
//   axci ++ chain name ++ peer txid            - minted amount
//   axcp ++ peer symbol                        - self symbol, peer chain
//   axcs ++ self symbol                        - peer symbol, peer chain
//
// Each partition carries a version record at key "\x00VERSION".
package storage
