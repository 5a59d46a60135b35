// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountNotFound         = NotFoundError("account not found")
	ErrAlreadyInitialised      = ExistsError("already initialised")
	ErrBadDatabaseVersion      = InvalidError("database version is not supported")
	ErrBatchInUse              = ProcessError("batch already in use")
	ErrCannotDecodeAddress     = InvalidError("cannot decode address")
	ErrCdpAlreadyExists        = ExistsError("cdp already exists")
	ErrCdpNotFound             = NotFoundError("cdp not found")
	ErrChainNotFound           = NotFoundError("chain not found")
	ErrChecksumMismatch        = InvalidError("checksum mismatch")
	ErrDatabaseNotInitialised  = NotFoundError("database is not initialised")
	ErrDuplicateApproval       = ExistsError("governor already approved")
	ErrEmptyKey                = InvalidError("key is empty")
	ErrFileAlreadyExists       = ExistsError("file already exists")
	ErrInvalidChain            = InvalidError("invalid chain")
	ErrInvalidCdpID            = InvalidError("invalid cdp id")
	ErrInvalidCoinPair         = InvalidError("invalid coin pair")
	ErrInvalidConfiguration    = InvalidError("configuration must return a table")
	ErrInvalidKeyLength        = InvalidError("invalid key length")
	ErrInvalidLoggerChannel    = InvalidError("invalid logger channel")
	ErrInvalidParamName        = InvalidError("invalid parameter name")
	ErrInvalidPrice            = InvalidError("invalid price")
	ErrInvalidProposalID       = InvalidError("invalid proposal id")
	ErrInvalidProposalType     = InvalidError("invalid proposal type")
	ErrInvalidRegID            = InvalidError("invalid regid")
	ErrInvalidStructPointer    = InvalidError("invalid struct pointer")
	ErrInvalidUserID           = InvalidError("invalid user id")
	ErrInsufficientFunds       = InvalidError("insufficient funds")
	ErrKeyIDNotFound           = NotFoundError("keyid not found")
	ErrNotADirectory           = InvalidError("not a directory")
	ErrNotInitialised          = NotFoundError("not initialised")
	ErrOperationNotSupported   = ProcessError("operation not supported")
	ErrOverflow                = InvalidError("arithmetic overflow")
	ErrPartitionNotFound       = NotFoundError("database partition not found")
	ErrProposalNotFound        = NotFoundError("proposal not found")
	ErrTokenNotFound           = NotFoundError("token not found")
	ErrTruncatedKey            = InvalidError("truncated key")
	ErrUnknownBalanceOperation = InvalidError("unknown balance operation")
	ErrWrongNetworkForAddress  = InvalidError("wrong network for address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
