// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// RejectCode - machine readable class of a rejected transaction
type RejectCode uint8

// reject codes
const (
	RejectMalformed     RejectCode = 0x01
	RejectInvalid       RejectCode = 0x10
	RejectObsolete      RejectCode = 0x11
	RejectDuplicate     RejectCode = 0x12
	RejectNonstandard   RejectCode = 0x40
	RejectDust          RejectCode = 0x41
	RejectInsufficient  RejectCode = 0x42
	ReadAccountFail     RejectCode = 0x81
	WriteAccountFail    RejectCode = 0x82
	UpdateAccountFail   RejectCode = 0x83
	ReadProposalFail    RejectCode = 0x84
	WriteProposalFail   RejectCode = 0x85
	ReadCdpFail         RejectCode = 0x86
	WriteCdpFail        RejectCode = 0x87
	WriteDexFail        RejectCode = 0x88
	WriteParamFail      RejectCode = 0x89
	WriteReceiptFail    RejectCode = 0x8a
	WriteGovernanceFail RejectCode = 0x8b
)

// ValidationError - a business rule violation
//
// the DoS score is the penalty applied to the peer that relayed
// the transaction, Reason is a short token suitable for RPC replies
type ValidationError struct {
	DoS     int
	Code    RejectCode
	Reason  string
	Message string
}

// NewValidationError - create a formatted validation error
func NewValidationError(dos int, code RejectCode, reason string, format string, arguments ...interface{}) *ValidationError {
	return &ValidationError{
		DoS:     dos,
		Code:    code,
		Reason:  reason,
		Message: fmt.Sprintf(format, arguments...),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// IsErrValidation - determine if error is a validation failure
func IsErrValidation(e error) bool { _, ok := e.(*ValidationError); return ok }

// Reason - extract the reject reason token, empty if not a validation failure
func Reason(e error) string {
	if v, ok := e.(*ValidationError); ok {
		return v.Reason
	}
	return ""
}
