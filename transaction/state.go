// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/waykichain/wiccd/fault"
)

// State - receives the validation outcome of one transaction
type State struct {
	err *fault.ValidationError
}

// DoS - record a validation failure and return it
//
// only the first failure is kept
func (s *State) DoS(dos int, code fault.RejectCode, reason string, format string, arguments ...interface{}) error {
	err := fault.NewValidationError(dos, code, reason, format, arguments...)
	if nil == s.err {
		s.err = err
	}
	return err
}

// Invalid - failure that does not penalise the relaying peer
func (s *State) Invalid(code fault.RejectCode, reason string, format string, arguments ...interface{}) error {
	return s.DoS(0, code, reason, format, arguments...)
}

// IsValid - nothing has been rejected
func (s *State) IsValid() bool {
	return nil == s.err
}

// Err - the recorded failure, nil if valid
func (s *State) Err() *fault.ValidationError {
	return s.err
}

// Reason - reject reason token, empty if valid
func (s *State) Reason() string {
	if nil == s.err {
		return ""
	}
	return s.err.Reason
}

// DoSScore - penalty of the recorded failure
func (s *State) DoSScore() int {
	if nil == s.err {
		return 0
	}
	return s.err.DoS
}

// Reset - clear for the next transaction
func (s *State) Reset() {
	s.err = nil
}
