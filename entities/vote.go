// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities

import (
	"sort"
)

// RegIDList - ordered set of regids, governors, approvers or delegates
type RegIDList []RegID

// IsEmpty - zero length lists are not stored
func (l RegIDList) IsEmpty() bool {
	return 0 == len(l)
}

// Contains - membership test
func (l RegIDList) Contains(r RegID) bool {
	for _, item := range l {
		if item == r {
			return true
		}
	}
	return false
}

// Add - copy with r appended unless already present
func (l RegIDList) Add(r RegID) RegIDList {
	if l.Contains(r) {
		return l
	}
	n := make(RegIDList, 0, len(l)+1)
	n = append(n, l...)
	return append(n, r)
}

// Remove - copy without r
func (l RegIDList) Remove(r RegID) RegIDList {
	n := make(RegIDList, 0, len(l))
	for _, item := range l {
		if item != r {
			n = append(n, item)
		}
	}
	return n
}

// Sorted - copy in key order
func (l RegIDList) Sorted() RegIDList {
	n := append(RegIDList{}, l...)
	sort.Slice(n, func(i, j int) bool {
		return n[i].Less(n[j])
	})
	return n
}

// DelegateVote - votes received by a candidate
type DelegateVote struct {
	RegID RegID
	Votes uint64
}

// IsEmpty - no candidate
func (d DelegateVote) IsEmpty() bool {
	return d.RegID.IsEmpty()
}

// DelegateVoteList - candidates with their votes
type DelegateVoteList []DelegateVote

// IsEmpty - zero length lists are not stored
func (l DelegateVoteList) IsEmpty() bool {
	return 0 == len(l)
}

// RegIDs - the candidates in list order
func (l DelegateVoteList) RegIDs() RegIDList {
	r := make(RegIDList, 0, len(l))
	for _, d := range l {
		r = append(r, d.RegID)
	}
	return r
}
