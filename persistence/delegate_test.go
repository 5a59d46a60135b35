// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/persistence"
	"github.com/waykichain/wiccd/storage"
)

func TestTopVoteDelegates(t *testing.T) {
	store := openStore(t, storage.Delegate)
	defer store.Close()

	c := persistence.NewDelegateCache(store, kvcache.NewUndoRegistry())

	r1 := entities.RegID{Height: 1, Index: 1}
	r2 := entities.RegID{Height: 2, Index: 1}
	r3 := entities.RegID{Height: 3, Index: 1}
	r4 := entities.RegID{Height: 4, Index: 1}

	c.SetCandidateVotes(r3, 500)
	c.SetCandidateVotes(r1, 100)
	c.SetCandidateVotes(r4, math.MaxUint64)
	c.SetCandidateVotes(r2, 500)

	top := c.GetTopVoteDelegates(10, 0)
	assert.Equal(t, entities.RegIDList{r4, r2, r3, r1}, top.RegIDs(), "ranking")

	top = c.GetTopVoteDelegates(2, 0)
	assert.Equal(t, entities.RegIDList{r4, r2}, top.RegIDs(), "limited")

	top = c.GetTopVoteDelegates(10, 200)
	assert.Equal(t, 3, len(top), "minimum votes")

	// a vote change moves the ranking entry
	c.SetCandidateVotes(r1, 1000)
	top = c.GetTopVoteDelegates(2, 0)
	assert.Equal(t, entities.RegIDList{r4, r1}, top.RegIDs(), "after update")
	assert.Equal(t, uint64(1000), c.GetCandidateVotes(r1), "votes")

	c.SetCandidateVotes(r4, 0)
	top = c.GetTopVoteDelegates(10, 0)
	assert.Equal(t, entities.RegIDList{r1, r2, r3}, top.RegIDs(), "removed")
	assert.Equal(t, uint64(0), c.GetCandidateVotes(r4), "removed votes")
}

func TestActiveDelegates(t *testing.T) {
	store := openStore(t, storage.Delegate)
	defer store.Close()

	c := persistence.NewDelegateCache(store, kvcache.NewUndoRegistry())
	assert.True(t, c.GetActiveDelegates().IsEmpty(), "initially empty")

	r := entities.RegID{Height: 9, Index: 3}
	c.SetActiveDelegates(entities.DelegateVoteList{{RegID: r, Votes: 1}})
	assert.True(t, c.IsActiveDelegate(r), "active")
	assert.False(t, c.IsActiveDelegate(entities.RegID{Height: 9, Index: 4}), "not active")

	assert.Equal(t, uint64(0), c.GetLastVoteHeight(), "initial height")
	c.SetLastVoteHeight(77)
	assert.Equal(t, uint64(77), c.GetLastVoteHeight(), "height")
}
