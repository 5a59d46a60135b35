// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package persistence

import (
	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/kvcache"
	"github.com/waykichain/wiccd/storage"
)

// DelegateCache - candidate votes and the active producer set
type DelegateCache struct {
	votes          *kvcache.Composite[voteKey, entities.DelegateVote]
	candidates     *kvcache.Composite[entities.RegID, entities.DelegateVote]
	active         *kvcache.Simple[entities.DelegateVoteList]
	lastVoteHeight *kvcache.Simple[amountValue]
	all            parts
}

// vote index: descending votes so a forward scan gives the leaders
type voteKey struct {
	Votes uint64
	RegID entities.RegID
}

var voteKeys = codec.KeyFuncs[voteKey]{
	Encode: func(k voteKey) []byte {
		return k.RegID.Append(codec.NewBuilder().Descending(k.Votes)).Bytes()
	},
	Decode: func(buffer []byte) (voteKey, error) {
		r := codec.NewReader(buffer)
		k := voteKey{
			Votes: r.Descending(),
			RegID: entities.ReadRegID(r),
		}
		return k, r.Done()
	},
	IsEmpty: func(k voteKey) bool {
		return k.RegID.IsEmpty()
	},
}

// NewDelegateCache - root cache over the delegate partition
func NewDelegateCache(store storage.Access, reg *kvcache.UndoRegistry) *DelegateCache {
	c := &DelegateCache{
		votes:          kvcache.NewComposite[voteKey, entities.DelegateVote](store, storage.PrefixVote, voteKeys, codec.RLP[entities.DelegateVote]{}, reg),
		candidates:     kvcache.NewComposite[entities.RegID, entities.DelegateVote](store, storage.PrefixRegIDVote, entities.RegIDKey, codec.RLP[entities.DelegateVote]{}, reg),
		active:         kvcache.NewSimple[entities.DelegateVoteList](store, storage.PrefixActiveDelegates, codec.RLP[entities.DelegateVoteList]{}, reg),
		lastVoteHeight: kvcache.NewSimple[amountValue](store, storage.PrefixLastVoteHeight, amountValues, reg),
	}
	c.all = parts{c.votes, c.candidates, c.active, c.lastVoteHeight}
	return c
}

// NewChild - cache layered over this one
func (c *DelegateCache) NewChild(reg *kvcache.UndoRegistry) *DelegateCache {
	n := &DelegateCache{
		votes:          kvcache.NewCompositeChild(c.votes, reg),
		candidates:     kvcache.NewCompositeChild(c.candidates, reg),
		active:         kvcache.NewSimpleChild(c.active, reg),
		lastVoteHeight: kvcache.NewSimpleChild(c.lastVoteHeight, reg),
	}
	n.all = parts{n.votes, n.candidates, n.active, n.lastVoteHeight}
	return n
}

// SetBaseView - rebind an empty child
func (c *DelegateCache) SetBaseView(parent *DelegateCache) {
	c.votes.SetBase(parent.votes)
	c.candidates.SetBase(parent.candidates)
	c.active.SetBase(parent.active)
	c.lastVoteHeight.SetBase(parent.lastVoteHeight)
}

func (c *DelegateCache) Flush()                          { c.all.flush() }
func (c *DelegateCache) SetOpLogMap(m *kvcache.OpLogMap) { c.all.setOpLogMap(m) }
func (c *DelegateCache) Size() int                       { return c.all.size() }

// SetCandidateVotes - record the votes of a candidate
//
// zero votes removes the candidate from the ranking
func (c *DelegateCache) SetCandidateVotes(regID entities.RegID, votes uint64) bool {
	if regID.IsEmpty() {
		return false
	}
	if old, found := c.candidates.GetData(regID); found {
		c.votes.EraseData(voteKey{Votes: old.Votes, RegID: regID})
	}
	if 0 == votes {
		return c.candidates.EraseData(regID)
	}
	d := entities.DelegateVote{RegID: regID, Votes: votes}
	c.votes.SetData(voteKey{Votes: votes, RegID: regID}, d)
	return c.candidates.SetData(regID, d)
}

// GetCandidateVotes - votes received, zero for unknown candidates
func (c *DelegateCache) GetCandidateVotes(regID entities.RegID) uint64 {
	d, _ := c.candidates.GetData(regID)
	return d.Votes
}

// GetTopVoteDelegates - up to n candidates with at least minVotes,
// most votes first, equal votes in regid order
func (c *DelegateCache) GetTopVoteDelegates(n int, minVotes uint64) entities.DelegateVoteList {
	list := make(entities.DelegateVoteList, 0, n)

	it := c.votes.NewIterator(nil)
	defer it.Close()

	for ok := it.First(); ok && len(list) < n; ok = it.Next() {
		if it.Key().Votes < minVotes {
			break
		}
		list = append(list, it.Value())
	}
	return list
}

// SetActiveDelegates - the producer set for the coming rounds
func (c *DelegateCache) SetActiveDelegates(delegates entities.DelegateVoteList) bool {
	return c.active.SetData(append(entities.DelegateVoteList{}, delegates...))
}

// GetActiveDelegates - the current producer set
func (c *DelegateCache) GetActiveDelegates() entities.DelegateVoteList {
	d, _ := c.active.GetData()
	return append(entities.DelegateVoteList{}, d...)
}

// IsActiveDelegate - regid is in the producer set
func (c *DelegateCache) IsActiveDelegate(regID entities.RegID) bool {
	return c.GetActiveDelegates().RegIDs().Contains(regID)
}

// SetLastVoteHeight - height of the last vote ranking change
func (c *DelegateCache) SetLastVoteHeight(height uint64) bool {
	return c.lastVoteHeight.SetData(amountValue{Amount: height})
}

// GetLastVoteHeight - zero if never set
func (c *DelegateCache) GetLastVoteHeight() uint64 {
	h, _ := c.lastVoteHeight.GetData()
	return h.Amount
}
