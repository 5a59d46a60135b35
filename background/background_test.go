// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/background"
)

// counts ticks until shutdown then records its final state
type ticker struct {
	ticks    int64
	finished int32
	arg      string
}

func (p *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	p.arg = args.(string)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&p.ticks, 1)
		}
	}
	atomic.StoreInt32(&p.finished, 1)
}

func TestStartStop(t *testing.T) {
	p1 := &ticker{}
	p2 := &ticker{}

	b := background.Start(background.Processes{p1, p2}, "flush")
	time.Sleep(20 * time.Millisecond)
	b.Stop()

	for i, p := range []*ticker{p1, p2} {
		assert.Equal(t, int32(1), atomic.LoadInt32(&p.finished), "%d: not finished after stop", i)
		assert.True(t, atomic.LoadInt64(&p.ticks) > 0, "%d: never ran", i)
		assert.Equal(t, "flush", p.arg, "%d: wrong argument", i)
	}

	ticks := atomic.LoadInt64(&p1.ticks)
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, ticks, atomic.LoadInt64(&p1.ticks), "still running after stop")
}

func TestStopTwice(t *testing.T) {
	b := background.Start(background.Processes{&ticker{}}, "")
	b.Stop()
	assert.NotPanics(t, b.Stop, "second stop")
}

func TestStopEmpty(t *testing.T) {
	b := background.Start(nil, nil)
	assert.NotPanics(t, b.Stop, "stop with no processes")
}
