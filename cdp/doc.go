// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cdp - collateralized debt position transactions
//
// An owner stakes bcoins (WICC) and mints scoins (WUSD) against them.
// Every amount is an integer in the smallest unit; ratios carry a
// boost of 10000 and prices a boost of 10^8.  All arithmetic is done
// in 256 bits and truncates, except the collateral still required
// after a partial redemption which rounds up.
//
// Interest is charged in scoins whenever the position changes and is
// spent by a system market order buying WGRT to be burnt.
package cdp

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

var (
	logOnce sync.Once
	log     *logger.L
)

func getLog() *logger.L {
	logOnce.Do(func() {
		log = logger.New("cdp")
	})
	return log
}
