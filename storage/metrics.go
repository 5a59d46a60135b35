// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics - counters shared by the database and cache layers
type Metrics struct {
	cacheBytes  *prometheus.GaugeVec
	cacheFlush  *prometheus.CounterVec
	batchWrites *prometheus.CounterVec
}

var (
	metricsOnce     sync.Once
	metricsRegistry *Metrics
)

// Stats - the process wide metrics, registered on first use
func Stats() *Metrics {
	metricsOnce.Do(func() {
		metricsRegistry = &Metrics{
			cacheBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "wiccd_cache_bytes",
				Help: "Estimated size of unflushed root cache data.",
			}, []string{"database"}),
			cacheFlush: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "wiccd_cache_flush_total",
				Help: "Number of root cache flushes to the database.",
			}, []string{"database"}),
			batchWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "wiccd_db_batch_writes_total",
				Help: "Number of committed LevelDB write batches.",
			}, []string{"database"}),
		}
		prometheus.MustRegister(
			metricsRegistry.cacheBytes,
			metricsRegistry.cacheFlush,
			metricsRegistry.batchWrites,
		)
	})
	return metricsRegistry
}

// SetCacheBytes - record the current size of a root cache
func (m *Metrics) SetCacheBytes(p Partition, size uint64) {
	if nil == m {
		return
	}
	m.cacheBytes.WithLabelValues(string(p)).Set(float64(size))
}

// ObserveCacheFlush - count a root cache flush
func (m *Metrics) ObserveCacheFlush(p Partition) {
	if nil == m {
		return
	}
	m.cacheFlush.WithLabelValues(string(p)).Inc()
}

// ObserveBatchWrite - count a committed batch
func (m *Metrics) ObserveBatchWrite(p Partition) {
	if nil == m {
		return
	}
	m.batchWrites.WithLabelValues(string(p)).Inc()
}
