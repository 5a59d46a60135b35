// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/waykichain/wiccd/cachewrapper"
)

const (
	statsDelay      = 60 * time.Second
	shutdownTimeout = 5 * time.Second
	mega            = 1048576
)

// periodic memory and unflushed cache size report
type memstats struct {
	log *logger.L
}

func (s *memstats) Run(args interface{}, shutdown <-chan struct{}) {
	manager := args.(*cachewrapper.Manager)

	s.log = logger.New("memory")
	s.log.Info("starting…")

loop:
	for {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		a := m.Alloc / mega
		t := m.TotalAlloc / mega
		o := m.Sys / mega
		s.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M  unflushed cache: %d bytes", a, t, o, manager.Size())

		select {
		case <-shutdown:
			break loop
		case <-time.After(statsDelay):
		}
	}
	s.log.Info("shutting down…")
	s.log.Flush()
}

// prometheus endpoint
type metricsServer struct {
	log    *logger.L
	listen string
}

func (s *metricsServer) Run(args interface{}, shutdown <-chan struct{}) {
	s.log = logger.New("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:    s.listen,
		Handler: mux,
	}

	failed := make(chan error, 1)
	go func() {
		s.log.Infof("listening on: %s", s.listen)
		failed <- server.ListenAndServe()
	}()

	select {
	case <-shutdown:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); nil != err {
			s.log.Errorf("shutdown error: %s", err)
		}
	case err := <-failed:
		s.log.Criticalf("listener error: %s", err)
	}
	s.log.Info("stopped")
	s.log.Flush()
}

// summary of the opened state
func reportState(log *logger.L, manager *cachewrapper.Manager) {
	cw := cachewrapper.NewFromManager(manager)

	log.Infof("chain: %s", manager.Params().Name)
	log.Infof("best block: %s", cw.Account.GetBestBlock().Hex())
	log.Infof("governors: %d", len(cw.SysGovern.GetGovernors()))
	log.Infof("active delegates: %d", len(cw.Delegate.GetActiveDelegates()))
	log.Infof("total bps: %d", cw.SysParam.GetTotalBpsSize(0))
}
