// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/storage"
)

const (
	logDirectory = "wicc-cli"
	logFile      = "wicc-cli.log"
)

// open the partitions read only and build a read view over the
// root caches, the view is never flushed
func open(m *metadata, directory string, chainName string) error {
	if "" == directory {
		return fmt.Errorf("database directory is required")
	}

	params, err := chain.Get(strings.ToLower(chainName))
	if nil != err {
		return err
	}

	// storage and cache layers log, keep it out of the terminal
	logs := filepath.Join(os.TempDir(), logDirectory)
	if err := os.MkdirAll(logs, 0700); nil != err {
		return err
	}
	level := "critical"
	if m.verbose {
		level = "info"
	}
	err = logger.Initialise(logger.Configuration{
		Directory: logs,
		File:      logFile,
		Size:      1048576,
		Count:     2,
		Levels:    map[string]string{logger.DefaultTag: level},
	})
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "database: %s\n", directory)
		fmt.Fprintf(m.e, "chain: %s\n", params.Name)
	}

	err = storage.Initialise(directory, storage.ReadOnly, false)
	if nil != err {
		logger.Finalise()
		return err
	}

	manager, err := cachewrapper.Open(params)
	if nil != err {
		closeDatabases()
		return err
	}

	m.params = params
	m.cache = cachewrapper.NewFromManager(manager)
	return nil
}

func closeDatabases() {
	storage.Finalise()
	logger.Finalise()
}
