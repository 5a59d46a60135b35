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

	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/configuration"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDatabaseDirectory = "data"

	defaultLogDirectory = "log"
	defaultLogFile      = "wiccd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// a fresh map each time, the parser merges into it
func defaultLogLevels() LoglevelMap {
	return LoglevelMap{
		logger.DefaultTag: "critical",
	}
}

// DatabaseType - where the partitions are kept
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	ReadOnly  bool   `gluamapper:"read_only" json:"read_only"`
	ReadCache bool   `gluamapper:"read_cache" json:"read_cache"`
}

// MetricsType - prometheus endpoint, blank to disable
type MetricsType struct {
	Listen string `gluamapper:"listen" json:"listen"`
}

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Chain         string               `gluamapper:"chain" json:"chain"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Metrics       MetricsType          `gluamapper:"metrics" json:"metrics"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Main,

		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			ReadCache: true,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels(),
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("chain: %q is not supported", options.Chain)
	}

	// ensure absolute data directory
	switch options.DataDirectory {
	case "", "~":
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	case ".":
		options.DataDirectory = dataDirectory // same directory as the configuration file
	default:
		options.DataDirectory = configuration.EnsureAbsolute(dataDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if err := configuration.CheckDirectory(options.DataDirectory); nil != err {
		return nil, fmt.Errorf("path: %q  error: %s", options.DataDirectory, err)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	configuration.EnsureAbsoluteAll(
		options.DataDirectory,
		[]*string{
			&options.Database.Directory,
			&options.Logging.Directory,
		},
		[]*string{
			&options.PidFile,
		},
	)

	// log file must be a plain name inside the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	// create directories if they do not already exist, a read
	// only database must already be present
	directories := []string{options.Logging.Directory}
	if !options.Database.ReadOnly {
		directories = append(directories, options.Database.Directory)
	}
	for _, d := range directories {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}
