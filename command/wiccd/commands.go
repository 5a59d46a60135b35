// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/configuration"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/storage"
	"github.com/waykichain/wiccd/templates"
)

const (
	configurationFilename = "wiccd.conf"
	defaultMetricsListen  = "127.0.0.1:9900"
)

// setup command handler
//
// commands that run to create the initial files these commands
// cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-config", "config":
		fileName := getFilenameWithDirectory(arguments, configurationFilename)
		chainName := chain.Main
		if len(arguments) >= 2 {
			chainName = arguments[1]
		}

		err := writeConfiguration(fileName, chainName)
		if nil != err {
			fmt.Printf("generate configuration: %q error: %s\n", fileName, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated configuration: %q\n", fileName)

	case "start", "run":
		return false // continue processing

	case "dbstats", "stats", "governors", "gov":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-config [DIR [CHAIN]]   (config) - create configuration in: %q\n", "DIR/"+configurationFilename)
		fmt.Printf("                                        CHAIN is one of: %s, %s, %s\n", chain.Main, chain.Test, chain.Regtest)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  dbstats                    (stats)  - display LevelDB statistics of every partition\n")
		fmt.Printf("\n")

		fmt.Printf("  governors                  (gov)    - list the current governors\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// data command handler
// the storage and root caches are open so these commands can read
// the databases
func processDataCommand(log *logger.L, arguments []string, manager *cachewrapper.Manager) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "dbstats", "stats":
		err := printStats(os.Stdout)
		if nil != err {
			exitwithstatus.Message("dbstats error: %s", err)
		}

	case "governors", "gov":
		cw := cachewrapper.NewFromManager(manager)
		for _, r := range cw.SysGovern.GetGovernors() {
			fmt.Printf("%s\n", r)
		}

	default:
		log.Errorf("no such command: %s", command)
		exitwithstatus.Message("error: no such command: %s", command)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// write a default configuration, never overwriting an existing file
func writeConfiguration(fileName string, chainName string) error {
	if !chain.Valid(chainName) {
		return fault.ErrInvalidChain
	}
	if configuration.FileExists(fileName) {
		return fault.ErrFileAlreadyExists
	}

	fd, err := os.OpenFile(fileName, os.O_WRONLY|os.O_EXCL|os.O_CREATE, 0600)
	if nil != err {
		return err
	}
	defer fd.Close()

	return renderConfiguration(fd, chainName)
}

func renderConfiguration(w io.Writer, chainName string) error {
	t, err := template.New("config").Parse(templates.ConfigurationTemplate)
	if nil != err {
		return err
	}

	data := struct {
		Chain         string
		MetricsListen string
	}{
		Chain:         chainName,
		MetricsListen: defaultMetricsListen,
	}
	return t.Execute(w, data)
}

// LevelDB internal statistics of each partition
func printStats(w io.Writer) error {
	for _, partition := range storage.Partitions {
		store, err := storage.Database(partition)
		if nil != err {
			return err
		}
		stats, err := store.Property("leveldb.stats")
		if nil != err {
			return err
		}
		fmt.Fprintf(w, "partition: %s\n%s\n", partition, stats)
	}
	return nil
}
