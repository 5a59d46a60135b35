// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/configuration"
	"github.com/waykichain/wiccd/fault"
)

type databaseType struct {
	Directory string `gluamapper:"directory"`
	ReadOnly  bool   `gluamapper:"read_only"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Chain         string            `gluamapper:"chain"`
	Database      databaseType      `gluamapper:"database"`
	Levels        map[string]string `gluamapper:"levels"`
	Listen        []string          `gluamapper:"listen"`
}

const script = `
local M = {}
M.data_directory = arg[0]:match("(.*/)")
M.chain = chain_name
M.database = {
    directory = "data",
    read_only = true,
}
M.levels = {
    main = "info",
    cdp = "debug",
}
M.listen = { "127.0.0.1:9900", "[::1]:9900" }
return M
`

func writeFile(t *testing.T, name string, content string) string {
	fileName := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(fileName, []byte(content), 0600)
	assert.Nil(t, err, "write: %s", fileName)
	return fileName
}

func TestParseConfigurationFile(t *testing.T) {
	fileName := writeFile(t, "test.conf", script)

	c := &testConfiguration{
		Chain: "main",
	}
	err := configuration.ParseConfigurationFile(fileName, c, map[string]string{"chain_name": "regtest"})
	assert.Nil(t, err, "parse")

	assert.Equal(t, filepath.Dir(fileName)+"/", c.DataDirectory, "arg[0] directory")
	assert.Equal(t, "regtest", c.Chain, "variable")
	assert.Equal(t, databaseType{Directory: "data", ReadOnly: true}, c.Database, "nested table")
	assert.Equal(t, map[string]string{"main": "info", "cdp": "debug"}, c.Levels, "map")
	assert.Equal(t, []string{"127.0.0.1:9900", "[::1]:9900"}, c.Listen, "list")
}

func TestParseKeepsDefaults(t *testing.T) {
	fileName := writeFile(t, "partial.conf", `return { chain = "test" }`)

	c := &testConfiguration{
		Database: databaseType{Directory: "default"},
	}
	err := configuration.ParseConfigurationFile(fileName, c, nil)
	assert.Nil(t, err, "parse")
	assert.Equal(t, "test", c.Chain, "chain")
	assert.Equal(t, "default", c.Database.Directory, "default overwritten")
}

func TestParseErrors(t *testing.T) {
	fileName := writeFile(t, "number.conf", `return 42`)
	err := configuration.ParseConfigurationFile(fileName, &testConfiguration{}, nil)
	assert.Equal(t, fault.ErrInvalidConfiguration, err, "non table result")

	err = configuration.ParseConfigurationFile(fileName, testConfiguration{}, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "non pointer")

	broken := writeFile(t, "broken.conf", `return {`)
	err = configuration.ParseConfigurationFile(broken, &testConfiguration{}, nil)
	assert.NotNil(t, err, "syntax error accepted")

	err = configuration.ParseConfigurationFile(filepath.Join(t.TempDir(), "missing.conf"), &testConfiguration{}, nil)
	assert.NotNil(t, err, "missing file accepted")
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", configuration.EnsureAbsolute("/data", "log"), "relative")
	assert.Equal(t, "/var/log", configuration.EnsureAbsolute("/data", "/var/log"), "absolute")
	assert.Equal(t, "/data/log", configuration.EnsureAbsolute("/data", "./x/../log"), "cleaned")

	required := "db"
	optional := ""
	configured := "wiccd.pid"
	configuration.EnsureAbsoluteAll("/d", []*string{&required}, []*string{&optional, &configured})
	assert.Equal(t, "/d/db", required, "required")
	assert.Equal(t, "", optional, "blank optional")
	assert.Equal(t, "/d/wiccd.pid", configured, "optional")
}

func TestCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	assert.Nil(t, configuration.CheckDirectory(dir), "directory")

	fileName := writeFile(t, "file", "x")
	assert.Equal(t, fault.ErrNotADirectory, configuration.CheckDirectory(fileName), "file")
	assert.True(t, configuration.FileExists(fileName), "file exists")

	assert.NotNil(t, configuration.CheckDirectory(filepath.Join(dir, "missing")), "missing")
	assert.False(t, configuration.FileExists(filepath.Join(dir, "missing")), "missing exists")
}
