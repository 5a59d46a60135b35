// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

const (
	/**** Configuration template ****/
	ConfigurationTemplate = `-- wiccd.conf  -*- mode: lua -*-

local M = {}

-- "." is the directory holding this file
M.data_directory = "."

-- optional pid file, blank for none
M.pidfile = ""

-- select the chain: main, test or regtest
M.chain = "{{.Chain}}"

M.database = {
    directory = "{{.Chain}}",
    read_only = false,
    read_cache = true,
}

-- prometheus endpoint, blank to disable
M.metrics = {
    listen = "{{.MetricsListen}}",
}

M.logging = {
    size = 1048576,
    count = 10,
    directory = "log",
    file = "wiccd.log",

    levels = {
        DEFAULT = "info",
        main = "info",
        storage = "info",
        cachewrapper = "info",
        governance = "info",
        cdp = "info",
    },
}

return M
`
)
