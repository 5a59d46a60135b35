// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/chain"
)

type metadata struct {
	params  *chain.Parameters
	cache   *cachewrapper.CacheWrapper
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "wicc-cli"
	app.Usage = "query the state databases of a stopped node"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "database, d",
			Value: "",
			Usage: "*database `DIRECTORY` holding the partitions",
		},
		cli.StringFlag{
			Name:  "chain, n",
			Value: chain.Main,
			Usage: " parameters of `CHAIN` [main|test|regtest]",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "getproposal",
			Usage:     "display a proposal and its approvals, or list proposals",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: " proposal transaction `TXID` [default list]",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum number to list `COUNT`",
				},
			},
			Action: runGetProposal,
		},
		{
			Name:      "getsysparam",
			Usage:     "display system parameters",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, p",
					Value: "",
					Usage: " parameter `NAME` [default all]",
				},
			},
			Action: runGetSysParam,
		},
		{
			Name:      "getcdpparam",
			Usage:     "display cdp parameters of a coin pair",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "pair, c",
					Value: "WICC:WUSD",
					Usage: " coin `BCOIN:SCOIN`",
				},
				cli.StringFlag{
					Name:  "name, p",
					Value: "",
					Usage: " parameter `NAME` [default all]",
				},
			},
			Action: runGetCdpParam,
		},
		{
			Name:      "getaccount",
			Usage:     "display an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*account `ADDRESS|REGID|KEYID|PUBKEY|NICKID`",
				},
			},
			Action: runGetAccount,
		},
		{
			Name:      "getcdp",
			Usage:     "display a cdp",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*cdp `TXID`",
				},
			},
			Action: runGetCdp,
		},
		{
			Name:      "listcdps",
			Usage:     "list the cdps of an owner, or liquidation candidates of a pair",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "+owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "pair, c",
					Value: "",
					Usage: "+coin `BCOIN:SCOIN`",
				},
				cli.StringFlag{
					Name:  "price, P",
					Value: "",
					Usage: " bcoin median `PRICE` in scoins, required with pair",
				},
				cli.Uint64Flag{
					Name:  "ratio, r",
					Value: 15000,
					Usage: " list below collateral `RATIO` boosted by 10^4",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " maximum number to list `COUNT`",
				},
			},
			Action: runListCdps,
		},
		{
			Name:      "getgovernors",
			Usage:     "list the governors",
			ArgsUsage: " ",
			Action:    runGetGovernors,
		},
		{
			Name:      "version",
			Usage:     "display wicc-cli version",
			ArgsUsage: " ",
			Action:    runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		m := &metadata{
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}

		c.App.Metadata["config"] = m

		// these do not need the databases
		switch c.Args().First() {
		case "", "version", "help", "h":
			return nil
		}

		return open(m, c.GlobalString("database"), c.GlobalString("chain"))
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if ok && nil != m.cache {
			closeDatabases()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
