// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/governance"
)

func runGetProposal(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id := c.String("id")
	if "" == id {
		count := c.Int("count")
		if count <= 0 {
			return fmt.Errorf("invalid count: %d", count)
		}
		list, more := governance.ListProposals(m.cache, count)
		return printJson(m.w, struct {
			Proposals []*governance.Status `json:"proposals"`
			More      bool                 `json:"more"`
		}{
			Proposals: list,
			More:      more,
		})
	}

	proposalID, err := parseHash(id, fault.ErrInvalidProposalID)
	if nil != err {
		return err
	}
	status, err := governance.GetProposal(m.cache, proposalID)
	if nil != err {
		return err
	}
	return printJson(m.w, status)
}

func runGetSysParam(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	values, err := sysParams(m.cache, c.String("name"))
	if nil != err {
		return err
	}
	return printJson(m.w, values)
}

func runGetCdpParam(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	pair, err := parseCoinPair(c.String("pair"))
	if nil != err {
		return err
	}
	values, err := cdpParams(m.cache, pair, c.String("name"))
	if nil != err {
		return err
	}
	return printJson(m.w, values)
}

func runGetAccount(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	s := c.String("account")
	if "" == s {
		return fmt.Errorf("account is required")
	}
	if m.verbose {
		fmt.Fprintf(m.e, "account: %s\n", s)
	}

	a, err := findAccount(m.cache, m.params, s)
	if nil != err {
		return err
	}
	return printJson(m.w, newAccountInfo(m.params, a))
}

func runGetCdp(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	id, err := parseHash(c.String("id"), fault.ErrInvalidCdpID)
	if nil != err {
		return err
	}
	cdp, found := m.cache.Cdp.GetCDP(id)
	if !found {
		return fault.ErrCdpNotFound
	}
	return printJson(m.w, newCdpInfo(cdp))
}

func runListCdps(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	owner := c.String("owner")
	pairName := c.String("pair")

	switch {
	case "" != owner && "" == pairName:
		a, err := findAccount(m.cache, m.params, owner)
		if nil != err {
			return err
		}
		if !a.IsRegistered() {
			return printJson(m.w, newCdpList(nil))
		}
		return printJson(m.w, newCdpList(m.cache.Cdp.GetCDPList(a.RegID)))

	case "" == owner && "" != pairName:
		pair, err := parseCoinPair(pairName)
		if nil != err {
			return err
		}
		if "" == c.String("price") {
			return fmt.Errorf("price is required with pair")
		}
		price, err := parsePrice(c.String("price"))
		if nil != err {
			return err
		}
		count := c.Int("count")
		if count <= 0 {
			return fmt.Errorf("invalid count: %d", count)
		}
		cdps := m.cache.Cdp.GetCdpListByRatio(pair, c.Uint64("ratio"), price, count)
		return printJson(m.w, newCdpList(cdps))

	default:
		return fmt.Errorf("select one of owner or pair")
	}
}

func runGetGovernors(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	return printJson(m.w, getGovernors(m.cache))
}
