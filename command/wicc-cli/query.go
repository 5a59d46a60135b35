// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/waykichain/wiccd/account"
	"github.com/waykichain/wiccd/cachewrapper"
	"github.com/waykichain/wiccd/chain"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/sysparam"
)

// digits of one coin, PriceBoost is the same scale
const coinDecimals = 8

type paramValue struct {
	Name    string `json:"name"`
	Value   uint64 `json:"value"`
	Default uint64 `json:"default"`
}

type tokenInfo struct {
	Symbol  string `json:"symbol"`
	Coins   string `json:"coins"` // free amount in coins
	Free    uint64 `json:"free"`
	Frozen  uint64 `json:"frozen"`
	Pledged uint64 `json:"pledged"`
	Voted   uint64 `json:"voted"`
}

type accountInfo struct {
	Address        string      `json:"address"`
	KeyID          string      `json:"keyid"`
	RegID          string      `json:"regid"`
	NickID         string      `json:"nickid"`
	OwnerPubKey    string      `json:"owner_pubkey"`
	MinerPubKey    string      `json:"miner_pubkey"`
	Tokens         []tokenInfo `json:"tokens"`
	ReceivedVotes  uint64      `json:"received_votes"`
	LastVoteHeight uint64      `json:"last_vote_height"`
	Perms          uint64      `json:"perms_sum"`
}

type cdpInfo struct {
	ID          common.Hash `json:"cdp_id"`
	Owner       string      `json:"owner_regid"`
	Pair        string      `json:"coin_pair"`
	BlockHeight uint32      `json:"last_height"`
	Staked      uint64      `json:"total_staked_bcoins"`
	Owed        uint64      `json:"total_owed_scoins"`
	Ratio       uint64      `json:"collateral_ratio_base"`
}

type cdpList struct {
	Count int       `json:"count"`
	Cdps  []cdpInfo `json:"cdps"`
}

// "BCOIN:SCOIN", symbols are upper cased
func parseCoinPair(s string) (entities.CoinPair, error) {
	parts := strings.Split(strings.ToUpper(s), ":")
	if 2 != len(parts) {
		return entities.CoinPair{}, fault.ErrInvalidCoinPair
	}
	pair := entities.CoinPair{Bcoin: parts[0], Scoin: parts[1]}
	if pair.IsEmpty() {
		return entities.CoinPair{}, fault.ErrInvalidCoinPair
	}
	return pair, nil
}

// sawi as a fixed point coin amount
func coins(amount uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -coinDecimals).StringFixed(coinDecimals)
}

// decimal coin price to the PriceBoost fixed point form
func parsePrice(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if nil != err {
		return 0, fault.ErrInvalidPrice
	}
	boosted := d.Shift(coinDecimals)
	if !boosted.IsPositive() || !boosted.Equal(boosted.Truncate(0)) {
		return 0, fault.ErrInvalidPrice
	}
	n := boosted.BigInt()
	if !n.IsUint64() {
		return 0, fault.ErrInvalidPrice
	}
	return n.Uint64(), nil
}

// 32 byte hex with optional 0x
func parseHash(s string, invalid error) (common.Hash, error) {
	buffer := common.FromHex(s)
	if common.HashLength != len(buffer) {
		return common.Hash{}, invalid
	}
	h := common.BytesToHash(buffer)
	if (common.Hash{}) == h {
		return common.Hash{}, invalid
	}
	return h, nil
}

func sysParams(cw *cachewrapper.CacheWrapper, name string) ([]paramValue, error) {
	list := sysparam.SysParams()
	if "" != name {
		t, ok := sysparam.ParamByName(strings.ToUpper(name))
		if !ok {
			return nil, fault.ErrInvalidParamName
		}
		list = []sysparam.SysParamType{t}
	}

	values := make([]paramValue, 0, len(list))
	for _, t := range list {
		values = append(values, paramValue{
			Name:    t.String(),
			Value:   cw.SysParam.GetParam(t),
			Default: t.Default(),
		})
	}
	return values, nil
}

func cdpParams(cw *cachewrapper.CacheWrapper, pair entities.CoinPair, name string) ([]paramValue, error) {
	list := sysparam.CdpParams()
	if "" != name {
		t, ok := sysparam.CdpParamByName(strings.ToUpper(name))
		if !ok {
			return nil, fault.ErrInvalidParamName
		}
		list = []sysparam.CdpParamType{t}
	}

	values := make([]paramValue, 0, len(list))
	for _, t := range list {
		values = append(values, paramValue{
			Name:    t.String(),
			Value:   cw.SysParam.GetCdpParam(pair, t),
			Default: t.Default(),
		})
	}
	return values, nil
}

// an address of this chain, otherwise any user id form
func findAccount(cw *cachewrapper.CacheWrapper, params *chain.Parameters, s string) (*entities.Account, error) {
	if a, err := account.FromBase58(s); nil == err {
		if !a.IsNetwork(params) {
			return nil, fault.ErrWrongNetworkForAddress
		}
		acc, found := cw.Account.GetAccount(a.KeyID)
		if !found {
			return nil, fault.ErrAccountNotFound
		}
		return acc, nil
	}

	uid, err := entities.ParseUserID(s)
	if nil != err {
		return nil, err
	}
	acc, found := cw.Account.GetAccountByUID(uid)
	if !found {
		return nil, fault.ErrAccountNotFound
	}
	return acc, nil
}

func newAccountInfo(params *chain.Parameters, a *entities.Account) *accountInfo {
	info := &accountInfo{
		Address:        account.New(params, a.KeyID).String(),
		KeyID:          a.KeyID.String(),
		NickID:         a.NickID,
		Tokens:         make([]tokenInfo, 0, len(a.Tokens)),
		ReceivedVotes:  a.ReceivedVotes,
		LastVoteHeight: a.LastVoteHeight,
		Perms:          a.PermsSum,
	}
	if a.IsRegistered() {
		info.RegID = a.RegID.String()
	}
	if 0 != len(a.OwnerPubKey) {
		info.OwnerPubKey = a.OwnerPubKey.String()
	}
	if 0 != len(a.MinerPubKey) {
		info.MinerPubKey = a.MinerPubKey.String()
	}
	for _, t := range a.Tokens {
		info.Tokens = append(info.Tokens, tokenInfo{
			Symbol:  t.Symbol,
			Coins:   coins(t.Free),
			Free:    t.Free,
			Frozen:  t.Frozen,
			Pledged: t.Pledged,
			Voted:   t.Voted,
		})
	}
	return info
}

func newCdpInfo(c *entities.CDP) cdpInfo {
	return cdpInfo{
		ID:          c.ID,
		Owner:       c.Owner.String(),
		Pair:        c.Pair().String(),
		BlockHeight: c.BlockHeight,
		Staked:      c.TotalStakedBcoins,
		Owed:        c.TotalOwedScoins,
		Ratio:       c.RatioBase(),
	}
}

func newCdpList(cdps []*entities.CDP) *cdpList {
	list := &cdpList{
		Count: len(cdps),
		Cdps:  make([]cdpInfo, 0, len(cdps)),
	}
	for _, c := range cdps {
		list.Cdps = append(list.Cdps, newCdpInfo(c))
	}
	return list
}

func getGovernors(cw *cachewrapper.CacheWrapper) []string {
	governors := cw.SysGovern.GetGovernors()
	list := make([]string, 0, len(governors))
	for _, r := range governors {
		list = append(list, r.String())
	}
	return list
}
