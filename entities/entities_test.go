// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entities_test

import (
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/codec"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/sysparam"
)

func TestRegID(t *testing.T) {
	r := entities.RegID{Height: 4109388, Index: 2}
	assert.Equal(t, "4109388-2", r.String(), "text")

	p, err := entities.ParseRegID("4109388-2")
	assert.Nil(t, err, "parse")
	assert.Equal(t, r, p, "parse value")

	assert.Equal(t, r, entities.NewRegIDFromUint64(r.Uint64()), "packed round trip")

	for _, s := range []string{"", "1", "1-2-3", "x-1", "1-70000"} {
		_, err := entities.ParseRegID(s)
		assert.Equal(t, fault.ErrInvalidRegID, err, "%q accepted", s)
	}

	assert.True(t, r.IsMature(4109388+100, 100), "mature at boundary")
	assert.False(t, r.IsMature(4109388+99, 100), "immature")
	assert.False(t, entities.RegID{}.IsMature(math.MaxUint32, 0), "empty regid mature")

	// key order follows numeric order
	a := entities.RegIDKey.EncodeKey(entities.RegID{Height: 1, Index: 65535})
	b := entities.RegIDKey.EncodeKey(entities.RegID{Height: 2, Index: 0})
	assert.True(t, string(a) < string(b), "key order")
	assert.Equal(t, entities.RegIDLength, len(a), "key length")
}

func TestUserID(t *testing.T) {
	pub := entities.PubKey(append([]byte{0x02}, make([]byte, 32)...))
	assert.True(t, pub.IsValid(), "pubkey valid")

	u := entities.NewPubKeyUser(pub)
	k, ok := u.KeyID()
	assert.True(t, ok, "keyid from pubkey")
	assert.Equal(t, pub.KeyID(), k, "keyid value")

	parsed, err := entities.ParseUserID(k.String())
	assert.Nil(t, err, "parse keyid")
	assert.True(t, parsed.Equal(entities.NewKeyIDUser(k)), "keyid user")

	parsed, err = entities.ParseUserID("10-3")
	assert.Nil(t, err, "parse regid")
	r, ok := parsed.RegID()
	assert.True(t, ok, "regid user")
	assert.Equal(t, entities.RegID{Height: 10, Index: 3}, r, "regid value")

	_, err = entities.ParseUserID("not an id!")
	assert.Equal(t, fault.ErrInvalidUserID, err, "garbage accepted")

	assert.True(t, entities.UserID{}.IsEmpty(), "empty")
}

func TestAccountBalance(t *testing.T) {
	a := entities.NewAccount(entities.KeyID{1})
	assert.True(t, a.HasPerms(entities.AllPerms), "new account permissions")

	assert.Nil(t, a.OperateBalance(entities.SymbolWICC, entities.AddFree, 1000), "add")
	assert.Nil(t, a.OperateBalance(entities.SymbolWUSD, entities.AddFree, 5), "add second symbol")
	assert.Nil(t, a.OperateBalance(entities.SymbolWICC, entities.Pledge, 600), "pledge")
	assert.Nil(t, a.OperateBalance(entities.SymbolWICC, entities.Freeze, 100), "freeze")

	w := a.GetToken(entities.SymbolWICC)
	assert.Equal(t, uint64(300), w.Free, "free")
	assert.Equal(t, uint64(600), w.Pledged, "pledged")
	assert.Equal(t, uint64(100), w.Frozen, "frozen")

	err := a.OperateBalance(entities.SymbolWICC, entities.SubFree, 301)
	assert.Equal(t, fault.ErrInsufficientFunds, err, "overdraw")
	assert.Equal(t, uint64(300), a.FreeBalance(entities.SymbolWICC), "unchanged after error")

	err = a.OperateBalance(entities.SymbolWUSD, entities.AddFree, math.MaxUint64)
	assert.Equal(t, fault.ErrOverflow, err, "overflow")

	err = a.OperateBalance(entities.SymbolWICC, entities.BalanceOp(99), 1)
	assert.Equal(t, fault.ErrUnknownBalanceOperation, err, "bad op")

	// tokens kept in symbol order
	assert.Equal(t, entities.SymbolWICC, a.Tokens[0].Symbol, "first symbol")
	assert.Equal(t, entities.SymbolWUSD, a.Tokens[1].Symbol, "second symbol")
}

func TestCollateralRatio(t *testing.T) {
	// 100 WICC at 0.25 WUSD against 10 WUSD owed is 250%
	ratio := entities.CollateralRatio(100*entities.PriceBoost, 10*entities.PriceBoost, 25000000)
	assert.Equal(t, uint64(25000), ratio, "ratio")

	assert.Equal(t, uint64(math.MaxUint64), entities.CollateralRatio(1, 0, 1), "nothing owed")

	c := entities.CDP{TotalStakedBcoins: 300, TotalOwedScoins: 100}
	assert.Equal(t, uint64(30000), c.RatioBase(), "ratio base")
	c.TotalOwedScoins = 0
	assert.Equal(t, uint64(math.MaxUint64), c.RatioBase(), "ratio base nothing owed")
}

func TestRegIDList(t *testing.T) {
	var l entities.RegIDList
	assert.True(t, l.IsEmpty(), "empty")

	a := entities.RegID{Height: 5, Index: 1}
	b := entities.RegID{Height: 3, Index: 9}
	l = l.Add(a).Add(b).Add(a)
	assert.Equal(t, 2, len(l), "duplicate added")
	assert.Equal(t, entities.RegIDList{b, a}, l.Sorted(), "sorted")
	assert.Equal(t, entities.RegIDList{b}, l.Remove(a), "removed")
	assert.True(t, l.Contains(b), "contains")
}

func TestTxType(t *testing.T) {
	fee, ok := entities.CdpStakeTx.DefaultFee(entities.SymbolWICC)
	assert.True(t, ok, "cdp stake fee")
	assert.Equal(t, uint64(100000), fee, "cdp stake fee value")

	_, ok = entities.CdpStakeTx.DefaultFee(entities.SymbolWGRT)
	assert.False(t, ok, "WGRT is not a fee symbol")

	info, ok := entities.PriceMedianTx.Info()
	assert.True(t, ok, "median info")
	assert.False(t, info.Updatable, "median fee updatable")

	_, ok = entities.TxType(200).Info()
	assert.False(t, ok, "unknown type")
}

func sampleProposals() []entities.Proposal {
	return []entities.Proposal{
		&entities.ParamGovern{Params: []entities.SysParamSetting{{Type: sysparam.AssetIssueFee, Value: 7}}},
		&entities.GovernorUpdate{RegID: entities.RegID{Height: 9, Index: 1}, Op: entities.ProposalOpEnable},
		&entities.CoinTransfer{
			Token:  entities.SymbolWICC,
			Amount: 42,
			From:   entities.NewRegIDUser(entities.RegID{Height: 1, Index: 1}),
			To:     entities.NewKeyIDUser(entities.KeyID{7}),
		},
		&entities.BpCount{TotalBpsSize: 21, EffectiveHeight: 9000},
		&entities.MinerFee{TxType: entities.CdpStakeTx, FeeSymbol: entities.SymbolWUSD, Amount: 5},
		&entities.CdpParamGovern{
			Pair:   entities.CoinPair{Bcoin: entities.SymbolWICC, Scoin: entities.SymbolWUSD},
			Params: []entities.CdpParamSetting{{Type: sysparam.CdpInterestParamA, Value: 3}},
		},
		&entities.DexOperatorUpdate{DexID: 4, Op: entities.ProposalOpDisable},
		&entities.AccountPerm{Account: entities.NewRegIDUser(entities.RegID{Height: 2, Index: 2}), PermsSum: entities.PermDex},
		&entities.CancelOrder{OrderID: common.HexToHash("0xabcd")},
	}
}

func TestProposalRecordRoundTrip(t *testing.T) {
	values := codec.RLP[entities.ProposalRecord]{}

	proposals := sampleProposals()
	assert.Equal(t, len(entities.ProposalTypes), len(proposals), "every type has a sample")

	for i, p := range proposals {
		assert.Equal(t, entities.ProposalTypes[i], p.Type(), "%d: type order", i)

		record := entities.ProposalRecord{
			Proposal:         p,
			ExpireHeight:     1300,
			ApprovalMinCount: 3,
		}
		decoded, err := values.DecodeValue(values.EncodeValue(record))
		assert.Nil(t, err, "%s: decode", p.Type())
		assert.Equal(t, p.Type(), decoded.Proposal.Type(), "%s: type", p.Type())
		assert.Equal(t, record.ExpireHeight, decoded.ExpireHeight, "%s: expire", p.Type())
		assert.Equal(t, record.ApprovalMinCount, decoded.ApprovalMinCount, "%s: min count", p.Type())
		assert.Equal(t, p, decoded.Proposal, "%s: body", p.Type())
	}

	empty, err := values.DecodeValue(values.EncodeValue(entities.ProposalRecord{}))
	assert.Nil(t, err, "empty decode")
	assert.True(t, empty.IsEmpty(), "empty record")
	assert.True(t, values.IsEmptyValue(empty), "empty value")
}

func TestNewProposalUnknown(t *testing.T) {
	_, err := entities.NewProposal(entities.NullProposal)
	assert.Equal(t, fault.ErrInvalidProposalType, err, "null type")
	_, err = entities.NewProposal(entities.ProposalType(10))
	assert.Equal(t, fault.ErrInvalidProposalType, err, "unknown type")
}

func TestCancelOrderRemainder(t *testing.T) {
	buy := entities.DexOrder{
		GenerateType:        entities.UserGenOrder,
		OrderSide:           entities.OrderBuy,
		CoinSymbol:          entities.SymbolWUSD,
		CoinAmount:          1000,
		TotalDealCoinAmount: 300,
	}
	symbol, amount, ok := buy.FrozenRemainder()
	assert.True(t, ok, "buy side")
	assert.Equal(t, entities.SymbolWUSD, symbol, "buy symbol")
	assert.Equal(t, uint64(700), amount, "buy remainder")

	sell := entities.DexOrder{
		GenerateType:         entities.UserGenOrder,
		OrderSide:            entities.OrderSell,
		AssetSymbol:          entities.SymbolWICC,
		AssetAmount:          50,
		TotalDealAssetAmount: 50,
	}
	symbol, amount, ok = sell.FrozenRemainder()
	assert.True(t, ok, "sell side")
	assert.Equal(t, entities.SymbolWICC, symbol, "sell symbol")
	assert.Equal(t, uint64(0), amount, "sell remainder")
}
