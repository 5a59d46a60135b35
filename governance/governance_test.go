// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance_test

import (
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/waykichain/wiccd/cachewrapper/cachetest"
	"github.com/waykichain/wiccd/entities"
	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/fixtures"
	"github.com/waykichain/wiccd/governance"
	"github.com/waykichain/wiccd/sysparam"
	"github.com/waykichain/wiccd/transaction"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

const height = 5000000

var (
	others = []entities.RegID{
		{Height: 100, Index: 1},
		{Height: 100, Index: 2},
		{Height: 100, Index: 3},
	}
	outsider = entities.RegID{Height: 200, Index: 9}
	funds    = map[string]uint64{entities.SymbolWICC: 10 * sysparam.COIN}
)

// env with four governors: the bootstrap one and the others
func setup(t *testing.T) (*cachetest.Env, []entities.RegID) {
	env := cachetest.New(t)
	governors := append(entities.RegIDList{}, env.Params.GovernorBootstrap...)
	for _, r := range others {
		assert.True(t, env.Cache.SysGovern.AddGovernor(r), "add governor: %s", r)
		governors = append(governors, r)
	}
	for _, r := range governors {
		env.Account(t, r, funds)
	}
	env.Account(t, outsider, funds)
	return env, governors
}

func txID(n byte) common.Hash {
	return common.Hash{0x7a, n}
}

func base(regID entities.RegID, id common.Hash) transaction.BaseTx {
	return transaction.BaseTx{
		TxID:      id,
		TxUID:     entities.NewRegIDUser(regID),
		FeeSymbol: entities.SymbolWICC,
		Fees:      10000,
	}
}

func request(env *cachetest.Env, h uint32, regID entities.RegID, id common.Hash, p entities.Proposal) error {
	return transaction.Process(env.Context(h, nil), governance.NewRequestTx(base(regID, id), p))
}

func approve(env *cachetest.Env, h uint32, regID entities.RegID, id common.Hash, n byte) error {
	return transaction.Process(env.Context(h, nil), governance.NewApprovalTx(base(regID, txID(n)), id))
}

func requestBase() *transaction.BaseTx {
	return &transaction.BaseTx{TxType: entities.ProposalRequestTx}
}

func approvalBase() *transaction.BaseTx {
	return &transaction.BaseTx{TxType: entities.ProposalApprovalTx}
}

func TestCategory(t *testing.T) {
	delegated := map[entities.ProposalType]bool{
		entities.GovernorUpdateProposal: true,
		entities.BpCountProposal:        true,
		entities.CoinTransferProposal:   true,
	}
	for _, pt := range entities.ProposalTypes {
		p, err := entities.NewProposal(pt)
		assert.Nil(t, err, "new proposal: %s", pt)

		expected := entities.ApprovedByGovernors
		if delegated[pt] {
			expected = entities.ApprovedByDelegates
		}
		assert.Equal(t, expected, governance.Category(p), "category of: %s", pt)
	}
}

// every variant reaches its own checks, an empty proposal never passes
func TestCheckDispatch(t *testing.T) {
	env, _ := setup(t)
	defer env.Close()

	for _, pt := range entities.ProposalTypes {
		p, err := entities.NewProposal(pt)
		assert.Nil(t, err, "new proposal: %s", pt)

		ctx := env.Context(height, nil)
		err = governance.Check(ctx, requestBase(), p)
		assert.NotNil(t, err, "empty %s accepted", pt)
		assert.True(t, fault.IsErrValidation(err), "%s error type: %T", pt, err)
		assert.False(t, ctx.State.IsValid(), "%s state still valid", pt)
	}
}

func TestParamGovernLifecycle(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	id := txID(1)
	p := &entities.ParamGovern{
		Params: []entities.SysParamSetting{
			{Type: sysparam.AssetIssueFee, Value: 600 * sysparam.COIN},
		},
	}
	assert.Nil(t, request(env, height, outsider, id, p), "request")

	record, found := env.Cache.SysGovern.GetProposal(id)
	assert.True(t, found, "proposal not stored")
	assert.Equal(t, uint64(height+1200), record.ExpireHeight, "expire height")
	assert.Equal(t, uint8(3), record.ApprovalMinCount, "min count")
	assert.Equal(t, uint64(10*sysparam.COIN-10000), env.Reload(t, outsider).FreeBalance(entities.SymbolWICC), "request fee")

	for i, g := range governors[:2] {
		assert.Nil(t, approve(env, height+1, g, id, byte(10+i)), "approval: %d", i)
	}
	assert.Equal(t, uint64(550*sysparam.COIN), env.Cache.SysParam.GetParam(sysparam.AssetIssueFee), "executed early")

	assert.Nil(t, approve(env, height+2, governors[2], id, 12), "final approval")
	assert.Equal(t, uint64(600*sysparam.COIN), env.Cache.SysParam.GetParam(sysparam.AssetIssueFee), "not executed")
	assert.Equal(t, 3, env.Cache.SysGovern.GetApprovalCount(id), "approval count")

	err := approve(env, height+3, governors[3], id, 13)
	assert.Equal(t, "proposal-executed", fault.Reason(err), "approval after execution")

	status, err := governance.GetProposal(env.Cache, id)
	assert.Nil(t, err, "get proposal")
	assert.True(t, status.Executed, "status executed")
	assert.Equal(t, "governors", status.Approvers, "status approvers")
	assert.Equal(t, 3, len(status.Approvals), "status approvals")

	_, err = governance.GetProposal(env.Cache, txID(99))
	assert.Equal(t, fault.ErrProposalNotFound, err, "missing proposal")

	list, more := governance.ListProposals(env.Cache, 0)
	assert.False(t, more, "more")
	assert.Equal(t, 1, len(list), "list length")
}

func TestDuplicateApproval(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	id := txID(1)
	p := &entities.MinerFee{TxType: entities.BcoinTransferTx, FeeSymbol: entities.SymbolWICC, Amount: 20000}
	assert.Nil(t, request(env, height, outsider, id, p), "request")
	assert.Nil(t, approve(env, height, governors[1], id, 10), "first approval")

	before := env.Reload(t, governors[1]).FreeBalance(entities.SymbolWICC)
	err := approve(env, height, governors[1], id, 11)
	assert.Equal(t, "governor-approved-already", fault.Reason(err), "duplicate")
	assert.Equal(t, 1, env.Cache.SysGovern.GetApprovalCount(id), "approvals")
	assert.Equal(t, before, env.Reload(t, governors[1]).FreeBalance(entities.SymbolWICC), "fee charged on failure")

	fail, found := env.Cache.Log.GetExecuteFail(height, txID(11))
	assert.True(t, found, "failure not logged")
	assert.Equal(t, "governor-approved-already", fail.Reason, "logged reason")
}

func TestExpiredProposal(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	id := txID(1)
	p := &entities.MinerFee{TxType: entities.BcoinTransferTx, FeeSymbol: entities.SymbolWICC, Amount: 20000}
	assert.Nil(t, request(env, height, outsider, id, p), "request")

	assert.Nil(t, approve(env, height+1200, governors[0], id, 10), "approval at expiry height")
	err := approve(env, height+1201, governors[1], id, 11)
	assert.Equal(t, "proposal-expired", fault.Reason(err), "approval after expiry")
}

func TestApproverAuthorization(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	id := txID(1)
	p := &entities.MinerFee{TxType: entities.BcoinTransferTx, FeeSymbol: entities.SymbolWICC, Amount: 20000}
	assert.Nil(t, request(env, height, outsider, id, p), "request")

	err := approve(env, height, outsider, id, 10)
	assert.Equal(t, "approver-not-authorized", fault.Reason(err), "outsider approval")

	err = approve(env, height, governors[0], txID(50), 11)
	assert.Equal(t, "proposal-not-found", fault.Reason(err), "unknown proposal")
}

func TestBpCountByDelegates(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	delegates := entities.DelegateVoteList{}
	for i := 0; i < 4; i += 1 {
		r := entities.RegID{Height: 300, Index: uint16(i + 1)}
		env.Account(t, r, funds)
		delegates = append(delegates, entities.DelegateVote{RegID: r, Votes: uint64(1000 - i)})
	}
	assert.True(t, env.Cache.Delegate.SetActiveDelegates(delegates), "set delegates")

	early := &entities.BpCount{TotalBpsSize: 21, EffectiveHeight: height + 49}
	err := request(env, height, outsider, txID(1), early)
	assert.Equal(t, "bad-effective-height", fault.Reason(err), "early effective height")

	id := txID(2)
	p := &entities.BpCount{TotalBpsSize: 21, EffectiveHeight: height + 50}
	assert.Nil(t, request(env, height, outsider, id, p), "request")

	err = approve(env, height, governors[1], id, 10)
	assert.Equal(t, "approver-not-authorized", fault.Reason(err), "governor approving delegate proposal")

	for i, d := range delegates[:3] {
		assert.Nil(t, approve(env, height+uint32(i), d.RegID, id, byte(20+i)), "delegate approval: %d", i)
	}

	assert.Equal(t, uint8(11), env.Cache.SysParam.GetTotalBpsSize(height+49), "before effective height")
	assert.Equal(t, uint8(21), env.Cache.SysParam.GetTotalBpsSize(height+50), "at effective height")

	// the effective height rule only applies to the request
	ctx := env.Context(height+100, nil)
	assert.Nil(t, governance.Check(ctx, approvalBase(), p), "approval time check")
}

func TestGovernorUpdateChecks(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	young := entities.RegID{Height: height - 10, Index: 1}
	env.Account(t, young, funds)

	tests := []struct {
		p      *entities.GovernorUpdate
		reason string
	}{
		{&entities.GovernorUpdate{RegID: outsider, Op: entities.ProposalOpNull}, "operate_type-illegal"},
		{&entities.GovernorUpdate{RegID: young, Op: entities.ProposalOpEnable}, "regid-not-matured"},
		{&entities.GovernorUpdate{RegID: entities.RegID{Height: 400, Index: 4}, Op: entities.ProposalOpEnable}, "regid-not-found"},
		{&entities.GovernorUpdate{RegID: outsider, Op: entities.ProposalOpDisable}, "regid-not-governor"},
		{&entities.GovernorUpdate{RegID: governors[1], Op: entities.ProposalOpEnable}, "regid-is-governor"},
		{&entities.GovernorUpdate{RegID: outsider, Op: entities.ProposalOpEnable}, ""},
		{&entities.GovernorUpdate{RegID: governors[1], Op: entities.ProposalOpDisable}, ""},
	}
	for i, item := range tests {
		err := governance.Check(env.Context(height, nil), requestBase(), item.p)
		assert.Equal(t, item.reason, fault.Reason(err), "%d: reason", i)
	}

	ctx := env.Context(height, nil)
	_, err := governance.Execute(ctx, approvalBase(), &entities.GovernorUpdate{RegID: outsider, Op: entities.ProposalOpEnable})
	assert.Nil(t, err, "enable")
	assert.True(t, env.Cache.SysGovern.CheckIsGovernor(outsider), "not enabled")

	_, err = governance.Execute(ctx, approvalBase(), &entities.GovernorUpdate{RegID: governors[1], Op: entities.ProposalOpDisable})
	assert.Nil(t, err, "disable")
	assert.False(t, env.Cache.SysGovern.CheckIsGovernor(governors[1]), "not disabled")
}

func TestParamGovernChecks(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	tooMany := make([]entities.SysParamSetting, 51)
	for i := range tooMany {
		tooMany[i] = entities.SysParamSetting{Type: sysparam.AssetIssueFee, Value: 1}
	}

	tests := []struct {
		params []entities.SysParamSetting
		reason string
	}{
		{nil, "invalid-params-size"},
		{tooMany, "invalid-params-size"},
		{[]entities.SysParamSetting{{Type: 200, Value: 1}}, "params-error"},
		{[]entities.SysParamSetting{{Type: sysparam.MedianPriceSlideWindowBlockCount, Value: 0}}, "params-range-error"},
		{[]entities.SysParamSetting{{Type: sysparam.AxcSwapGatewayRegID, Value: entities.RegID{Height: 400, Index: 4}.Uint64()}}, "account-not-exist"},
		{[]entities.SysParamSetting{{Type: sysparam.AxcSwapGatewayRegID, Value: governors[2].Uint64()}}, ""},
		{[]entities.SysParamSetting{{Type: sysparam.MedianPriceSlideWindowBlockCount, Value: 20}}, ""},
	}
	for i, item := range tests {
		err := governance.Check(env.Context(height, nil), requestBase(), &entities.ParamGovern{Params: item.params})
		assert.Equal(t, item.reason, fault.Reason(err), "%d: reason", i)
	}

	ctx := env.Context(height, nil)
	p := &entities.ParamGovern{Params: []entities.SysParamSetting{{Type: sysparam.BpDelegateVoteMin, Value: 30000}}}
	_, err := governance.Execute(ctx, approvalBase(), p)
	assert.Nil(t, err, "execute")
	assert.Equal(t, uint64(30000), env.Cache.SysParam.GetParam(sysparam.BpDelegateVoteMin), "value")
	assert.Equal(t, uint64(height), env.Cache.Delegate.GetLastVoteHeight(), "last vote height")
}

func TestCdpParamGovernChecks(t *testing.T) {
	env, _ := setup(t)
	defer env.Close()

	pair := entities.CoinPair{Bcoin: entities.SymbolWICC, Scoin: entities.SymbolWUSD}
	tests := []struct {
		pair   entities.CoinPair
		params []entities.CdpParamSetting
		reason string
	}{
		{pair, nil, "invalid-params-size"},
		{entities.CoinPair{}, []entities.CdpParamSetting{{Type: sysparam.CdpInterestParamA, Value: 3}}, "invalid-coin-pair"},
		{pair, []entities.CdpParamSetting{{Type: 200, Value: 1}}, "params-error"},
		{pair, []entities.CdpParamSetting{{Type: sysparam.CdpLiquidateDiscountRatio, Value: 0}}, "params-range-error"},
		{pair, []entities.CdpParamSetting{{Type: sysparam.CdpForceLiquidateRatio, Value: 15000}}, "params-relation-error"},
		{pair, []entities.CdpParamSetting{{Type: sysparam.CdpLiquidateDiscountRatio, Value: 9000}}, "params-check-error"},
		{pair, []entities.CdpParamSetting{
			{Type: sysparam.CdpStartCollateralRatio, Value: 25000},
			{Type: sysparam.CdpStartLiquidateRatio, Value: 20000},
			{Type: sysparam.CdpForceLiquidateRatio, Value: 16000},
		}, ""},
		{pair, []entities.CdpParamSetting{{Type: sysparam.CdpInterestParamA, Value: 3}}, ""},
	}
	for i, item := range tests {
		err := governance.Check(env.Context(height, nil), requestBase(), &entities.CdpParamGovern{Pair: item.pair, Params: item.params})
		assert.Equal(t, item.reason, fault.Reason(err), "%d: reason", i)
	}

	ctx := env.Context(height, nil)
	p := &entities.CdpParamGovern{Pair: pair, Params: []entities.CdpParamSetting{{Type: sysparam.CdpInterestParamA, Value: 3}}}
	_, err := governance.Execute(ctx, approvalBase(), p)
	assert.Nil(t, err, "execute")
	assert.Equal(t, uint64(3), env.Cache.SysParam.GetCdpParam(pair, sysparam.CdpInterestParamA), "value")

	regimes := env.Cache.SysParam.GetCdpInterestParamChanges(pair, height, height+10)
	if assert.Equal(t, 1, len(regimes), "regimes") {
		assert.Equal(t, uint64(3), regimes[0].ParamA, "regime A")
		assert.Equal(t, uint64(1), regimes[0].ParamB, "regime B")
	}
}

func TestMinerFeeChecks(t *testing.T) {
	env, _ := setup(t)
	defer env.Close()

	tests := []struct {
		p      *entities.MinerFee
		reason string
	}{
		{&entities.MinerFee{TxType: entities.BcoinTransferTx, FeeSymbol: "BTC", Amount: 1}, "feesymbol-error"},
		{&entities.MinerFee{TxType: 200, FeeSymbol: entities.SymbolWICC, Amount: 1}, "txtype-error"},
		{&entities.MinerFee{TxType: entities.BlockRewardTx, FeeSymbol: entities.SymbolWICC, Amount: 1}, "can-not-update"},
		{&entities.MinerFee{TxType: entities.BcoinTransferTx, FeeSymbol: entities.SymbolWICC, Amount: 0}, "can-not-be-zero"},
		{&entities.MinerFee{TxType: entities.BcoinTransferTx, FeeSymbol: entities.SymbolWUSD, Amount: 1}, ""},
	}
	for i, item := range tests {
		err := governance.Check(env.Context(height, nil), requestBase(), item.p)
		assert.Equal(t, item.reason, fault.Reason(err), "%d: reason", i)
	}

	_, err := governance.Execute(env.Context(height, nil), approvalBase(), tests[4].p)
	assert.Nil(t, err, "execute")
	fee, ok := env.Cache.SysParam.GetMinerFee(entities.BcoinTransferTx, entities.SymbolWUSD)
	assert.True(t, ok, "fee found")
	assert.Equal(t, uint64(1), fee, "fee")
}

func TestCoinTransfer(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	from := entities.NewRegIDUser(governors[2])
	newcomer := entities.NewKeyIDUser(entities.KeyID{0x55, 0x66})

	self := &transaction.BaseTx{TxType: entities.ProposalRequestTx, TxUID: from}
	err := governance.Check(env.Context(height, nil), self, &entities.CoinTransfer{
		Token: entities.SymbolWICC, Amount: sysparam.COIN, From: from, To: newcomer,
	})
	assert.Equal(t, "tx_uid-can't-be-from_uid", fault.Reason(err), "requester is source")

	tests := []struct {
		p      *entities.CoinTransfer
		reason string
	}{
		{&entities.CoinTransfer{Token: entities.SymbolWICC, Amount: 9999, From: from, To: newcomer}, "invalid-coin-amount"},
		{&entities.CoinTransfer{Token: entities.SymbolWICC, Amount: sysparam.COIN, From: entities.NewRegIDUser(entities.RegID{Height: 9, Index: 9}), To: newcomer}, "account-not-exist"},
		{&entities.CoinTransfer{Token: entities.SymbolWICC, Amount: sysparam.COIN, From: from, To: entities.NewNickIDUser("nobody")}, "account-not-exist"},
		{&entities.CoinTransfer{Token: entities.SymbolWICC, Amount: sysparam.COIN, From: from, To: newcomer}, ""},
	}
	for i, item := range tests {
		err := governance.Check(env.Context(height, nil), requestBase(), item.p)
		assert.Equal(t, item.reason, fault.Reason(err), "%d: reason", i)
	}

	receipts, err := governance.Execute(env.Context(height, nil), approvalBase(), tests[3].p)
	assert.Nil(t, err, "execute")
	if assert.Equal(t, 1, len(receipts), "receipts") {
		assert.Equal(t, entities.ReceiptTransferProposal, receipts[0].Code, "receipt code")
		assert.Equal(t, uint64(sysparam.COIN), receipts[0].Amount, "receipt amount")
	}
	assert.Equal(t, uint64(9*sysparam.COIN), env.Reload(t, governors[2]).FreeBalance(entities.SymbolWICC), "source balance")

	created, found := env.Cache.Account.GetAccount(entities.KeyID{0x55, 0x66})
	assert.True(t, found, "destination not created")
	assert.Equal(t, uint64(sysparam.COIN), created.FreeBalance(entities.SymbolWICC), "destination balance")

	_, err = governance.Execute(env.Context(height, nil), approvalBase(), &entities.CoinTransfer{
		Token: entities.SymbolWICC, Amount: 100 * sysparam.COIN, From: from, To: newcomer,
	})
	assert.Equal(t, "operate-minus-account-failed", fault.Reason(err), "overdraft")
}

func TestDexOperatorUpdate(t *testing.T) {
	env, _ := setup(t)
	defer env.Close()

	operator := &entities.DexOperator{
		OwnerRegID:  outsider,
		FeeReceiver: outsider,
		Name:        "second",
		Activated:   true,
	}
	assert.True(t, env.Cache.Dex.CreateDexOperator(1, operator), "create operator")

	tests := []struct {
		p      *entities.DexOperatorUpdate
		reason string
	}{
		{&entities.DexOperatorUpdate{DexID: 0, Op: entities.ProposalOpDisable}, "operator0-can't-be-switched"},
		{&entities.DexOperatorUpdate{DexID: 1, Op: 7}, "operate-type-error"},
		{&entities.DexOperatorUpdate{DexID: 5, Op: entities.ProposalOpDisable}, "dexoperator-not-exist"},
		{&entities.DexOperatorUpdate{DexID: 1, Op: entities.ProposalOpEnable}, "need-not-update"},
		{&entities.DexOperatorUpdate{DexID: 1, Op: entities.ProposalOpDisable}, ""},
	}
	for i, item := range tests {
		err := governance.Check(env.Context(height, nil), requestBase(), item.p)
		assert.Equal(t, item.reason, fault.Reason(err), "%d: reason", i)
	}

	_, err := governance.Execute(env.Context(height, nil), approvalBase(), tests[4].p)
	assert.Nil(t, err, "execute")
	updated, found := env.Cache.Dex.GetDexOperator(1)
	assert.True(t, found, "operator lost")
	assert.False(t, updated.Activated, "still active")
	assert.Equal(t, "second", updated.Name, "name changed")
}

func TestAccountPerm(t *testing.T) {
	env, _ := setup(t)
	defer env.Close()

	target := entities.NewRegIDUser(outsider)
	tests := []struct {
		p      *entities.AccountPerm
		reason string
	}{
		{&entities.AccountPerm{PermsSum: entities.PermDex}, "account-uid-empty"},
		{&entities.AccountPerm{Account: target, PermsSum: 0}, "invalid-perms"},
		{&entities.AccountPerm{Account: target, PermsSum: entities.AllPerms + 1}, "invalid-perms"},
		{&entities.AccountPerm{Account: target, PermsSum: entities.PermSendCoin | entities.PermDex}, ""},
	}
	for i, item := range tests {
		err := governance.Check(env.Context(height, nil), requestBase(), item.p)
		assert.Equal(t, item.reason, fault.Reason(err), "%d: reason", i)
	}

	_, err := governance.Execute(env.Context(height, nil), approvalBase(), tests[3].p)
	assert.Nil(t, err, "execute")
	a := env.Reload(t, outsider)
	assert.True(t, a.HasPerms(entities.PermDex), "dex perm")
	assert.False(t, a.HasPerms(entities.PermProposeGovern), "propose perm kept")

	// without the propose perm the account can no longer request
	err = request(env, height, outsider, txID(1), &entities.MinerFee{
		TxType: entities.BcoinTransferTx, FeeSymbol: entities.SymbolWICC, Amount: 20000,
	})
	assert.Equal(t, "account-lacks-perms", fault.Reason(err), "request without perm")
}

func TestCancelOrder(t *testing.T) {
	env, _ := setup(t)
	defer env.Close()

	buyer := env.Account(t, entities.RegID{Height: 500, Index: 1}, map[string]uint64{entities.SymbolWUSD: 1000})
	assert.Nil(t, buyer.OperateBalance(entities.SymbolWUSD, entities.Freeze, 600), "freeze")
	assert.True(t, env.Cache.Account.SetAccount(buyer), "save buyer")

	userOrder := &entities.DexOrder{
		GenerateType:        entities.UserGenOrder,
		OrderType:           entities.OrderLimitPrice,
		OrderSide:           entities.OrderBuy,
		CoinSymbol:          entities.SymbolWUSD,
		AssetSymbol:         entities.SymbolWICC,
		CoinAmount:          1000,
		Price:               100000000,
		Height:              height - 5,
		UserRegID:           buyer.RegID,
		TotalDealCoinAmount: 400,
	}
	systemOrder := entities.NewSysBuyMarketOrder(entities.SymbolWUSD, entities.SymbolWGRT, 300, height-5, 2)
	assert.True(t, env.Cache.Dex.CreateActiveOrder(txID(1), userOrder), "create user order")
	assert.True(t, env.Cache.Dex.CreateActiveOrder(txID(2), systemOrder), "create system order")

	err := governance.Check(env.Context(height, nil), requestBase(), &entities.CancelOrder{})
	assert.Equal(t, "invalid-order-id", fault.Reason(err), "empty order id")

	_, err = governance.Execute(env.Context(height, nil), approvalBase(), &entities.CancelOrder{OrderID: txID(3)})
	assert.Equal(t, "order-inactive", fault.Reason(err), "missing order")

	_, err = governance.Execute(env.Context(height, nil), approvalBase(), &entities.CancelOrder{OrderID: txID(2)})
	assert.Equal(t, "order-not-generated-by-user", fault.Reason(err), "system order")

	receipts, err := governance.Execute(env.Context(height, nil), approvalBase(), &entities.CancelOrder{OrderID: txID(1)})
	assert.Nil(t, err, "cancel")
	if assert.Equal(t, 1, len(receipts), "receipts") {
		assert.Equal(t, entities.ReceiptDexUnfreezeCoinToBuyer, receipts[0].Code, "receipt code")
		assert.Equal(t, uint64(600), receipts[0].Amount, "receipt amount")
	}

	token := env.Reload(t, buyer.RegID).GetToken(entities.SymbolWUSD)
	assert.Equal(t, uint64(1000), token.Free, "free")
	assert.Equal(t, uint64(0), token.Frozen, "frozen")

	_, found := env.Cache.Dex.GetActiveOrder(txID(1))
	assert.False(t, found, "order still active")
}

// a failing proposal at the final approval leaves no approval behind
func TestFailedExecutionRollsBack(t *testing.T) {
	env, governors := setup(t)
	defer env.Close()

	id := txID(1)
	p := &entities.CancelOrder{OrderID: txID(77)}
	assert.Nil(t, request(env, height, outsider, id, p), "request")
	assert.Nil(t, approve(env, height, governors[0], id, 10), "approval 1")
	assert.Nil(t, approve(env, height, governors[1], id, 11), "approval 2")

	err := approve(env, height, governors[2], id, 12)
	assert.Equal(t, "order-inactive", fault.Reason(err), "execution failure")
	assert.Equal(t, 2, env.Cache.SysGovern.GetApprovalCount(id), "approval kept")
	assert.Equal(t, uint64(10*sysparam.COIN), env.Reload(t, governors[2]).FreeBalance(entities.SymbolWICC), "fee charged")
}
