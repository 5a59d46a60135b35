// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/waykichain/wiccd/fault"
	"github.com/waykichain/wiccd/storage/mocks"
)

const (
	defaultKey = "key"
)

var (
	defaultValue = []byte{'a'}
)

func newMemoryDB(t *testing.T) *leveldb.DB {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		t.Fatalf("open memory db error: %s", err)
	}
	return db
}

func newMockCache(t *testing.T) (*mocks.MockCache, *gomock.Controller) {
	ctl := gomock.NewController(t)
	return mocks.NewMockCache(ctl), ctl
}

func setupDummyMockCache(t *testing.T) (*mocks.MockCache, *gomock.Controller) {
	mockCache, ctl := newMockCache(t)

	mockCache.EXPECT().Get(gomock.Any()).Return(nil, false).AnyTimes()
	mockCache.EXPECT().Put(gomock.Any(), gomock.Any()).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any()).AnyTimes()
	mockCache.EXPECT().Clear().AnyTimes()

	return mockCache, ctl
}

func TestBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()

	da := newDA(Account, newMemoryDB(t), mc)
	defer da.Close()

	err := da.Begin()
	assert.Nil(t, err, "first time Begin should with not error")

	err = da.Begin()
	assert.Equal(t, fault.ErrBatchInUse, err, "second time Begin should return error")
}

func TestCommitEndsBatch(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()

	da := newDA(Account, newMemoryDB(t), mc)
	defer da.Close()

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	assert.Equal(t, 1, da.pending(), "put not staged")
	assert.True(t, da.InUse(), "not in use after begin")

	err := da.Commit()
	assert.Nil(t, err, "commit error")
	assert.Equal(t, 0, da.pending(), "Commit did not reset batch")
	assert.False(t, da.InUse(), "still in use after commit")

	err = da.Begin()
	assert.Nil(t, err, "Begin after Commit")
}

func TestCommitWriteToDB(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()

	da := newDA(Account, newMemoryDB(t), mc)
	defer da.Close()

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	_ = da.Commit()

	actual, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "get error")
	assert.Equal(t, defaultValue, actual, "commit not write to db")

	found, err := da.Has([]byte(defaultKey))
	assert.Nil(t, err, "has error")
	assert.True(t, found, "key not found")
}

func TestGetPrefersCache(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	cached := []byte("cached")
	mc.EXPECT().Get(defaultKey).Return(cached, true).Times(1)

	da := newDA(Account, newMemoryDB(t), mc)
	defer da.Close()

	actual, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "get error")
	assert.Equal(t, cached, actual, "cache not consulted")
}

func TestPutAndDeleteUpdateCache(t *testing.T) {
	mc, ctl := newMockCache(t)
	defer ctl.Finish()

	gomock.InOrder(
		mc.EXPECT().Put(defaultKey, defaultValue).Times(1),
		mc.EXPECT().Delete(defaultKey).Times(1),
		mc.EXPECT().Clear().Times(1),
	)

	da := newDA(Account, newMemoryDB(t), mc)
	defer da.Close()

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	da.Delete([]byte(defaultKey))
	da.Abort()

	assert.Equal(t, 0, da.pending(), "Abort did not reset batch")
	assert.False(t, da.InUse(), "still in use after abort")
}

func TestGetMissingKey(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()

	da := newDA(Account, newMemoryDB(t), mc)
	defer da.Close()

	actual, err := da.Get([]byte("/nonexistent"))
	assert.Nil(t, err, "missing key gave error")
	assert.Nil(t, actual, "missing key gave data")
}

// a key deleted in the open batch must not read through to the database
func TestDeletedKeyHidesStoredValue(t *testing.T) {
	da := newDA(Account, newMemoryDB(t), newCache())
	defer da.Close()

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	_ = da.Commit()

	_ = da.Begin()
	da.Delete([]byte(defaultKey))

	actual, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "get error")
	assert.Nil(t, actual, "deleted key still visible")

	found, _ := da.Has([]byte(defaultKey))
	assert.False(t, found, "deleted key reported present")

	_ = da.Commit()

	actual, _ = da.db.Get([]byte(defaultKey), nil)
	assert.Nil(t, actual, "delete not written")
}

func TestAbortRestoresStoredValue(t *testing.T) {
	da := newDA(Account, newMemoryDB(t), newCache())
	defer da.Close()

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	_ = da.Commit()

	_ = da.Begin()
	da.Put([]byte(defaultKey), []byte("changed"))
	da.Abort()

	actual, _ := da.Get([]byte(defaultKey))
	assert.Equal(t, defaultValue, actual, "aborted write visible")
}

func TestIteratorPrefix(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()

	da := newDA(Cdp, newMemoryDB(t), mc)
	defer da.Close()

	_ = da.Begin()
	da.Put(PrefixCdpRatio.Key([]byte{2}), []byte{'b'})
	da.Put(PrefixCdp.Key([]byte{1}), []byte{'x'})
	da.Put(PrefixCdpRatio.Key([]byte{1}), []byte{'a'})
	da.Put(PrefixCdpGlobal.Key([]byte{1}), []byte{'y'})
	_ = da.Commit()

	iter := da.Iterator(ldb_util.BytesPrefix([]byte(PrefixCdpRatio)))
	defer iter.Release()

	values := []byte{}
	for iter.Next() {
		values = append(values, iter.Value()...)
	}
	assert.Nil(t, iter.Error(), "iterator error")
	assert.Equal(t, []byte{'a', 'b'}, values, "wrong prefix scan")
}

func TestPutEmptyKeyPanics(t *testing.T) {
	mc, ctl := setupDummyMockCache(t)
	defer ctl.Finish()

	da := newDA(Account, newMemoryDB(t), mc)
	defer da.Close()

	assert.Panics(t, func() { da.Put(nil, defaultValue) }, "empty key accepted")
}
