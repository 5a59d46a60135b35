// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/waykichain/wiccd/fault"
)

// Access - operations on one partition
//
// writes are staged in a batch between Begin and Commit, reads see
// the staged writes
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	InUse() bool
	Iterator(*ldb_util.Range) iterator.Iterator
	Name() Partition
	Property(string) (string, error)
	Put([]byte, []byte)
}

// DBAccess - a LevelDB database with a write batch and read cache
type DBAccess struct {
	sync.Mutex
	partition Partition
	inUse     bool
	db        *leveldb.DB
	batch     *leveldb.Batch
	cache     Cache
}

func newDA(partition Partition, db *leveldb.DB, cache Cache) *DBAccess {
	return &DBAccess{
		partition: partition,
		inUse:     false,
		db:        db,
		batch:     new(leveldb.Batch),
		cache:     cache,
	}
}

// Name - the partition served
func (d *DBAccess) Name() Partition {
	return d.partition
}

// Begin - start a batch, only one may be open
func (d *DBAccess) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrBatchInUse
	}

	d.inUse = true
	return nil
}

// Put - stage a write
func (d *DBAccess) Put(key []byte, value []byte) {
	if 0 == len(key) {
		fault.Panicf("%s: put with empty key", d.partition)
	}
	d.cache.Put(string(key), value)
	d.batch.Put(key, value)
}

// Delete - stage an erase
func (d *DBAccess) Delete(key []byte) {
	d.cache.Delete(string(key))
	d.batch.Delete(key)
}

// Commit - write the batch atomically and end it
func (d *DBAccess) Commit() error {
	d.Lock()
	defer d.Unlock()

	if 0 != d.batch.Len() {
		err := d.db.Write(d.batch, nil)
		if nil != err {
			return err
		}
		Stats().ObserveBatchWrite(d.partition)
	}
	d.batch.Reset()
	d.inUse = false
	return nil
}

// Get - read a value
//
// a missing key returns nil and no error
func (d *DBAccess) Get(key []byte) ([]byte, error) {
	if value, found := d.cache.Get(string(key)); found {
		return value, nil
	}
	value, err := d.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check a key is present
func (d *DBAccess) Has(key []byte) (bool, error) {
	if value, found := d.cache.Get(string(key)); found {
		return nil != value, nil
	}
	return d.db.Has(key, nil)
}

// Iterator - ordered scan of committed data
func (d *DBAccess) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

// InUse - true between Begin and Commit/Abort
func (d *DBAccess) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

// Abort - discard the batch
func (d *DBAccess) Abort() {
	d.Lock()
	defer d.Unlock()

	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
}

// Property - LevelDB statistics, e.g. "leveldb.stats"
func (d *DBAccess) Property(name string) (string, error) {
	return d.db.GetProperty(name)
}

// number of staged records
func (d *DBAccess) pending() int {
	return d.batch.Len()
}
