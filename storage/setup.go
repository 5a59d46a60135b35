// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/waykichain/wiccd/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// holds the database handles
var poolData struct {
	sync.RWMutex
	log       *logger.L
	directory string
	access    map[Partition]*DBAccess
}

// Initialise - open every partition below a directory
//
// this must be called before any partition is accessed
func Initialise(directory string, readOnly bool, readCache bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.access {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("storage")

	ok := false
	opened := make(map[Partition]*DBAccess, len(Partitions))
	defer func() {
		if !ok {
			for _, d := range opened {
				d.db.Close()
			}
		}
	}()

	for _, partition := range Partitions {
		name := filepath.Join(directory, string(partition)+".leveldb")
		db, version, err := getDB(name, readOnly)
		if nil != err {
			log.Errorf("open: %s  error: %s", name, err)
			return err
		}

		// ensure no database downgrade
		if version > currentDBVersion {
			db.Close()
			log.Criticalf("%s database version: %d > current version: %d", partition, version, currentDBVersion)
			return fault.ErrBadDatabaseVersion
		}

		if 0 == version {
			if readOnly {
				db.Close()
				log.Criticalf("%s database has no version", partition)
				return fault.ErrBadDatabaseVersion
			}
			err := putVersion(db, currentDBVersion)
			if nil != err {
				db.Close()
				return err
			}
		}

		var cache Cache = nullCache{}
		if readCache {
			cache = newCache()
		}
		opened[partition] = newDA(partition, db, cache)
		log.Debugf("opened: %s  version: %d", name, version)
	}

	poolData.log = log
	poolData.directory = directory
	poolData.access = opened

	ok = true // prevent db close
	log.Infof("initialised: %d partitions in: %q", len(opened), directory)
	return nil
}

// Finalise - close all database connections
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	for _, d := range poolData.access {
		d.db.Close()
	}
	if nil != poolData.log {
		poolData.log.Info("finalised")
		poolData.log.Flush()
	}
	poolData.access = nil
	poolData.log = nil
}

// Database - access to an opened partition
func Database(partition Partition) (Access, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.access {
		return nil, fault.ErrDatabaseNotInitialised
	}
	d, ok := poolData.access[partition]
	if !ok {
		return nil, fault.ErrPartitionNotFound
	}
	return d, nil
}

// OpenMemory - an unversioned in-memory database for one partition
func OpenMemory(partition Partition) (*DBAccess, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newDA(partition, db, newCache()), nil
}

// Close - release a database opened by OpenMemory
func (d *DBAccess) Close() error {
	return d.db.Close()
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
