// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - read cache in front of a database
//
// Get reports found with a nil value for a key deleted in the
// current batch, the caller must not fall through to the database
type Cache interface {
	Get(string) ([]byte, bool)
	Put(string, []byte)
	Delete(string)
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    dbOperation
	value []byte
}

func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(defaultTimeout, defaultExpiration),
	}
}

func (c *dbCache) Get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, true
	}

	return data.value, true
}

func (c *dbCache) Put(key string, value []byte) {
	c.set(dbPut, key, value)
}

func (c *dbCache) Delete(key string) {
	c.set(dbDelete, key, nil)
}

func (c *dbCache) set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, defaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}

// an uncached database, for read-only tools that open a snapshot
type nullCache struct{}

func (nullCache) Get(string) ([]byte, bool) { return nil, false }
func (nullCache) Put(string, []byte)        {}
func (nullCache) Delete(string)             {}
func (nullCache) Clear()                    {}
