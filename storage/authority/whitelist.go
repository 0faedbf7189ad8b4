//   Copyright (C) 2020 ZVChain
//
//   This program is free software: you can redistribute it and/or modify
//   it under the terms of the GNU General Public License as published by
//   the Free Software Foundation, either version 3 of the License, or
//   (at your option) any later version.
//
//   This program is distributed in the hope that it will be useful,
//   but WITHOUT ANY WARRANTY; without even the implied warranty of
//   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//   GNU General Public License for more details.
//
//   You should have received a copy of the GNU General Public License
//   along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package authority implements the contributor whitelist oracle
package authority

import (
	"fmt"
	"sync"

	"github.com/boltdb/bolt"
	lru "github.com/hashicorp/golang-lru"

	"github.com/zvchain/tokensale/common"
	"github.com/zvchain/tokensale/log"
)

const whitelistBucket = "whitelist"

const cacheSize = 10000

// Whitelist is a bolt-backed authorization oracle. Lookups go through an
// lru cache so repeated admission checks avoid hitting the database
type Whitelist struct {
	db    *bolt.DB
	cache *lru.Cache
	lock  sync.Mutex
}

// NewWhitelist opens (or creates) the whitelist database at file
func NewWhitelist(file string) (*Whitelist, error) {
	db, err := bolt.Open(file, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("open whitelist db fail:%v in %v", err, file)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists([]byte(whitelistBucket))
		return e
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Whitelist{
		db:    db,
		cache: common.MustNewLRUCache(cacheSize),
	}, nil
}

// Add grants the address admission to the sale
func (w *Whitelist) Add(addr common.Address) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	err := w.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(whitelistBucket)).Put(addr.Bytes(), []byte{1})
	})
	if err != nil {
		return err
	}
	w.cache.Add(addr, true)
	return nil
}

// Remove revokes admission for the address
func (w *Whitelist) Remove(addr common.Address) error {
	w.lock.Lock()
	defer w.lock.Unlock()

	err := w.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(whitelistBucket)).Delete(addr.Bytes())
	})
	if err != nil {
		return err
	}
	w.cache.Add(addr, false)
	return nil
}

// IsAuthorized reports whether the address has been whitelisted
func (w *Whitelist) IsAuthorized(addr common.Address) bool {
	if v, ok := w.cache.Get(addr); ok {
		return v.(bool)
	}
	authorized := false
	err := w.db.View(func(tx *bolt.Tx) error {
		authorized = tx.Bucket([]byte(whitelistBucket)).Get(addr.Bytes()) != nil
		return nil
	})
	if err != nil {
		log.StoreLogger.Errorf("whitelist lookup error %v", err)
		return false
	}
	w.cache.Add(addr, authorized)
	return authorized
}

// Close releases the backing database
func (w *Whitelist) Close() {
	w.db.Close()
}
