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

// Package salestore persists sale and vesting snapshots across restarts
package salestore

import (
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/vmihailenco/msgpack"

	"github.com/zvchain/tokensale/common"
	"github.com/zvchain/tokensale/core"
)

const (
	saleBucket = "sale"

	vestingKey = "vesting"
	stateKey   = "state"
)

// Store writes msgpack-encoded snapshots of the vesting ledger and the sale
// controller into boltdb
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) the snapshot database at file
func NewStore(file string) (*Store, error) {
	db, err := bolt.Open(file, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("open sale db fail:%v in %v", err, file)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists([]byte(saleBucket))
		return e
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// StoreVesting persists a vesting ledger snapshot
func (s *Store) StoreVesting(data *core.VestingData) error {
	return s.put(vestingKey, data)
}

// LoadVesting loads the stored vesting snapshot, nil when none was stored
func (s *Store) LoadVesting() (*core.VestingData, error) {
	data := new(core.VestingData)
	ok, err := s.get(vestingKey, data)
	if err != nil || !ok {
		return nil, err
	}
	return data, nil
}

// StoreSale persists a sale controller snapshot
func (s *Store) StoreSale(data *core.SaleData) error {
	return s.put(stateKey, data)
}

// LoadSale loads the stored sale snapshot, nil when none was stored
func (s *Store) LoadSale() (*core.SaleData, error) {
	data := new(core.SaleData)
	ok, err := s.get(stateKey, data)
	if err != nil || !ok {
		return nil, err
	}
	return data, nil
}

func (s *Store) put(key string, v interface{}) error {
	bs, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(saleBucket)).Put([]byte(key), bs)
	})
}

func (s *Store) get(key string, v interface{}) (bool, error) {
	var bs []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// the slice is only valid inside the transaction
		bs = common.CopyBytes(tx.Bucket([]byte(saleBucket)).Get([]byte(key)))
		return nil
	})
	if err != nil {
		return false, err
	}
	if bs == nil {
		return false, nil
	}
	return true, msgpack.Unmarshal(bs, v)
}

// Close releases the backing database
func (s *Store) Close() {
	s.db.Close()
}
