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

// Package account implements the reward-unit ledger consumed by the sale core
package account

import (
	"fmt"
	"sync"

	"github.com/boltdb/bolt"

	"github.com/zvchain/tokensale/common"
	"github.com/zvchain/tokensale/log"
)

const (
	balanceBucket = "balance"
	metaBucket    = "meta"
	frozenKey     = "frozen"
)

// TokenLedger stores reward-unit balances. Balances only move through Issue
// and Transfer; once issuance is frozen no further units can be minted.
// When created with a backing file, every mutation is mirrored into boltdb
// so the ledger survives restarts
type TokenLedger struct {
	balances map[common.Address]uint64
	total    uint64
	frozen   bool

	db   *bolt.DB
	lock sync.RWMutex
}

// NewTokenLedger creates a memory-only ledger
func NewTokenLedger() *TokenLedger {
	return &TokenLedger{
		balances: make(map[common.Address]uint64),
	}
}

// NewPersistentTokenLedger opens (or creates) a bolt-backed ledger and loads
// the stored balances
func NewPersistentTokenLedger(file string) (*TokenLedger, error) {
	db, err := bolt.Open(file, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("open ledger db fail:%v in %v", err, file)
	}
	tl := &TokenLedger{
		balances: make(map[common.Address]uint64),
		db:       db,
	}
	err = db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(balanceBucket)); b != nil {
			return b.ForEach(func(k, v []byte) error {
				amount := common.ByteToUInt64(v)
				tl.balances[common.BytesToAddress(k)] = amount
				tl.total += amount
				return nil
			})
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(metaBucket)); b != nil {
			tl.frozen = b.Get([]byte(frozenKey)) != nil
		}
		return nil
	})
	return tl, nil
}

// Issue mints units to the account. Fails once issuance is frozen
func (tl *TokenLedger) Issue(account common.Address, amount uint64) error {
	tl.lock.Lock()
	defer tl.lock.Unlock()

	if tl.frozen {
		return fmt.Errorf("issuance is frozen")
	}
	balance := tl.balances[account]
	if balance+amount < balance {
		return fmt.Errorf("balance overflow:%v %v", balance, amount)
	}
	if tl.total+amount < tl.total {
		return fmt.Errorf("total supply overflow:%v %v", tl.total, amount)
	}
	tl.balances[account] = balance + amount
	tl.total += amount
	tl.storeBalance(account, balance+amount)
	return nil
}

// Transfer moves units between accounts, returns false on insufficient funds
func (tl *TokenLedger) Transfer(from, to common.Address, amount uint64) bool {
	tl.lock.Lock()
	defer tl.lock.Unlock()

	fromBalance := tl.balances[from]
	if fromBalance < amount {
		return false
	}
	toBalance := tl.balances[to]
	if toBalance+amount < toBalance {
		return false
	}
	tl.balances[from] = fromBalance - amount
	tl.balances[to] = toBalance + amount
	tl.storeBalance(from, fromBalance-amount)
	tl.storeBalance(to, toBalance+amount)
	return true
}

// BalanceOf returns the balance of the account
func (tl *TokenLedger) BalanceOf(account common.Address) uint64 {
	tl.lock.RLock()
	defer tl.lock.RUnlock()

	return tl.balances[account]
}

// TotalIssued returns the cumulative issued supply
func (tl *TokenLedger) TotalIssued() uint64 {
	tl.lock.RLock()
	defer tl.lock.RUnlock()

	return tl.total
}

// FreezeIssuance permanently disables Issue. One-way
func (tl *TokenLedger) FreezeIssuance() {
	tl.lock.Lock()
	defer tl.lock.Unlock()

	tl.frozen = true
	if tl.db == nil {
		return
	}
	err := tl.db.Update(func(tx *bolt.Tx) error {
		b, e := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if e != nil {
			return e
		}
		return b.Put([]byte(frozenKey), []byte{1})
	})
	if err != nil {
		log.StoreLogger.Errorf("store frozen flag error %v", err)
	}
}

// IsFrozen reports whether issuance has been frozen
func (tl *TokenLedger) IsFrozen() bool {
	tl.lock.RLock()
	defer tl.lock.RUnlock()

	return tl.frozen
}

func (tl *TokenLedger) storeBalance(account common.Address, amount uint64) {
	if tl.db == nil {
		return
	}
	err := tl.db.Update(func(tx *bolt.Tx) error {
		b, e := tx.CreateBucketIfNotExists([]byte(balanceBucket))
		if e != nil {
			return e
		}
		return b.Put(account.Bytes(), common.UInt64ToByte(amount))
	})
	if err != nil {
		log.StoreLogger.Errorf("store balance error %v", err)
	}
}

// Close releases the backing database if any
func (tl *TokenLedger) Close() {
	if tl.db != nil {
		tl.db.Close()
	}
}
