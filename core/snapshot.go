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

package core

import (
	"fmt"

	"github.com/zvchain/tokensale/common"
	"github.com/zvchain/tokensale/middleware/time"
)

// AllocationData is the serializable form of an allocation
type AllocationData struct {
	Beneficiary   []byte
	Total         uint64
	Remaining     uint64
	LastClaimed   uint64
	CurrentReward uint64
}

// VestingData is the serializable snapshot of the whole vesting ledger
type VestingData struct {
	UnlockAt        int64
	IntervalSeconds int64
	NumIntervals    uint64
	CurrentInterval uint64
	Allocations     []*AllocationData
}

// SaleData is the serializable snapshot of the mutable sale state
type SaleData struct {
	TotalRaised uint64
	Finalized   bool
}

// Snapshot captures the full ledger state for persistence
func (vl *VestingLedger) Snapshot() *VestingData {
	vl.lock.RLock()
	defer vl.lock.RUnlock()

	data := &VestingData{
		UnlockAt:        vl.unlockAt.Unix(),
		IntervalSeconds: vl.intervalSeconds,
		NumIntervals:    vl.numIntervals,
		CurrentInterval: vl.currentInterval,
		Allocations:     make([]*AllocationData, 0, len(vl.allocations)),
	}
	for _, a := range vl.allocations {
		data.Allocations = append(data.Allocations, &AllocationData{
			Beneficiary:   a.Beneficiary.Bytes(),
			Total:         a.Total,
			Remaining:     a.Remaining,
			LastClaimed:   a.LastClaimed,
			CurrentReward: a.CurrentReward,
		})
	}
	return data
}

// Restore replaces the ledger state with a previously captured snapshot.
// Snapshots violating the ledger invariants are rejected
func (vl *VestingLedger) Restore(data *VestingData) error {
	if data == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if data.NumIntervals < 1 {
		return fmt.Errorf("snapshot interval count must be at least 1, got %v", data.NumIntervals)
	}
	if data.CurrentInterval > data.NumIntervals {
		return fmt.Errorf("snapshot interval %v exceeds %v", data.CurrentInterval, data.NumIntervals)
	}
	allocations := make([]*Allocation, 0, len(data.Allocations))
	for i, a := range data.Allocations {
		if a.Remaining > a.Total {
			return fmt.Errorf("snapshot allocation %v remainder %v exceeds total %v", i, a.Remaining, a.Total)
		}
		allocations = append(allocations, &Allocation{
			Beneficiary:   common.BytesToAddress(a.Beneficiary),
			Total:         a.Total,
			Remaining:     a.Remaining,
			LastClaimed:   a.LastClaimed,
			CurrentReward: a.CurrentReward,
		})
	}

	vl.lock.Lock()
	defer vl.lock.Unlock()

	vl.unlockAt = time.Int64ToTimeStamp(data.UnlockAt)
	vl.intervalSeconds = data.IntervalSeconds
	vl.numIntervals = data.NumIntervals
	vl.currentInterval = data.CurrentInterval
	vl.allocations = allocations
	return nil
}

// Snapshot captures the mutable sale accumulators
func (sc *SaleController) Snapshot() *SaleData {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	return &SaleData{
		TotalRaised: sc.totalRaised,
		Finalized:   sc.finalized,
	}
}

// Restore replaces the mutable sale accumulators with a snapshot
func (sc *SaleController) Restore(data *SaleData) error {
	if data == nil {
		return fmt.Errorf("snapshot is nil")
	}

	sc.lock.Lock()
	defer sc.lock.Unlock()

	sc.totalRaised = data.TotalRaised
	sc.finalized = data.Finalized
	return nil
}
