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
	"sync"

	"github.com/zvchain/tokensale/common"
	"github.com/zvchain/tokensale/log"
	"github.com/zvchain/tokensale/middleware/notify"
	"github.com/zvchain/tokensale/middleware/time"
)

// Allocation is a beneficiary's vesting entry. Entries live in a growth-only
// arena and are addressed by their stable index; they are drained toward zero
// but never removed
type Allocation struct {
	Beneficiary   common.Address
	Total         uint64 // fixed at creation
	Remaining     uint64 // monotonically non-increasing, starts at Total
	LastClaimed   uint64 // last global interval this allocation was claimed at
	CurrentReward uint64 // claimable amount for the current global interval
}

// VestingLedger owns the allocation arena and the global interval counter.
// Rewards unlock once per interval after the unlock date; every interval
// releases Total/numIntervals except the last one which releases the exact
// remainder so that the claimed sum always equals Total
type VestingLedger struct {
	adminGuard

	unlockAt        time.TimeStamp
	intervalSeconds int64
	numIntervals    uint64
	currentInterval uint64

	allocations []*Allocation

	ts   time.TimeService
	lock sync.RWMutex
}

// NewVestingLedger creates an empty ledger. numIntervals must be at least 1
// and intervalSeconds positive
func NewVestingLedger(admin common.Address, unlockAt time.TimeStamp, intervalSeconds int64, numIntervals uint64, ts time.TimeService) (*VestingLedger, error) {
	if admin.IsZero() {
		return nil, fmt.Errorf("administrator address is zero")
	}
	if numIntervals < 1 {
		return nil, fmt.Errorf("interval count must be at least 1, got %v", numIntervals)
	}
	if intervalSeconds <= 0 {
		return nil, fmt.Errorf("interval duration must be positive, got %v", intervalSeconds)
	}
	if ts == nil {
		return nil, fmt.Errorf("time service is nil")
	}
	vl := &VestingLedger{
		unlockAt:        unlockAt,
		intervalSeconds: intervalSeconds,
		numIntervals:    numIntervals,
		allocations:     make([]*Allocation, 0),
		ts:              ts,
	}
	vl.admin = admin
	return vl, nil
}

// CreateAllocation registers a new vesting entry for the beneficiary.
// Only allowed before the unlock date
func (vl *VestingLedger) CreateAllocation(operator, beneficiary common.Address, amount uint64) error {
	vl.lock.Lock()
	defer vl.lock.Unlock()

	if err := vl.requireAdmin(operator); err != nil {
		return err
	}
	if vl.ts.Now().Since(vl.unlockAt) >= 0 {
		return ErrScheduleClosed
	}

	vl.allocations = append(vl.allocations, &Allocation{
		Beneficiary: beneficiary,
		Total:       amount,
		Remaining:   amount,
	})

	log.VestingLogger.Infof("allocation created: beneficiary %v amount %v", beneficiary, amount)
	notify.BUS.Publish(notify.AllocationCreated, &AllocationMessage{Beneficiary: beneficiary, Amount: amount})
	return nil
}

// AdvanceInterval moves the global interval forward by one if enough time has
// elapsed since the unlock date. When the condition is not met yet it returns
// false with no state change so that callers can simply retry later.
// On advance, every allocation's claimable reward is recomputed
func (vl *VestingLedger) AdvanceInterval(operator common.Address) (bool, error) {
	vl.lock.Lock()
	defer vl.lock.Unlock()

	if err := vl.requireAdmin(operator); err != nil {
		return false, err
	}

	elapsed := vl.ts.Now().Since(vl.unlockAt)
	if elapsed <= 0 {
		return false, nil
	}
	if elapsed <= int64(vl.currentInterval)*vl.intervalSeconds {
		return false, nil
	}
	if vl.currentInterval >= vl.numIntervals {
		return false, nil
	}

	vl.currentInterval++
	for _, a := range vl.allocations {
		if vl.currentInterval == vl.numIntervals {
			// final interval releases the exact remainder, compensating
			// the truncation of all earlier intervals
			a.CurrentReward = a.Remaining
		} else {
			a.CurrentReward = a.Total / vl.numIntervals
		}
	}

	log.VestingLogger.Infof("interval advanced to %v/%v", vl.currentInterval, vl.numIntervals)
	notify.BUS.Publish(notify.IntervalAdvanced, &IntervalMessage{Interval: vl.currentInterval})
	return true, nil
}

// Claim marks the allocation at index claimed for the current interval and
// deducts its reward from the remaining balance. The first claim per interval
// reports shouldRelease=true; repeated claims within the same interval are
// no-ops reporting false, which prevents double payment. The beneficiary and
// the current reward amount are returned either way
func (vl *VestingLedger) Claim(operator common.Address, index int) (shouldRelease bool, beneficiary common.Address, amount uint64, err error) {
	vl.lock.Lock()
	defer vl.lock.Unlock()

	if e := vl.requireAdmin(operator); e != nil {
		err = e
		return
	}
	if index < 0 || index >= len(vl.allocations) {
		err = ErrIndexOutOfRange
		return
	}

	a := vl.allocations[index]
	beneficiary = a.Beneficiary
	amount = a.CurrentReward

	if a.LastClaimed >= vl.currentInterval {
		return
	}

	// Must not happen
	if a.Remaining < a.CurrentReward {
		panic(fmt.Errorf("allocation remainder less than reward: %v %v, index %v", a.Remaining, a.CurrentReward, index))
	}
	a.LastClaimed = vl.currentInterval
	a.Remaining -= a.CurrentReward
	shouldRelease = true

	log.VestingLogger.Debugf("claim: index %v interval %v beneficiary %v amount %v", index, vl.currentInterval, beneficiary, amount)
	notify.BUS.Publish(notify.RewardClaimed, &ClaimMessage{
		Index:       index,
		Interval:    vl.currentInterval,
		Beneficiary: beneficiary,
		Amount:      amount,
	})
	return
}

// Count returns the number of registered allocations
func (vl *VestingLedger) Count() int {
	vl.lock.RLock()
	defer vl.lock.RUnlock()

	return len(vl.allocations)
}

// AllocationAmount returns the total amount fixed at creation of the
// allocation at index
func (vl *VestingLedger) AllocationAmount(index int) (uint64, error) {
	vl.lock.RLock()
	defer vl.lock.RUnlock()

	if index < 0 || index >= len(vl.allocations) {
		return 0, ErrIndexOutOfRange
	}
	return vl.allocations[index].Total, nil
}

// CurrentInterval returns the global interval counter
func (vl *VestingLedger) CurrentInterval() uint64 {
	vl.lock.RLock()
	defer vl.lock.RUnlock()

	return vl.currentInterval
}

// ProposeAdmin nominates the next administrator of the ledger
func (vl *VestingLedger) ProposeAdmin(operator, next common.Address) error {
	vl.lock.Lock()
	defer vl.lock.Unlock()

	return vl.proposeAdmin(operator, next)
}

// AcceptAdmin completes a pending administrator transfer
func (vl *VestingLedger) AcceptAdmin(operator common.Address) error {
	vl.lock.Lock()
	defer vl.lock.Unlock()

	return vl.acceptAdmin(operator)
}
