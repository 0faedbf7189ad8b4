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
	"testing"
	"time"

	"github.com/zvchain/tokensale/common"
	time2 "github.com/zvchain/tokensale/middleware/time"
)

type fakeClock struct {
	now time2.TimeStamp
}

func (c *fakeClock) Now() time2.TimeStamp {
	return c.now
}

func (c *fakeClock) NowTime() time.Time {
	return c.now.UTC()
}

func (c *fakeClock) Since(t time2.TimeStamp) int64 {
	return c.now.Since(t)
}

func (c *fakeClock) NowAfter(t time2.TimeStamp) bool {
	return c.now.After(t)
}

var (
	testAdmin       = common.BytesToAddress([]byte("admin"))
	testBeneficiary = common.BytesToAddress([]byte("beneficiary"))
	testStranger    = common.BytesToAddress([]byte("stranger"))
)

const (
	testUnlockAt    = time2.TimeStamp(1000)
	testIntervalSec = int64(100)
)

func newTestVesting(t *testing.T, numIntervals uint64, clock *fakeClock) *VestingLedger {
	vl, err := NewVestingLedger(testAdmin, testUnlockAt, testIntervalSec, numIntervals, clock)
	if err != nil {
		t.Fatalf("new vesting ledger error %v", err)
	}
	return vl
}

func TestVestingLedger_ExactDistribution(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)

	if err := vl.CreateAllocation(testAdmin, testBeneficiary, 1000); err != nil {
		t.Fatalf("create allocation error %v", err)
	}

	sum := uint64(0)
	for i := 0; i < 4; i++ {
		clock.now = testUnlockAt.Add(int64(i)*testIntervalSec + 1)
		advanced, err := vl.AdvanceInterval(testAdmin)
		if err != nil {
			t.Fatalf("advance interval error %v", err)
		}
		if !advanced {
			t.Fatalf("interval %v not advanced", i+1)
		}
		release, beneficiary, amount, err := vl.Claim(testAdmin, 0)
		if err != nil {
			t.Fatalf("claim error %v", err)
		}
		if !release {
			t.Fatalf("interval %v not released", i+1)
		}
		if beneficiary != testBeneficiary {
			t.Errorf("beneficiary = %v, want %v", beneficiary, testBeneficiary)
		}
		if amount != 250 {
			t.Errorf("interval %v amount = %v, want 250", i+1, amount)
		}
		sum += amount
	}
	if sum != 1000 {
		t.Errorf("claimed sum = %v, want 1000", sum)
	}

	clock.now = testUnlockAt.Add(10 * testIntervalSec)
	advanced, err := vl.AdvanceInterval(testAdmin)
	if err != nil {
		t.Fatalf("advance interval error %v", err)
	}
	if advanced {
		t.Errorf("advanced past the last interval")
	}
}

func TestVestingLedger_RemainderAbsorbedByLastInterval(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)

	if err := vl.CreateAllocation(testAdmin, testBeneficiary, 1001); err != nil {
		t.Fatalf("create allocation error %v", err)
	}

	want := []uint64{250, 250, 250, 251}
	for i := 0; i < 4; i++ {
		clock.now = testUnlockAt.Add(int64(i)*testIntervalSec + 1)
		if _, err := vl.AdvanceInterval(testAdmin); err != nil {
			t.Fatalf("advance interval error %v", err)
		}
		_, _, amount, err := vl.Claim(testAdmin, 0)
		if err != nil {
			t.Fatalf("claim error %v", err)
		}
		if amount != want[i] {
			t.Errorf("interval %v amount = %v, want %v", i+1, amount, want[i])
		}
	}
}

func TestVestingLedger_NoDoubleClaim(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)

	if err := vl.CreateAllocation(testAdmin, testBeneficiary, 1000); err != nil {
		t.Fatalf("create allocation error %v", err)
	}
	clock.now = testUnlockAt.Add(1)
	if _, err := vl.AdvanceInterval(testAdmin); err != nil {
		t.Fatalf("advance interval error %v", err)
	}

	release, _, _, err := vl.Claim(testAdmin, 0)
	if err != nil {
		t.Fatalf("claim error %v", err)
	}
	if !release {
		t.Fatalf("first claim not released")
	}
	release, _, amount, err := vl.Claim(testAdmin, 0)
	if err != nil {
		t.Fatalf("claim error %v", err)
	}
	if release {
		t.Errorf("second claim released again, amount %v", amount)
	}
}

func TestVestingLedger_GatedBeforeUnlock(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)

	advanced, err := vl.AdvanceInterval(testAdmin)
	if err != nil {
		t.Fatalf("advance interval error %v", err)
	}
	if advanced {
		t.Errorf("advanced before the unlock date")
	}

	// exactly at the unlock date, nothing has elapsed yet
	clock.now = testUnlockAt
	advanced, err = vl.AdvanceInterval(testAdmin)
	if err != nil {
		t.Fatalf("advance interval error %v", err)
	}
	if advanced {
		t.Errorf("advanced at the unlock date")
	}

	// a full interval must elapse between two advances
	clock.now = testUnlockAt.Add(1)
	if _, err = vl.AdvanceInterval(testAdmin); err != nil {
		t.Fatalf("advance interval error %v", err)
	}
	clock.now = testUnlockAt.Add(testIntervalSec)
	advanced, err = vl.AdvanceInterval(testAdmin)
	if err != nil {
		t.Fatalf("advance interval error %v", err)
	}
	if advanced {
		t.Errorf("advanced before the interval elapsed")
	}
}

func TestVestingLedger_CreateAfterUnlock(t *testing.T) {
	clock := &fakeClock{now: testUnlockAt}
	vl := newTestVesting(t, 4, clock)

	err := vl.CreateAllocation(testAdmin, testBeneficiary, 1000)
	if err != ErrScheduleClosed {
		t.Errorf("create after unlock error = %v, want %v", err, ErrScheduleClosed)
	}
}

func TestVestingLedger_Unauthorized(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)

	if err := vl.CreateAllocation(testStranger, testBeneficiary, 1000); err != ErrUnauthorized {
		t.Errorf("create error = %v, want %v", err, ErrUnauthorized)
	}
	if _, err := vl.AdvanceInterval(testStranger); err != ErrUnauthorized {
		t.Errorf("advance error = %v, want %v", err, ErrUnauthorized)
	}
	if _, _, _, err := vl.Claim(testStranger, 0); err != ErrUnauthorized {
		t.Errorf("claim error = %v, want %v", err, ErrUnauthorized)
	}
}

func TestVestingLedger_IndexOutOfRange(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)

	if _, _, _, err := vl.Claim(testAdmin, 0); err != ErrIndexOutOfRange {
		t.Errorf("claim error = %v, want %v", err, ErrIndexOutOfRange)
	}
	if _, err := vl.AllocationAmount(-1); err != ErrIndexOutOfRange {
		t.Errorf("allocation amount error = %v, want %v", err, ErrIndexOutOfRange)
	}
}

func TestVestingLedger_AllocationAmount(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)

	if err := vl.CreateAllocation(testAdmin, testBeneficiary, 1000); err != nil {
		t.Fatalf("create allocation error %v", err)
	}
	clock.now = testUnlockAt.Add(1)
	if _, err := vl.AdvanceInterval(testAdmin); err != nil {
		t.Fatalf("advance interval error %v", err)
	}
	if _, _, _, err := vl.Claim(testAdmin, 0); err != nil {
		t.Fatalf("claim error %v", err)
	}

	// the reported amount stays at the creation total after claims
	amount, err := vl.AllocationAmount(0)
	if err != nil {
		t.Fatalf("allocation amount error %v", err)
	}
	if amount != 1000 {
		t.Errorf("allocation amount = %v, want 1000", amount)
	}
	if vl.Count() != 1 {
		t.Errorf("count = %v, want 1", vl.Count())
	}
}

func TestVestingLedger_AdminTransfer(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)
	next := common.BytesToAddress([]byte("next"))

	if err := vl.AcceptAdmin(next); err != ErrUnauthorized {
		t.Errorf("accept without proposal error = %v, want %v", err, ErrUnauthorized)
	}
	if err := vl.ProposeAdmin(testStranger, next); err != ErrUnauthorized {
		t.Errorf("propose by stranger error = %v, want %v", err, ErrUnauthorized)
	}
	if err := vl.ProposeAdmin(testAdmin, next); err != nil {
		t.Fatalf("propose error %v", err)
	}

	// the proposal alone must not move the capability
	if err := vl.CreateAllocation(next, testBeneficiary, 10); err != ErrUnauthorized {
		t.Errorf("create by pending admin error = %v, want %v", err, ErrUnauthorized)
	}

	if err := vl.AcceptAdmin(next); err != nil {
		t.Fatalf("accept error %v", err)
	}
	if err := vl.CreateAllocation(next, testBeneficiary, 10); err != nil {
		t.Errorf("create by new admin error %v", err)
	}
	if err := vl.CreateAllocation(testAdmin, testBeneficiary, 10); err != ErrUnauthorized {
		t.Errorf("create by old admin error = %v, want %v", err, ErrUnauthorized)
	}
}

func TestVestingLedger_SnapshotRestore(t *testing.T) {
	clock := &fakeClock{now: 500}
	vl := newTestVesting(t, 4, clock)

	if err := vl.CreateAllocation(testAdmin, testBeneficiary, 1001); err != nil {
		t.Fatalf("create allocation error %v", err)
	}
	clock.now = testUnlockAt.Add(1)
	if _, err := vl.AdvanceInterval(testAdmin); err != nil {
		t.Fatalf("advance interval error %v", err)
	}
	if _, _, _, err := vl.Claim(testAdmin, 0); err != nil {
		t.Fatalf("claim error %v", err)
	}

	restored := newTestVesting(t, 4, clock)
	if err := restored.Restore(vl.Snapshot()); err != nil {
		t.Fatalf("restore error %v", err)
	}

	if restored.CurrentInterval() != 1 {
		t.Errorf("current interval = %v, want 1", restored.CurrentInterval())
	}
	release, _, _, err := restored.Claim(testAdmin, 0)
	if err != nil {
		t.Fatalf("claim error %v", err)
	}
	if release {
		t.Errorf("claim released again after restore")
	}

	// the remainder still sums exactly across the remaining intervals
	want := []uint64{250, 250, 251}
	for i := 0; i < 3; i++ {
		clock.now = testUnlockAt.Add(int64(i+1)*testIntervalSec + 1)
		if _, err := restored.AdvanceInterval(testAdmin); err != nil {
			t.Fatalf("advance interval error %v", err)
		}
		_, _, amount, err := restored.Claim(testAdmin, 0)
		if err != nil {
			t.Fatalf("claim error %v", err)
		}
		if amount != want[i] {
			t.Errorf("interval %v amount = %v, want %v", i+2, amount, want[i])
		}
	}
}
