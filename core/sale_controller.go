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

// SaleStatus describes the sale state machine:
// NotStarted -> Open -> {CapReached | TimeExpired} -> Finalized
type SaleStatus int

const (
	SaleNotStarted SaleStatus = iota
	SaleOpen
	SaleCapReached
	SaleTimeExpired
	SaleDone
)

func (s SaleStatus) String() string {
	switch s {
	case SaleNotStarted:
		return "not_started"
	case SaleOpen:
		return "open"
	case SaleCapReached:
		return "cap_reached"
	case SaleTimeExpired:
		return "time_expired"
	case SaleDone:
		return "finalized"
	default:
		return "unknown"
	}
}

// SaleConfig carries the construction parameters of the sale
type SaleConfig struct {
	Admin   common.Address // administrator capability and share receiver
	Holding common.Address // account holding reserved bonus units

	Start time.TimeStamp
	End   time.TimeStamp

	Capacity        uint64
	MinContribution uint64
	MaxContribution uint64

	Rate         uint64 // reward units issued per contribution unit
	AdminRate    uint64 // extra units issued to the administrator per contribution unit
	BonusPercent uint64 // percentage of direct rewards withheld for vesting
}

// SaleController gates incoming contributions, converts them to issued
// reward units and drives the vesting ledger when vested rewards are due.
// All operations are serialized by a single lock; each either fully applies
// or leaves no visible state change
type SaleController struct {
	adminGuard

	window TimedWindow

	capacity        uint64
	minContribution uint64
	maxContribution uint64
	rate            uint64
	adminRate       uint64
	bonusPercent    uint64

	totalRaised uint64
	finalized   bool

	holding common.Address

	vesting    *VestingLedger
	authorizer AuthorizationOracle
	ledger     RewardLedger
	ts         time.TimeService

	lock sync.Mutex
}

func NewSaleController(cfg *SaleConfig, vesting *VestingLedger, authorizer AuthorizationOracle, ledger RewardLedger, ts time.TimeService) (*SaleController, error) {
	if cfg.Admin.IsZero() {
		return nil, fmt.Errorf("administrator address is zero")
	}
	if cfg.Holding.IsZero() {
		return nil, fmt.Errorf("holding address is zero")
	}
	if cfg.Rate == 0 {
		return nil, fmt.Errorf("rate must be positive")
	}
	if cfg.Capacity == 0 {
		return nil, fmt.Errorf("capacity must be positive")
	}
	if cfg.BonusPercent > 100 {
		return nil, fmt.Errorf("bonus percent exceeds 100: %v", cfg.BonusPercent)
	}
	if cfg.MinContribution > cfg.MaxContribution {
		return nil, fmt.Errorf("min contribution %v above max %v", cfg.MinContribution, cfg.MaxContribution)
	}
	if !cfg.End.After(cfg.Start) {
		return nil, fmt.Errorf("sale end %v not after start %v", cfg.End, cfg.Start)
	}
	if vesting == nil || authorizer == nil || ledger == nil || ts == nil {
		return nil, fmt.Errorf("missing collaborator")
	}

	sc := &SaleController{
		window:          TimedWindow{Start: cfg.Start, End: cfg.End},
		capacity:        cfg.Capacity,
		minContribution: cfg.MinContribution,
		maxContribution: cfg.MaxContribution,
		rate:            cfg.Rate,
		adminRate:       cfg.AdminRate,
		bonusPercent:    cfg.BonusPercent,
		holding:         cfg.Holding,
		vesting:         vesting,
		authorizer:      authorizer,
		ledger:          ledger,
		ts:              ts,
	}
	sc.admin = cfg.Admin
	return sc, nil
}

// hasEnded reports whether admission is over: either the cap was reached or
// the time window expired, each one ends the sale independently
func (sc *SaleController) hasEnded(now time.TimeStamp) bool {
	return sc.totalRaised >= sc.capacity || sc.window.HasEnded(now)
}

// admissionCheck is the conjunction gating every contribution. All conditions
// must hold; any failure aborts the contribution with no partial issuance
func (sc *SaleController) admissionCheck(contributor common.Address, amount uint64) error {
	now := sc.ts.Now()
	if sc.finalized || !sc.window.HasStarted(now) || sc.hasEnded(now) {
		return ErrSaleClosed
	}
	raised, err := safeAdd(sc.totalRaised, amount)
	if err != nil {
		return err
	}
	if raised > sc.capacity {
		return ErrCapExceeded
	}
	if !sc.authorizer.IsAuthorized(contributor) {
		return ErrNotAuthorized
	}
	if amount < sc.minContribution {
		return ErrBelowMinContribution
	}
	contributed := sc.ledger.BalanceOf(contributor) / sc.rate
	total, err := safeAdd(amount, contributed)
	if err != nil {
		return err
	}
	if total > sc.maxContribution {
		return ErrAboveMaxContribution
	}
	return nil
}

// AcceptContribution admits a contribution and issues reward units to the
// contributor plus the administrator's proportional share
func (sc *SaleController) AcceptContribution(contributor common.Address, amount uint64) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.admissionCheck(contributor, amount); err != nil {
		log.SaleLogger.Debugf("contribution rejected: contributor %v amount %v err %v", contributor, amount, err)
		return err
	}

	issued, err := safeMul(amount, sc.rate)
	if err != nil {
		return err
	}
	adminShare, err := safeMul(amount, sc.adminRate)
	if err != nil {
		return err
	}

	if err := sc.ledger.Issue(contributor, issued); err != nil {
		return fmt.Errorf("issue to contributor failed: %v", err)
	}
	if err := sc.ledger.Issue(sc.admin, adminShare); err != nil {
		// the ledger was writable a moment ago and operations are serial
		panic(fmt.Errorf("issue of administrator share failed: %v", err))
	}
	sc.totalRaised += amount

	log.SaleLogger.Infof("contribution accepted: contributor %v amount %v issued %v raised %v", contributor, amount, issued, sc.totalRaised)
	notify.BUS.Publish(notify.ContributionAccepted, &ContributionMessage{
		Contributor: contributor,
		Amount:      amount,
		Issued:      issued,
		AdminShare:  adminShare,
	})
	return nil
}

// DirectIssue credits reward units to a beneficiary vetted off-channel,
// bypassing the admission check. The equivalent contribution amount is added
// to the raised total
func (sc *SaleController) DirectIssue(operator, beneficiary common.Address, rewardAmount uint64) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireAdmin(operator); err != nil {
		return err
	}
	if sc.finalized {
		return ErrSaleFinalized
	}

	contribution := rewardAmount / sc.rate
	raised, err := safeAdd(sc.totalRaised, contribution)
	if err != nil {
		return err
	}
	adminShare, err := sc.adminShareOf(rewardAmount)
	if err != nil {
		return err
	}

	if err := sc.ledger.Issue(beneficiary, rewardAmount); err != nil {
		return fmt.Errorf("issue to beneficiary failed: %v", err)
	}
	if err := sc.ledger.Issue(sc.admin, adminShare); err != nil {
		panic(fmt.Errorf("issue of administrator share failed: %v", err))
	}
	sc.totalRaised = raised

	log.SaleLogger.Infof("direct issue: beneficiary %v reward %v contribution %v", beneficiary, rewardAmount, contribution)
	notify.BUS.Publish(notify.DirectIssueDone, &ContributionMessage{
		Contributor: beneficiary,
		Amount:      contribution,
		Issued:      rewardAmount,
		AdminShare:  adminShare,
	})
	return nil
}

// adminShareOf computes the administrator share proportional to the reward
func (sc *SaleController) adminShareOf(rewardAmount uint64) (uint64, error) {
	share, err := safeMul(sc.adminRate, rewardAmount)
	if err != nil {
		return 0, err
	}
	return share / sc.rate, nil
}

// CreateBonusAllocation issues a reward where a bonus percentage is withheld
// and vested instead of delivered immediately. The withheld units are issued
// to the controller's holding account and released interval by interval
func (sc *SaleController) CreateBonusAllocation(operator, beneficiary common.Address, rewardAmount uint64) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireAdmin(operator); err != nil {
		return err
	}
	if sc.finalized {
		return ErrSaleFinalized
	}

	adminShare, err := sc.adminShareOf(rewardAmount)
	if err != nil {
		return err
	}
	bonus, err := safeMul(sc.bonusPercent, rewardAmount)
	if err != nil {
		return err
	}
	bonus = bonus / 100
	remainder := rewardAmount - bonus

	// register the vesting entry first: it can still fail on a closed
	// schedule and nothing may be issued in that case. Once the entry is
	// in, an issuance failure leaves no clean way back, so all three are
	// must-not-happen
	if err := sc.vesting.CreateAllocation(operator, beneficiary, bonus); err != nil {
		return err
	}

	if err := sc.ledger.Issue(sc.admin, adminShare); err != nil {
		panic(fmt.Errorf("issue of administrator share failed: %v", err))
	}
	if err := sc.ledger.Issue(sc.holding, bonus); err != nil {
		panic(fmt.Errorf("issue of bonus reserve failed: %v", err))
	}
	if err := sc.ledger.Issue(beneficiary, remainder); err != nil {
		panic(fmt.Errorf("issue to beneficiary failed: %v", err))
	}

	log.SaleLogger.Infof("bonus allocation: beneficiary %v reward %v bonus %v", beneficiary, rewardAmount, bonus)
	notify.BUS.Publish(notify.BonusAllocated, &AllocationMessage{Beneficiary: beneficiary, Amount: bonus})
	return nil
}

// ReleaseVestedRewards advances the vesting interval and delivers every due
// reward from the holding account. Returns false if the interval was not due
// yet; callers retry on the next period
func (sc *SaleController) ReleaseVestedRewards(operator common.Address) (bool, error) {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireAdmin(operator); err != nil {
		return false, err
	}
	return sc.releaseVested(operator)
}

func (sc *SaleController) releaseVested(operator common.Address) (bool, error) {
	advanced, err := sc.vesting.AdvanceInterval(operator)
	if err != nil {
		return false, err
	}
	if !advanced {
		return false, nil
	}

	count := sc.vesting.Count()
	for i := 0; i < count; i++ {
		release, beneficiary, amount, err := sc.vesting.Claim(operator, i)
		if err != nil {
			return false, err
		}
		if !release || amount == 0 {
			continue
		}
		if !sc.ledger.Transfer(sc.holding, beneficiary, amount) {
			// reserved at allocation time, failure means a broken ledger
			panic(fmt.Errorf("vested transfer failed: beneficiary %v amount %v", beneficiary, amount))
		}
		notify.BUS.Publish(notify.RewardReleased, &ReleaseMessage{
			Beneficiary: beneficiary,
			Amount:      amount,
			Interval:    sc.vesting.CurrentInterval(),
		})
	}
	return true, nil
}

// Finalize runs the first vested release, freezes further issuance and closes
// the sale for good. Irreversible
func (sc *SaleController) Finalize(operator common.Address) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireAdmin(operator); err != nil {
		return err
	}
	if sc.finalized {
		return ErrSaleFinalized
	}

	// release before freezing: a failing release must not leave the
	// ledger frozen on a sale that is still open
	if _, err := sc.releaseVested(operator); err != nil {
		return err
	}
	sc.ledger.FreezeIssuance()
	sc.finalized = true

	log.SaleLogger.Infof("sale finalized: raised %v", sc.totalRaised)
	notify.BUS.Publish(notify.SaleFinalized, &FinalizeMessage{TotalRaised: sc.totalRaised})
	return nil
}

// SetAuthorizer replaces the authorization oracle. Structural dependencies
// may only change before the sale starts
func (sc *SaleController) SetAuthorizer(operator common.Address, authorizer AuthorizationOracle) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireStructuralChange(operator); err != nil {
		return err
	}
	if authorizer == nil {
		return fmt.Errorf("authorizer is nil")
	}
	sc.authorizer = authorizer
	return nil
}

// SetVestingLedger replaces the vesting ledger before the sale starts
func (sc *SaleController) SetVestingLedger(operator common.Address, vesting *VestingLedger) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireStructuralChange(operator); err != nil {
		return err
	}
	if vesting == nil {
		return fmt.Errorf("vesting ledger is nil")
	}
	sc.vesting = vesting
	return nil
}

// SetRewardLedger replaces the reward ledger before the sale starts
func (sc *SaleController) SetRewardLedger(operator common.Address, ledger RewardLedger) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireStructuralChange(operator); err != nil {
		return err
	}
	if ledger == nil {
		return fmt.Errorf("reward ledger is nil")
	}
	sc.ledger = ledger
	return nil
}

func (sc *SaleController) requireStructuralChange(operator common.Address) error {
	if err := sc.requireAdmin(operator); err != nil {
		return err
	}
	if sc.window.HasStarted(sc.ts.Now()) {
		return ErrSaleStarted
	}
	return nil
}

// SetCapacity updates the sale capacity, the new value must be positive
func (sc *SaleController) SetCapacity(operator common.Address, capacity uint64) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireAdmin(operator); err != nil {
		return err
	}
	if capacity == 0 {
		return fmt.Errorf("capacity must be positive")
	}
	sc.capacity = capacity
	return nil
}

// SetMaxContribution updates the per-contributor upper bound
func (sc *SaleController) SetMaxContribution(operator common.Address, max uint64) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireAdmin(operator); err != nil {
		return err
	}
	sc.maxContribution = max
	return nil
}

// SetEndTime moves the end of the sale window
func (sc *SaleController) SetEndTime(operator common.Address, end time.TimeStamp) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	if err := sc.requireAdmin(operator); err != nil {
		return err
	}
	if !end.After(sc.window.Start) {
		return fmt.Errorf("sale end %v not after start %v", end, sc.window.Start)
	}
	sc.window.End = end
	return nil
}

// ProposeAdmin nominates the next administrator of the sale
func (sc *SaleController) ProposeAdmin(operator, next common.Address) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	return sc.proposeAdmin(operator, next)
}

// AcceptAdmin completes a pending administrator transfer
func (sc *SaleController) AcceptAdmin(operator common.Address) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	return sc.acceptAdmin(operator)
}

// TotalRaised returns the cumulative admitted contribution amount
func (sc *SaleController) TotalRaised() uint64 {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	return sc.totalRaised
}

// IsFinalized reports whether the sale has been finalized
func (sc *SaleController) IsFinalized() bool {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	return sc.finalized
}

// Status derives the current point of the sale state machine
func (sc *SaleController) Status() SaleStatus {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	now := sc.ts.Now()
	switch {
	case sc.finalized:
		return SaleDone
	case !sc.window.HasStarted(now):
		return SaleNotStarted
	case sc.totalRaised >= sc.capacity:
		return SaleCapReached
	case sc.window.HasEnded(now):
		return SaleTimeExpired
	default:
		return SaleOpen
	}
}
