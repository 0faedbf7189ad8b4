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
	"github.com/zvchain/tokensale/common"
)

// AuthorizationOracle decides which accounts may contribute to the sale.
// The decision itself is made by an external registry
type AuthorizationOracle interface {
	IsAuthorized(account common.Address) bool
}

// RewardLedger is the external ledger storing reward-unit balances.
// The sale controller issues units into it and transfers reserved units
// out of its holding account when vested rewards are released
type RewardLedger interface {
	// Issue mints the given amount of reward units to the account.
	// It fails once issuance has been frozen
	Issue(account common.Address, amount uint64) error

	// Transfer moves units between accounts, returns false when the
	// source balance is insufficient
	Transfer(from, to common.Address, amount uint64) bool

	// BalanceOf returns the reward-unit balance of the account
	BalanceOf(account common.Address) uint64

	// FreezeIssuance permanently disables further issuing. One-way
	FreezeIssuance()
}
