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

package notify

// defines all of current used event ids
const (
	ContributionAccepted = "contribution_accepted"
	DirectIssueDone      = "direct_issue_done"
	BonusAllocated       = "bonus_allocated"
	SaleFinalized        = "sale_finalized"

	AllocationCreated = "allocation_created"
	IntervalAdvanced  = "interval_advanced"
	RewardClaimed     = "reward_claimed"
	RewardReleased    = "reward_released"

	MessageToConsole = "message_to_console"
)
