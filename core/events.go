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

// AllocationMessage is the audit record published when a vesting allocation
// is registered
type AllocationMessage struct {
	Beneficiary common.Address
	Amount      uint64
}

func (m *AllocationMessage) GetRaw() []byte {
	return []byte{}
}
func (m *AllocationMessage) GetData() interface{} {
	return m
}

// ClaimMessage is the audit record published when an allocation's reward is
// claimed for an interval
type ClaimMessage struct {
	Index       int
	Interval    uint64
	Beneficiary common.Address
	Amount      uint64
}

func (m *ClaimMessage) GetRaw() []byte {
	return []byte{}
}
func (m *ClaimMessage) GetData() interface{} {
	return m
}

// IntervalMessage is published when the global vesting interval advances
type IntervalMessage struct {
	Interval uint64
}

func (m *IntervalMessage) GetRaw() []byte {
	return []byte{}
}
func (m *IntervalMessage) GetData() interface{} {
	return m
}

// ContributionMessage is the audit record of an admitted contribution or a
// direct issuance
type ContributionMessage struct {
	Contributor common.Address
	Amount      uint64
	Issued      uint64
	AdminShare  uint64
}

func (m *ContributionMessage) GetRaw() []byte {
	return []byte{}
}
func (m *ContributionMessage) GetData() interface{} {
	return m
}

// ReleaseMessage is published when vested units are delivered to a beneficiary
type ReleaseMessage struct {
	Beneficiary common.Address
	Amount      uint64
	Interval    uint64
}

func (m *ReleaseMessage) GetRaw() []byte {
	return []byte{}
}
func (m *ReleaseMessage) GetData() interface{} {
	return m
}

// FinalizeMessage is published once when the sale is finalized
type FinalizeMessage struct {
	TotalRaised uint64
}

func (m *FinalizeMessage) GetRaw() []byte {
	return []byte{}
}
func (m *FinalizeMessage) GetData() interface{} {
	return m
}
