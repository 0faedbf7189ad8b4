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

import "errors"

// Hard failures abort the whole operation with no state change.
// Timing conditions that are merely not satisfied yet are signalled with a
// false return instead of an error so that callers can retry later
var (
	ErrUnauthorized    = errors.New("operator is not the administrator")
	ErrIndexOutOfRange = errors.New("allocation index out of range")
	ErrScheduleClosed  = errors.New("vesting schedule closed for new allocations")
	ErrSaleFinalized   = errors.New("sale already finalized")
	ErrSaleStarted     = errors.New("sale already started")
	ErrAmountOverflow  = errors.New("amount overflow")

	ErrSaleClosed           = errors.New("sale is not open")
	ErrCapExceeded          = errors.New("contribution exceeds the sale capacity")
	ErrNotAuthorized        = errors.New("contributor is not authorized")
	ErrBelowMinContribution = errors.New("contribution below the minimum")
	ErrAboveMaxContribution = errors.New("contribution above the maximum")
)
