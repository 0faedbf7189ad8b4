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

// safeAdd adds two amounts and fails with ErrAmountOverflow on wrap around
func safeAdd(a, b uint64) (uint64, error) {
	if a+b < a {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// safeMul multiplies two amounts and fails with ErrAmountOverflow on wrap around
func safeMul(a, b uint64) (uint64, error) {
	if a == 0 {
		return 0, nil
	}
	c := a * b
	if c/a != b {
		return 0, ErrAmountOverflow
	}
	return c, nil
}
