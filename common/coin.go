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

package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	RA  uint64 = 1
	KRA        = 1000
	MRA        = 1000000
	ZVC        = 1000000000
)

var (
	ErrEmptyStr   = fmt.Errorf("empty string")
	ErrIllegalStr = fmt.Errorf("illegal amount string")
)

var re, _ = regexp.Compile("^([0-9]+)(ra|kra|mra|zvc)$")

// ParseCoin parses string to amount
func ParseCoin(s string) (uint64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrEmptyStr
	}

	arr := re.FindAllStringSubmatch(s, -1)
	if arr == nil || len(arr) == 0 {
		return 0, ErrIllegalStr
	}
	ret := arr[0]
	if ret == nil || len(ret) != 3 {
		return 0, ErrIllegalStr
	}
	num, err := strconv.Atoi(ret[1])
	if err != nil {
		return 0, ErrIllegalStr
	}
	unit := RA
	switch ret[2] {
	case "kra":
		unit = KRA
	case "mra":
		unit = MRA
	case "zvc":
		unit = ZVC
	}
	return uint64(num) * unit, nil
}

// Value2RA convert the value to ra unit
func Value2RA(v float64) uint64 {
	return uint64(v * float64(ZVC))
}
