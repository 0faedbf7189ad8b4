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

// Package common provides common data structures and common utility functions.
package common

import (
	"math/big"
	"regexp"
	"strings"
)

const HexPrefix = "0x"
const AddrPrefix = "zv"

const (
	AddressLength = 32 // Length of Address
)

// ShortHex shortens a hex string for display
func ShortHex(hexStr string) string {
	if len(hexStr) < 12 {
		return hexStr
	}
	return hexStr[:6] + "-" + hexStr[len(hexStr)-6:]
}

var addrReg = regexp.MustCompile("^[Zz][Vv][0-9a-fA-F]{64}$")

// ValidateAddress checks the given address string with the prefixed format
func ValidateAddress(addr string) bool {
	return addrReg.MatchString(addr)
}

// Address data struct
type Address [AddressLength]byte

// BytesToAddress returns the Address imported from the input byte array
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// BigToAddress returns the address of the input big integer assignment
func BigToAddress(b *big.Int) Address { return BytesToAddress(b.Bytes()) }

// StringToAddress returns the address of the input string assignment
func StringToAddress(s string) Address {
	if len(s) > len(AddrPrefix) {
		if AddrPrefix == strings.ToLower(s[0:len(AddrPrefix)]) {
			s = s[len(AddrPrefix):]
		}
		if len(s)%2 == 1 {
			s = "0" + s
		}
	}
	return BytesToAddress(Hex2Bytes(s))
}

// SetBytes returns the address of the input byte array assignment
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b[:])
}

// Set sets other to a
func (a *Address) Set(other Address) {
	copy(a[:], other[:])
}

// AddrPrefixString returns the prefixed hex string representation of a
func (a Address) AddrPrefixString() string {
	hexString := Bytes2Hex(a.Bytes())
	if len(hexString) == 0 {
		hexString = "0"
	}
	return AddrPrefix + hexString
}

// Bytes returns the byte array representation of a
func (a Address) Bytes() []byte { return a[:] }

// BigInteger returns the big integer representation of a
func (a Address) BigInteger() *big.Int { return new(big.Int).SetBytes(a[:]) }

// IsZero checks if a is the zero address
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	return ShortHex(a.AddrPrefixString())
}

// MarshalJSON encodes the address as byte array with json format
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte("\"" + a.AddrPrefixString() + "\""), nil
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.AddrPrefixString()), nil
}

// UnmarshalText parses an address in hex syntax.
func (a *Address) UnmarshalText(input []byte) error {
	*a = StringToAddress(string(input))
	return nil
}
