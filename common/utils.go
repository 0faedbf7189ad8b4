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
	"crypto/rand"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/chacha20poly1305"
)

// MustNewLRUCache creates a new lru cache.
// Caution: if fail, the function will cause panic
// developer should promise size > 0 when use this function
func MustNewLRUCache(size int) *lru.Cache {
	cache, err := lru.New(size)
	if err != nil {
		panic(fmt.Errorf("new cache fail:%v", err))
	}
	return cache
}

// EncryptWithKey implements symmetric encryption with the specified key.
// The operator keyfile is sealed with this function
func EncryptWithKey(key []byte, data []byte) (result []byte, err error) {
	nonce := make([]byte, chacha20poly1305.NonceSize, chacha20poly1305.NonceSize)
	cipher, err := chacha20poly1305.New(key)
	if err != nil {
		return
	}

	_, err = rand.Read(nonce)
	if err != nil {
		return
	}
	data = cipher.Seal(data[:0], nonce, data, nil)

	result = BytesCombine(data, nonce)
	return
}

// DecryptWithKey implements symmetric decryption with the specified key.
// It extracts the nonce from the tail of the data and deseals the rest.
// If the key is incorrect, err returns not nil
func DecryptWithKey(key []byte, data []byte) (result []byte, err error) {
	// at least 16 bytes of AEAD tag and 12 bytes of nonce
	if len(data) < 28 {
		err = fmt.Errorf("invalid data")
		return
	}

	dataWithoutNonce := data[0 : len(data)-chacha20poly1305.NonceSize]
	nonce := data[len(data)-chacha20poly1305.NonceSize:]

	cipher, err := chacha20poly1305.New(key)
	if err != nil {
		return
	}

	return cipher.Open(result[:0], nonce, dataWithoutNonce, nil)
}

// CheckWeakPassword reports whether the given password is unacceptable.
// A password must be at least 6 characters long and mix at least three of
// digits, lower case, upper case and special characters
func CheckWeakPassword(password string) bool {
	if len(strings.TrimSpace(password)) < 6 {
		return true
	}
	classes := 0
	var digit, lower, upper, special bool
	for _, c := range password {
		switch {
		case c >= '0' && c <= '9':
			digit = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c != ' ':
			special = true
		}
	}
	for _, present := range []bool{digit, lower, upper, special} {
		if present {
			classes++
		}
	}
	return classes < 3
}
