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

package cli

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/howeyc/gopass"
	"golang.org/x/crypto/scrypt"

	"github.com/zvchain/tokensale/common"
)

// KeyStoreRaw is the plaintext layout of the operator keyfile
type KeyStoreRaw struct {
	Operator string `json:"operator"`
}

func scryptKey(password string) ([]byte, error) {
	salt := common.Sha256([]byte(password))
	return scrypt.Key([]byte(password), salt, 1<<15, 8, 1, 32)
}

// storeOperator writes the operator address into a password-encrypted keyfile
func storeOperator(file string, operator common.Address, password string) error {
	if common.CheckWeakPassword(password) {
		return fmt.Errorf("password is too weak")
	}
	bs, err := json.Marshal(&KeyStoreRaw{Operator: operator.AddrPrefixString()})
	if err != nil {
		return err
	}
	key, err := scryptKey(password)
	if err != nil {
		return err
	}
	ct, err := common.EncryptWithKey(key, bs)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(file, ct, 0600)
}

// loadOperator decrypts the keyfile and returns the operator address
func loadOperator(file string, password string) (common.Address, error) {
	ct, err := ioutil.ReadFile(file)
	if err != nil {
		return common.Address{}, fmt.Errorf("keyfile %v not readable: %v", file, err)
	}
	key, err := scryptKey(password)
	if err != nil {
		return common.Address{}, err
	}
	bs, err := common.DecryptWithKey(key, ct)
	if err != nil {
		return common.Address{}, fmt.Errorf("decrypt keyfile fail, wrong password?")
	}
	var ksr KeyStoreRaw
	if err := json.Unmarshal(bs, &ksr); err != nil {
		return common.Address{}, err
	}
	addr := common.StringToAddress(ksr.Operator)
	if addr.IsZero() {
		return common.Address{}, fmt.Errorf("keyfile holds no operator address")
	}
	return addr, nil
}

func promptPassword() (string, error) {
	bs, err := gopass.GetPasswdPrompt("please input password: ", true, os.Stdin, os.Stdout)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
