package common

import (
	"fmt"
	"testing"
)

func TestStringToAddress(t *testing.T) {
	rightAddr := "zvc2f067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d8103"
	shortAddr := "zvc2f067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d810"
	longAddr := "zvc2f067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d81033"
	longAddr2 := "zvc2f067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d810333"
	addr := StringToAddress(rightAddr)
	if addr.AddrPrefixString() != rightAddr {
		t.Errorf("wanted: %s, got: %s", rightAddr, addr.AddrPrefixString())
	}
	addr = StringToAddress(shortAddr)
	if addr.AddrPrefixString() != "zv0c2f067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d810" {
		t.Errorf("wanted: %s, got: %s", "zv0c2f067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d810", addr.AddrPrefixString())
	}
	addr = StringToAddress(longAddr)
	if addr.AddrPrefixString() != "zv2f067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d81033" {
		t.Errorf("wanted: %s, got: %s", "zv2f067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d81033", addr.AddrPrefixString())
	}
	addr = StringToAddress(longAddr2)
	if addr.AddrPrefixString() != "zvf067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d810333" {
		t.Errorf("wanted: %s, got: %s", "zvf067dba80c53cfdd956f86a61dd3aaf5abbba5609572636719f054247d810333", addr.AddrPrefixString())
	}
}

func TestSha256(t *testing.T) {
	fmt.Printf("result = %v \n", Bytes2Hex(Sha256([]byte("It is a test"))))
}

func TestValidateAddress(t *testing.T) {
	wrongAddr := []string{"0xed890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8a",
		"0xed890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8az",
		"0xed890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8",
		"zved890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8aa",
		"zved890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8",
		"zved890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8z",
		" zved890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8",
		"zved890e78fc5d07e85e66b7926d8370 095570abb5259e346438abd3ea7a56a8a",
	}
	rightAddr := []string{
		"zved890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8a",
		"zVed890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8a",
		"Zved890e78fc5d07e85e66b7926d8370c095570abb5259e346438abd3ea7a56a8a",
		"ZVed890e78fc5d07e85E66b7926d8370c095570abb5259e346438Abd3ea7a56a8a",
	}
	for _, addr := range wrongAddr {
		if ValidateAddress(addr) {
			t.Errorf("wanted false for %v", addr)
		}
	}
	for _, addr := range rightAddr {
		if !ValidateAddress(addr) {
			t.Errorf("wanted true for %v", addr)
		}
	}
}
