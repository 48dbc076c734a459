// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// AddressLength length of address in bytes.
	AddressLength = common.HashLength

	// AccountPrefix is the leading byte of every regular account address.
	AccountPrefix byte = 0xA0
	// ContractPrefix is the leading byte of every TRS contract address.
	ContractPrefix byte = 0xC0
)

// Address address of account.
// The leading byte identifies the kind of account.
type Address [AddressLength]byte

// String implements the stringer interface
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// AbbrevString returns abbrev string presentation.
func (a Address) AbbrevString() string {
	return "0x" + hex.EncodeToString(a[:4]) + "…" + hex.EncodeToString(a[28:])
}

// Bytes returns byte slice form of address.
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero returns if address has all zero bytes.
func (a Address) IsZero() bool {
	return a == Address{}
}

// IsAccount returns whether the address carries the regular account prefix.
func (a Address) IsAccount() bool {
	return a[0] == AccountPrefix
}

// IsContract returns whether the address carries the TRS contract prefix.
func (a Address) IsContract() bool {
	return a[0] == ContractPrefix
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress convert string presented address into Address type.
func ParseAddress(s string) (addr Address, err error) {
	if err = decodeFixedHex(s, addr[:]); err != nil {
		return Address{}, err
	}
	return
}

// MustParseAddress convert string presented address into Address type, panic on error.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress converts bytes slice into address.
// If b is larger than address length, b will be cropped (from the left).
// If b is smaller than address length, b will be extended (from the left).
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToHash(b))
}

// CreateContractAddress derives the address of a TRS contract from its creator and the
// creator's current nonce. The same pair always yields the same address.
func CreateContractAddress(creator Address, nonce uint64) Address {
	nonceBytes := new(big.Int).SetUint64(nonce).Bytes()
	if len(nonceBytes) == 0 {
		nonceBytes = []byte{0}
	}
	addr := Address(Blake2b(nonceBytes, creator[:]))
	addr[0] = ContractPrefix
	return addr
}
