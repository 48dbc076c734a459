// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/trs/kv"
	"github.com/vechain/trs/thor"
)

// Account is the persisted form of an address' native fields.
type Account struct {
	Balance *big.Int
	Nonce   uint64
}

// IsEmpty returns if an account is empty.
// An empty account has zero balance and zero nonce.
func (a *Account) IsEmpty() bool {
	return a.Balance.Sign() == 0 && a.Nonce == 0
}

func emptyAccount() *Account {
	return &Account{Balance: &big.Int{}}
}

func (a *Account) copy() *Account {
	return &Account{
		Balance: new(big.Int).Set(a.Balance),
		Nonce:   a.Nonce,
	}
}

// loadAccount load an account object by address from the store.
// If the given address not found, return an empty account.
func loadAccount(src kv.Getter, addr thor.Address) (*Account, error) {
	data, err := accountBucket.Get(src, addr[:])
	if err != nil {
		if src.IsNotFound(err) {
			return emptyAccount(), nil
		}
		return nil, err
	}
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	if a.Balance == nil {
		a.Balance = &big.Int{}
	}
	return &a, nil
}

// saveAccount writes the account into dst, or removes it if empty.
func saveAccount(dst kv.Putter, addr thor.Address, a *Account) error {
	if a.IsEmpty() {
		return accountBucket.Delete(dst, addr[:])
	}
	data, err := rlp.EncodeToBytes(a)
	if err != nil {
		return err
	}
	return accountBucket.Put(dst, data, addr[:])
}

func loadStorage(src kv.Getter, addr thor.Address, key thor.Bytes32) ([]byte, error) {
	data, err := storageBucket.Get(src, addr[:], key[:])
	if err != nil {
		if src.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func saveStorage(dst kv.Putter, addr thor.Address, key thor.Bytes32, data []byte) error {
	if len(data) == 0 {
		return storageBucket.Delete(dst, addr[:], key[:])
	}
	return storageBucket.Put(dst, data, addr[:], key[:])
}
