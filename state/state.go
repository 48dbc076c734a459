// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/trs/cache"
	"github.com/vechain/trs/kv"
	"github.com/vechain/trs/stackedmap"
	"github.com/vechain/trs/thor"
)

const (
	accountBucket = kv.Bucket("a")
	storageBucket = kv.Bucket("s")

	committedCacheSize = 8192
)

// ErrInsufficientBalance is returned when a debit exceeds the account balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

// State manages balances, nonces and contract storage rows on top of a kv store.
// Writes are journaled in memory and only reach the store on Commit.
type State struct {
	store kv.Store
	cache *cache.LRU[any, any] // committed values
	sm    *stackedmap.StackedMap[any, any]
}

// New create state object.
func New(store kv.Store) *State {
	c, _ := cache.NewLRU[any, any](committedCacheSize)
	s := &State{
		store: store,
		cache: c,
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(s.cacheGetter)
	s.sm.Push()
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (any, bool, error) {
	return s.loadCommitted(key)
}

func (s *State) loadCommitted(key any) (any, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, true, nil
	}
	var (
		v   any
		err error
	)
	switch k := key.(type) {
	case thor.Address:
		v, err = loadAccount(s.store, k)
	case storageKey:
		v, err = loadStorage(s.store, k.addr, k.key)
	default:
		panic(fmt.Errorf("unexpected key type %T", k))
	}
	if err != nil {
		return nil, false, err
	}
	s.cache.Add(key, v)
	return v, true, nil
}

func (s *State) getAccount(addr thor.Address) (*Account, error) {
	v, _, err := s.sm.Get(addr)
	if err != nil {
		return nil, err
	}
	return v.(*Account), nil
}

func (s *State) updateAccount(addr thor.Address, fn func(a *Account) error) error {
	acc, err := s.getAccount(addr)
	if err != nil {
		return &Error{err}
	}
	cpy := acc.copy()
	if err := fn(cpy); err != nil {
		return err
	}
	s.sm.Put(addr, cpy)
	return nil
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr thor.Address) (*big.Int, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return new(big.Int).Set(acc.Balance), nil
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr thor.Address, balance *big.Int) error {
	if balance.Sign() < 0 {
		return errors.Errorf("negative balance %v", balance)
	}
	return s.updateAccount(addr, func(a *Account) error {
		a.Balance = new(big.Int).Set(balance)
		return nil
	})
}

// AddBalance credits amount to the given address.
func (s *State) AddBalance(addr thor.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return s.SubBalance(addr, new(big.Int).Neg(amount))
	}
	return s.updateAccount(addr, func(a *Account) error {
		a.Balance.Add(a.Balance, amount)
		return nil
	})
}

// SubBalance debits amount from the given address.
// ErrInsufficientBalance is returned and nothing changes if the balance is too low.
func (s *State) SubBalance(addr thor.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return s.AddBalance(addr, new(big.Int).Neg(amount))
	}
	return s.updateAccount(addr, func(a *Account) error {
		if a.Balance.Cmp(amount) < 0 {
			return ErrInsufficientBalance
		}
		a.Balance.Sub(a.Balance, amount)
		return nil
	})
}

// Transfer moves amount from one address to another.
func (s *State) Transfer(from, to thor.Address, amount *big.Int) error {
	if err := s.SubBalance(from, amount); err != nil {
		return err
	}
	return s.AddBalance(to, amount)
}

// GetNonce returns the nonce of the given address.
func (s *State) GetNonce(addr thor.Address) (uint64, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return 0, &Error{err}
	}
	return acc.Nonce, nil
}

// SetNonce set nonce for the given address.
func (s *State) SetNonce(addr thor.Address, nonce uint64) error {
	return s.updateAccount(addr, func(a *Account) error {
		a.Nonce = nonce
		return nil
	})
}

// Exists returns whether an account exists at the given address.
// See Account.IsEmpty()
func (s *State) Exists(addr thor.Address) (bool, error) {
	acc, err := s.getAccount(addr)
	if err != nil {
		return false, &Error{err}
	}
	return !acc.IsEmpty(), nil
}

// GetStorage returns the raw storage row, nil if absent.
func (s *State) GetStorage(addr thor.Address, key thor.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v.([]byte), nil
}

// SetStorage sets the raw storage row. An empty value deletes the row.
func (s *State) SetStorage(addr thor.Address, key thor.Bytes32, value []byte) {
	s.sm.Put(storageKey{addr, key}, bytes.Clone(value))
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be passed through.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetStorage(addr, key)
	if err != nil {
		return err
	}
	return dec(raw)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 || revision > s.sm.Depth() {
		panic("invalid revision")
	}
	s.sm.PopTo(revision)
}

// stage returns the latest value of every entry changed since the last commit.
func (s *State) stage() (keys []any, values map[any]any) {
	values = make(map[any]any)
	s.sm.Journal(func(k, v any) bool {
		if _, ok := values[k]; !ok {
			keys = append(keys, k)
		}
		values[k] = v
		return true
	})
	return
}

// Commit writes all journaled changes into the store and clears the journal.
func (s *State) Commit() error {
	keys, values := s.stage()

	bulk := s.store.Bulk()
	var nAccounts, nRows int64
	for _, k := range keys {
		switch key := k.(type) {
		case thor.Address:
			if err := saveAccount(bulk, key, values[k].(*Account)); err != nil {
				return &Error{err}
			}
			nAccounts++
		case storageKey:
			if err := saveStorage(bulk, key.addr, key.key, values[k].([]byte)); err != nil {
				return &Error{err}
			}
			nRows++
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	for k, v := range values {
		s.cache.Add(k, v)
	}
	s.reset()

	metricCommittedEntries().AddWithLabel(nAccounts, map[string]string{"type": "account"})
	metricCommittedEntries().AddWithLabel(nRows, map[string]string{"type": "storage"})
	return nil
}

// IterateStorage calls fn on every committed storage row of addr.
func (s *State) IterateStorage(addr thor.Address, fn func(key thor.Bytes32, value []byte) bool) error {
	it := s.store.Iterate(storageBucket.Range(addr[:]))
	defer it.Release()

	prefix := len(storageBucket) + len(addr)
	for it.Next() {
		if !fn(thor.BytesToBytes32(it.Key()[prefix:]), bytes.Clone(it.Value())) {
			break
		}
	}
	if err := it.Error(); err != nil {
		return &Error{err}
	}
	return nil
}
