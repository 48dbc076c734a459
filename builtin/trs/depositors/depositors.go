// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package depositors

import (
	"github.com/pkg/errors"

	"github.com/vechain/trs/builtin/slots"
	"github.com/vechain/trs/thor"
)

// entry is the stored node of a depositor. Zero addresses stand for null links.
type entry struct {
	Prev  thor.Address
	Next  thor.Address
	Valid bool
}

// List is a doubly linked list of depositor addresses kept in contract storage.
// New depositors are inserted at the head.
type List struct {
	head    *slots.Address
	count   *slots.Uint64
	entries *slots.Mapping[thor.Address, *entry]
}

// New creates the list rooted at pos.
func New(sctx *slots.Context, pos thor.Bytes32) *List {
	return &List{
		head:    slots.NewAddress(sctx, thor.Blake2b(pos.Bytes(), []byte("head"))),
		count:   slots.NewUint64(sctx, thor.Blake2b(pos.Bytes(), []byte("count"))),
		entries: slots.NewMapping[thor.Address, *entry](sctx, pos),
	}
}

// AccountIsValid returns whether addr is currently in the list.
func (l *List) AccountIsValid(addr thor.Address) (bool, error) {
	e, err := l.entries.Get(addr)
	if err != nil {
		return false, err
	}
	return e.Valid, nil
}

// InsertHead puts addr at the head of the list. It's a no-op if addr is already listed.
func (l *List) InsertHead(addr thor.Address) error {
	if addr.IsZero() {
		return errors.New("depositors: zero address")
	}
	valid, err := l.AccountIsValid(addr)
	if err != nil || valid {
		return err
	}

	oldHead, err := l.head.Get()
	if err != nil {
		return err
	}
	if !oldHead.IsZero() {
		h, err := l.entries.Get(oldHead)
		if err != nil {
			return err
		}
		h.Prev = addr
		if err := l.entries.Set(oldHead, h); err != nil {
			return err
		}
	}
	if err := l.entries.Set(addr, &entry{Next: oldHead, Valid: true}); err != nil {
		return err
	}
	l.head.Set(addr)
	return l.addCount(1)
}

// Remove unlinks addr, repairing both neighbours.
// Removing an address that is not listed is an error.
func (l *List) Remove(addr thor.Address) error {
	e, err := l.entries.Get(addr)
	if err != nil {
		return err
	}
	if !e.Valid {
		return errors.Errorf("depositors: %v not in list", addr)
	}

	if e.Prev.IsZero() {
		l.head.Set(e.Next)
	} else {
		p, err := l.entries.Get(e.Prev)
		if err != nil {
			return err
		}
		p.Next = e.Next
		if err := l.entries.Set(e.Prev, p); err != nil {
			return err
		}
	}

	if !e.Next.IsZero() {
		n, err := l.entries.Get(e.Next)
		if err != nil {
			return err
		}
		n.Prev = e.Prev
		if err := l.entries.Set(e.Next, n); err != nil {
			return err
		}
	}

	l.entries.Delete(addr)
	return l.addCount(-1)
}

func (l *List) addCount(delta int64) error {
	n, err := l.count.Get()
	if err != nil {
		return err
	}
	l.count.Set(uint64(int64(n) + delta))
	return nil
}

// Head returns the head address, zero if the list is empty.
func (l *List) Head() (thor.Address, error) {
	return l.head.Get()
}

// Next returns the successor of addr, zero at the tail.
func (l *List) Next(addr thor.Address) (thor.Address, error) {
	e, err := l.entries.Get(addr)
	if err != nil {
		return thor.Address{}, err
	}
	return e.Next, nil
}

// Prev returns the predecessor of addr, zero at the head.
func (l *List) Prev(addr thor.Address) (thor.Address, error) {
	e, err := l.entries.Get(addr)
	if err != nil {
		return thor.Address{}, err
	}
	return e.Prev, nil
}

// Len returns the number of listed addresses.
func (l *List) Len() (uint64, error) {
	return l.count.Get()
}

// Iterate walks the list from the head. The successor is read before fn runs,
// so fn may remove the current address.
func (l *List) Iterate(fn func(addr thor.Address) error) error {
	ptr, err := l.head.Get()
	if err != nil {
		return err
	}
	for !ptr.IsZero() {
		next, err := l.Next(ptr)
		if err != nil {
			return err
		}
		if err := fn(ptr); err != nil {
			return err
		}
		ptr = next
	}
	return nil
}
