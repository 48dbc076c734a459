// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slots

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/trs/thor"
)

// Row is a single storage row holding raw bytes. An absent row reads as nil.
type Row struct {
	context *Context
	pos     thor.Bytes32
}

func NewRow(context *Context, pos thor.Bytes32) *Row {
	return &Row{context: context, pos: pos}
}

func (r *Row) Pos() thor.Bytes32 {
	return r.pos
}

func (r *Row) Get() ([]byte, error) {
	return r.context.state.GetStorage(r.context.address, r.pos)
}

// Set writes the row, nil or empty value deletes it.
func (r *Row) Set(value []byte) {
	r.context.state.SetStorage(r.context.address, r.pos, value)
}

func (r *Row) Exists() (bool, error) {
	raw, err := r.Get()
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

// Address is a row holding a 32-byte address; zero address means absent.
type Address struct {
	row Row
}

func NewAddress(context *Context, pos thor.Bytes32) *Address {
	return &Address{Row{context, pos}}
}

func (a *Address) Get() (thor.Address, error) {
	raw, err := a.row.Get()
	if err != nil {
		return thor.Address{}, err
	}
	if len(raw) == 0 {
		return thor.Address{}, nil
	}
	if len(raw) != thor.AddressLength {
		return thor.Address{}, errors.Errorf("address row: unexpected length %d", len(raw))
	}
	return thor.BytesToAddress(raw), nil
}

func (a *Address) Set(addr thor.Address) {
	if addr.IsZero() {
		a.row.Set(nil)
		return
	}
	a.row.Set(addr.Bytes())
}

// Uint64 is a row holding an 8-byte big endian integer; zero is stored as absence.
type Uint64 struct {
	row Row
}

func NewUint64(context *Context, pos thor.Bytes32) *Uint64 {
	return &Uint64{Row{context, pos}}
}

func (u *Uint64) Get() (uint64, error) {
	raw, err := u.row.Get()
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Errorf("uint64 row: unexpected length %d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

func (u *Uint64) Set(v uint64) {
	if v == 0 {
		u.row.Set(nil)
		return
	}
	u.row.Set(binary.BigEndian.AppendUint64(nil, v))
}

// Bool is a single byte flag row.
type Bool struct {
	row Row
}

func NewBool(context *Context, pos thor.Bytes32) *Bool {
	return &Bool{Row{context, pos}}
}

func (b *Bool) Get() (bool, error) {
	raw, err := b.row.Get()
	if err != nil {
		return false, err
	}
	switch {
	case len(raw) == 0:
		return false, nil
	case len(raw) == 1 && raw[0] == 1:
		return true, nil
	default:
		return false, errors.Errorf("bool row: unexpected value %x", raw)
	}
}

func (b *Bool) Set(v bool) {
	if v {
		b.row.Set([]byte{1})
	} else {
		b.row.Set(nil)
	}
}
