// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger stores non-negative integers of arbitrary precision across
// consecutive storage rows.
//
// The big endian magnitude is split into ChunkSize wide chunks, most significant
// first. The first row carries a one byte row count ahead of the first chunk,
// the remaining chunks occupy one row each. Zero is stored as no rows at all.
package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/trs/builtin/slots"
	"github.com/vechain/trs/thor"
)

// ChunkSize is the width in bytes of one chunk.
const ChunkSize = 32

const (
	MaxDepositRows = 16 // per depositor balances
	MaxTotalRows   = 64 // contract wide totals
)

var (
	ErrInsufficient = errors.New("ledger: insufficient balance")
	ErrTooLarge     = errors.New("ledger: value too large")
	ErrNegative     = errors.New("ledger: negative value")
)

type Ledger struct {
	context *slots.Context
	base    thor.Bytes32
	maxRows int
}

// New returns the ledger rooted at base. maxRows is capped at 255.
func New(context *slots.Context, base thor.Bytes32, maxRows int) *Ledger {
	return &Ledger{
		context: context,
		base:    base,
		maxRows: min(maxRows, 255),
	}
}

// MaxValue returns the largest value the ledger can hold.
func (l *Ledger) MaxValue() *big.Int {
	v := new(big.Int).Lsh(big.NewInt(1), uint(l.maxRows*ChunkSize*8))
	return v.Sub(v, big.NewInt(1))
}

func (l *Ledger) rowPos(i int) thor.Bytes32 {
	if i == 0 {
		return l.base
	}
	return thor.Blake2b(l.base.Bytes(), []byte{byte(i)})
}

func (l *Ledger) getRow(i int) ([]byte, error) {
	return l.context.State().GetStorage(l.context.Address(), l.rowPos(i))
}

func (l *Ledger) setRow(i int, data []byte) {
	l.context.State().SetStorage(l.context.Address(), l.rowPos(i), data)
}

// rows returns the number of rows in use and the header row.
func (l *Ledger) rows() (int, []byte, error) {
	head, err := l.getRow(0)
	if err != nil {
		return 0, nil, err
	}
	if len(head) == 0 {
		return 0, nil, nil
	}
	n := int(head[0])
	if len(head) != 1+ChunkSize || n == 0 || n > l.maxRows {
		return 0, nil, errors.Errorf("ledger: corrupted header %x", head)
	}
	return n, head, nil
}

// Exists returns whether the ledger holds a positive value.
func (l *Ledger) Exists() (bool, error) {
	n, _, err := l.rows()
	return n > 0, err
}

func (l *Ledger) Get() (*big.Int, error) {
	n, head, err := l.rows()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return new(big.Int), nil
	}
	buf := make([]byte, 0, n*ChunkSize)
	buf = append(buf, head[1:]...)
	for i := 1; i < n; i++ {
		row, err := l.getRow(i)
		if err != nil {
			return nil, err
		}
		if len(row) != ChunkSize {
			return nil, errors.Errorf("ledger: corrupted row %d", i)
		}
		buf = append(buf, row...)
	}
	return new(big.Int).SetBytes(buf), nil
}

func (l *Ledger) Set(v *big.Int) error {
	if v.Sign() < 0 {
		return ErrNegative
	}
	old, _, err := l.rows()
	if err != nil {
		return err
	}

	mag := v.Bytes()
	n := (len(mag) + ChunkSize - 1) / ChunkSize
	if n > l.maxRows {
		return ErrTooLarge
	}
	padded := make([]byte, n*ChunkSize)
	copy(padded[len(padded)-len(mag):], mag)

	for i := 0; i < n; i++ {
		chunk := padded[i*ChunkSize : (i+1)*ChunkSize]
		if i == 0 {
			chunk = append([]byte{byte(n)}, chunk...)
		}
		l.setRow(i, chunk)
	}
	// drop rows no longer covered
	for i := n; i < old; i++ {
		l.setRow(i, nil)
	}
	return nil
}

func (l *Ledger) Add(delta *big.Int) error {
	v, err := l.Get()
	if err != nil {
		return err
	}
	v.Add(v, delta)
	if v.Sign() < 0 {
		return ErrInsufficient
	}
	return l.Set(v)
}

// Sub fails with ErrInsufficient if delta exceeds the current value.
func (l *Ledger) Sub(delta *big.Int) error {
	return l.Add(new(big.Int).Neg(delta))
}
