// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/builtin/trs/payout"
	"github.com/vechain/trs/thor"
)

// TermsSize is the size of the packed terms row.
//
//	[0,9)  special percent, right aligned
//	9      test flag
//	10     direct deposit flag
//	11     precision
//	[12,14) periods, big endian
//	14     locked flag
//	15     live flag
const TermsSize = 16

const (
	percentSize     = 9
	testOffset      = 9
	dirDepoOffset   = 10
	precisionOffset = 11
	periodsOffset   = 12
	lockOffset      = 14
	liveOffset      = 15
)

// Terms are the fixed parameters and lifecycle flags of a TRS contract.
type Terms struct {
	Test          bool
	DirectDeposit bool
	Periods       uint16
	Percent       *uint256.Int // special percentage scaled by 10^Precision
	Precision     uint8
	Locked        bool
	Live          bool
}

var u256Ten = uint256.NewInt(10)

// maxPercent returns 100 at the given precision.
func maxPercent(precision uint8) *uint256.Int {
	v := new(uint256.Int).Exp(u256Ten, uint256.NewInt(uint64(precision)))
	return v.Mul(v, uint256.NewInt(100))
}

func (t *Terms) validate() error {
	if t.Periods < 1 || t.Periods > thor.MaxPeriods {
		return reverts.Errorf(reverts.Malformed, "periods %d out of range", t.Periods)
	}
	if t.Precision > thor.MaxPrecision {
		return reverts.Errorf(reverts.Malformed, "precision %d out of range", t.Precision)
	}
	if t.Percent == nil || t.Percent.BitLen() > percentSize*8 || t.Percent.Cmp(maxPercent(t.Precision)) > 0 {
		return reverts.NewRequireError("percent out of range")
	}
	return nil
}

// SpecialPercent returns the special withdrawal percentage.
func (t *Terms) SpecialPercent() payout.Percent {
	return payout.Percent{Raw: t.Percent.ToBig(), Precision: t.Precision}
}

// PeriodLength returns the length in seconds of one period.
func (t *Terms) PeriodLength() uint64 {
	if t.Test {
		return thor.TestPeriodDuration
	}
	return thor.PeriodDuration
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// EncodeTerms packs terms into a row.
func EncodeTerms(t *Terms) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	row := make([]byte, TermsSize)
	copy(row[:percentSize], t.Percent.PaddedBytes(percentSize))
	row[testOffset] = flag(t.Test)
	row[dirDepoOffset] = flag(t.DirectDeposit)
	row[precisionOffset] = t.Precision
	binary.BigEndian.PutUint16(row[periodsOffset:], t.Periods)
	row[lockOffset] = flag(t.Locked)
	row[liveOffset] = flag(t.Live)
	return row, nil
}

// DecodeTerms unpacks a terms row. Unknown flag values and out of range fields are Malformed.
func DecodeTerms(row []byte) (*Terms, error) {
	if len(row) != TermsSize {
		return nil, reverts.Errorf(reverts.Malformed, "terms row size %d", len(row))
	}
	for _, off := range []int{testOffset, dirDepoOffset, lockOffset, liveOffset} {
		if row[off] > 1 {
			return nil, reverts.Errorf(reverts.Malformed, "terms flag %d = %d", off, row[off])
		}
	}
	t := &Terms{
		Test:          row[testOffset] == 1,
		DirectDeposit: row[dirDepoOffset] == 1,
		Periods:       binary.BigEndian.Uint16(row[periodsOffset:]),
		Percent:       new(uint256.Int).SetBytes(row[:percentSize]),
		Precision:     row[precisionOffset],
		Locked:        row[lockOffset] == 1,
		Live:          row[liveOffset] == 1,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}
