// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package payout computes what a depositor is owed and when.
//
// All divisions round toward negative infinity, so that the sum of the shares
// handed out never exceeds the pool they are taken from.
package payout

import (
	"math/big"
)

// Decimals is the number of fractional digits of exposed fractions.
const Decimals = 18

var (
	big100 = big.NewInt(100)

	// One is the fixed point representation of 1.
	One = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)
)

// Fraction returns d/total scaled by 10^18, truncated.
func Fraction(d, total *big.Int) *big.Int {
	if total.Sign() <= 0 {
		return new(big.Int)
	}
	f := new(big.Int).Mul(d, One)
	return f.Quo(f, total)
}

// Share returns floor(d*pool/total), the part of pool owed to a deposit d out of total.
func Share(d, total, pool *big.Int) *big.Int {
	if total.Sign() <= 0 {
		return new(big.Int)
	}
	s := new(big.Int).Mul(d, pool)
	return s.Quo(s, total)
}

// Percent is a decimal percentage carried as raw / 10^precision.
type Percent struct {
	Raw       *big.Int
	Precision uint8
}

// Of returns floor(v * percent / 100).
func (p Percent) Of(v *big.Int) *big.Int {
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(p.Precision)), nil)
	den.Mul(den, big100)
	n := new(big.Int).Mul(v, p.Raw)
	return n.Quo(n, den)
}

// Stats tracks the withdrawals of a depositor.
type Stats struct {
	Eligible   bool   // special amount not yet withdrawn
	LastPeriod uint16 // period of the latest withdrawal
	Done       bool   // owings fully withdrawn
}

// Schedule is the release plan of a single depositor.
type Schedule struct {
	Owings    *big.Int // deposit plus bonus share
	Special   *big.Int // one-off advance
	PerPeriod *big.Int
	Periods   uint16
}

// NewSchedule builds the schedule of deposit d out of total with the frozen bonus.
func NewSchedule(d, total, bonus *big.Int, special Percent, periods uint16) *Schedule {
	owings := new(big.Int).Add(d, Share(d, total, bonus))
	spec := special.Of(owings)

	per := new(big.Int).Sub(owings, spec)
	if periods > 0 {
		per.Quo(per, big.NewInt(int64(periods)))
	}
	return &Schedule{
		Owings:    owings,
		Special:   spec,
		PerPeriod: per,
		Periods:   periods,
	}
}

// Withdrawn returns the amount paid out through the last withdrawal.
func (s *Schedule) Withdrawn(stats Stats) *big.Int {
	w := new(big.Int).Mul(s.PerPeriod, big.NewInt(int64(stats.LastPeriod)))
	if !stats.Eligible {
		w.Add(w, s.Special)
	}
	return w
}

// Due returns the amount payable at period current. When settle is set, everything
// still owed is returned and the second value reports the schedule is complete.
func (s *Schedule) Due(stats Stats, current uint16, settle bool) (*big.Int, bool) {
	if stats.Done {
		return new(big.Int), true
	}
	if settle || current >= s.Periods {
		due := new(big.Int).Sub(s.Owings, s.Withdrawn(stats))
		if due.Sign() < 0 {
			due.SetInt64(0)
		}
		return due, true
	}

	due := new(big.Int)
	if current > stats.LastPeriod {
		due.Mul(s.PerPeriod, big.NewInt(int64(current-stats.LastPeriod)))
	}
	if stats.Eligible {
		due.Add(due, s.Special)
	}
	return due, false
}

// Available returns the part of the owings released through period current,
// scaled by 10^18. The special amount is included whether or not it was withdrawn.
func (s *Schedule) Available(current uint16) *big.Int {
	if current >= s.Periods {
		return new(big.Int).Set(One)
	}
	released := new(big.Int).Mul(s.PerPeriod, big.NewInt(int64(current)))
	released.Add(released, s.Special)
	return Fraction(released, s.Owings)
}

// ExtraDue returns the extra funds payable to deposit d out of total at period current.
// Extras accrue linearly over the periods; withdrawn is what was already claimed.
func ExtraDue(d, total, extra, withdrawn *big.Int, current, periods uint16, settle bool) *big.Int {
	share := Share(d, total, extra)
	if !settle && current < periods {
		share.Mul(share, big.NewInt(int64(current)))
		share.Quo(share, big.NewInt(int64(periods)))
	}
	share.Sub(share, withdrawn)
	if share.Sign() < 0 {
		share.SetInt64(0)
	}
	return share
}
