// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package payout

import "github.com/vechain/trs/thor"

// Clock maps timestamps to withdrawal periods of a contract.
type Clock struct {
	Periods   uint16
	Length    uint64 // seconds per period
	CreatedAt uint64 // period zero reference
}

// NewClock returns the clock of a contract with the given terms.
func NewClock(periods uint16, test bool, createdAt uint64) Clock {
	length := thor.PeriodDuration
	if test {
		length = thor.TestPeriodDuration
	}
	return Clock{Periods: periods, Length: length, CreatedAt: createdAt}
}

// Period returns the period at now. Any time at or after creation is in
// period 1 at least, and the result never exceeds the number of periods.
func (c Clock) Period(now uint64) uint16 {
	if now < c.CreatedAt || c.Length == 0 {
		return 0
	}
	p := (now-c.CreatedAt)/c.Length + 1
	if p > uint64(c.Periods) {
		return c.Periods
	}
	return uint16(p)
}

// IsFinal returns whether period p is the last one.
func (c Clock) IsFinal(p uint16) bool {
	return p >= c.Periods
}
