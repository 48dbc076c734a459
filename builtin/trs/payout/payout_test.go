// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package payout

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/trs/thor"
)

func assertBig(t *testing.T, want, got *big.Int) {
	t.Helper()
	assert.Equal(t, want.String(), got.String())
}

func TestClock(t *testing.T) {
	c := NewClock(4, false, 1000)
	assert.Equal(t, thor.PeriodDuration, c.Length)

	tests := []struct {
		now  uint64
		want uint16
	}{
		{0, 0},
		{999, 0},
		{1000, 1},
		{1000 + thor.PeriodDuration - 1, 1},
		{1000 + thor.PeriodDuration, 2},
		{1000 + 3*thor.PeriodDuration, 4},
		{1000 + 100*thor.PeriodDuration, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Period(tt.now), "now %d", tt.now)
	}
	assert.True(t, c.IsFinal(4))
	assert.False(t, c.IsFinal(3))

	test := NewClock(1200, true, 50)
	assert.Equal(t, uint16(11), test.Period(60))
	assert.Equal(t, uint16(1200), test.Period(1_000_000))
}

func TestFractionAndShare(t *testing.T) {
	assertBig(t, big.NewInt(333333333333333333), Fraction(big.NewInt(1), big.NewInt(3)))
	assertBig(t, One, Fraction(big.NewInt(7), big.NewInt(7)))
	assert.Zero(t, Fraction(big.NewInt(7), new(big.Int)).Sign())

	assertBig(t, big.NewInt(3), Share(big.NewInt(1), big.NewInt(3), big.NewInt(11)))
	assert.Zero(t, Share(big.NewInt(1), new(big.Int), big.NewInt(11)).Sign())
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		raw       int64
		precision uint8
		v         int64
		want      int64
	}{
		{0, 0, 1000, 0},
		{100, 0, 1000, 1000},
		{125, 1, 1000, 125},
		{1, 18, 1000, 0},
		{33, 0, 10, 3},
	}
	for _, tt := range tests {
		p := Percent{Raw: big.NewInt(tt.raw), Precision: tt.precision}
		assertBig(t, big.NewInt(tt.want), p.Of(big.NewInt(tt.v)))
	}
}

func TestScheduleDue(t *testing.T) {
	// 1000 deposited out of 2000, bonus 200, 10% special, 4 periods
	s := NewSchedule(big.NewInt(1000), big.NewInt(2000), big.NewInt(200), Percent{Raw: big.NewInt(10)}, 4)
	assertBig(t, big.NewInt(1100), s.Owings)
	assertBig(t, big.NewInt(110), s.Special)
	assertBig(t, big.NewInt(247), s.PerPeriod)

	stats := Stats{Eligible: true}

	due, done := s.Due(stats, 1, false)
	assertBig(t, big.NewInt(247+110), due)
	assert.False(t, done)

	stats = Stats{LastPeriod: 1}
	due, _ = s.Due(stats, 1, false)
	assert.Zero(t, due.Sign())

	due, _ = s.Due(stats, 3, false)
	assertBig(t, big.NewInt(2*247), due)

	// final period pays the exact remainder, dust included
	stats = Stats{LastPeriod: 3}
	due, done = s.Due(stats, 4, false)
	assertBig(t, big.NewInt(1100-3*247-110), due)
	assert.True(t, done)

	// settling pays everything at once
	due, done = s.Due(Stats{Eligible: true}, 0, true)
	assertBig(t, big.NewInt(1100), due)
	assert.True(t, done)

	due, done = s.Due(Stats{Done: true}, 4, false)
	assert.Zero(t, due.Sign())
	assert.True(t, done)
}

func TestAvailable(t *testing.T) {
	s := NewSchedule(big.NewInt(100), big.NewInt(100), new(big.Int), Percent{Raw: big.NewInt(10)}, 3)
	// special 10, per period 30
	assertBig(t, Fraction(big.NewInt(10), big.NewInt(100)), s.Available(0))
	assertBig(t, Fraction(big.NewInt(70), big.NewInt(100)), s.Available(2))
	assertBig(t, One, s.Available(3))

	empty := NewSchedule(new(big.Int), big.NewInt(100), new(big.Int), Percent{Raw: new(big.Int)}, 3)
	assert.Zero(t, empty.Available(1).Sign())
}

func TestExtraDue(t *testing.T) {
	d, total, extra := big.NewInt(1), big.NewInt(4), big.NewInt(400)

	// share 100 over 4 periods
	assertBig(t, big.NewInt(50), ExtraDue(d, total, extra, new(big.Int), 2, 4, false))
	assertBig(t, big.NewInt(25), ExtraDue(d, total, extra, big.NewInt(50), 3, 4, false))
	assertBig(t, big.NewInt(25), ExtraDue(d, total, extra, big.NewInt(75), 4, 4, false))
	assertBig(t, big.NewInt(100), ExtraDue(d, total, extra, new(big.Int), 1, 4, true))
	// never negative
	assert.Zero(t, ExtraDue(d, total, extra, big.NewInt(80), 3, 4, false).Sign())
}

func TestSkewedDeposits(t *testing.T) {
	d1 := big.NewInt(1)
	d2 := new(big.Int).Lsh(big.NewInt(1), 317)
	total := new(big.Int).Add(d1, d2)

	for _, bonus := range []*big.Int{
		new(big.Int).Set(total),
		new(big.Int).Sub(total, big.NewInt(1)),
	} {
		s1 := NewSchedule(d1, total, bonus, Percent{Raw: new(big.Int)}, 1)
		s2 := NewSchedule(d2, total, bonus, Percent{Raw: new(big.Int)}, 1)

		shares := new(big.Int).Sub(s1.Owings, d1)
		shares.Add(shares, new(big.Int).Sub(s2.Owings, d2))

		assert.True(t, shares.Cmp(bonus) <= 0)
		assert.True(t, shares.Cmp(new(big.Int).Sub(bonus, big.NewInt(2))) >= 0)
		assert.True(t, s1.Owings.Cmp(d1) >= 0)
		assert.True(t, s2.Owings.Cmp(d2) >= 0)
	}

	// with the whole sum as bonus the smallest depositor doubles
	s1 := NewSchedule(d1, total, total, Percent{Raw: new(big.Int)}, 1)
	assertBig(t, big.NewInt(2), s1.Owings)
}

type payoutCase struct {
	Deposits  [][]byte
	Bonus     []byte
	Extra     []byte
	Percent   uint8
	Precision uint8
	Periods   uint8
	Steps     []uint8
	Settle    bool
}

// simulate pays every depositor out over the given steps and returns the totals.
func simulate(c *payoutCase) (deposits []*big.Int, paid []*big.Int, pool *big.Int) {
	total := new(big.Int)
	for _, raw := range c.Deposits {
		d := new(big.Int).SetBytes(raw)
		d.Add(d, big.NewInt(1))
		deposits = append(deposits, d)
		total.Add(total, d)
	}
	bonus := new(big.Int).SetBytes(c.Bonus)
	extra := new(big.Int).SetBytes(c.Extra)
	periods := uint16(c.Periods%60) + 1
	precision := c.Precision % 19
	raw := new(big.Int).Mul(big.NewInt(int64(c.Percent%101)), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil))
	percent := Percent{Raw: raw, Precision: precision}

	pool = new(big.Int).Add(total, bonus)
	pool.Add(pool, extra)

	for _, d := range deposits {
		s := NewSchedule(d, total, bonus, percent, periods)
		stats := Stats{Eligible: true}
		withdrawnExtra := new(big.Int)
		sum := new(big.Int)

		// walk forward through the steps, then finish at the final period
		var current uint16
		points := append([]uint8(nil), c.Steps...)
		points = append(points, 255)
		for _, step := range points {
			current = min(current+uint16(step%8), periods)
			if step == 255 {
				current = periods
			}
			settle := c.Settle || current >= periods
			amount, done := s.Due(stats, current, c.Settle)
			extras := ExtraDue(d, total, extra, withdrawnExtra, current, periods, settle)

			claimed := new(big.Int).Add(amount, extras)
			if claimed.Sign() > 0 {
				sum.Add(sum, claimed)
				withdrawnExtra.Add(withdrawnExtra, extras)
				stats.LastPeriod = current
				stats.Eligible = false
				stats.Done = stats.Done || done
			}
		}
		paid = append(paid, sum)
	}
	return
}

func TestNoLoss(t *testing.T) {
	f := fuzz.NewWithSeed(7).NilChance(0).Funcs(
		func(c *payoutCase, cf fuzz.Continue) {
			c.Deposits = make([][]byte, cf.Intn(6)+1)
			for i := range c.Deposits {
				c.Deposits[i] = make([]byte, cf.Intn(48))
				cf.Read(c.Deposits[i])
			}
			c.Bonus = make([]byte, cf.Intn(48))
			cf.Read(c.Bonus)
			c.Extra = make([]byte, cf.Intn(48))
			cf.Read(c.Extra)
			cf.Fuzz(&c.Percent)
			cf.Fuzz(&c.Precision)
			cf.Fuzz(&c.Periods)
			c.Steps = make([]uint8, cf.Intn(10))
			for i := range c.Steps {
				c.Steps[i] = uint8(cf.Intn(8))
			}
			c.Settle = cf.RandBool()
		},
	)

	for i := 0; i < 300; i++ {
		var c payoutCase
		f.Fuzz(&c)

		deposits, paid, pool := simulate(&c)
		sum := new(big.Int)
		for i := range deposits {
			require.True(t, paid[i].Cmp(deposits[i]) >= 0, "depositor %d paid %v < deposit %v", i, paid[i], deposits[i])
			sum.Add(sum, paid[i])
		}
		require.True(t, sum.Cmp(pool) <= 0, "paid %v > pool %v", sum, pool)
	}
}
