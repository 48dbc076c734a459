// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"encoding/binary"
	"math"

	"github.com/vechain/trs/builtin/trs/payout"
	"github.com/vechain/trs/xenv"
)

func boolResult(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

func periodResult(p uint16) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(p))
	return b[:]
}

// statusOf answers flag queries. A missing contract reads as all flags clear.
func statusOf(env *xenv.Environment, op *Op, fn func(t *Terms, s status) bool) ([]byte, error) {
	c := NewContract(op.Contract, env.State())
	t, err := c.Terms()
	if err != nil || t == nil {
		return boolResult(false), err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	return boolResult(fn(t, s)), nil
}

func isLive(env *xenv.Environment, op *Op) ([]byte, error) {
	return statusOf(env, op, func(_ *Terms, s status) bool { return s.live })
}

func isLocked(env *xenv.Environment, op *Op) ([]byte, error) {
	return statusOf(env, op, func(_ *Terms, s status) bool { return s.locked })
}

func isDirDepoEnabled(env *xenv.Environment, op *Op) ([]byte, error) {
	return statusOf(env, op, func(t *Terms, s status) bool { return t.DirectDeposit && !s.open })
}

// periodAtTime resolves the period of a live contract, 0 if not live.
func periodAtTime(c *Contract, t *Terms, s status, ts uint64) ([]byte, error) {
	if !s.live {
		return periodResult(0), nil
	}
	clock, err := c.Clock(t)
	if err != nil {
		return nil, err
	}
	return periodResult(clock.Period(ts)), nil
}

func period(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := load(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	return periodAtTime(c, t, s, env.Chain().BestBlock().Timestamp)
}

func periodAt(env *xenv.Environment, op *Op) ([]byte, error) {
	env.Require(op.Number > 0 && op.Number <= math.MaxInt64, "invalid block number")
	c, t, err := load(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	if !s.live {
		return periodResult(0), nil
	}
	blk, err := env.Chain().GetBlock(op.Number)
	if err != nil {
		if env.Chain().IsNotFound(err) {
			env.Require(false, "block not found")
		}
		return nil, err
	}
	return periodAtTime(c, t, s, blk.Timestamp)
}

// availableForWithdrawalAt reports the fraction of the caller's owings
// released at the given time, scaled by 10^18.
func availableForWithdrawalAt(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := load(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	if s.open {
		return payout.One.Bytes(), nil
	}
	env.Require(s.live, "contract is not live")

	clock, err := c.Clock(t)
	if err != nil {
		return nil, err
	}
	current := clock.Period(op.Time)
	if clock.IsFinal(current) {
		return payout.One.Bytes(), nil
	}
	if op.Time < clock.CreatedAt {
		return []byte{0}, nil
	}

	sched, err := c.ScheduleOf(env.Caller(), t)
	if err != nil {
		return nil, err
	}
	avail := sched.Available(current)
	if avail.Sign() == 0 {
		return []byte{0}, nil
	}
	return avail.Bytes(), nil
}
