// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"math/big"

	"github.com/vechain/trs/builtin/trs/payout"
	"github.com/vechain/trs/thor"
	"github.com/vechain/trs/xenv"
)

// makeWithdrawal pays account everything released up to the current period,
// extra funds included. It returns false, with nothing written, when there is
// nothing to pay.
func makeWithdrawal(env *xenv.Environment, c *Contract, t *Terms, account thor.Address) (bool, error) {
	open, err := c.IsOpen()
	if err != nil {
		return false, err
	}
	clock, err := c.Clock(t)
	if err != nil {
		return false, err
	}
	current := clock.Period(env.Chain().BestBlock().Timestamp)

	stats, err := c.StatsOf(account)
	if err != nil {
		return false, err
	}
	sched, err := c.ScheduleOf(account, t)
	if err != nil {
		return false, err
	}
	due, done := sched.Due(*stats, current, open)

	extras, err := extraDue(c, account, current, t.Periods, open || clock.IsFinal(current))
	if err != nil {
		return false, err
	}

	claimed := new(big.Int).Add(due, extras)
	if claimed.Sign() == 0 {
		return false, nil
	}
	if err := transfer(env.State(), c.Address(), account, claimed); err != nil {
		return false, err
	}
	if extras.Sign() > 0 {
		if err := c.ExtraWithdrawnOf(account).Add(extras); err != nil {
			return false, ledgerError(err)
		}
	}

	stats.LastPeriod = current
	stats.Eligible = false
	stats.Done = stats.Done || done
	if err := c.setStats(account, stats); err != nil {
		return false, err
	}

	logger.Trace("withdrawal", "contract", c.Address(), "account", account, "period", current, "amount", claimed)
	return true, nil
}

func extraDue(c *Contract, account thor.Address, current, periods uint16, settle bool) (*big.Int, error) {
	d, err := c.DepositOf(account).Get()
	if err != nil {
		return nil, err
	}
	total, err := c.TotalDeposits()
	if err != nil {
		return nil, err
	}
	extra, err := c.ExtraFunds()
	if err != nil {
		return nil, err
	}
	withdrawn, err := c.ExtraWithdrawnOf(account).Get()
	if err != nil {
		return nil, err
	}
	return payout.ExtraDue(d, total, extra, withdrawn, current, periods, settle), nil
}
