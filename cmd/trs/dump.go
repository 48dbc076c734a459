// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/trs/builtin/trs"
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
)

type termsDump struct {
	Test           bool   `json:"test"`
	DirectDeposit  bool   `json:"directDeposit"`
	Periods        uint16 `json:"periods"`
	SpecialPercent string `json:"specialPercent"`
	Precision      uint8  `json:"precision"`
	Locked         bool   `json:"locked"`
	Live           bool   `json:"live"`
}

type depositorDump struct {
	Address        thor.Address `json:"address"`
	Deposit        *big.Int     `json:"deposit"`
	ExtraWithdrawn *big.Int     `json:"extraWithdrawn"`
	Eligible       bool         `json:"eligible"`
	LastPeriod     uint16       `json:"lastPeriod"`
	Done           bool         `json:"done"`
}

type contractDump struct {
	Address    thor.Address     `json:"address"`
	Owner      thor.Address     `json:"owner"`
	Terms      termsDump        `json:"terms"`
	FundsOpen  bool             `json:"fundsOpen"`
	CreatedAt  uint64           `json:"createdAt"`
	Balance    *big.Int         `json:"balance"`
	Total      *big.Int         `json:"totalDeposits"`
	Bonus      *big.Int         `json:"bonus"`
	ExtraFunds *big.Int         `json:"extraFunds"`
	Depositors []*depositorDump `json:"depositors"`
}

// dumpContract collects the storage of the TRS contract at addr.
func dumpContract(st *state.State, addr thor.Address) (*contractDump, error) {
	c := trs.NewContract(addr, st)
	t, err := c.Terms()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.Errorf("no contract at %v", addr)
	}

	d := &contractDump{
		Address: addr,
		Terms: termsDump{
			Test:           t.Test,
			DirectDeposit:  t.DirectDeposit,
			Periods:        t.Periods,
			SpecialPercent: t.Percent.Dec(),
			Precision:      t.Precision,
			Locked:         t.Locked,
			Live:           t.Live,
		},
		Depositors: []*depositorDump{},
	}
	if d.Owner, err = c.Owner(); err != nil {
		return nil, err
	}
	if d.FundsOpen, err = c.IsOpen(); err != nil {
		return nil, err
	}
	if d.CreatedAt, err = c.CreatedAt(); err != nil {
		return nil, err
	}
	if d.Balance, err = st.GetBalance(addr); err != nil {
		return nil, err
	}
	if d.Total, err = c.TotalDeposits(); err != nil {
		return nil, err
	}
	if d.Bonus, err = c.Bonus(); err != nil {
		return nil, err
	}
	if d.ExtraFunds, err = c.ExtraFunds(); err != nil {
		return nil, err
	}

	err = c.Depositors().Iterate(func(account thor.Address) error {
		var err error
		entry := &depositorDump{Address: account}
		if entry.Deposit, err = c.DepositOf(account).Get(); err != nil {
			return err
		}
		if entry.ExtraWithdrawn, err = c.ExtraWithdrawnOf(account).Get(); err != nil {
			return err
		}
		stats, err := c.StatsOf(account)
		if err != nil {
			return err
		}
		if stats != nil {
			entry.Eligible = stats.Eligible
			entry.LastPeriod = stats.LastPeriod
			entry.Done = stats.Done
		}
		d.Depositors = append(d.Depositors, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}
