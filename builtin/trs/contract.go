// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/builtin/slots"
	"github.com/vechain/trs/builtin/trs/depositors"
	"github.com/vechain/trs/builtin/trs/ledger"
	"github.com/vechain/trs/builtin/trs/payout"
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
)

var (
	ownerPos          = slots.Position("owner")
	termsPos          = slots.Position("terms")
	fundsOpenPos      = slots.Position("funds-open")
	createdAtPos      = slots.Position("created-at")
	totalPos          = slots.Position("total-deposits")
	bonusPos          = slots.Position("bonus")
	extraPos          = slots.Position("extra-funds")
	depositorsPos     = slots.Position("depositors")
	statsPos          = slots.Position("withdrawal-stats")
	depositPrefix     = "deposit"
	extraWithdrawnTag = "extra-withdrawn"
)

// Contract is the storage view of one TRS contract. Everything lives in the
// storage of the contract address itself.
type Contract struct {
	addr  thor.Address
	sctx  *slots.Context
	owner *slots.Address
	terms *slots.Row

	fundsOpen *slots.Bool
	createdAt *slots.Uint64

	total *ledger.Ledger
	bonus *ledger.Ledger
	extra *ledger.Ledger

	depositors *depositors.List
	stats      *slots.Mapping[thor.Address, *payout.Stats]
}

// NewContract binds the contract at addr.
func NewContract(addr thor.Address, st *state.State) *Contract {
	sctx := slots.NewContext(addr, st)
	return &Contract{
		addr:       addr,
		sctx:       sctx,
		owner:      slots.NewAddress(sctx, ownerPos),
		terms:      slots.NewRow(sctx, termsPos),
		fundsOpen:  slots.NewBool(sctx, fundsOpenPos),
		createdAt:  slots.NewUint64(sctx, createdAtPos),
		total:      ledger.New(sctx, totalPos, ledger.MaxTotalRows),
		bonus:      ledger.New(sctx, bonusPos, ledger.MaxTotalRows),
		extra:      ledger.New(sctx, extraPos, ledger.MaxTotalRows),
		depositors: depositors.New(sctx, depositorsPos),
		stats:      slots.NewMapping[thor.Address, *payout.Stats](sctx, statsPos),
	}
}

func (c *Contract) Address() thor.Address { return c.addr }

func (c *Contract) state() *state.State { return c.sctx.State() }

// Owner returns the owner, zero if the contract does not exist.
func (c *Contract) Owner() (thor.Address, error) {
	return c.owner.Get()
}

// Terms returns the terms, nil if the contract does not exist.
func (c *Contract) Terms() (*Terms, error) {
	row, err := c.terms.Get()
	if err != nil || len(row) == 0 {
		return nil, err
	}
	return DecodeTerms(row)
}

func (c *Contract) setTerms(t *Terms) error {
	row, err := EncodeTerms(t)
	if err != nil {
		return err
	}
	c.terms.Set(row)
	return nil
}

func (c *Contract) IsOpen() (bool, error) {
	return c.fundsOpen.Get()
}

func (c *Contract) CreatedAt() (uint64, error) {
	return c.createdAt.Get()
}

// Clock returns the period clock of the contract.
func (c *Contract) Clock(t *Terms) (payout.Clock, error) {
	createdAt, err := c.CreatedAt()
	if err != nil {
		return payout.Clock{}, err
	}
	return payout.NewClock(t.Periods, t.Test, createdAt), nil
}

// TotalDeposits returns the sum of all deposits.
func (c *Contract) TotalDeposits() (*big.Int, error) { return c.total.Get() }

// Bonus returns the frozen bonus pool.
func (c *Contract) Bonus() (*big.Int, error) { return c.bonus.Get() }

// ExtraFunds returns the owner top ups.
func (c *Contract) ExtraFunds() (*big.Int, error) { return c.extra.Get() }

// Depositors returns the depositor list.
func (c *Contract) Depositors() *depositors.List { return c.depositors }

// DepositOf returns the deposit ledger of account.
func (c *Contract) DepositOf(account thor.Address) *ledger.Ledger {
	return ledger.New(c.sctx, slots.Position(depositPrefix, account.Bytes()), ledger.MaxDepositRows)
}

// ExtraWithdrawnOf returns the ledger of extra funds account already withdrew.
func (c *Contract) ExtraWithdrawnOf(account thor.Address) *ledger.Ledger {
	return ledger.New(c.sctx, slots.Position(extraWithdrawnTag, account.Bytes()), ledger.MaxTotalRows)
}

// StatsOf returns the withdrawal stats of account.
func (c *Contract) StatsOf(account thor.Address) (*payout.Stats, error) {
	return c.stats.Get(account)
}

func (c *Contract) setStats(account thor.Address, s *payout.Stats) error {
	return c.stats.Set(account, s)
}

// ScheduleOf returns the release schedule of account.
func (c *Contract) ScheduleOf(account thor.Address, t *Terms) (*payout.Schedule, error) {
	d, err := c.DepositOf(account).Get()
	if err != nil {
		return nil, err
	}
	total, err := c.total.Get()
	if err != nil {
		return nil, err
	}
	bonus, err := c.bonus.Get()
	if err != nil {
		return nil, err
	}
	return payout.NewSchedule(d, total, bonus, t.SpecialPercent(), t.Periods), nil
}

// freezeBonus records the balance held beyond deposits and extra funds as the bonus pool.
func (c *Contract) freezeBonus() error {
	balance, err := c.state().GetBalance(c.addr)
	if err != nil {
		return err
	}
	total, err := c.total.Get()
	if err != nil {
		return err
	}
	extra, err := c.extra.Get()
	if err != nil {
		return err
	}
	bonus := balance.Sub(balance, total)
	bonus.Sub(bonus, extra)
	if bonus.Sign() < 0 {
		bonus.SetInt64(0)
	}
	return c.bonus.Set(bonus)
}

// status is the effective lifecycle of a contract. Opened funds mask the lock
// and live flags kept in the terms row.
type status struct {
	locked bool
	live   bool
	open   bool
}

// acceptsDeposits reports whether deposits and refunds are still allowed.
func (s status) acceptsDeposits() bool {
	return !s.locked && !s.live && !s.open
}

// releasing reports whether withdrawals are allowed.
func (s status) releasing() bool {
	return (s.locked && s.live) || s.open
}

func (c *Contract) status(t *Terms) (status, error) {
	open, err := c.IsOpen()
	if err != nil {
		return status{}, err
	}
	return status{
		locked: t.Locked && !open,
		live:   t.Live && !open,
		open:   open,
	}, nil
}

// credit books amount to the deposit of account and enrolls account on its
// first deposit. No value moves.
func (c *Contract) credit(account thor.Address, amount *big.Int) error {
	enrolled, err := c.depositors.AccountIsValid(account)
	if err != nil {
		return err
	}
	if err := c.DepositOf(account).Add(amount); err != nil {
		return ledgerError(err)
	}
	if !enrolled {
		if err := c.depositors.InsertHead(account); err != nil {
			return err
		}
		if err := c.setStats(account, &payout.Stats{Eligible: true}); err != nil {
			return err
		}
		if err := c.ExtraWithdrawnOf(account).Set(new(big.Int)); err != nil {
			return err
		}
	}
	return ledgerError(c.total.Add(amount))
}

// ledgerError turns arithmetic failures of a ledger into Malformed reverts.
func ledgerError(err error) error {
	if errors.Is(err, ledger.ErrTooLarge) || errors.Is(err, ledger.ErrInsufficient) || errors.Is(err, ledger.ErrNegative) {
		return reverts.New(reverts.Malformed, err.Error())
	}
	return err
}

// transfer moves value, a short balance reverts as InsufficientBalance.
func transfer(st *state.State, from, to thor.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if err := st.Transfer(from, to, amount); err != nil {
		if errors.Is(err, state.ErrInsufficientBalance) {
			return reverts.Errorf(reverts.InsufficientBalance, "%v: insufficient balance", from)
		}
		return err
	}
	return nil
}
