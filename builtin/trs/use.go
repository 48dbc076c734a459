// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"math/big"

	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/thor"
	"github.com/vechain/trs/xenv"
)

func requireBalance(env *xenv.Environment, addr thor.Address, amount *big.Int) error {
	balance, err := env.State().GetBalance(addr)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		env.Stop(reverts.Errorf(reverts.InsufficientBalance, "%v: balance below %v", addr, amount))
	}
	return nil
}

// depositFrom moves amount from payer into the contract on behalf of beneficiary.
func depositFrom(env *xenv.Environment, c *Contract, payer, beneficiary thor.Address, amount *big.Int) error {
	if err := requireBalance(env, payer, amount); err != nil {
		return err
	}
	if amount.Sign() == 0 {
		return nil
	}
	if err := c.credit(beneficiary, amount); err != nil {
		return err
	}
	return transfer(env.State(), payer, c.Address(), amount)
}

func deposit(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := load(env, op.Contract)
	if err != nil {
		return nil, err
	}
	caller := env.Caller()
	owner, err := c.Owner()
	if err != nil {
		return nil, err
	}
	env.Require(caller == owner || t.DirectDeposit, "direct deposits disabled")

	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(s.acceptsDeposits(), "deposits closed")
	env.Require(!caller.IsContract(), "contracts cannot deposit")

	return nil, depositFrom(env, c, caller, caller, op.Amount)
}

func depositFor(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := loadOwned(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(s.acceptsDeposits(), "deposits closed")
	if err := requireBalance(env, env.Caller(), op.Amount); err != nil {
		return nil, err
	}
	env.Require(op.Account.IsAccount(), "beneficiary is not an account")

	return nil, depositFrom(env, c, env.Caller(), op.Account, op.Amount)
}

func bulkDepositFor(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := loadOwned(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(s.acceptsDeposits(), "deposits closed")

	sum := new(big.Int)
	for _, tr := range op.Batch {
		env.Require(tr.Beneficiary.IsAccount(), "beneficiary is not an account")
		sum.Add(sum, tr.Amount)
	}
	owner := env.Caller()
	if err := requireBalance(env, owner, sum); err != nil {
		return nil, err
	}

	for _, tr := range op.Batch {
		if tr.Amount.Sign() == 0 {
			continue
		}
		if err := c.credit(tr.Beneficiary, tr.Amount); err != nil {
			return nil, err
		}
	}
	return nil, transfer(env.State(), owner, c.Address(), sum)
}

func withdraw(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := load(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(s.releasing(), "withdrawals not allowed")

	paid, err := makeWithdrawal(env, c, t, env.Caller())
	if err != nil {
		return nil, err
	}
	env.Require(paid, "nothing to withdraw")
	return nil, nil
}

func bulkWithdraw(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := loadOwned(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(s.releasing(), "withdrawals not allowed")

	var n int
	err = c.Depositors().Iterate(func(account thor.Address) error {
		paid, err := makeWithdrawal(env, c, t, account)
		if paid {
			n++
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("bulk withdrawal", "contract", c.Address(), "paid", n)
	return nil, nil
}

func refund(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := loadOwned(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(s.acceptsDeposits(), "refunds closed")

	dep := c.DepositOf(op.Account)
	balance, err := dep.Get()
	if err != nil {
		return nil, err
	}
	env.Require(balance.Sign() > 0, "account has no deposit")
	if balance.Cmp(op.Amount) < 0 {
		env.Stop(reverts.Errorf(reverts.InsufficientBalance, "refund of %v exceeds deposit", op.Amount))
	}
	if op.Amount.Sign() == 0 {
		return nil, nil
	}

	balance.Sub(balance, op.Amount)
	if err := dep.Set(balance); err != nil {
		return nil, ledgerError(err)
	}
	if err := c.total.Sub(op.Amount); err != nil {
		return nil, ledgerError(err)
	}
	if balance.Sign() == 0 {
		if err := c.Depositors().Remove(op.Account); err != nil {
			return nil, err
		}
	}
	return nil, transfer(env.State(), c.Address(), op.Account, op.Amount)
}

func addExtraFunds(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := loadOwned(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(!s.open, "funds already open")
	if err := requireBalance(env, env.Caller(), op.Amount); err != nil {
		return nil, err
	}
	if op.Amount.Sign() == 0 {
		return nil, nil
	}
	if err := c.extra.Add(op.Amount); err != nil {
		return nil, ledgerError(err)
	}
	return nil, transfer(env.State(), env.Caller(), c.Address(), op.Amount)
}
