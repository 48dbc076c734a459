// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"github.com/vechain/trs/thor"
	"github.com/vechain/trs/xenv"
)

// load returns the contract at addr and its terms, stopping the call if it does not exist.
func load(env *xenv.Environment, addr thor.Address) (*Contract, *Terms, error) {
	c := NewContract(addr, env.State())
	t, err := c.Terms()
	if err != nil {
		return nil, nil, err
	}
	env.Require(t != nil, "contract does not exist")
	return c, t, nil
}

// loadOwned is load restricted to the owner of the contract.
func loadOwned(env *xenv.Environment, addr thor.Address) (*Contract, *Terms, error) {
	c := NewContract(addr, env.State())
	owner, err := c.Owner()
	if err != nil {
		return nil, nil, err
	}
	env.Require(!owner.IsZero() && owner == env.Caller(), "caller is not the owner")
	t, err := c.Terms()
	if err != nil {
		return nil, nil, err
	}
	env.Require(t != nil, "contract does not exist")
	return c, t, nil
}

func create(env *xenv.Environment, op *Op) ([]byte, error) {
	caller := env.Caller()
	env.Require(!op.Terms.Test || caller == thor.FoundationAddress, "test contracts are reserved")

	st := env.State()
	nonce, err := st.GetNonce(caller)
	if err != nil {
		return nil, err
	}
	addr := thor.CreateContractAddress(caller, nonce)

	c := NewContract(addr, st)
	owner, err := c.Owner()
	if err != nil {
		return nil, err
	}
	if !owner.IsZero() {
		// already created under this nonce
		return addr.Bytes(), nil
	}

	c.owner.Set(caller)
	if err := c.setTerms(op.Terms); err != nil {
		return nil, err
	}
	c.createdAt.Set(env.BlockContext().Time)

	logger.Debug("contract created", "contract", addr, "owner", caller, "periods", op.Terms.Periods, "test", op.Terms.Test)
	return addr.Bytes(), nil
}

func lock(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := loadOwned(env, op.Contract)
	if err != nil {
		return nil, err
	}
	total, err := c.TotalDeposits()
	if err != nil {
		return nil, err
	}
	env.Require(total.Sign() > 0, "no deposits")

	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(s.acceptsDeposits(), "contract already locked")

	t.Locked = true
	return nil, c.setTerms(t)
}

func start(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := loadOwned(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(s.locked && !s.live && !s.open, "contract not startable")

	t.Live = true
	if err := c.setTerms(t); err != nil {
		return nil, err
	}
	return nil, c.freezeBonus()
}

func openFunds(env *xenv.Environment, op *Op) ([]byte, error) {
	c, t, err := loadOwned(env, op.Contract)
	if err != nil {
		return nil, err
	}
	s, err := c.status(t)
	if err != nil {
		return nil, err
	}
	env.Require(!s.live && !s.open, "contract not openable")

	c.fundsOpen.Set(true)
	return nil, c.freezeBonus()
}
