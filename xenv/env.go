// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/chain"
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
)

// BlockContext block context.
type BlockContext struct {
	Number uint64
	Time   uint64
}

type vmError struct {
	cause error
}

// Environment an env to execute native method.
type Environment struct {
	state    *state.State
	chain    chain.Reader
	blockCtx *BlockContext
	caller   thor.Address
	to       thor.Address
	input    []byte
	energy   uint64
}

// New create a new env.
func New(
	state *state.State,
	chain chain.Reader,
	blockCtx *BlockContext,
	caller thor.Address,
	to thor.Address,
	input []byte,
	energy uint64,
) *Environment {
	return &Environment{
		state:    state,
		chain:    chain,
		blockCtx: blockCtx,
		caller:   caller,
		to:       to,
		input:    input,
		energy:   energy,
	}
}

func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) Chain() chain.Reader         { return env.chain }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() thor.Address        { return env.caller }
func (env *Environment) To() thor.Address            { return env.to }
func (env *Environment) Input() []byte               { return env.input }
func (env *Environment) Energy() uint64              { return env.energy }

// UseEnergy charges e from the remaining energy, stops the call if not enough.
func (env *Environment) UseEnergy(e uint64) {
	if env.energy < e {
		env.energy = 0
		panic(&vmError{reverts.Errorf(reverts.OutOfEnergy, "out of energy: need %d", e)})
	}
	env.energy -= e
}

// Require stops the call as Malformed unless cond holds.
func (env *Environment) Require(cond bool, message string) {
	if !cond {
		panic(&vmError{reverts.NewRequireError(message)})
	}
}

// Stop aborts the call with the given error.
func (env *Environment) Stop(err error) {
	panic(&vmError{err})
}

// Call wraps proc so that stops raised inside it are returned as errors.
func (env *Environment) Call(proc func(env *Environment) ([]byte, error)) func() ([]byte, error) {
	return func() (data []byte, err error) {
		defer func() {
			if e := recover(); e != nil {
				if rec, ok := e.(*vmError); ok {
					data, err = nil, rec.cause
				} else {
					panic(e)
				}
			}
		}()
		return proc(env)
	}
}
