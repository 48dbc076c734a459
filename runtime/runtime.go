// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/trs/builtin"
	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/builtin/trs"
	"github.com/vechain/trs/chain"
	"github.com/vechain/trs/kv"
	"github.com/vechain/trs/log"
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
	"github.com/vechain/trs/xenv"
)

var logger = log.WithContext("pkg", "runtime")

// Clause is a single call to a builtin contract.
type Clause struct {
	Caller thor.Address
	To     thor.Address
	Data   []byte
	Energy uint64
}

// Receipt is the outcome of an executed clause.
type Receipt struct {
	Output *trs.Output
	Block  *chain.Block // block the clause executed against
	Nonce  uint64       // caller nonce before execution
}

// Reverted reports whether the clause reverted.
func (r *Receipt) Reverted() bool {
	return r.Output.Code != reverts.Success
}

// Runtime executes clauses on top of the committed state.
//
// It's thread-safe. Executions are serialized, calls only read.
type Runtime struct {
	repo  *chain.Repository
	store kv.Store
	lock  sync.Mutex
}

// New create a Runtime object.
func New(repo *chain.Repository, store kv.Store) *Runtime {
	return &Runtime{
		repo:  repo,
		store: store,
	}
}

func (rt *Runtime) Repo() *chain.Repository { return rt.repo }

// State returns a fresh view of the committed state.
func (rt *Runtime) State() *state.State {
	return state.New(rt.store)
}

func (rt *Runtime) run(st *state.State, best *chain.Block, clause *Clause) (*trs.Output, error) {
	return builtin.Call(
		st,
		rt.repo,
		&xenv.BlockContext{Number: best.Number, Time: best.Timestamp},
		clause.Caller,
		clause.To,
		clause.Data,
		clause.Energy,
	)
}

// Call simulates clause at the best block. Nothing is written.
func (rt *Runtime) Call(clause *Clause) (*trs.Output, error) {
	return rt.run(rt.State(), rt.repo.BestBlock(), clause)
}

// Execute runs clause at the best block and commits its effects. The caller
// nonce is bumped whether or not the clause reverted.
func (rt *Runtime) Execute(clause *Clause) (*Receipt, error) {
	if clause.Caller.IsZero() {
		return nil, errors.New("zero caller")
	}

	rt.lock.Lock()
	defer rt.lock.Unlock()

	st := rt.State()
	nonce, err := st.GetNonce(clause.Caller)
	if err != nil {
		return nil, err
	}
	best := rt.repo.BestBlock()
	out, err := rt.run(st, best, clause)
	if err != nil {
		return nil, err
	}
	if err := st.SetNonce(clause.Caller, nonce+1); err != nil {
		return nil, err
	}
	if err := st.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}

	logger.Debug("clause executed",
		"caller", clause.Caller.AbbrevString(),
		"to", clause.To.AbbrevString(),
		"code", out.Code,
		"block", best.Number,
	)
	return &Receipt{Output: out, Block: best, Nonce: nonce}, nil
}
