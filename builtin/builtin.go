// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/pkg/errors"

	"github.com/vechain/trs/builtin/trs"
	"github.com/vechain/trs/chain"
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
	"github.com/vechain/trs/xenv"
)

// Builtin contracts binding.
var (
	TRSState = trs.NewNative(trs.StateSurface)
	TRSUse   = trs.NewNative(trs.UseSurface)
	TRSQuery = trs.NewNative(trs.QuerySurface)
)

var natives = map[thor.Address]*trs.Native{
	thor.TRSStateAddress: TRSState,
	thor.TRSUseAddress:   TRSUse,
	thor.TRSQueryAddress: TRSQuery,
}

// Native returns the builtin contract at addr.
func Native(addr thor.Address) (*trs.Native, bool) {
	n, ok := natives[addr]
	return n, ok
}

// Call executes input against the builtin contract at to.
func Call(
	st *state.State,
	chain chain.Reader,
	blockCtx *xenv.BlockContext,
	caller thor.Address,
	to thor.Address,
	input []byte,
	energy uint64,
) (*trs.Output, error) {
	n, ok := natives[to]
	if !ok {
		return nil, errors.Errorf("no builtin contract at %v", to)
	}
	return n.Run(xenv.New(st, chain, blockCtx, caller, to, input, energy))
}
