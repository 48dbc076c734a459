// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package slots provides typed access to the storage rows of a builtin contract.
package slots

import (
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
)

type Context struct {
	address thor.Address
	state   *state.State
}

func NewContext(address thor.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() thor.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}

// Position derives a storage position from a name and optional sub keys.
func Position(name string, sub ...[]byte) thor.Bytes32 {
	parts := make([][]byte, 0, len(sub)+1)
	parts = append(parts, []byte(name))
	parts = append(parts, sub...)
	return thor.Blake2b(parts...)
}
