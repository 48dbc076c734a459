// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/trs/chain"
	"github.com/vechain/trs/kv"
	"github.com/vechain/trs/log"
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis describes the first block of a local chain and its initial allocation.
type Genesis struct {
	Timestamp uint64    `yaml:"timestamp"`
	Accounts  []Account `yaml:"accounts"`
}

// Account is an allocation applied when the chain is initialized.
type Account struct {
	Address thor.Address          `yaml:"address"`
	Balance *math.HexOrDecimal256 `yaml:"balance"`
	Nonce   uint64                `yaml:"nonce"`
}

// Dev returns the genesis used when no file is given.
// The foundation account is funded so test mode contracts can be created.
func Dev() *Genesis {
	balance := new(big.Int).Mul(big.NewInt(1_000_000_000), big.NewInt(1e18))
	return &Genesis{
		Timestamp: 1530316800,
		Accounts: []Account{
			{Address: thor.FoundationAddress, Balance: (*math.HexOrDecimal256)(balance)},
		},
	}
}

// Load reads a YAML genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML genesis document. Unknown fields are rejected.
func Parse(data []byte) (*Genesis, error) {
	var gen Genesis
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if err := gen.validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

func (g *Genesis) validate() error {
	seen := make(map[thor.Address]bool, len(g.Accounts))
	for _, acc := range g.Accounts {
		if acc.Address.IsZero() {
			return errors.New("genesis: zero account address")
		}
		if seen[acc.Address] {
			return errors.Errorf("genesis: duplicated account %v", acc.Address)
		}
		seen[acc.Address] = true
		if acc.Balance != nil && (*big.Int)(acc.Balance).Sign() < 0 {
			return errors.Errorf("genesis: negative balance for %v", acc.Address)
		}
	}
	return nil
}

// Block returns the genesis block.
func (g *Genesis) Block() *chain.Block {
	return &chain.Block{Timestamp: g.Timestamp}
}

// Setup opens the chain held by store. On an empty store the allocation is
// written before the genesis block, so an interrupted setup is simply redone.
func (g *Genesis) Setup(store kv.Store) (*chain.Repository, error) {
	initialized, err := chain.HasGenesis(store)
	if err != nil {
		return nil, err
	}
	if !initialized {
		st := state.New(store)
		for _, acc := range g.Accounts {
			balance := new(big.Int)
			if acc.Balance != nil {
				balance = (*big.Int)(acc.Balance)
			}
			if err := st.SetBalance(acc.Address, balance); err != nil {
				return nil, err
			}
			if err := st.SetNonce(acc.Address, acc.Nonce); err != nil {
				return nil, err
			}
		}
		if err := st.Commit(); err != nil {
			return nil, errors.Wrap(err, "commit genesis state")
		}
		logger.Info("genesis state initialized", "accounts", len(g.Accounts), "timestamp", g.Timestamp)
	}
	return chain.NewRepository(store, g.Block())
}
