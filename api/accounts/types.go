// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/trs/api/utils"
	"github.com/vechain/trs/builtin"
	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/builtin/trs"
	"github.com/vechain/trs/runtime"
	"github.com/vechain/trs/thor"
)

// Account for marshal account
type Account struct {
	Balance math.HexOrDecimal256 `json:"balance,string"`
	Nonce   uint64               `json:"nonce"`
}

// CallData represents a call to a builtin contract.
type CallData struct {
	Data   string       `json:"data"`
	Energy uint64       `json:"energy"`
	Caller thor.Address `json:"caller"`
}

// Clause validates the call against to and resolves its energy. Zero energy means energyLimit.
func (c *CallData) Clause(to thor.Address, energyLimit uint64) (*runtime.Clause, error) {
	if _, ok := builtin.Native(to); !ok {
		return nil, utils.BadRequest(errors.New("address: not a builtin contract"))
	}
	input, err := hexutil.Decode(c.Data)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "data"))
	}
	energy := c.Energy
	if energy == 0 {
		energy = energyLimit
	} else if energy > energyLimit {
		return nil, utils.Forbidden(errors.New("energy: exceeds limit"))
	}
	return &runtime.Clause{
		Caller: c.Caller,
		To:     to,
		Data:   input,
		Energy: energy,
	}, nil
}

// CallResult is the outcome of a simulated call.
type CallResult struct {
	Data       string `json:"data"`
	Code       string `json:"code"`
	Reverted   bool   `json:"reverted"`
	EnergyUsed uint64 `json:"energyUsed"`
}

// ConvertOutput converts a contract output, energy is the amount the call was given.
func ConvertOutput(out *trs.Output, energy uint64) *CallResult {
	return &CallResult{
		Data:       hexutil.Encode(out.Data),
		Code:       out.Code.String(),
		Reverted:   out.Code != reverts.Success,
		EnergyUsed: energy - out.EnergyLeft,
	}
}
