// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/log"
	"github.com/vechain/trs/thor"
	"github.com/vechain/trs/xenv"
)

var logger = log.WithContext("pkg", "trs")

// Output is the outcome of a call.
type Output struct {
	Code       reverts.Code
	Data       []byte
	EnergyLeft uint64
}

type handler func(env *xenv.Environment, op *Op) ([]byte, error)

var handlers map[Kind]handler

func init() {
	handlers = map[Kind]handler{
		OpCreate:    create,
		OpLock:      lock,
		OpStart:     start,
		OpOpenFunds: openFunds,

		OpDeposit:        deposit,
		OpWithdraw:       withdraw,
		OpBulkDepositFor: bulkDepositFor,
		OpBulkWithdraw:   bulkWithdraw,
		OpRefund:         refund,
		OpDepositFor:     depositFor,
		OpAddExtraFunds:  addExtraFunds,

		OpIsLive:                   isLive,
		OpIsLocked:                 isLocked,
		OpIsDirDepoEnabled:         isDirDepoEnabled,
		OpPeriod:                   period,
		OpPeriodAt:                 periodAt,
		OpAvailableForWithdrawalAt: availableForWithdrawalAt,
	}
}

// Native executes the calls made to one TRS surface.
type Native struct {
	surface Surface
}

func NewNative(surface Surface) *Native {
	return &Native{surface: surface}
}

func (n *Native) Surface() Surface {
	return n.surface
}

// Address returns the builtin address the surface is reached at.
func (s Surface) Address() thor.Address {
	switch s {
	case StateSurface:
		return thor.TRSStateAddress
	case UseSurface:
		return thor.TRSUseAddress
	default:
		return thor.TRSQueryAddress
	}
}

// Run executes the call carried by env. Contract failures are reported through
// Output.Code with all state changes reverted; a returned error is a storage fault.
func (n *Native) Run(env *xenv.Environment) (*Output, error) {
	startTime := time.Now()

	op, out, err := n.run(env)
	if err != nil {
		return nil, err
	}

	opName := "invalid"
	if op != nil {
		opName = op.Kind.String()
	}
	metricCalls().AddWithLabel(1, map[string]string{"surface": n.surface.String(), "op": opName, "result": out.Code.String()})
	metricCallDuration().ObserveWithLabels(time.Since(startTime).Microseconds(), map[string]string{"surface": n.surface.String()})
	return out, nil
}

func failure(code reverts.Code) *Output {
	return &Output{Code: code}
}

func (n *Native) run(env *xenv.Environment) (*Op, *Output, error) {
	input := env.Input()
	if len(input) == 0 {
		return nil, failure(reverts.Malformed), nil
	}
	if energy := env.Energy(); energy < thor.TRSOperationEnergy {
		return nil, failure(reverts.OutOfEnergy), nil
	} else if energy > thor.MaxTxEnergy {
		return nil, failure(reverts.InvalidEnergyLimit), nil
	}
	if env.Caller().IsZero() {
		return nil, failure(reverts.Malformed), nil
	}

	op, err := Decode(n.surface, input)
	if err != nil {
		code, _ := reverts.CodeOf(err)
		logger.Debug("rejected input", "surface", n.surface, "len", len(input), "err", err)
		return nil, failure(code), nil
	}

	st := env.State()
	checkpoint := st.NewCheckpoint()
	data, err := env.Call(func(env *xenv.Environment) ([]byte, error) {
		env.UseEnergy(thor.TRSOperationEnergy)
		return handlers[op.Kind](env, op)
	})()
	if err != nil {
		st.RevertTo(checkpoint)
		code, ok := reverts.CodeOf(err)
		if !ok {
			return op, nil, errors.WithMessagef(err, "trs %v", op.Kind)
		}
		logger.Debug("operation failed",
			"op", op.Kind,
			"contract", op.Contract,
			"caller", env.Caller(),
			"code", code,
			"err", err,
		)
		return op, failure(code), nil
	}
	return op, &Output{
		Code:       reverts.Success,
		Data:       data,
		EnergyLeft: env.Energy(),
	}, nil
}
