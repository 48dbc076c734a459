// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/trs/thor"
)

type opcode struct {
	surface Surface
	code    byte
}

var opcodes = func() map[Kind]opcode {
	m := make(map[Kind]opcode)
	for s, ops := range layouts {
		for i, l := range ops {
			m[l.kind] = opcode{s, byte(i)}
		}
	}
	return m
}()

// SurfaceOf returns the surface serving kind.
func SurfaceOf(kind Kind) (Surface, bool) {
	oc, ok := opcodes[kind]
	return oc.surface, ok
}

func appendAmount(out []byte, v *big.Int) ([]byte, error) {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 || v.BitLen() > amountSize*8 {
		return nil, errors.Errorf("amount %v out of range", v)
	}
	return append(out, v.FillBytes(make([]byte, amountSize))...), nil
}

// Encode builds the call input of op and returns the surface it is sent to.
func Encode(op *Op) (Surface, []byte, error) {
	oc, ok := opcodes[op.Kind]
	if !ok {
		return 0, nil, errors.Errorf("unknown operation %d", op.Kind)
	}
	out := []byte{oc.code}

	var err error
	switch op.Kind {
	case OpCreate:
		t := op.Terms
		if t == nil || t.Percent == nil {
			return 0, nil, errors.New("create: missing terms")
		}
		if t.Percent.ByteLen() > percentSize {
			return 0, nil, errors.Errorf("create: percent %v too large", t.Percent)
		}
		var flags byte
		if t.DirectDeposit {
			flags |= createFlagDirectDeposit
		}
		if t.Test {
			flags |= createFlagTest
		}
		out = append(out, flags)
		out = binary.BigEndian.AppendUint16(out, t.Periods)
		out = append(out, t.Percent.PaddedBytes(percentSize)...)
		out = append(out, t.Precision)
	case OpDeposit, OpAddExtraFunds:
		out = append(out, op.Contract.Bytes()...)
		out, err = appendAmount(out, op.Amount)
	case OpRefund, OpDepositFor:
		out = append(out, op.Contract.Bytes()...)
		out = append(out, op.Account.Bytes()...)
		out, err = appendAmount(out, op.Amount)
	case OpBulkDepositFor:
		if len(op.Batch) == 0 || len(op.Batch) > thor.MaxBulkDeposits {
			return 0, nil, errors.Errorf("bulkDepositFor: %d entries", len(op.Batch))
		}
		out = append(out, op.Contract.Bytes()...)
		for _, tr := range op.Batch {
			out = append(out, tr.Beneficiary.Bytes()...)
			if out, err = appendAmount(out, tr.Amount); err != nil {
				break
			}
		}
	case OpPeriodAt:
		out = append(out, op.Contract.Bytes()...)
		out = binary.BigEndian.AppendUint64(out, op.Number)
	case OpAvailableForWithdrawalAt:
		out = append(out, op.Contract.Bytes()...)
		out = binary.BigEndian.AppendUint64(out, op.Time)
	default:
		out = append(out, op.Contract.Bytes()...)
	}
	if err != nil {
		return 0, nil, errors.WithMessage(err, op.Kind.String())
	}
	return oc.surface, out, nil
}
