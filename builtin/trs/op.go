// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"encoding/binary"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/thor"
)

// Surface is one of the entry points of the TRS contracts.
type Surface byte

const (
	StateSurface Surface = iota // owner lifecycle
	UseSurface                  // deposits, withdrawals and refunds
	QuerySurface                // read only views
)

func (s Surface) String() string {
	switch s {
	case StateSurface:
		return "state"
	case UseSurface:
		return "use"
	case QuerySurface:
		return "query"
	default:
		return "unknown"
	}
}

// Kind identifies an operation across all surfaces.
type Kind byte

const (
	OpCreate Kind = iota
	OpLock
	OpStart
	OpOpenFunds

	OpDeposit
	OpWithdraw
	OpBulkDepositFor
	OpBulkWithdraw
	OpRefund
	OpDepositFor
	OpAddExtraFunds

	OpIsLive
	OpIsLocked
	OpIsDirDepoEnabled
	OpPeriod
	OpPeriodAt
	OpAvailableForWithdrawalAt
)

var kindNames = [...]string{
	OpCreate:                   "create",
	OpLock:                     "lock",
	OpStart:                    "start",
	OpOpenFunds:                "openFunds",
	OpDeposit:                  "deposit",
	OpWithdraw:                 "withdraw",
	OpBulkDepositFor:           "bulkDepositFor",
	OpBulkWithdraw:             "bulkWithdraw",
	OpRefund:                   "refund",
	OpDepositFor:               "depositFor",
	OpAddExtraFunds:            "addExtraFunds",
	OpIsLive:                   "isLive",
	OpIsLocked:                 "isLocked",
	OpIsDirDepoEnabled:         "isDirDepoEnabled",
	OpPeriod:                   "period",
	OpPeriodAt:                 "periodAt",
	OpAvailableForWithdrawalAt: "availableForWithdrawalAt",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

const (
	addressSize = thor.AddressLength
	amountSize  = 128
	entrySize   = addressSize + amountSize

	createFlagDirectDeposit = 1
	createFlagTest          = 2
)

// Transfer is one beneficiary of a bulk deposit.
type Transfer struct {
	Beneficiary thor.Address
	Amount      *big.Int
}

// Op is a decoded TRS operation.
type Op struct {
	Kind     Kind
	Contract thor.Address

	Terms   *Terms       // create
	Account thor.Address // depositFor beneficiary, refund account
	Amount  *big.Int     // deposit, depositFor, refund, addExtraFunds
	Batch   []Transfer   // bulkDepositFor
	Number  uint64       // periodAt block number
	Time    uint64       // availableForWithdrawalAt timestamp
}

type layout struct {
	kind   Kind
	length func(n int) bool
	decode func(op *Op, body []byte) error
}

func exactly(size int) func(int) bool {
	return func(n int) bool { return n == size }
}

func contractOnly(op *Op, body []byte) error {
	op.Contract = thor.BytesToAddress(body[:addressSize])
	return nil
}

func contractAndAmount(op *Op, body []byte) error {
	op.Contract = thor.BytesToAddress(body[:addressSize])
	op.Amount = new(big.Int).SetBytes(body[addressSize:])
	return nil
}

func contractAccountAndAmount(op *Op, body []byte) error {
	op.Contract = thor.BytesToAddress(body[:addressSize])
	op.Account = thor.BytesToAddress(body[addressSize : 2*addressSize])
	op.Amount = new(big.Int).SetBytes(body[2*addressSize:])
	return nil
}

func contractAndUint64(set func(op *Op, v uint64)) func(op *Op, body []byte) error {
	return func(op *Op, body []byte) error {
		op.Contract = thor.BytesToAddress(body[:addressSize])
		set(op, binary.BigEndian.Uint64(body[addressSize:]))
		return nil
	}
}

func decodeCreate(op *Op, body []byte) error {
	flags := body[0]
	if flags > createFlagDirectDeposit|createFlagTest {
		return reverts.Errorf(reverts.Malformed, "unknown create flags %d", flags)
	}
	op.Terms = &Terms{
		DirectDeposit: flags&createFlagDirectDeposit != 0,
		Test:          flags&createFlagTest != 0,
		Periods:       binary.BigEndian.Uint16(body[1:3]),
		Percent:       new(uint256.Int).SetBytes(body[3 : 3+percentSize]),
		Precision:     body[3+percentSize],
	}
	return op.Terms.validate()
}

func decodeBulk(op *Op, body []byte) error {
	op.Contract = thor.BytesToAddress(body[:addressSize])
	entries := body[addressSize:]
	op.Batch = make([]Transfer, 0, len(entries)/entrySize)
	for len(entries) > 0 {
		op.Batch = append(op.Batch, Transfer{
			Beneficiary: thor.BytesToAddress(entries[:addressSize]),
			Amount:      new(big.Int).SetBytes(entries[addressSize:entrySize]),
		})
		entries = entries[entrySize:]
	}
	return nil
}

// layouts lists the operations of every surface by opcode.
var layouts = map[Surface][]layout{
	StateSurface: {
		{OpCreate, exactly(1 + 2 + percentSize + 1), decodeCreate},
		{OpLock, exactly(addressSize), contractOnly},
		{OpStart, exactly(addressSize), contractOnly},
		{OpOpenFunds, exactly(addressSize), contractOnly},
	},
	UseSurface: {
		{OpDeposit, exactly(addressSize + amountSize), contractAndAmount},
		{OpWithdraw, exactly(addressSize), contractOnly},
		{OpBulkDepositFor, func(n int) bool {
			n -= addressSize
			return n >= entrySize && n%entrySize == 0 && n/entrySize <= thor.MaxBulkDeposits
		}, decodeBulk},
		{OpBulkWithdraw, exactly(addressSize), contractOnly},
		{OpRefund, exactly(2*addressSize + amountSize), contractAccountAndAmount},
		{OpDepositFor, exactly(2*addressSize + amountSize), contractAccountAndAmount},
		{OpAddExtraFunds, exactly(addressSize + amountSize), contractAndAmount},
	},
	QuerySurface: {
		{OpIsLive, exactly(addressSize), contractOnly},
		{OpIsLocked, exactly(addressSize), contractOnly},
		{OpIsDirDepoEnabled, exactly(addressSize), contractOnly},
		{OpPeriod, exactly(addressSize), contractOnly},
		{OpPeriodAt, exactly(addressSize + 8), contractAndUint64(func(op *Op, v uint64) { op.Number = v })},
		{OpAvailableForWithdrawalAt, exactly(addressSize + 8), contractAndUint64(func(op *Op, v uint64) { op.Time = v })},
	},
}

// Decode parses the input of a call to surface s. The first byte is the opcode
// and the remaining length must match the operation exactly.
func Decode(s Surface, input []byte) (*Op, error) {
	if len(input) == 0 {
		return nil, reverts.NewRequireError("empty input")
	}
	ops, ok := layouts[s]
	if !ok {
		return nil, reverts.Errorf(reverts.Malformed, "unknown surface %d", s)
	}
	code := int(input[0])
	if code >= len(ops) {
		return nil, reverts.Errorf(reverts.Malformed, "unknown %v opcode %d", s, code)
	}
	l := ops[code]
	body := input[1:]
	if !l.length(len(body)) {
		return nil, reverts.Errorf(reverts.Malformed, "%v: bad input length %d", l.kind, len(input))
	}
	op := &Op{Kind: l.kind}
	if err := l.decode(op, body); err != nil {
		return nil, err
	}
	return op, nil
}
