// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trs

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/trs/builtin/reverts"
	"github.com/vechain/trs/thor"
)

func assertCode(t *testing.T, want reverts.Code, err error) {
	t.Helper()
	code, ok := reverts.CodeOf(err)
	require.True(t, ok, "not a revert: %v", err)
	assert.Equal(t, want, code)
}

func TestTermsRow(t *testing.T) {
	terms := &Terms{
		DirectDeposit: true,
		Periods:       1200,
		Percent:       uint256.NewInt(12_345),
		Precision:     3,
		Locked:        true,
	}
	row, err := EncodeTerms(terms)
	require.NoError(t, err)
	assert.Len(t, row, TermsSize)

	decoded, err := DecodeTerms(row)
	require.NoError(t, err)
	assert.Equal(t, terms, decoded)

	bad := append([]byte(nil), row...)
	bad[liveOffset] = 2
	_, err = DecodeTerms(bad)
	assertCode(t, reverts.Malformed, err)

	_, err = DecodeTerms(row[:TermsSize-1])
	assertCode(t, reverts.Malformed, err)
}

func TestTermsValidate(t *testing.T) {
	tests := []struct {
		name    string
		terms   Terms
		wantErr bool
	}{
		{"min periods", Terms{Periods: 1, Percent: uint256.NewInt(0)}, false},
		{"zero periods", Terms{Periods: 0, Percent: uint256.NewInt(0)}, true},
		{"max periods", Terms{Periods: thor.MaxPeriods, Percent: uint256.NewInt(0)}, false},
		{"too many periods", Terms{Periods: thor.MaxPeriods + 1, Percent: uint256.NewInt(0)}, true},
		{"full percent", Terms{Periods: 1, Percent: uint256.NewInt(100)}, false},
		{"over percent", Terms{Periods: 1, Percent: uint256.NewInt(101)}, true},
		{"max precision", Terms{Periods: 1, Percent: maxPercent(thor.MaxPrecision), Precision: thor.MaxPrecision}, false},
		{"over precision", Terms{Periods: 1, Percent: uint256.NewInt(0), Precision: thor.MaxPrecision + 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.terms.validate()
			if tt.wantErr {
				assertCode(t, reverts.Malformed, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSpecialPercent(t *testing.T) {
	terms := &Terms{Periods: 1, Percent: uint256.NewInt(2_550), Precision: 2}
	assert.Equal(t, "255", terms.SpecialPercent().Of(big.NewInt(1000)).String())
}

func TestEncodeDecode(t *testing.T) {
	contract := thor.Address{thor.ContractPrefix, 1}
	account := thor.Address{thor.AccountPrefix, 2}
	amount := new(big.Int).Lsh(big.NewInt(1), 1000)

	ops := []*Op{
		{Kind: OpCreate, Terms: &Terms{Test: true, DirectDeposit: true, Periods: 12, Percent: uint256.NewInt(5), Precision: 0}},
		{Kind: OpLock, Contract: contract},
		{Kind: OpStart, Contract: contract},
		{Kind: OpOpenFunds, Contract: contract},
		{Kind: OpDeposit, Contract: contract, Amount: amount},
		{Kind: OpWithdraw, Contract: contract},
		{Kind: OpBulkDepositFor, Contract: contract, Batch: []Transfer{
			{Beneficiary: account, Amount: big.NewInt(1)},
			{Beneficiary: thor.Address{thor.AccountPrefix, 3}, Amount: big.NewInt(5)},
		}},
		{Kind: OpBulkWithdraw, Contract: contract},
		{Kind: OpRefund, Contract: contract, Account: account, Amount: big.NewInt(7)},
		{Kind: OpDepositFor, Contract: contract, Account: account, Amount: big.NewInt(9)},
		{Kind: OpAddExtraFunds, Contract: contract, Amount: big.NewInt(11)},
		{Kind: OpIsLive, Contract: contract},
		{Kind: OpIsLocked, Contract: contract},
		{Kind: OpIsDirDepoEnabled, Contract: contract},
		{Kind: OpPeriod, Contract: contract},
		{Kind: OpPeriodAt, Contract: contract, Number: 42},
		{Kind: OpAvailableForWithdrawalAt, Contract: contract, Time: 1_700_000_000},
	}
	for _, op := range ops {
		t.Run(op.Kind.String(), func(t *testing.T) {
			surface, input, err := Encode(op)
			require.NoError(t, err)

			decoded, err := Decode(surface, input)
			require.NoError(t, err)
			assert.Equal(t, op, decoded)

			// any other length is rejected
			_, err = Decode(surface, append(input, 0))
			assertCode(t, reverts.Malformed, err)
			_, err = Decode(surface, input[:len(input)-1])
			assertCode(t, reverts.Malformed, err)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode(StateSurface, nil)
	assertCode(t, reverts.Malformed, err)

	_, err = Decode(StateSurface, []byte{4})
	assertCode(t, reverts.Malformed, err)

	_, err = Decode(QuerySurface, []byte{0xff})
	assertCode(t, reverts.Malformed, err)

	// unknown create flags
	_, input, err := Encode(&Op{Kind: OpCreate, Terms: &Terms{Periods: 1, Percent: uint256.NewInt(0)}})
	require.NoError(t, err)
	input[1] = 4
	_, err = Decode(StateSurface, input)
	assertCode(t, reverts.Malformed, err)

	// periods out of range
	_, input, err = Encode(&Op{Kind: OpCreate, Terms: &Terms{Periods: 1, Percent: uint256.NewInt(0)}})
	require.NoError(t, err)
	input[2], input[3] = 0, 0
	_, err = Decode(StateSurface, input)
	assertCode(t, reverts.Malformed, err)

	// bulk deposit with a partial entry
	contract := thor.Address{thor.ContractPrefix, 1}
	_, input, err = Encode(&Op{Kind: OpBulkDepositFor, Contract: contract, Batch: []Transfer{{Beneficiary: thor.Address{thor.AccountPrefix}, Amount: big.NewInt(1)}}})
	require.NoError(t, err)
	_, err = Decode(UseSurface, input[:len(input)-10])
	assertCode(t, reverts.Malformed, err)

	// bulk deposit above the entry limit
	batch := make([]Transfer, thor.MaxBulkDeposits+1)
	for i := range batch {
		batch[i] = Transfer{Beneficiary: thor.Address{thor.AccountPrefix}, Amount: big.NewInt(1)}
	}
	_, _, err = Encode(&Op{Kind: OpBulkDepositFor, Contract: contract, Batch: batch})
	assert.Error(t, err)
}

func TestEncodeRejects(t *testing.T) {
	contract := thor.Address{thor.ContractPrefix, 1}

	_, _, err := Encode(&Op{Kind: OpDeposit, Contract: contract, Amount: big.NewInt(-1)})
	assert.Error(t, err)

	tooLarge := new(big.Int).Lsh(big.NewInt(1), amountSize*8)
	_, _, err = Encode(&Op{Kind: OpDeposit, Contract: contract, Amount: tooLarge})
	assert.Error(t, err)

	_, _, err = Encode(&Op{Kind: Kind(200)})
	assert.Error(t, err)
}
