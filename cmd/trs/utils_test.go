// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"flag"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/trs/builtin/trs"
	"github.com/vechain/trs/runtime"
	"github.com/vechain/trs/thor"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range []cli.Flag{dataDirFlag, genesisFlag, toFlag, addressFlag} {
		f.Apply(set)
	}
	require.NoError(t, set.Parse(args))
	return cli.NewContext(nil, set, nil)
}

func TestParseTarget(t *testing.T) {
	for _, tt := range []struct {
		to   string
		want thor.Address
	}{
		{"state", thor.TRSStateAddress},
		{"USE", thor.TRSUseAddress},
		{"query", thor.TRSQueryAddress},
		{thor.FoundationAddress.String(), thor.FoundationAddress},
	} {
		got, err := parseTarget(newContext(t, "--to", tt.to))
		require.NoError(t, err, tt.to)
		assert.Equal(t, tt.want, got, tt.to)
	}

	_, err := parseTarget(newContext(t))
	assert.EqualError(t, err, "--to required")
	_, err = parseTarget(newContext(t, "--to", "0x12"))
	assert.Error(t, err)
}

func TestDumpContract(t *testing.T) {
	ctx := newContext(t, "--data-dir", t.TempDir())
	rt, closeDB, err := openRuntime(ctx)
	require.NoError(t, err)
	defer closeDB()

	// dev genesis funds the foundation
	_, input, err := trs.Encode(&trs.Op{Kind: trs.OpCreate, Terms: &trs.Terms{Test: true, DirectDeposit: true, Periods: 4, Percent: uint256.NewInt(25)}})
	require.NoError(t, err)
	receipt, err := rt.Execute(&runtime.Clause{Caller: thor.FoundationAddress, To: thor.TRSStateAddress, Data: input, Energy: thor.MaxTxEnergy})
	require.NoError(t, err)
	require.False(t, receipt.Reverted())
	contract := thor.BytesToAddress(receipt.Output.Data)

	_, input, err = trs.Encode(&trs.Op{Kind: trs.OpDeposit, Contract: contract, Amount: big.NewInt(500)})
	require.NoError(t, err)
	receipt, err = rt.Execute(&runtime.Clause{Caller: thor.FoundationAddress, To: thor.TRSUseAddress, Data: input, Energy: thor.MaxTxEnergy})
	require.NoError(t, err)
	require.False(t, receipt.Reverted())

	d, err := dumpContract(rt.State(), contract)
	require.NoError(t, err)
	assert.Equal(t, thor.FoundationAddress, d.Owner)
	assert.Equal(t, uint16(4), d.Terms.Periods)
	assert.Equal(t, "25", d.Terms.SpecialPercent)
	assert.Equal(t, "500", d.Total.String())
	assert.Equal(t, "500", d.Balance.String())
	require.Len(t, d.Depositors, 1)
	assert.Equal(t, thor.FoundationAddress, d.Depositors[0].Address)
	assert.True(t, d.Depositors[0].Eligible)

	_, err = dumpContract(rt.State(), thor.FoundationAddress)
	assert.Error(t, err)
}
