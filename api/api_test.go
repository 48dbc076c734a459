// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/trs/api"
	"github.com/vechain/trs/api/accounts"
	"github.com/vechain/trs/api/blocks"
	"github.com/vechain/trs/api/transactions"
	"github.com/vechain/trs/builtin/trs"
	"github.com/vechain/trs/chain"
	"github.com/vechain/trs/lvldb"
	"github.com/vechain/trs/runtime"
	"github.com/vechain/trs/state"
	"github.com/vechain/trs/thor"
)

var owner = thor.Address{thor.AccountPrefix, 1}

func initServer(t *testing.T) (*httptest.Server, thor.Address) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := chain.NewRepository(db, &chain.Block{Timestamp: 1000})
	require.NoError(t, err)
	_, err = repo.AddBlock(1010)
	require.NoError(t, err)

	st := state.New(db)
	require.NoError(t, st.SetBalance(owner, big.NewInt(100)))
	require.NoError(t, st.Commit())

	rt := runtime.New(repo, db)
	_, input, err := trs.Encode(&trs.Op{Kind: trs.OpCreate, Terms: &trs.Terms{DirectDeposit: true, Periods: 3, Percent: uint256.NewInt(0)}})
	require.NoError(t, err)
	receipt, err := rt.Execute(&runtime.Clause{Caller: owner, To: thor.TRSStateAddress, Data: input, Energy: thor.MaxTxEnergy})
	require.NoError(t, err)
	require.False(t, receipt.Reverted())

	ts := httptest.NewServer(api.New(rt, api.Options{
		AllowedOrigins:     "*",
		CallEnergyLimit:    thor.MaxTxEnergy,
		EnableTransactions: true,
		EnableMetrics:      true,
	}))
	t.Cleanup(ts.Close)
	return ts, thor.BytesToAddress(receipt.Output.Data)
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func httpPost(t *testing.T, url string, obj any) ([]byte, int) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func getBalance(t *testing.T, ts *httptest.Server, addr thor.Address) *big.Int {
	body, code := httpGet(t, ts.URL+"/accounts/"+addr.String())
	require.Equal(t, http.StatusOK, code)
	var acc accounts.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	return (*big.Int)(&acc.Balance)
}

func TestAccounts(t *testing.T) {
	ts, contract := initServer(t)

	assert.Equal(t, "100", getBalance(t, ts, owner).String())

	body, code := httpGet(t, ts.URL+"/accounts/"+owner.String())
	require.Equal(t, http.StatusOK, code)
	var acc accounts.Account
	require.NoError(t, json.Unmarshal(body, &acc))
	assert.Equal(t, uint64(1), acc.Nonce)

	_, code = httpGet(t, ts.URL+"/accounts/0xbad")
	assert.Equal(t, http.StatusBadRequest, code)

	_, code = httpGet(t, ts.URL+"/accounts/"+contract.String()+"/storage/"+thor.BytesToBytes32([]byte{1}).String())
	assert.Equal(t, http.StatusOK, code)
	_, code = httpGet(t, ts.URL+"/accounts/"+contract.String()+"/storage/zz")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCallSimulation(t *testing.T) {
	ts, contract := initServer(t)

	_, input, err := trs.Encode(&trs.Op{Kind: trs.OpIsDirDepoEnabled, Contract: contract})
	require.NoError(t, err)
	body, code := httpPost(t, ts.URL+"/accounts/"+thor.TRSQueryAddress.String(), &accounts.CallData{
		Data:   hexutil.Encode(input),
		Caller: owner,
	})
	require.Equal(t, http.StatusOK, code, string(body))
	var res accounts.CallResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "0x01", res.Data)
	assert.False(t, res.Reverted)
	assert.Equal(t, thor.TRSOperationEnergy, res.EnergyUsed)

	// effects of a simulated deposit are dropped
	_, input, err = trs.Encode(&trs.Op{Kind: trs.OpDeposit, Contract: contract, Amount: big.NewInt(60)})
	require.NoError(t, err)
	body, code = httpPost(t, ts.URL+"/accounts/"+thor.TRSUseAddress.String(), &accounts.CallData{
		Data:   hexutil.Encode(input),
		Caller: owner,
	})
	require.Equal(t, http.StatusOK, code, string(body))
	res = accounts.CallResult{}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Reverted)
	assert.Equal(t, "100", getBalance(t, ts, owner).String())

	// reverted call
	_, input, err = trs.Encode(&trs.Op{Kind: trs.OpWithdraw, Contract: contract})
	require.NoError(t, err)
	body, _ = httpPost(t, ts.URL+"/accounts/"+thor.TRSUseAddress.String(), &accounts.CallData{
		Data:   hexutil.Encode(input),
		Caller: owner,
	})
	res = accounts.CallResult{}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Reverted)
	assert.Equal(t, "malformed", res.Code)
	assert.Equal(t, thor.MaxTxEnergy, res.EnergyUsed)

	_, code = httpPost(t, ts.URL+"/accounts/"+owner.String(), &accounts.CallData{Data: "0x00", Caller: owner})
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpPost(t, ts.URL+"/accounts/"+thor.TRSUseAddress.String(), &accounts.CallData{Data: "zz", Caller: owner})
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpPost(t, ts.URL+"/accounts/"+thor.TRSUseAddress.String(), &accounts.CallData{Data: "0x00", Caller: owner, Energy: thor.MaxTxEnergy + 1})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestTransactions(t *testing.T) {
	ts, contract := initServer(t)

	_, input, err := trs.Encode(&trs.Op{Kind: trs.OpDeposit, Contract: contract, Amount: big.NewInt(60)})
	require.NoError(t, err)
	body, code := httpPost(t, ts.URL+"/transactions", &transactions.Transaction{
		To:       thor.TRSUseAddress,
		CallData: accounts.CallData{Data: hexutil.Encode(input), Caller: owner},
	})
	require.Equal(t, http.StatusOK, code, string(body))
	var receipt transactions.Receipt
	require.NoError(t, json.Unmarshal(body, &receipt))
	assert.False(t, receipt.Reverted)
	assert.Equal(t, uint64(1), receipt.Nonce)
	assert.Equal(t, uint64(1), receipt.BlockNumber)

	assert.Equal(t, "40", getBalance(t, ts, owner).String())
	assert.Equal(t, "60", getBalance(t, ts, contract).String())

	_, code = httpPost(t, ts.URL+"/transactions", &transactions.Transaction{
		To:       thor.TRSUseAddress,
		CallData: accounts.CallData{Data: hexutil.Encode(input)},
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestBlocks(t *testing.T) {
	ts, _ := initServer(t)

	for _, tt := range []struct {
		revision string
		want     *blocks.Block
	}{
		{"best", &blocks.Block{Number: 1, Timestamp: 1010}},
		{"0", &blocks.Block{Number: 0, Timestamp: 1000}},
		{"1", &blocks.Block{Number: 1, Timestamp: 1010}},
		{"9", nil},
	} {
		body, code := httpGet(t, ts.URL+"/blocks/"+tt.revision)
		require.Equal(t, http.StatusOK, code)
		var got *blocks.Block
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, tt.want, got, tt.revision)
	}

	_, code := httpGet(t, ts.URL+"/blocks/abc")
	assert.Equal(t, http.StatusBadRequest, code)
}
