// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/trs/api"
	"github.com/vechain/trs/chain"
	"github.com/vechain/trs/lvldb"
	"github.com/vechain/trs/runtime"
	"github.com/vechain/trs/thor"
)

func TestStartAPIServer(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	repo, err := chain.NewRepository(db, &chain.Block{Timestamp: 1000})
	require.NoError(t, err)

	url, stop, err := StartAPIServer("localhost:0", runtime.New(repo, db), api.Options{CallEnergyLimit: thor.MaxTxEnergy})
	require.NoError(t, err)
	defer stop()

	res, err := http.Get(url + "blocks/best") //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"number":0,"timestamp":1000}`, string(body))

	_, _, err = StartAPIServer("bad-addr", runtime.New(repo, db), api.Options{})
	assert.Error(t, err)
}

func TestStartMetricsServer(t *testing.T) {
	url, stop, err := StartMetricsServer("localhost:0")
	require.NoError(t, err)
	stop()
	assert.Contains(t, url, "/metrics")
}
