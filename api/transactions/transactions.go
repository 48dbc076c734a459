// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/trs/api/accounts"
	"github.com/vechain/trs/api/utils"
	"github.com/vechain/trs/runtime"
	"github.com/vechain/trs/thor"
)

// Transaction is a clause to be executed and committed.
type Transaction struct {
	To thor.Address `json:"to"`
	accounts.CallData
}

// Receipt for marshal receipt
type Receipt struct {
	accounts.CallResult
	BlockNumber uint64 `json:"blockNumber"`
	Nonce       uint64 `json:"nonce"`
}

type Transactions struct {
	rt          *runtime.Runtime
	energyLimit uint64
}

func New(rt *runtime.Runtime, energyLimit uint64) *Transactions {
	return &Transactions{
		rt,
		energyLimit,
	}
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var tx Transaction
	if err := utils.ParseJSON(req.Body, &tx); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if tx.Caller.IsZero() {
		return utils.BadRequest(errors.New("caller: zero address"))
	}
	clause, err := tx.Clause(tx.To, t.energyLimit)
	if err != nil {
		return err
	}
	receipt, err := t.rt.Execute(clause)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Receipt{
		CallResult:  *accounts.ConvertOutput(receipt.Output, clause.Energy),
		BlockNumber: receipt.Block.Number,
		Nonce:       receipt.Nonce,
	})
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
}
