// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/trs/api/utils"
	"github.com/vechain/trs/runtime"
	"github.com/vechain/trs/thor"
)

type Accounts struct {
	rt              *runtime.Runtime
	callEnergyLimit uint64
}

func New(rt *runtime.Runtime, callEnergyLimit uint64) *Accounts {
	return &Accounts{
		rt,
		callEnergyLimit,
	}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	st := a.rt.State()
	balance, err := st.GetBalance(addr)
	if err != nil {
		return err
	}
	nonce, err := st.GetNonce(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Account{
		Balance: math.HexOrDecimal256(*balance),
		Nonce:   nonce,
	})
}

func (a *Accounts) handleGetStorage(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	key, err := thor.ParseBytes32(mux.Vars(req)["key"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "key"))
	}
	value, err := a.rt.State().GetStorage(addr, key)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, map[string]string{"value": hexutil.Encode(value)})
}

// handleCallContract executes a call on top of the committed state and discards its effects.
func (a *Accounts) handleCallContract(w http.ResponseWriter, req *http.Request) error {
	callData := &CallData{}
	if err := utils.ParseJSON(req.Body, &callData); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	to, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	clause, err := callData.Clause(to, a.callEnergyLimit)
	if err != nil {
		return err
	}
	out, err := a.rt.Call(clause)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, ConvertOutput(out, clause.Energy))
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/storage/{key}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetStorage))
	sub.Path("/{address}").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(a.handleCallContract))
}
