// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/trs/api/accounts"
	"github.com/vechain/trs/api/blocks"
	"github.com/vechain/trs/api/transactions"
	"github.com/vechain/trs/log"
	"github.com/vechain/trs/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins     string
	CallEnergyLimit    uint64
	EnableTransactions bool
	EnableMetrics      bool
	EnableReqLogger    bool
}

// New return api router
func New(rt *runtime.Runtime, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(rt, opts.CallEnergyLimit).
		Mount(router, "/accounts")
	blocks.New(rt.Repo()).
		Mount(router, "/blocks")
	if opts.EnableTransactions {
		transactions.New(rt, opts.CallEnergyLimit).
			Mount(router, "/transactions")
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = requestLoggerHandler(handler)
	}
	return handler.ServeHTTP
}
