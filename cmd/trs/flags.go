// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/trs/thor"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the chain database",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a YAML genesis file, applied when the data dir is initialized",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiCallEnergyLimitFlag = cli.Uint64Flag{
		Name:  "api-call-energy-limit",
		Value: thor.MaxTxEnergy,
		Usage: "limit contract call energy",
	}
	apiEnableTxFlag = cli.BoolFlag{
		Name:  "api-enable-transactions",
		Usage: "enable the API endpoint that executes and commits transactions",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	blockIntervalFlag = cli.Uint64Flag{
		Name:  "block-interval",
		Value: 10,
		Usage: "seconds between packed blocks, 0 to disable",
	}

	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address of the calling account",
	}
	toFlag = cli.StringFlag{
		Name:  "to",
		Usage: "target contract (state|use|query) or its address",
	}
	dataFlag = cli.StringFlag{
		Name:  "data",
		Usage: "hex encoded call input",
	}
	energyFlag = cli.Uint64Flag{
		Name:  "energy",
		Value: thor.MaxTxEnergy,
		Usage: "energy given to the call",
	}
	dryRunFlag = cli.BoolFlag{
		Name:  "dry-run",
		Usage: "simulate the call without committing it",
	}
	timeFlag = cli.Uint64Flag{
		Name:  "time",
		Usage: "block timestamp in unix seconds, defaults to now",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "account or contract address",
	}
)
