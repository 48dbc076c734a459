// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/trs/api"
	"github.com/vechain/trs/api/accounts"
	"github.com/vechain/trs/api/blocks"
	"github.com/vechain/trs/cmd/trs/httpserver"
	"github.com/vechain/trs/log"
	"github.com/vechain/trs/metrics"
	"github.com/vechain/trs/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	common := []cli.Flag{
		dataDirFlag,
		genesisFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app := cli.App{
		Version:   fullVersion(),
		Name:      "trs",
		Usage:     "Token release schedule contracts on a local VeChain Thor style chain",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: append(common,
			apiAddrFlag,
			apiCorsFlag,
			apiCallEnergyLimitFlag,
			apiEnableTxFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			blockIntervalFlag,
		),
		Action: serveAction,
		Commands: []cli.Command{
			{
				Name:   "call",
				Usage:  "execute a call to a TRS contract",
				Flags:  append(common, callerFlag, toFlag, dataFlag, energyFlag, dryRunFlag),
				Action: callAction,
			},
			{
				Name:   "block",
				Usage:  "append a block",
				Flags:  append(common, timeFlag),
				Action: blockAction,
			},
			{
				Name:   "balance",
				Usage:  "print the balance and nonce of an account",
				Flags:  append(common, addressFlag),
				Action: balanceAction,
			},
			{
				Name:   "dump",
				Usage:  "print the storage of a TRS contract",
				Flags:  append(common, addressFlag),
				Action: dumpAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveAction(ctx *cli.Context) error {
	initLogger(ctx)
	exitSignal := handleExitSignal()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, close, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); close() }()
		logger.Info("metrics server started", "url", url)
	}

	rt, closeDB, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main database..."); closeDB() }()

	url, close, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), rt, api.Options{
		AllowedOrigins:     ctx.String(apiCorsFlag.Name),
		CallEnergyLimit:    ctx.Uint64(apiCallEnergyLimitFlag.Name),
		EnableTransactions: ctx.Bool(apiEnableTxFlag.Name),
		EnableMetrics:      ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:    ctx.Bool(enableAPILogsFlag.Name),
	})
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); close() }()
	logger.Info("API server started", "url", url, "best", rt.Repo().BestBlock())

	var goes sync.WaitGroup
	if interval := ctx.Uint64(blockIntervalFlag.Name); interval > 0 {
		goes.Add(1)
		go func() {
			defer goes.Done()
			packLoop(exitSignal.Done(), rt, time.Duration(interval)*time.Second)
		}()
	}
	<-exitSignal.Done()
	goes.Wait()
	return nil
}

// packLoop appends a block stamped with the wall clock every interval.
func packLoop(done <-chan struct{}, rt *runtime.Runtime, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			blk, err := rt.Repo().AddBlock(uint64(now.Unix()))
			if err != nil {
				logger.Warn("failed to pack block", "err", err)
				continue
			}
			logger.Debug("block packed", "number", blk.Number, "timestamp", blk.Timestamp)
		}
	}
}

func callAction(ctx *cli.Context) error {
	initLogger(ctx)

	caller, err := parseAddress(ctx, callerFlag)
	if err != nil {
		return err
	}
	to, err := parseTarget(ctx)
	if err != nil {
		return err
	}
	data, err := hexutil.Decode(ctx.String(dataFlag.Name))
	if err != nil {
		return errors.WithMessage(err, "--data")
	}

	rt, closeDB, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	clause := &runtime.Clause{
		Caller: caller,
		To:     to,
		Data:   data,
		Energy: ctx.Uint64(energyFlag.Name),
	}
	if ctx.Bool(dryRunFlag.Name) {
		out, err := rt.Call(clause)
		if err != nil {
			return err
		}
		return printJSON(accounts.ConvertOutput(out, clause.Energy))
	}
	receipt, err := rt.Execute(clause)
	if err != nil {
		return err
	}
	return printJSON(accounts.ConvertOutput(receipt.Output, clause.Energy))
}

func blockAction(ctx *cli.Context) error {
	initLogger(ctx)

	rt, closeDB, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	timestamp := ctx.Uint64(timeFlag.Name)
	if timestamp == 0 {
		timestamp = uint64(time.Now().Unix())
	}
	blk, err := rt.Repo().AddBlock(timestamp)
	if err != nil {
		return err
	}
	return printJSON(&blocks.Block{Number: blk.Number, Timestamp: blk.Timestamp})
}

func balanceAction(ctx *cli.Context) error {
	initLogger(ctx)

	addr, err := parseAddress(ctx, addressFlag)
	if err != nil {
		return err
	}
	rt, closeDB, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	st := rt.State()
	balance, err := st.GetBalance(addr)
	if err != nil {
		return err
	}
	nonce, err := st.GetNonce(addr)
	if err != nil {
		return err
	}
	return printJSON(&accounts.Account{
		Balance: math.HexOrDecimal256(*balance),
		Nonce:   nonce,
	})
}

func dumpAction(ctx *cli.Context) error {
	initLogger(ctx)

	addr, err := parseAddress(ctx, addressFlag)
	if err != nil {
		return err
	}
	rt, closeDB, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	d, err := dumpContract(rt.State(), addr)
	if err != nil {
		return err
	}
	return printJSON(d)
}
