// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/trs/builtin/trs"
	"github.com/vechain/trs/genesis"
	"github.com/vechain/trs/log"
	"github.com/vechain/trs/lvldb"
	"github.com/vechain/trs/runtime"
	"github.com/vechain/trs/thor"
)

func initLogger(ctx *cli.Context) {
	log.Init(os.Stderr, ctx.Int(verbosityFlag.Name), ctx.Bool(jsonLogsFlag.Name))
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".org.vechain.trs")
	}
	return ""
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.Dev(), nil
	}
	gen, err := genesis.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load genesis %v", path)
	}
	return gen, nil
}

// openRuntime opens the chain database and sets up the chain on first use.
func openRuntime(ctx *cli.Context) (*runtime.Runtime, func(), error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, nil, errors.New("data dir required")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(err, "create data dir [%v]", dataDir)
	}
	gen, err := selectGenesis(ctx)
	if err != nil {
		return nil, nil, err
	}

	db, err := lvldb.New(filepath.Join(dataDir, "main.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open chain database [%v]", dataDir)
	}
	repo, err := gen.Setup(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return runtime.New(repo, db), func() { db.Close() }, nil
}

func parseAddress(ctx *cli.Context, flag cli.StringFlag) (thor.Address, error) {
	s := ctx.String(flag.Name)
	if s == "" {
		return thor.Address{}, errors.Errorf("--%v required", flag.Name)
	}
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return thor.Address{}, errors.WithMessagef(err, "--%v", flag.Name)
	}
	return addr, nil
}

// parseTarget resolves a contract surface name or a raw address.
func parseTarget(ctx *cli.Context) (thor.Address, error) {
	switch strings.ToLower(ctx.String(toFlag.Name)) {
	case "state":
		return trs.StateSurface.Address(), nil
	case "use":
		return trs.UseSurface.Address(), nil
	case "query":
		return trs.QuerySurface.Address(), nil
	}
	return parseAddress(ctx, toFlag)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// handleExitSignal returns a context canceled on SIGINT or SIGTERM.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Root().Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
