package main

import (
	"fmt"
	"path/filepath"

	"github.com/lightningnetwork/lnd/signal"
	"github.com/urfave/cli"

	stkcfg "github.com/babylonchain/staking-ledger/config"
	"github.com/babylonchain/staking-ledger/ledger/service"
	"github.com/babylonchain/staking-ledger/log"
	"github.com/babylonchain/staking-ledger/util"
)

var startCommand = cli.Command{
	Name:        "start",
	Usage:       "Start the Staking Ledger Daemon",
	Description: "Start the Staking Ledger Daemon. Note that the home directory should be initialized beforehand",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  homeFlag,
			Usage: "The path to the staking ledger home directory",
			Value: stkcfg.DefaultStkdDir,
		},
	},
	Action: start,
}

func start(ctx *cli.Context) error {
	homePath, err := filepath.Abs(ctx.String(homeFlag))
	if err != nil {
		return err
	}
	homePath = util.CleanAndExpandPath(homePath)

	cfg, err := stkcfg.LoadConfig(homePath)
	if err != nil {
		return fmt.Errorf("failed to load config at %s: %w", homePath, err)
	}

	logger, err := log.NewRootLoggerWithFile(stkcfg.LogFile(homePath), cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to load the logger: %w", err)
	}

	app, err := service.NewLedgerApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to start the staking ledger: %w", err)
	}

	// Hook interceptor for os signals.
	shutdownInterceptor, err := signal.Intercept()
	if err != nil {
		_ = app.Close()
		return err
	}

	srv := service.NewLedgerServer(cfg, app, logger, shutdownInterceptor)

	return srv.RunUntilShutdown()
}
