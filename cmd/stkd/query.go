package main

import (
	"context"

	"github.com/urfave/cli"
)

var queryCommands = []cli.Command{
	{
		Name:   "settings",
		Usage:  "Show the current ledger settings.",
		Flags:  []cli.Flag{daemonAddressCliFlag},
		Action: querySettings,
	},
	{
		Name:  "status",
		Usage: "Show the stake record of an account and when it unlocks.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.StringFlag{Name: accountFlag, Usage: "The staking account", Required: true},
		},
		Action: queryStatus,
	},
	{
		Name:  "balance",
		Usage: "Show the custody token balance of an account.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.StringFlag{Name: tokenFlag, Usage: "The token symbol", Required: true},
			cli.StringFlag{Name: accountFlag, Usage: "The account", Required: true},
		},
		Action: queryBalance,
	},
	{
		Name:  "events",
		Usage: "List the ledger event log.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.Uint64Flag{Name: fromFlag, Usage: "The first sequence number to list"},
			cli.Uint64Flag{Name: limitFlag, Usage: "The maximum number of events", Value: 100},
		},
		Action: queryEvents,
	},
}

func querySettings(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}

	settings, err := lc.QuerySettings(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(settings)
	return nil
}

func queryStatus(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}

	status, err := lc.QueryStatus(context.Background(), ctx.String(accountFlag))
	if err != nil {
		return err
	}

	printRespJSON(status)
	return nil
}

func queryBalance(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}

	resp, err := lc.QueryBalance(context.Background(), ctx.String(tokenFlag), ctx.String(accountFlag))
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func queryEvents(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}

	events, err := lc.QueryEvents(context.Background(), ctx.Uint64(fromFlag), ctx.Uint64(limitFlag))
	if err != nil {
		return err
	}

	printRespJSON(events)
	return nil
}
