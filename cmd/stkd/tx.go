package main

import (
	"context"

	"github.com/urfave/cli"
)

var txCommands = []cli.Command{
	{
		Name:  "stake",
		Usage: "Deposit staking tokens and restart both frozen times.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.StringFlag{Name: accountFlag, Usage: "The staking account", Required: true},
			cli.StringFlag{Name: amountFlag, Usage: "The amount to stake", Required: true},
		},
		Action: stake,
	},
	{
		Name:  "unstake",
		Usage: "Withdraw the whole staked amount.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.StringFlag{Name: accountFlag, Usage: "The staking account", Required: true},
		},
		Action: unstake,
	},
	{
		Name:  "claim",
		Usage: "Collect the reward on the current staked amount.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.StringFlag{Name: accountFlag, Usage: "The staking account", Required: true},
		},
		Action: claim,
	},
}

func stake(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx)
	if err != nil {
		return err
	}

	status, err := lc.Stake(context.Background(), ctx.String(accountFlag), amount)
	if err != nil {
		return err
	}

	printRespJSON(status)
	return nil
}

func unstake(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}

	status, err := lc.Unstake(context.Background(), ctx.String(accountFlag))
	if err != nil {
		return err
	}

	printRespJSON(status)
	return nil
}

func claim(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}

	status, err := lc.Claim(context.Background(), ctx.String(accountFlag))
	if err != nil {
		return err
	}

	printRespJSON(status)
	return nil
}
