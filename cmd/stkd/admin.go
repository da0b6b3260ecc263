package main

import (
	"context"

	"github.com/urfave/cli"

	"github.com/babylonchain/staking-ledger/types"
)

var adminCommands = []cli.Command{
	{
		Name:  "initialize",
		Usage: "Bind the token references and the initial settings, succeeds only once.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.StringFlag{Name: callerFlag, Usage: "The calling account", Required: true},
			cli.StringFlag{Name: stakingTokenFlag, Usage: "The token deposited as principal", Required: true},
			cli.StringFlag{Name: rewardTokenFlag, Usage: "The token paid as reward", Required: true},
			cli.Uint64Flag{Name: rewardPercentageFlag, Usage: "Percentage of the staked amount paid as reward"},
			cli.StringFlag{Name: unstakeFrozenTimeFlag, Usage: "Seconds or duration before an unstake is allowed", Value: "0"},
			cli.StringFlag{Name: claimFrozenTimeFlag, Usage: "Seconds or duration before a claim is allowed", Value: "0"},
		},
		Action: initializeLedger,
	},
	{
		Name:  "change-settings",
		Usage: "Replace the reward percentage and both frozen times, administrators only.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.StringFlag{Name: callerFlag, Usage: "The calling administrator", Required: true},
			cli.Uint64Flag{Name: rewardPercentageFlag, Usage: "Percentage of the staked amount paid as reward"},
			cli.StringFlag{Name: claimFrozenTimeFlag, Usage: "Seconds or duration before a claim is allowed", Required: true},
			cli.StringFlag{Name: unstakeFrozenTimeFlag, Usage: "Seconds or duration before an unstake is allowed", Required: true},
		},
		Action: changeSettings,
	},
	{
		Name:  "mint",
		Usage: "Mint custody tokens to an account, administrators only.",
		Flags: []cli.Flag{
			daemonAddressCliFlag,
			cli.StringFlag{Name: callerFlag, Usage: "The calling administrator", Required: true},
			cli.StringFlag{Name: tokenFlag, Usage: "The token to mint", Required: true},
			cli.StringFlag{Name: toFlag, Usage: "The receiving account", Required: true},
			cli.StringFlag{Name: amountFlag, Usage: "The amount to mint", Required: true},
		},
		Action: mint,
	},
}

func initializeLedger(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}

	settings, err := lc.Initialize(context.Background(), &types.InitializeRequest{
		Caller:            ctx.String(callerFlag),
		StakingToken:      ctx.String(stakingTokenFlag),
		RewardToken:       ctx.String(rewardTokenFlag),
		RewardPercentage:  ctx.Uint64(rewardPercentageFlag),
		UnstakeFrozenTime: ctx.String(unstakeFrozenTimeFlag),
		ClaimFrozenTime:   ctx.String(claimFrozenTimeFlag),
	})
	if err != nil {
		return err
	}

	printRespJSON(settings)
	return nil
}

func changeSettings(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}

	settings, err := lc.ChangeSettings(context.Background(), &types.ChangeSettingsRequest{
		Caller:            ctx.String(callerFlag),
		RewardPercentage:  ctx.Uint64(rewardPercentageFlag),
		ClaimFrozenTime:   ctx.String(claimFrozenTimeFlag),
		UnstakeFrozenTime: ctx.String(unstakeFrozenTimeFlag),
	})
	if err != nil {
		return err
	}

	printRespJSON(settings)
	return nil
}

func mint(ctx *cli.Context) error {
	lc, err := newClient(ctx)
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx)
	if err != nil {
		return err
	}

	resp, err := lc.Mint(context.Background(), ctx.String(tokenFlag), ctx.String(callerFlag), ctx.String(toFlag), amount)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
