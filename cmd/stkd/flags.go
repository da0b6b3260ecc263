package main

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/client"
)

const (
	homeFlag              = "home"
	forceFlag             = "force"
	daemonAddressFlag     = "daemon-address"
	callerFlag            = "caller"
	accountFlag           = "account"
	amountFlag            = "amount"
	tokenFlag             = "token"
	toFlag                = "to"
	stakingTokenFlag      = "staking-token"
	rewardTokenFlag       = "reward-token"
	rewardPercentageFlag  = "reward-percentage"
	claimFrozenTimeFlag   = "claim-frozen-time"
	unstakeFrozenTimeFlag = "unstake-frozen-time"
	fromFlag              = "from"
	limitFlag             = "limit"

	defaultDaemonAddress = "127.0.0.1:8080"
)

var daemonAddressCliFlag = cli.StringFlag{
	Name:  daemonAddressFlag,
	Usage: "The address of the ledger daemon API",
	Value: defaultDaemonAddress,
}

func newClient(ctx *cli.Context) (*client.LedgerClient, error) {
	return client.NewLedgerClient(ctx.String(daemonAddressFlag), 0, zap.NewNop())
}

func parseAmount(ctx *cli.Context) (sdkmath.Int, error) {
	raw := ctx.String(amountFlag)
	amount, ok := sdkmath.NewIntFromString(raw)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Printf("%s\n", jsonBytes)
}
