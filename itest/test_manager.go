package e2etest

import (
	"context"
	"os"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/client"
	stkcfg "github.com/babylonchain/staking-ledger/config"
	"github.com/babylonchain/staking-ledger/ledger/service"
)

var (
	eventuallyWaitTimeOut = 1 * time.Minute
	eventuallyPollTime    = 250 * time.Millisecond

	admin            = "0xadmin"
	stakingToken     = "STK"
	rewardToken      = "RWRD"
	rewardPercentage = uint64(10)
	claimFrozenTime  = 2 * time.Second
	unstakeFrozen    = 4 * time.Second
)

type TestManager struct {
	Config *stkcfg.Config
	App    *service.LedgerApp
	Client *client.LedgerClient
	logger *zap.Logger

	baseDir string
}

// StartManager runs a ledger daemon with its API on a free local port and
// waits until it answers.
func StartManager(t *testing.T) *TestManager {
	testDir, err := baseDir("stkd-e2e-test")
	require.NoError(t, err)

	cfg := stkcfg.DefaultConfigWithHomePath(testDir)
	cfg.Admins = []string{admin}
	cfg.API.Port = freePort(t)
	cfg.Ledger.StakingToken = stakingToken
	cfg.Ledger.RewardToken = rewardToken
	cfg.Ledger.AutoInitialize = true
	cfg.Ledger.RewardPercentage = rewardPercentage
	cfg.Ledger.ClaimFrozenTime = stkcfg.FrozenTime(claimFrozenTime)
	cfg.Ledger.UnstakeFrozenTime = stkcfg.FrozenTime(unstakeFrozen)
	require.NoError(t, cfg.Validate())

	tm := &TestManager{
		Config:  &cfg,
		logger:  zap.NewNop(),
		baseDir: testDir,
	}
	tm.startApp(t)

	return tm
}

func (tm *TestManager) startApp(t *testing.T) {
	app, err := service.NewLedgerApp(tm.Config, tm.logger)
	require.NoError(t, err)
	go app.API.Start()

	addr, err := tm.Config.API.Address()
	require.NoError(t, err)
	lc, err := client.NewLedgerClient(addr, 5*time.Second, tm.logger)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := lc.QuerySettings(context.Background())
		return err == nil
	}, eventuallyWaitTimeOut, eventuallyPollTime)

	tm.App = app
	tm.Client = lc
}

// Restart stops the daemon and starts a new one on the same database.
func (tm *TestManager) Restart(t *testing.T) {
	tm.stopApp(t)
	tm.startApp(t)
}

func (tm *TestManager) stopApp(t *testing.T) {
	tm.App.API.Stop()
	require.NoError(t, tm.App.Close())
}

func (tm *TestManager) Stop(t *testing.T) {
	tm.stopApp(t)
	require.NoError(t, os.RemoveAll(tm.baseDir))
}

// FundAccount mints staking tokens to account and reward tokens to the
// custody reserve.
func (tm *TestManager) FundAccount(t *testing.T, account string, stake, reserve int64) {
	ctx := context.Background()

	_, err := tm.Client.Mint(ctx, stakingToken, admin, account, sdkmath.NewInt(stake))
	require.NoError(t, err)
	_, err = tm.Client.Mint(ctx, rewardToken, admin, tm.Config.Ledger.CustodyAccount, sdkmath.NewInt(reserve))
	require.NoError(t, err)
}

func (tm *TestManager) RequireBalance(t *testing.T, token, account string, expected int64) {
	resp, err := tm.Client.QueryBalance(context.Background(), token, account)
	require.NoError(t, err)
	require.True(t, resp.Balance.Equal(sdkmath.NewInt(expected)),
		"balance of %s in %s is %s, expected %d", account, token, resp.Balance, expected)
}
