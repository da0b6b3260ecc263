package e2etest

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/ledger"
	"github.com/babylonchain/staking-ledger/types"
)

var (
	staker        = "0xstaker"
	stakingAmount = int64(20000)
)

// TestStakingLifeCycle tests the whole life cycle of a stake
// deposit -> frozen claim -> reward claim -> frozen unstake -> withdrawal
func TestStakingLifeCycle(t *testing.T) {
	tm := StartManager(t)
	defer tm.Stop(t)
	ctx := context.Background()

	tm.FundAccount(t, staker, stakingAmount, stakingAmount)

	status, err := tm.Client.Stake(ctx, staker, sdkmath.NewInt(stakingAmount))
	require.NoError(t, err)
	require.True(t, status.PendingReward.Equal(sdkmath.NewInt(stakingAmount/10)))
	tm.RequireBalance(t, stakingToken, staker, 0)

	_, err = tm.Client.Claim(ctx, staker)
	require.ErrorIs(t, err, ledger.ErrClaimCooldownActive)
	_, err = tm.Client.Unstake(ctx, staker)
	require.ErrorIs(t, err, ledger.ErrUnstakeCooldownActive)

	require.Eventually(t, func() bool {
		_, err := tm.Client.Claim(ctx, staker)
		return err == nil
	}, eventuallyWaitTimeOut, eventuallyPollTime)
	tm.RequireBalance(t, rewardToken, staker, stakingAmount/10)

	_, err = tm.Client.Claim(ctx, staker)
	require.ErrorIs(t, err, ledger.ErrAlreadyClaimed)

	require.Eventually(t, func() bool {
		_, err := tm.Client.Unstake(ctx, staker)
		return err == nil
	}, eventuallyWaitTimeOut, eventuallyPollTime)
	tm.RequireBalance(t, stakingToken, staker, stakingAmount)

	_, err = tm.Client.Unstake(ctx, staker)
	require.ErrorIs(t, err, ledger.ErrNothingStaked)

	events, err := tm.Client.QueryEvents(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, []types.EventType{types.EventStaked, types.EventClaimed, types.EventUnstaked},
		[]types.EventType{events[0].Type, events[1].Type, events[2].Type})
}

// TestRestartKeepsStakes tests that records, settings and balances survive
// a daemon restart
func TestRestartKeepsStakes(t *testing.T) {
	tm := StartManager(t)
	defer tm.Stop(t)
	ctx := context.Background()

	tm.FundAccount(t, staker, stakingAmount, stakingAmount)
	_, err := tm.Client.Stake(ctx, staker, sdkmath.NewInt(stakingAmount/2))
	require.NoError(t, err)

	_, err = tm.Client.ChangeSettings(ctx, &types.ChangeSettingsRequest{
		Caller:            admin,
		RewardPercentage:  40,
		ClaimFrozenTime:   "0",
		UnstakeFrozenTime: "0",
	})
	require.NoError(t, err)

	tm.Restart(t)

	status, err := tm.Client.QueryStatus(ctx, staker)
	require.NoError(t, err)
	require.True(t, status.StakedAmount.Equal(sdkmath.NewInt(stakingAmount/2)))
	require.True(t, status.PendingReward.Equal(sdkmath.NewInt(stakingAmount/5)))
	require.True(t, status.CanClaim)

	_, err = tm.Client.Claim(ctx, staker)
	require.NoError(t, err)
	tm.RequireBalance(t, rewardToken, staker, stakingAmount/5)
	tm.RequireBalance(t, stakingToken, staker, stakingAmount/2)
}
