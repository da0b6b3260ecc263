package ledger_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/access"
	"github.com/babylonchain/staking-ledger/ledger"
	"github.com/babylonchain/staking-ledger/testutil"
	"github.com/babylonchain/staking-ledger/types"
)

type failingSettingsStore struct{}

func (failingSettingsStore) LoadSettings() (*types.Settings, error) {
	return nil, nil
}

func (failingSettingsStore) SaveSettings(*types.Settings) error {
	return errors.New("read-only")
}

func TestInitializeOnce(t *testing.T) {
	sc, err := ledger.NewSettingsController(access.NewAdminSet(owner), nil, zap.NewNop())
	require.NoError(t, err)
	require.False(t, sc.IsInitialized())

	err = sc.Initialize(staker, stakingToken, rewardToken, 20, 10*time.Minute, 5*time.Minute)
	require.NoError(t, err)
	require.True(t, sc.IsInitialized())

	expected := types.Settings{
		StakingToken:      stakingToken,
		RewardToken:       rewardToken,
		RewardPercentage:  20,
		ClaimFrozenTime:   5 * time.Minute,
		UnstakeFrozenTime: 10 * time.Minute,
		Initialized:       true,
	}
	require.Equal(t, expected, sc.Settings())

	for i := 0; i < 3; i++ {
		err = sc.Initialize(owner, "OTHER", "OTHER", 99, time.Hour, time.Hour)
		require.ErrorIs(t, err, ledger.ErrAlreadyInitialized)
		require.Equal(t, expected, sc.Settings())
	}
}

func TestInitializeAcceptsAnyNumbers(t *testing.T) {
	for _, pct := range []uint64{0, 100, 1000000} {
		sc, err := ledger.NewSettingsController(access.NewAdminSet(owner), nil, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, sc.Initialize(owner, stakingToken, stakingToken, pct, 0, 0))
		require.Equal(t, pct, sc.Settings().RewardPercentage)
	}
}

func TestChangeSettings(t *testing.T) {
	sc, err := ledger.NewSettingsController(testutil.PrepareMockedAdminChecker(t, owner), nil, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sc.Initialize(owner, stakingToken, rewardToken, rewardPercentage, frozenTime, frozenTime))

	require.NoError(t, sc.ChangeSettings(owner, 40, 5*time.Second, 8*time.Second))
	settings := sc.Settings()
	require.Equal(t, uint64(40), settings.RewardPercentage)
	require.Equal(t, 5*time.Second, settings.ClaimFrozenTime)
	require.Equal(t, 8*time.Second, settings.UnstakeFrozenTime)
	require.Equal(t, stakingToken, settings.StakingToken)
	require.True(t, settings.Initialized)
}

func FuzzChangeSettingsUnauthorized(f *testing.F) {
	testutil.AddRandomSeedsToFuzzer(f, 10)
	f.Fuzz(func(t *testing.T, seed int64) {
		r := rand.New(rand.NewSource(seed))

		sc, err := ledger.NewSettingsController(testutil.PrepareMockedAdminChecker(t, owner), nil, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, sc.Initialize(owner, stakingToken, rewardToken, rewardPercentage, frozenTime, frozenTime))
		before := sc.Settings()

		caller := testutil.GenRandomAccount(r)
		err = sc.ChangeSettings(caller, uint64(r.Int63()), testutil.GenRandomFrozenTime(r), testutil.GenRandomFrozenTime(r))
		require.ErrorIs(t, err, ledger.ErrUnauthorized)
		require.Equal(t, before, sc.Settings())
	})
}

func TestChangeSettingsBeforeInitialize(t *testing.T) {
	sc, err := ledger.NewSettingsController(testutil.PrepareMockedAdminChecker(t), nil, zap.NewNop())
	require.NoError(t, err)

	// the uninitialized settings are admin-gated as well
	err = sc.ChangeSettings(owner, 40, time.Second, time.Second)
	require.ErrorIs(t, err, ledger.ErrUnauthorized)
	require.Equal(t, types.Settings{}, sc.Settings())
}

func TestSettingsWriteFailure(t *testing.T) {
	sc, err := ledger.NewSettingsController(access.NewAdminSet(owner), failingSettingsStore{}, zap.NewNop())
	require.NoError(t, err)

	err = sc.Initialize(owner, stakingToken, rewardToken, rewardPercentage, frozenTime, frozenTime)
	require.Error(t, err)
	require.False(t, sc.IsInitialized())

	err = sc.ChangeSettings(owner, 40, time.Second, time.Second)
	require.Error(t, err)
	require.Equal(t, types.Settings{}, sc.Settings())
}
