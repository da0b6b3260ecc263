package store_test

import (
	"path/filepath"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/store"
	"github.com/babylonchain/staking-ledger/types"
)

func newTestStore(t *testing.T) *store.Store {
	st, err := store.NewStore(filepath.Join(t.TempDir(), "data", store.DatabaseFileName))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}

func TestSettingsRoundTrip(t *testing.T) {
	st := newTestStore(t)

	loaded, err := st.LoadSettings()
	require.NoError(t, err)
	require.Nil(t, loaded)

	settings := &types.Settings{
		StakingToken:      "STK",
		RewardToken:       "RWRD",
		RewardPercentage:  10,
		ClaimFrozenTime:   10 * time.Minute,
		UnstakeFrozenTime: 20 * time.Minute,
		Initialized:       true,
	}
	require.NoError(t, st.SaveSettings(settings))

	loaded, err = st.LoadSettings()
	require.NoError(t, err)
	require.Equal(t, settings, loaded)
}

func TestRecordsOverwrite(t *testing.T) {
	st := newTestStore(t)
	now := time.Unix(1700000000, 0).UTC()

	rec := &types.StakeRecord{
		Account:        "staker",
		StakedAmount:   sdkmath.NewInt(150),
		StakeTimestamp: now,
	}
	require.NoError(t, st.SaveRecord(rec))

	rec.StakedAmount = sdkmath.NewInt(300)
	rec.RewardClaimed = true
	require.NoError(t, st.SaveRecord(rec))
	require.NoError(t, st.SaveRecord(types.NewStakeRecord("owner")))

	records, err := st.LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	// bolt iterates keys in byte order
	require.Equal(t, "owner", records[0].Account)
	require.True(t, records[0].StakedAmount.IsZero())
	require.Equal(t, "staker", records[1].Account)
	require.True(t, records[1].StakedAmount.Equal(sdkmath.NewInt(300)))
	require.True(t, records[1].RewardClaimed)
	require.True(t, records[1].StakeTimestamp.Equal(now))

	require.Error(t, st.SaveRecord(&types.StakeRecord{}))
}

func TestEventLog(t *testing.T) {
	st := newTestStore(t)

	for i := int64(1); i <= 5; i++ {
		ev := &types.Event{
			Type:    types.EventStaked,
			Account: "staker",
			Amount:  sdkmath.NewInt(i * 10),
		}
		require.NoError(t, st.SaveEvent(ev))
		require.Equal(t, uint64(i), ev.Seq)
	}

	all, err := st.LoadEvents(0, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	page, err := st.LoadEvents(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, uint64(2), page[0].Seq)
	require.Equal(t, uint64(3), page[1].Seq)
	require.True(t, page[1].Amount.Equal(sdkmath.NewInt(30)))
}

func TestBalances(t *testing.T) {
	st := newTestStore(t)

	balances, err := st.LoadBalances("STK")
	require.NoError(t, err)
	require.Empty(t, balances)

	require.NoError(t, st.SaveBalances("STK", map[string]sdkmath.Int{
		"owner":  sdkmath.NewInt(450),
		"ledger": sdkmath.NewInt(150),
	}))
	require.NoError(t, st.SaveBalances("STK", map[string]sdkmath.Int{
		"owner": sdkmath.NewInt(300),
	}))

	balances, err = st.LoadBalances("STK")
	require.NoError(t, err)
	require.Len(t, balances, 2)
	require.True(t, balances["owner"].Equal(sdkmath.NewInt(300)))
	require.True(t, balances["ledger"].Equal(sdkmath.NewInt(150)))

	other, err := st.LoadBalances("RWRD")
	require.NoError(t, err)
	require.Empty(t, other)
}
