package ledger

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/access"
	"github.com/babylonchain/staking-ledger/types"
)

// SettingsStore persists the settings singleton.
type SettingsStore interface {
	// LoadSettings returns nil settings if none were saved yet
	LoadSettings() (*types.Settings, error)
	SaveSettings(settings *types.Settings) error
}

// SettingsController owns the tunable parameters of the ledger and the
// one-time initialization guard.
type SettingsController struct {
	mu       sync.RWMutex
	settings types.Settings

	admins access.AdminChecker
	st     SettingsStore

	logger *zap.Logger
}

// NewSettingsController creates an uninitialized controller, or restores the
// persisted settings if st holds any. st may be nil.
func NewSettingsController(admins access.AdminChecker, st SettingsStore, logger *zap.Logger) (*SettingsController, error) {
	if admins == nil {
		return nil, fmt.Errorf("nil admin checker")
	}

	sc := &SettingsController{
		admins: admins,
		st:     st,
		logger: logger,
	}

	if st != nil {
		settings, err := st.LoadSettings()
		if err != nil {
			return nil, err
		}
		if settings != nil {
			sc.settings = *settings
			logger.Info("restored ledger settings",
				zap.Bool("initialized", settings.Initialized),
				zap.Uint64("reward_percentage", settings.RewardPercentage),
			)
		}
	}

	return sc, nil
}

// Initialize binds the token references and the initial tunables. It
// succeeds exactly once and performs no validation of the numbers.
func (sc *SettingsController) Initialize(
	caller string,
	stakingToken string,
	rewardToken string,
	rewardPercentage uint64,
	unstakeFrozenTime time.Duration,
	claimFrozenTime time.Duration,
) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.settings.Initialized {
		sc.logger.Debug("rejected repeated initialization", zap.String("caller", caller))
		return ErrAlreadyInitialized
	}

	updated := types.Settings{
		StakingToken:      stakingToken,
		RewardToken:       rewardToken,
		RewardPercentage:  rewardPercentage,
		ClaimFrozenTime:   claimFrozenTime,
		UnstakeFrozenTime: unstakeFrozenTime,
		Initialized:       true,
	}
	if err := sc.save(&updated); err != nil {
		return err
	}

	sc.logger.Info("initialized ledger settings",
		zap.String("caller", caller),
		zap.String("staking_token", stakingToken),
		zap.String("reward_token", rewardToken),
		zap.Uint64("reward_percentage", rewardPercentage),
		zap.Duration("claim_frozen_time", claimFrozenTime),
		zap.Duration("unstake_frozen_time", unstakeFrozenTime),
	)

	return nil
}

// ChangeSettings overwrites all three tunables at once. Only administrators
// may call it. The change is visible to the very next ledger operation.
func (sc *SettingsController) ChangeSettings(
	caller string,
	rewardPercentage uint64,
	claimFrozenTime time.Duration,
	unstakeFrozenTime time.Duration,
) error {
	if !sc.admins.IsAdmin(caller) {
		sc.logger.Debug("rejected settings change", zap.String("caller", caller))
		return ErrUnauthorized.Wrapf("caller %s", caller)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	updated := sc.settings
	updated.RewardPercentage = rewardPercentage
	updated.ClaimFrozenTime = claimFrozenTime
	updated.UnstakeFrozenTime = unstakeFrozenTime
	if err := sc.save(&updated); err != nil {
		return err
	}

	sc.logger.Info("changed ledger settings",
		zap.String("caller", caller),
		zap.Uint64("reward_percentage", rewardPercentage),
		zap.Duration("claim_frozen_time", claimFrozenTime),
		zap.Duration("unstake_frozen_time", unstakeFrozenTime),
	)

	return nil
}

// Settings returns a copy of the current settings.
func (sc *SettingsController) Settings() types.Settings {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.settings
}

// IsInitialized reports whether Initialize has succeeded.
func (sc *SettingsController) IsInitialized() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.settings.Initialized
}

// save must be called with the lock held.
func (sc *SettingsController) save(updated *types.Settings) error {
	if sc.st != nil {
		if err := sc.st.SaveSettings(updated); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	sc.settings = *updated

	return nil
}
