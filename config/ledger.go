package config

import (
	"fmt"
	"time"

	"github.com/babylonchain/staking-ledger/util"
)

const (
	defaultCustodyAccount    = "staking-ledger"
	defaultStakingToken      = "STK"
	defaultRewardToken       = "RWRD"
	defaultRewardPercentage  = uint64(10)
	defaultClaimFrozenTime   = FrozenTime(10 * time.Minute)
	defaultUnstakeFrozenTime = FrozenTime(10 * time.Minute)
)

// LedgerConfig holds the custody setup of the daemon and the settings used
// when it initializes the ledger by itself.
type LedgerConfig struct {
	CustodyAccount string `long:"custodyaccount" description:"The account holding the staked tokens and the reward reserve"`
	StakingToken   string `long:"stakingtoken" description:"The symbol of the token deposited as principal"`
	RewardToken    string `long:"rewardtoken" description:"The symbol of the token paid as reward, may equal the staking token"`

	AutoInitialize    bool          `long:"autoinitialize" description:"Initialize the ledger with the settings below on start if it is not initialized yet"`
	RewardPercentage  uint64        `long:"rewardpercentage" description:"Percentage of the staked amount paid as reward"`
	ClaimFrozenTime   FrozenTime `long:"claimfrozentime" description:"Time after the last stake before the reward can be claimed, in seconds or as a duration"`
	UnstakeFrozenTime FrozenTime `long:"unstakefrozentime" description:"Time after the last stake before the principal can be unstaked, in seconds or as a duration"`
}

// FrozenTime is a duration option that also takes a bare number of seconds.
type FrozenTime time.Duration

func (f *FrozenTime) UnmarshalFlag(value string) error {
	d, err := util.ParseFrozenTime(value)
	if err != nil {
		return err
	}
	*f = FrozenTime(d)
	return nil
}

func (f FrozenTime) MarshalFlag() (string, error) {
	return time.Duration(f).String(), nil
}

func (f FrozenTime) Duration() time.Duration {
	return time.Duration(f)
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.CustodyAccount == "" {
		return fmt.Errorf("empty custody account")
	}
	if cfg.StakingToken == "" || cfg.RewardToken == "" {
		return fmt.Errorf("both the staking and the reward token must be set")
	}
	if cfg.ClaimFrozenTime < 0 || cfg.UnstakeFrozenTime < 0 {
		return fmt.Errorf("negative frozen time")
	}

	return nil
}

// Tokens returns the distinct token symbols handled by the daemon.
func (cfg *LedgerConfig) Tokens() []string {
	if cfg.StakingToken == cfg.RewardToken {
		return []string{cfg.StakingToken}
	}
	return []string{cfg.StakingToken, cfg.RewardToken}
}

func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		CustodyAccount:    defaultCustodyAccount,
		StakingToken:      defaultStakingToken,
		RewardToken:       defaultRewardToken,
		RewardPercentage:  defaultRewardPercentage,
		ClaimFrozenTime:   defaultClaimFrozenTime,
		UnstakeFrozenTime: defaultUnstakeFrozenTime,
	}
}
