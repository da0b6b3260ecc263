package types

import (
	"time"
)

// PercentDenominator is the divisor applied to RewardPercentage.
const PercentDenominator = 100

type Settings struct {
	// Reference of the token deposited as principal
	StakingToken string `json:"staking_token"`
	// Reference of the token paid out as reward
	RewardToken string `json:"reward_token"`

	// Percentage of the staked amount paid as reward, not capped at 100
	RewardPercentage uint64 `json:"reward_percentage"`
	// Time that must pass after the last stake before a claim
	ClaimFrozenTime time.Duration `json:"claim_frozen_time"`
	// Time that must pass after the last stake before an unstake
	UnstakeFrozenTime time.Duration `json:"unstake_frozen_time"`

	Initialized bool `json:"initialized"`
}

// ClaimableAt returns the first instant a claim is allowed for a stake made at t.
func (s *Settings) ClaimableAt(t time.Time) time.Time {
	return t.Add(s.ClaimFrozenTime)
}

// UnstakableAt returns the first instant an unstake is allowed for a stake made at t.
func (s *Settings) UnstakableAt(t time.Time) time.Time {
	return t.Add(s.UnstakeFrozenTime)
}
