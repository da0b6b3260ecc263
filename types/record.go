package types

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

// StakeRecord is the ledger entry of a single account. It is created on the
// first stake and is never removed, even when the balance drops to zero.
type StakeRecord struct {
	Account string `json:"account"`
	// The principal currently deposited by the account
	StakedAmount sdkmath.Int `json:"staked_amount"`
	// The time of the most recent stake, both cooldowns are measured from it
	StakeTimestamp time.Time `json:"stake_timestamp"`
	// Whether the reward on the current staked amount has been paid out
	RewardClaimed bool `json:"reward_claimed"`
}

func NewStakeRecord(account string) *StakeRecord {
	return &StakeRecord{
		Account:      account,
		StakedAmount: sdkmath.ZeroInt(),
	}
}

func (r *StakeRecord) HasStake() bool {
	return !r.StakedAmount.IsNil() && r.StakedAmount.IsPositive()
}

func (r *StakeRecord) Copy() *StakeRecord {
	c := *r
	return &c
}

// StakeStatus is a read-only view of a record against the live settings.
type StakeStatus struct {
	Account        string      `json:"account"`
	StakedAmount   sdkmath.Int `json:"staked_amount"`
	StakeTimestamp time.Time   `json:"stake_timestamp"`
	RewardClaimed  bool        `json:"reward_claimed"`
	// The reward a claim would pay right now, zero once claimed
	PendingReward sdkmath.Int `json:"pending_reward"`
	ClaimableAt   time.Time   `json:"claimable_at"`
	UnstakableAt  time.Time   `json:"unstakable_at"`
	CanClaim      bool        `json:"can_claim"`
	CanUnstake    bool        `json:"can_unstake"`
}
