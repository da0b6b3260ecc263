package types

import (
	sdkmath "cosmossdk.io/math"
)

// The request and response bodies of the ledger HTTP API. Frozen times are
// sent as strings holding either seconds or a Go duration.

type InitializeRequest struct {
	Caller            string `json:"caller"`
	StakingToken      string `json:"staking_token"`
	RewardToken       string `json:"reward_token"`
	RewardPercentage  uint64 `json:"reward_percentage"`
	UnstakeFrozenTime string `json:"unstake_frozen_time"`
	ClaimFrozenTime   string `json:"claim_frozen_time"`
}

type ChangeSettingsRequest struct {
	Caller            string `json:"caller"`
	RewardPercentage  uint64 `json:"reward_percentage"`
	ClaimFrozenTime   string `json:"claim_frozen_time"`
	UnstakeFrozenTime string `json:"unstake_frozen_time"`
}

type StakeRequest struct {
	Account string      `json:"account"`
	Amount  sdkmath.Int `json:"amount"`
}

type AccountRequest struct {
	Account string `json:"account"`
}

type MintRequest struct {
	Caller string      `json:"caller"`
	To     string      `json:"to"`
	Amount sdkmath.Int `json:"amount"`
}

type BalanceResponse struct {
	Token   string      `json:"token"`
	Account string      `json:"account"`
	Balance sdkmath.Int `json:"balance"`
}

type EventsResponse struct {
	Events []*Event `json:"events"`
}

// ErrorResponse carries a registered error as codespace and code so that
// the receiving side can restore it.
type ErrorResponse struct {
	Codespace string `json:"codespace"`
	Code      uint32 `json:"code"`
	Log       string `json:"log"`
}
