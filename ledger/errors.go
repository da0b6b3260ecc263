package ledger

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
)

const ModuleName = "ledger"

var (
	ErrInvalidAmount         = errorsmod.Register(ModuleName, 2, "amount of tokens to stake should be positive")
	ErrNothingStaked         = errorsmod.Register(ModuleName, 3, "no tokens staked")
	ErrClaimCooldownActive   = errorsmod.Register(ModuleName, 4, "claim is frozen, please try later")
	ErrUnstakeCooldownActive = errorsmod.Register(ModuleName, 5, "unstake is frozen, please try later")
	ErrAlreadyClaimed        = errorsmod.Register(ModuleName, 6, "nothing to claim")
	ErrUnauthorized          = errorsmod.Register(ModuleName, 7, "caller is not an administrator")
	ErrAlreadyInitialized    = errorsmod.Register(ModuleName, 8, "already initialized")
	ErrNotInitialized        = errorsmod.Register(ModuleName, 9, "not initialized")
	ErrTransferFailed        = errorsmod.Register(ModuleName, 10, "token transfer failed")
	ErrAmountOverflow        = errorsmod.Register(ModuleName, 11, "amount overflow")
)

// IsCooldownActive reports whether err is either time lock rejection.
func IsCooldownActive(err error) bool {
	return errors.Is(err, ErrClaimCooldownActive) || errors.Is(err, ErrUnstakeCooldownActive)
}
