package tokencontroller

import (
	errorsmod "cosmossdk.io/errors"
)

const ModuleName = "tokencontroller"

var (
	ErrInsufficientBalance   = errorsmod.Register(ModuleName, 2, "transfer amount exceeds balance")
	ErrInvalidTransferAmount = errorsmod.Register(ModuleName, 3, "transfer amount must not be negative")
	ErrUnknownToken          = errorsmod.Register(ModuleName, 4, "unknown token")
	ErrDuplicateToken        = errorsmod.Register(ModuleName, 5, "token already registered")
	ErrSupplyOverflow        = errorsmod.Register(ModuleName, 6, "token supply overflow")
	ErrSelfTransfer          = errorsmod.Register(ModuleName, 7, "sender and recipient are the same account")
)
