package service

import (
	"errors"
	"net/http"

	errorsmod "cosmossdk.io/errors"

	"github.com/babylonchain/staking-ledger/ledger"
	"github.com/babylonchain/staking-ledger/tokencontroller"
)

const ModuleName = "api"

var (
	ErrInvalidRequest = errorsmod.Register(ModuleName, 2, "invalid request")
	ErrUnknownAccount = errorsmod.Register(ModuleName, 3, "unknown account")
)

// httpStatus maps a handler error to the status code of the response.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrUnknownAccount), errors.Is(err, tokencontroller.ErrUnknownToken):
		return http.StatusNotFound
	}

	codespace, _, _ := errorsmod.ABCIInfo(err, false)
	switch codespace {
	case ledger.ModuleName, tokencontroller.ModuleName, ModuleName:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
