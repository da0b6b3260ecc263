package tokencontroller

import (
	"sync"

	sdkmath "cosmossdk.io/math"
	"go.uber.org/zap"
)

// TokenController moves a fungible token in and out of the ledger's custody.
// Every call either moves the full amount or fails without effect.
type TokenController interface {
	// TransferIn pulls amount from the given account into custody
	TransferIn(from string, amount sdkmath.Int) error

	// TransferOut pays amount from custody to the given account
	TransferOut(to string, amount sdkmath.Int) error

	BalanceOf(account string) (sdkmath.Int, error)
}

// Registry resolves the token references bound at initialization.
type Registry interface {
	Token(ref string) (TokenController, error)
}

var _ Registry = &StaticRegistry{}

type StaticRegistry struct {
	mu     sync.RWMutex
	tokens map[string]TokenController
	logger *zap.Logger
}

func NewStaticRegistry(logger *zap.Logger) *StaticRegistry {
	return &StaticRegistry{
		tokens: make(map[string]TokenController),
		logger: logger,
	}
}

func (r *StaticRegistry) Register(ref string, tc TokenController) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[ref]; ok {
		return ErrDuplicateToken.Wrapf("ref %s", ref)
	}
	r.tokens[ref] = tc

	r.logger.Debug("registered token", zap.String("token", ref))

	return nil
}

func (r *StaticRegistry) Token(ref string) (TokenController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tc, ok := r.tokens[ref]
	if !ok {
		return nil, ErrUnknownToken.Wrapf("ref %s", ref)
	}

	return tc, nil
}
