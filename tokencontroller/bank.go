package tokencontroller

import (
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/util"
)

// BalanceStore persists the balances of a Bank. SaveBalances must write all
// given balances atomically.
type BalanceStore interface {
	SaveBalances(token string, balances map[string]sdkmath.Int) error
	LoadBalances(token string) (map[string]sdkmath.Int, error)
}

var _ TokenController = &Bank{}

// Bank is an in-process fungible token whose custody account is held by the
// ledger. It is the daemon's stand-in for an external token contract.
type Bank struct {
	mu       sync.Mutex
	symbol   string
	custody  string
	balances map[string]sdkmath.Int
	supply   sdkmath.Int

	st     BalanceStore
	logger *zap.Logger
}

// NewBank creates a bank for the given token symbol. If st is not nil the
// balances are restored from it and every change is written through.
func NewBank(symbol, custody string, st BalanceStore, logger *zap.Logger) (*Bank, error) {
	if symbol == "" {
		return nil, fmt.Errorf("empty token symbol")
	}
	if custody == "" {
		return nil, fmt.Errorf("empty custody account")
	}

	b := &Bank{
		symbol:   symbol,
		custody:  custody,
		balances: make(map[string]sdkmath.Int),
		supply:   sdkmath.ZeroInt(),
		st:       st,
		logger:   logger,
	}

	if st != nil {
		balances, err := st.LoadBalances(symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to load balances of %s: %w", symbol, err)
		}
		for acc, bal := range balances {
			supply, err := util.CheckedAdd(b.supply, bal)
			if err != nil {
				return nil, ErrSupplyOverflow.Wrapf("%s: %v", symbol, err)
			}
			b.supply = supply
			b.balances[acc] = bal
		}
	}

	return b, nil
}

func (b *Bank) Symbol() string {
	return b.symbol
}

func (b *Bank) Custody() string {
	return b.custody
}

func (b *Bank) TransferIn(from string, amount sdkmath.Int) error {
	return b.Transfer(from, b.custody, amount)
}

func (b *Bank) TransferOut(to string, amount sdkmath.Int) error {
	return b.Transfer(b.custody, to, amount)
}

func (b *Bank) BalanceOf(account string) (sdkmath.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.balanceOf(account), nil
}

func (b *Bank) TotalSupply() sdkmath.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.supply
}

// Transfer moves amount from one account to another.
func (b *Bank) Transfer(from, to string, amount sdkmath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidTransferAmount.Wrapf("%s %s", amount, b.symbol)
	}

	// moving tokens onto the same account would report a transfer that
	// changed no balance
	if from == to && amount.IsPositive() {
		return ErrSelfTransfer.Wrapf("%s %s by %s", amount, b.symbol, from)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	fromBal := b.balanceOf(from)
	if fromBal.LT(amount) {
		return ErrInsufficientBalance.Wrapf("%s has %s %s, needs %s", from, fromBal, b.symbol, amount)
	}
	if amount.IsZero() {
		return nil
	}

	// the sum cannot exceed the supply, which is bounded
	updates := map[string]sdkmath.Int{
		from: fromBal.Sub(amount),
		to:   b.balanceOf(to).Add(amount),
	}
	if err := b.commit(updates); err != nil {
		return err
	}

	b.logger.Debug("transferred tokens",
		zap.String("token", b.symbol),
		zap.String("from", from),
		zap.String("to", to),
		zap.String("amount", amount.String()),
	)

	return nil
}

// Mint creates amount new tokens for the given account.
func (b *Bank) Mint(to string, amount sdkmath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidTransferAmount.Wrapf("%s %s", amount, b.symbol)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	supply, err := util.CheckedAdd(b.supply, amount)
	if err != nil {
		return ErrSupplyOverflow.Wrapf("%s: %v", b.symbol, err)
	}

	if err := b.commit(map[string]sdkmath.Int{to: b.balanceOf(to).Add(amount)}); err != nil {
		return err
	}
	b.supply = supply

	b.logger.Info("minted tokens",
		zap.String("token", b.symbol),
		zap.String("to", to),
		zap.String("amount", amount.String()),
	)

	return nil
}

func (b *Bank) balanceOf(account string) sdkmath.Int {
	bal, ok := b.balances[account]
	if !ok {
		return sdkmath.ZeroInt()
	}
	return bal
}

// commit persists the updates before applying them in memory.
func (b *Bank) commit(updates map[string]sdkmath.Int) error {
	if b.st != nil {
		if err := b.st.SaveBalances(b.symbol, updates); err != nil {
			return fmt.Errorf("failed to save balances of %s: %w", b.symbol, err)
		}
	}
	for acc, bal := range updates {
		b.balances[acc] = bal
	}

	return nil
}
