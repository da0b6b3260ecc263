package ledger

import (
	"fmt"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/tokencontroller"
	"github.com/babylonchain/staking-ledger/types"
	"github.com/babylonchain/staking-ledger/util"
)

// RecordStore persists stake records.
type RecordStore interface {
	LoadRecords() ([]*types.StakeRecord, error)
	SaveRecord(rec *types.StakeRecord) error
}

// EventHandler receives every event right after the operation that emitted
// it succeeded. Handlers run while the ledger is locked and must not call
// back into it.
type EventHandler interface {
	HandleEvent(ev *types.Event)
}

// TransferError is returned when a token controller rejects a transfer. It
// matches ErrTransferFailed as well as the error of the token controller.
type TransferError struct {
	Token string
	Err   error
	// Set when the stored record could not be restored after the failed
	// transfer. The store then holds a change that never happened and must
	// be repaired before the ledger is restarted.
	RollbackErr error
}

func (e *TransferError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrTransferFailed.Error(), e.Token, e.Err.Error())
	if e.RollbackErr != nil {
		msg += fmt.Sprintf(" (failed to roll back record: %s)", e.RollbackErr.Error())
	}
	return msg
}

func (e *TransferError) Unwrap() []error {
	if e.RollbackErr != nil {
		return []error{ErrTransferFailed, e.Err, e.RollbackErr}
	}
	return []error{ErrTransferFailed, e.Err}
}

// Cause lets errorsmod.ABCIInfo report the ledger error code.
func (e *TransferError) Cause() error {
	return ErrTransferFailed
}

// Ledger keeps one stake record per account and moves tokens in and out of
// custody. All operations are serialized.
type Ledger struct {
	mu          sync.Mutex
	records     map[string]*types.StakeRecord
	totalStaked sdkmath.Int
	lastNow     time.Time

	sc     *SettingsController
	tokens tokencontroller.Registry
	st     RecordStore
	clock  Clock

	handlers []EventHandler

	logger *zap.Logger
}

// NewLedger creates a ledger reading its parameters from sc. If st is not nil
// the records are restored from it and every change is written through.
func NewLedger(
	sc *SettingsController,
	tokens tokencontroller.Registry,
	st RecordStore,
	clock Clock,
	logger *zap.Logger,
) (*Ledger, error) {
	if sc == nil || tokens == nil {
		return nil, fmt.Errorf("settings controller and token registry are required")
	}
	if clock == nil {
		clock = SystemClock{}
	}

	l := &Ledger{
		records:     make(map[string]*types.StakeRecord),
		totalStaked: sdkmath.ZeroInt(),
		sc:          sc,
		tokens:      tokens,
		st:          st,
		clock:       clock,
		logger:      logger,
	}

	if st != nil {
		records, err := st.LoadRecords()
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if err := l.restore(rec); err != nil {
				return nil, err
			}
		}
		logger.Info("restored stake records",
			zap.Int("num_records", len(records)),
			zap.String("total_staked", l.totalStaked.String()),
		)
	}
	totalValueLocked.Set(amountToFloat(l.totalStaked))

	return l, nil
}

func (l *Ledger) restore(rec *types.StakeRecord) error {
	if rec.StakedAmount.IsNil() {
		rec.StakedAmount = sdkmath.ZeroInt()
	}
	total, err := util.CheckedAdd(l.totalStaked, rec.StakedAmount)
	if err != nil {
		return ErrAmountOverflow.Wrapf("restoring record of %s: %v", rec.Account, err)
	}
	l.totalStaked = total
	l.records[rec.Account] = rec
	if rec.StakeTimestamp.After(l.lastNow) {
		l.lastNow = rec.StakeTimestamp
	}

	return nil
}

// Subscribe registers h for all future events.
func (l *Ledger) Subscribe(h EventHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.handlers = append(l.handlers, h)
}

// Stake pulls amount of the staking token from account into custody, adds it
// to the account's balance and restarts both cooldowns. It re-enables one
// reward claim on the new balance.
func (l *Ledger) Stake(account string, amount sdkmath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount.IsNil() || !amount.IsPositive() {
		return l.reject(opStake, account, ErrInvalidAmount.Wrapf("got %s", amount))
	}

	settings := l.sc.Settings()
	if !settings.Initialized {
		return l.reject(opStake, account, ErrNotInitialized)
	}

	tc, err := l.tokens.Token(settings.StakingToken)
	if err != nil {
		return l.reject(opStake, account, err)
	}

	prev := l.record(account)
	staked, err := util.CheckedAdd(prev.StakedAmount, amount)
	if err != nil {
		return l.reject(opStake, account, ErrAmountOverflow.Wrap(err.Error()))
	}
	total, err := util.CheckedAdd(l.totalStaked, amount)
	if err != nil {
		return l.reject(opStake, account, ErrAmountOverflow.Wrap(err.Error()))
	}

	now := l.now()
	updated := prev.Copy()
	updated.StakedAmount = staked
	updated.StakeTimestamp = now
	updated.RewardClaimed = false

	if err := l.commit(prev, updated, settings.StakingToken, func() error {
		return tc.TransferIn(account, amount)
	}); err != nil {
		return l.reject(opStake, account, err)
	}
	l.totalStaked = total

	l.logger.Info("staked tokens",
		zap.String("account", account),
		zap.String("amount", amount.String()),
		zap.String("staked_amount", staked.String()),
	)
	l.emit(types.EventStaked, account, amount, now)

	return nil
}

// Unstake pays the full balance of account back once the unstake cooldown
// has passed since the last stake.
func (l *Ledger) Unstake(account string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	settings := l.sc.Settings()
	if !settings.Initialized {
		return l.reject(opUnstake, account, ErrNotInitialized)
	}

	prev := l.record(account)
	if !prev.HasStake() {
		return l.reject(opUnstake, account, ErrNothingStaked)
	}

	now := l.now()
	unstakableAt := settings.UnstakableAt(prev.StakeTimestamp)
	if now.Before(unstakableAt) {
		return l.reject(opUnstake, account,
			ErrUnstakeCooldownActive.Wrapf("unstakable in %s", unstakableAt.Sub(now)))
	}

	tc, err := l.tokens.Token(settings.StakingToken)
	if err != nil {
		return l.reject(opUnstake, account, err)
	}

	amount := prev.StakedAmount
	updated := prev.Copy()
	updated.StakedAmount = sdkmath.ZeroInt()

	if err := l.commit(prev, updated, settings.StakingToken, func() error {
		return tc.TransferOut(account, amount)
	}); err != nil {
		return l.reject(opUnstake, account, err)
	}
	l.totalStaked = l.totalStaked.Sub(amount)

	l.logger.Info("unstaked tokens",
		zap.String("account", account),
		zap.String("amount", amount.String()),
		zap.Bool("reward_claimed", prev.RewardClaimed),
	)
	l.emit(types.EventUnstaked, account, amount, now)

	return nil
}

// Claim pays the reward on the current balance once the claim cooldown has
// passed since the last stake. The reward can be claimed once per stake.
func (l *Ledger) Claim(account string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	settings := l.sc.Settings()
	if !settings.Initialized {
		return l.reject(opClaim, account, ErrNotInitialized)
	}

	prev := l.record(account)
	if !prev.HasStake() {
		return l.reject(opClaim, account, ErrNothingStaked)
	}

	// the cooldown is checked before the claimed flag, a passed cooldown
	// does not mean there is anything left to claim
	now := l.now()
	claimableAt := settings.ClaimableAt(prev.StakeTimestamp)
	if now.Before(claimableAt) {
		return l.reject(opClaim, account,
			ErrClaimCooldownActive.Wrapf("claimable in %s", claimableAt.Sub(now)))
	}
	if prev.RewardClaimed {
		return l.reject(opClaim, account, ErrAlreadyClaimed)
	}

	reward, err := computeReward(prev.StakedAmount, settings.RewardPercentage)
	if err != nil {
		return l.reject(opClaim, account, err)
	}

	tc, err := l.tokens.Token(settings.RewardToken)
	if err != nil {
		return l.reject(opClaim, account, err)
	}

	updated := prev.Copy()
	updated.RewardClaimed = true

	if err := l.commit(prev, updated, settings.RewardToken, func() error {
		if reward.IsZero() {
			return nil
		}
		return tc.TransferOut(account, reward)
	}); err != nil {
		return l.reject(opClaim, account, err)
	}
	totalRewardsPaid.Add(amountToFloat(reward))

	l.logger.Info("claimed reward",
		zap.String("account", account),
		zap.String("reward", reward.String()),
		zap.String("staked_amount", prev.StakedAmount.String()),
		zap.Uint64("reward_percentage", settings.RewardPercentage),
	)
	l.emit(types.EventClaimed, account, reward, now)

	return nil
}

// Record returns a copy of the record of account.
func (l *Ledger) Record(account string) (*types.StakeRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[account]
	if !ok {
		return nil, false
	}
	return rec.Copy(), true
}

// Status evaluates the record of account against the live settings. An
// account that never staked gets an empty status.
func (l *Ledger) Status(account string) (*types.StakeStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	settings := l.sc.Settings()
	rec := l.record(account)
	now := l.now()

	status := &types.StakeStatus{
		Account:        account,
		StakedAmount:   rec.StakedAmount,
		StakeTimestamp: rec.StakeTimestamp,
		RewardClaimed:  rec.RewardClaimed,
		PendingReward:  sdkmath.ZeroInt(),
	}
	if !rec.HasStake() {
		return status, nil
	}

	status.ClaimableAt = settings.ClaimableAt(rec.StakeTimestamp)
	status.UnstakableAt = settings.UnstakableAt(rec.StakeTimestamp)
	status.CanUnstake = !now.Before(status.UnstakableAt)
	if !rec.RewardClaimed {
		reward, err := computeReward(rec.StakedAmount, settings.RewardPercentage)
		if err != nil {
			return nil, err
		}
		status.PendingReward = reward
		status.CanClaim = !now.Before(status.ClaimableAt)
	}

	return status, nil
}

// TotalStaked returns the sum of all balances in custody.
func (l *Ledger) TotalStaked() sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.totalStaked
}

// record returns the stored record of account or a fresh empty one. The
// fresh record is not added to the ledger.
func (l *Ledger) record(account string) *types.StakeRecord {
	if rec, ok := l.records[account]; ok {
		return rec
	}
	return types.NewStakeRecord(account)
}

// now reads the clock, never going back behind an instant already used.
func (l *Ledger) now() time.Time {
	now := l.clock.Now()
	if now.Before(l.lastNow) {
		return l.lastNow
	}
	l.lastNow = now
	return now
}

// commit persists updated, runs the transfer and only then replaces the
// in-memory record. If the transfer fails the persisted record is rolled
// back to prev, and a failed rollback is reported in the returned
// TransferError.
func (l *Ledger) commit(prev, updated *types.StakeRecord, token string, transfer func() error) error {
	if l.st != nil {
		if err := l.st.SaveRecord(updated); err != nil {
			return fmt.Errorf("failed to save record of %s: %w", updated.Account, err)
		}
	}

	if err := transfer(); err != nil {
		transferErr := &TransferError{Token: token, Err: err}
		if l.st != nil {
			if rerr := l.st.SaveRecord(prev); rerr != nil {
				l.logger.Error("failed to roll back record after failed transfer",
					zap.String("account", prev.Account),
					zap.Error(rerr),
				)
				transferErr.RollbackErr = rerr
			}
		}
		return transferErr
	}

	l.records[updated.Account] = updated

	return nil
}

func (l *Ledger) emit(typ types.EventType, account string, amount sdkmath.Int, t time.Time) {
	recordOperation(typ, l.totalStaked)

	for _, h := range l.handlers {
		h.HandleEvent(&types.Event{
			Type:    typ,
			Account: account,
			Amount:  amount,
			Time:    t,
		})
	}
}

func (l *Ledger) reject(op string, account string, err error) error {
	recordFailedOperation(op, err)

	l.logger.Debug("rejected ledger operation",
		zap.String("operation", op),
		zap.String("account", account),
		zap.Error(err),
	)

	return err
}

func computeReward(staked sdkmath.Int, percentage uint64) (sdkmath.Int, error) {
	reward, err := util.MulDiv(staked, percentage, types.PercentDenominator)
	if err != nil {
		return sdkmath.Int{}, ErrAmountOverflow.Wrap(err.Error())
	}
	return reward, nil
}
