package ledger

import (
	"errors"
	"math/big"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/babylonchain/staking-ledger/types"
)

const (
	opStake   = "stake"
	opUnstake = "unstake"
	opClaim   = "claim"
)

type metricsTimer struct {
	mu                sync.Mutex
	previousOperation *time.Time
}

func newMetricsTimer() *metricsTimer {
	return &metricsTimer{
		mu: sync.Mutex{},
	}
}

func (mt *metricsTimer) SetPreviousOperation(t *time.Time) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.previousOperation = t
}

func (mt *metricsTimer) UpdatePrometheusMetrics() {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	// nothing to report before the first successful operation
	if mt.previousOperation == nil {
		return
	}

	secondsSinceLastOperation.Set(time.Since(*mt.previousOperation).Seconds())
}

// UpdatePrometheusMetrics refreshes the gauges derived from wall-clock time.
func UpdatePrometheusMetrics() {
	metricsTimeKeeper.UpdatePrometheusMetrics()
}

var (
	metricsTimeKeeper = newMetricsTimer()

	totalOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stk_total_operations",
			Help: "Total number of successful ledger operations",
		},
		[]string{"event"},
	)
	failedOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stk_total_failed_operations",
			Help: "Total number of rejected ledger operations",
		},
		[]string{"operation", "reason"},
	)
	totalValueLocked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stk_total_value_locked",
		Help: "Amount of staking tokens currently held in custody",
	})
	totalRewardsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stk_total_rewards_paid",
		Help: "Amount of reward tokens paid out by claims",
	})
	secondsSinceLastOperation = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stk_seconds_since_last_operation",
		Help: "Seconds since the last successful ledger operation",
	})
)

var failureReasons = []struct {
	err    error
	reason string
}{
	{ErrInvalidAmount, "invalid_amount"},
	{ErrNothingStaked, "nothing_staked"},
	{ErrClaimCooldownActive, "claim_cooldown"},
	{ErrUnstakeCooldownActive, "unstake_cooldown"},
	{ErrAlreadyClaimed, "already_claimed"},
	{ErrNotInitialized, "not_initialized"},
	{ErrTransferFailed, "transfer_failed"},
	{ErrAmountOverflow, "amount_overflow"},
}

func recordOperation(typ types.EventType, totalStaked sdkmath.Int) {
	now := time.Now()
	metricsTimeKeeper.SetPreviousOperation(&now)

	totalOperations.WithLabelValues(string(typ)).Inc()
	totalValueLocked.Set(amountToFloat(totalStaked))
}

func recordFailedOperation(op string, err error) {
	reason := "other"
	for _, r := range failureReasons {
		if errors.Is(err, r.err) {
			reason = r.reason
			break
		}
	}
	failedOperations.WithLabelValues(op, reason).Inc()
}

func amountToFloat(amount sdkmath.Int) float64 {
	if amount.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
