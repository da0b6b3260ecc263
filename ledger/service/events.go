package service

import (
	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/types"
)

// EventStore is the append-only log of ledger events.
type EventStore interface {
	SaveEvent(ev *types.Event) error
	LoadEvents(from uint64, limit uint64) ([]*types.Event, error)
}

// EventRecorder appends every ledger event to the event store.
type EventRecorder struct {
	st     EventStore
	logger *zap.Logger
}

func NewEventRecorder(st EventStore, logger *zap.Logger) *EventRecorder {
	return &EventRecorder{
		st:     st,
		logger: logger,
	}
}

// HandleEvent cannot fail the operation that already happened, a failed
// write is only logged.
func (er *EventRecorder) HandleEvent(ev *types.Event) {
	if err := er.st.SaveEvent(ev); err != nil {
		er.logger.Error("failed to persist ledger event",
			zap.String("type", string(ev.Type)),
			zap.String("account", ev.Account),
			zap.String("amount", ev.Amount.String()),
			zap.Error(err),
		)
		return
	}

	er.logger.Debug("persisted ledger event",
		zap.Uint64("seq", ev.Seq),
		zap.String("type", string(ev.Type)),
		zap.String("account", ev.Account),
	)
}
