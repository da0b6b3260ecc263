package types

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

type EventType string

const (
	EventStaked   EventType = "Staked"
	EventUnstaked EventType = "Unstaked"
	EventClaimed  EventType = "Claimed"
)

// Event is emitted once per successful ledger operation.
type Event struct {
	// Position in the persisted event log, zero until stored
	Seq     uint64      `json:"seq"`
	Type    EventType   `json:"type"`
	Account string      `json:"account"`
	Amount  sdkmath.Int `json:"amount"`
	Time    time.Time   `json:"time"`
}
