package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/golang/mock/gomock"

	"github.com/babylonchain/staking-ledger/testutil/mocks"
	"github.com/babylonchain/staking-ledger/types"
)

// FakeClock is a manually advanced clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// EventCollector records every event it receives.
type EventCollector struct {
	mu     sync.Mutex
	events []*types.Event
}

func (c *EventCollector) HandleEvent(ev *types.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *EventCollector) Events() []*types.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*types.Event(nil), c.events...)
}

type amountMatcher struct {
	expected sdkmath.Int
}

// AmountEq matches an sdkmath.Int by value rather than by representation.
func AmountEq(n int64) gomock.Matcher {
	return amountMatcher{expected: sdkmath.NewInt(n)}
}

func (m amountMatcher) Matches(x interface{}) bool {
	amount, ok := x.(sdkmath.Int)
	if !ok || amount.IsNil() {
		return false
	}
	return amount.Equal(m.expected)
}

func (m amountMatcher) String() string {
	return fmt.Sprintf("is amount %s", m.expected)
}

// PrepareMockedTokenRegistry returns a registry resolving the given refs to
// mocked token controllers.
func PrepareMockedTokenRegistry(t *testing.T, refs ...string) (*mocks.MockRegistry, map[string]*mocks.MockTokenController) {
	ctl := gomock.NewController(t)
	mockRegistry := mocks.NewMockRegistry(ctl)

	tokens := make(map[string]*mocks.MockTokenController, len(refs))
	for _, ref := range refs {
		tc := mocks.NewMockTokenController(ctl)
		tokens[ref] = tc
		mockRegistry.EXPECT().Token(ref).Return(tc, nil).AnyTimes()
	}

	return mockRegistry, tokens
}

// PrepareMockedAdminChecker returns a checker that accepts exactly admins.
func PrepareMockedAdminChecker(t *testing.T, admins ...string) *mocks.MockAdminChecker {
	ctl := gomock.NewController(t)
	mockAdminChecker := mocks.NewMockAdminChecker(ctl)

	for _, a := range admins {
		mockAdminChecker.EXPECT().IsAdmin(a).Return(true).AnyTimes()
	}
	mockAdminChecker.EXPECT().IsAdmin(gomock.Any()).Return(false).AnyTimes()

	return mockAdminChecker
}
