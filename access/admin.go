package access

import (
	"strings"
	"sync"
)

// AdminChecker reports whether a caller holds the administrator capability.
type AdminChecker interface {
	IsAdmin(caller string) bool
}

var _ AdminChecker = &AdminSet{}

// AdminSet is an AdminChecker backed by a fixed list of accounts.
type AdminSet struct {
	mu     sync.RWMutex
	admins map[string]struct{}
}

func NewAdminSet(admins ...string) *AdminSet {
	s := &AdminSet{
		admins: make(map[string]struct{}, len(admins)),
	}
	for _, a := range admins {
		s.Grant(a)
	}

	return s
}

func (s *AdminSet) IsAdmin(caller string) bool {
	caller = normalize(caller)
	if caller == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[caller]
	return ok
}

func (s *AdminSet) Grant(account string) {
	account = normalize(account)
	if account == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[account] = struct{}{}
}

// Len returns the number of administrators.
func (s *AdminSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.admins)
}

func normalize(account string) string {
	return strings.TrimSpace(account)
}
