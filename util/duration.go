package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseFrozenTime reads a frozen time either as a bare number of seconds or
// as a Go duration string such as "10m".
func ParseFrozenTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseUint(s, 10, 63); err == nil {
		if secs > uint64(time.Duration(1<<63-1)/time.Second) {
			return 0, fmt.Errorf("frozen time %s is too large", s)
		}
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid frozen time %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative frozen time %q", s)
	}
	return d, nil
}
