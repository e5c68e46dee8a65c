package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadTime = errors.New("invalid HH:MM time")

// ParseHHMM parses a strict 24-hour "HH:MM" wall-clock time.
// Leading zeroes are optional ("9:05" is accepted), seconds are not.
func ParseHHMM(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	return hour, minute, nil
}

// SplitList parses a comma-joined storage value: split on comma, trim
// whitespace, drop empty segments, preserve order. No deduplication —
// callers dedup only where the flow requires it.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// JoinList is the storage-side inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, ",")
}
