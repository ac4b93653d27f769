package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathanvale/cortex/internal/apperr"
)

// ParseList splits a comma-separated argument, trimming items and dropping
// empty ones.
func ParseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ParseLimit validates a user-supplied limit. An empty string means
// DefaultLimit; anything else must be a positive integer.
func ParseLimit(s string) (int, error) {
	if s == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, apperr.Usage(fmt.Sprintf("Invalid --limit value: %q. Must be a positive integer.", s))
	}
	return n, nil
}
