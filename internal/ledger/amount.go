package ledger

import (
	"strconv"
	"strings"
)

// ParseAmount parses user input as a positive whole amount.
// Anything else (non-numeric, zero, negative, fractional) reports false.
func ParseAmount(input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
