package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ID prefixes for each record kind.
const (
	CustomerIDPrefix = "CUST"
	EntryIDPrefix    = "M"
	PaymentIDPrefix  = "PAY"
)

// FormatID renders a prefixed, zero-padded identifier such as CUST001 or M042.
// Sequences past 999 simply grow wider.
func FormatID(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// ParseIDSequence extracts the numeric suffix of an identifier with the given
// prefix. It reports false for identifiers in any other shape.
func ParseIDSequence(prefix, id string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// MaxIDSequence returns the largest numeric suffix among ids with the prefix, or 0.
func MaxIDSequence(prefix string, ids []string) int {
	highest := 0
	for _, id := range ids {
		if n, ok := ParseIDSequence(prefix, id); ok && n > highest {
			highest = n
		}
	}
	return highest
}
