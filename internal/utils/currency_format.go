package utils

import (
	"github.com/shopspring/decimal"
)

// FormatCents renders an amount in cents as a two decimal string.
// Example: 44550 returns "445.50", -5 returns "-0.05"
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
