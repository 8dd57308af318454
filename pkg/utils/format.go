package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatTokens renders a token count compactly: 950, 12.3k, 4.1M.
func FormatTokens(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	value, suffix := humanize.ComputeSI(float64(n))
	if suffix == "" {
		return fmt.Sprintf("%d", n)
	}
	return humanize.FtoaWithDigits(value, 1) + suffix
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatUSD renders a dollar amount with cents.
func FormatUSD(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatHours renders fractional hours with two decimals.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

// FormatBytes renders a byte count in IEC units.
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
