// Package pricing estimates USD cost for Claude token usage.
package pricing

import (
	"sort"
	"strings"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/types"
	"github.com/shopspring/decimal"
)

// Rates are USD per million tokens for each billed bucket.
// Cache rates use 5-minute cache pricing.
type Rates struct {
	Input      decimal.Decimal `json:"input"`
	Output     decimal.Decimal `json:"output"`
	CacheWrite decimal.Decimal `json:"cacheWrite"` // 1.25x input
	CacheRead  decimal.Decimal `json:"cacheRead"`  // 0.1x input
}

// IsZero reports whether every rate is zero.
func (r Rates) IsZero() bool {
	return r.Input.IsZero() && r.Output.IsZero() && r.CacheWrite.IsZero() && r.CacheRead.IsZero()
}

// RateOverride adjusts individual rates of an entry. Nil fields keep the
// existing value.
type RateOverride struct {
	Input      *float64 `json:"input,omitempty" toml:"input"`
	Output     *float64 `json:"output,omitempty" toml:"output"`
	CacheWrite *float64 `json:"cacheWrite,omitempty" toml:"cache_write"`
	CacheRead  *float64 `json:"cacheRead,omitempty" toml:"cache_read"`
}

// Table maps a model id or model family ("opus-4-5") to its rates.
type Table map[string]Rates

// FallbackModel is the entry used for models the table does not know.
const FallbackModel = "sonnet-4"

func rates(input, output, cacheWrite, cacheRead float64) Rates {
	return Rates{
		Input:      decimal.NewFromFloat(input),
		Output:     decimal.NewFromFloat(output),
		CacheWrite: decimal.NewFromFloat(cacheWrite),
		CacheRead:  decimal.NewFromFloat(cacheRead),
	}
}

// Source: https://www.anthropic.com/pricing
var fallbackRates = rates(3, 15, 3.75, 0.30)

// DefaultTable returns a fresh copy of the built-in price table.
func DefaultTable() Table {
	return Table{
		"opus-4-6":   rates(5, 25, 6.25, 0.50),
		"opus-4-5":   rates(5, 25, 6.25, 0.50),
		"opus-4-1":   rates(15, 75, 18.75, 1.50),
		"opus-4":     rates(15, 75, 18.75, 1.50),
		"opus-3":     rates(15, 75, 18.75, 1.50),
		"sonnet-4-5": rates(3, 15, 3.75, 0.30),
		"sonnet-4":   fallbackRates,
		"sonnet-3-7": rates(3, 15, 3.75, 0.30),
		"sonnet-3-5": rates(3, 15, 3.75, 0.30),
		"haiku-4-5":  rates(1, 5, 1.25, 0.10),
		"haiku-3-5":  rates(0.80, 4, 1.00, 0.08),
		"haiku-3":    rates(0.25, 1.25, 0.30, 0.03),
	}
}

// ModelFamily extracts the family from a full model id.
// e.g., "claude-opus-4-5-20251101" -> "opus-4-5"
// e.g., "claude-3-5-sonnet-20241022" -> "sonnet-3-5"
func ModelFamily(model string) string {
	name := strings.TrimPrefix(strings.ToLower(model), "claude-")
	parts := strings.Split(name, "-")
	if len(parts) < 2 {
		return name
	}

	// Legacy ids put the version first: 3-5-sonnet, 3-opus.
	if isDigit(parts[0]) {
		for i := 1; i < len(parts); i++ {
			if isFamily(parts[i]) {
				return parts[i] + "-" + strings.Join(parts[:i], "-")
			}
		}
		return name
	}

	family := parts[0]
	if !isFamily(family) || !isDigit(parts[1]) {
		return name
	}
	major := parts[1]

	// Minor version is a single digit; date suffixes are 8 characters.
	if len(parts) >= 3 && isDigit(parts[2]) {
		return family + "-" + major + "-" + parts[2]
	}
	return family + "-" + major
}

func isFamily(s string) bool {
	return s == "opus" || s == "sonnet" || s == "haiku"
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// Lookup returns the rates for a model: exact id first, then its family,
// then the fallback tier. It never returns undefined rates.
func (t Table) Lookup(model string) Rates {
	if r, ok := t[model]; ok {
		return r
	}
	family := ModelFamily(model)
	if r, ok := t[family]; ok {
		return r
	}
	if model != "" {
		logger.Debug("No pricing for model %q (family %q); using %s rates", model, family, FallbackModel)
	}
	if r, ok := t[FallbackModel]; ok {
		return r
	}
	return fallbackRates
}

// Merge returns a new table with entries replaced or added. The receiver is
// not modified.
func (t Table) Merge(overrides map[string]Rates) Table {
	out := make(Table, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Override returns a new table with individual rates adjusted. An override
// for an unknown key starts from the rates Lookup would have used for it.
func (t Table) Override(overrides map[string]RateOverride) Table {
	merged := make(map[string]Rates, len(overrides))
	for model, ov := range overrides {
		r := t.Lookup(model)
		setRate(&r.Input, ov.Input)
		setRate(&r.Output, ov.Output)
		setRate(&r.CacheWrite, ov.CacheWrite)
		setRate(&r.CacheRead, ov.CacheRead)
		merged[model] = r
	}
	return t.Merge(merged)
}

func setRate(dst *decimal.Decimal, v *float64) {
	if v != nil {
		*dst = decimal.NewFromFloat(*v)
	}
}

// Models returns the table keys in sorted order.
func (t Table) Models() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var oneMillion = decimal.NewFromInt(1_000_000)

// Cost prices token counts: the sum over all buckets of count / 1M x rate.
func Cost(r Rates, t types.TokenCounts) decimal.Decimal {
	input := decimal.NewFromInt(t.Input).Mul(r.Input).Div(oneMillion)
	output := decimal.NewFromInt(t.Output).Mul(r.Output).Div(oneMillion)
	cacheWrite := decimal.NewFromInt(t.CacheWrite).Mul(r.CacheWrite).Div(oneMillion)
	cacheRead := decimal.NewFromInt(t.CacheRead).Mul(r.CacheRead).Div(oneMillion)

	return input.Add(output).Add(cacheWrite).Add(cacheRead)
}

// CostFor looks up the model and prices the counts.
func (t Table) CostFor(model string, counts types.TokenCounts) decimal.Decimal {
	return Cost(t.Lookup(model), counts)
}
