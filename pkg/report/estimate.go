package report

import (
	"encoding/json"
	"sort"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/pricing"
	"github.com/santaclaude2025/ccdigest/pkg/types"
	"github.com/shopspring/decimal"
)

const msPerHour = 3_600_000

// EstimateHours estimates active time across sessions. Each session with at
// most one prompt counts a fixed floor; otherwise every gap between
// consecutive prompts counts up to the gap cap, so idle stretches are
// discounted.
func EstimateHours(views []types.SessionView) float64 {
	floor := config.SinglePromptFloor.Milliseconds()
	gapCap := config.GapCap.Milliseconds()

	var totalMs int64
	for _, v := range views {
		if len(v.PromptTimestamps) <= 1 {
			totalMs += floor
			continue
		}

		ts := append([]int64(nil), v.PromptTimestamps...)
		sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
		for i := 1; i < len(ts); i++ {
			totalMs += min(ts[i]-ts[i-1], gapCap)
		}
	}
	return float64(totalMs) / msPerHour
}

// SessionCost prices a session's tokens at its model's rates, falling back
// to the table's default tier for unknown models.
func SessionCost(meta types.SessionMeta, table pricing.Table) decimal.Decimal {
	return pricing.Cost(table.Lookup(meta.Model), meta.Tokens)
}

// Money is a USD amount that serializes as a JSON number with cents.
type Money struct {
	decimal.Decimal
}

// MarshalJSON writes the amount rounded to cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.RawMessage(m.Round(2).StringFixed(2)), nil
}

// Add returns the sum.
func (m Money) Add(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// roundHours keeps hours to four decimals in reports.
func roundHours(h float64) float64 {
	f, _ := decimal.NewFromFloat(h).Round(4).Float64()
	return f
}
