// Package statscache exposes Claude Code's precomputed stats-cache.json.
package statscache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Stats is the subset of stats-cache.json shown in text output. The full
// document is passed through untouched as Raw.
type Stats struct {
	Version          int                   `json:"version"`
	LastComputedDate string                `json:"lastComputedDate"`
	TotalSessions    int                   `json:"totalSessions"`
	TotalMessages    int                   `json:"totalMessages"`
	FirstSessionDate string                `json:"firstSessionDate"`
	DailyActivity    []DailyActivity       `json:"dailyActivity"`
	ModelUsage       map[string]ModelUsage `json:"modelUsage"`

	Raw json.RawMessage `json:"-"`
}

// DailyActivity is one day of the cache's activity series.
type DailyActivity struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"messageCount"`
	SessionCount  int    `json:"sessionCount"`
	ToolCallCount int    `json:"toolCallCount"`
}

// ModelUsage is the cache's per-model token totals.
type ModelUsage struct {
	InputTokens              int64 `json:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens"`
}

var emptyObject = json.RawMessage(`{}`)

// Read loads the cache. A missing file yields empty stats whose Raw is {}.
func Read(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Stats{Raw: emptyObject}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stats cache: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &Stats{Raw: emptyObject}, nil
	}

	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing stats cache: %w", err)
	}
	s.Raw = json.RawMessage(data)
	return &s, nil
}
