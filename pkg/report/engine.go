// Package report composes the history, transcript and artifact readers into
// daily, project, tool-usage and single-session reports.
package report

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/discovery"
	"github.com/santaclaude2025/ccdigest/pkg/history"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/pricing"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

// Engine holds everything a report needs. Each call allocates its own
// accumulators, so an Engine may serve concurrent calls.
type Engine struct {
	Paths    config.Paths
	Redactor *redactor.Redactor
	Pricing  pricing.Table
	Location *time.Location
}

// NewEngine builds an engine. A nil price table means the built-in one; a
// nil location means time.Local.
func NewEngine(paths config.Paths, r *redactor.Redactor, table pricing.Table, loc *time.Location) *Engine {
	if table == nil {
		table = pricing.DefaultTable()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Engine{Paths: paths, Redactor: r, Pricing: table, Location: loc}
}

func (e *Engine) location() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

// Filter narrows project and tool reports.
type Filter struct {
	Window types.DateRange
	// Project is a case-insensitive substring of the project name.
	Project string
}

// window returns the filter window; an unset window covers all time.
func (f Filter) window() types.DateRange {
	if f.Window.From == "" && f.Window.To == "" {
		return types.AllTime()
	}
	return f.Window
}

// views reads the history log for the filter window, keeping only views of
// matching projects.
func (e *Engine) views(f Filter) ([]types.SessionView, error) {
	all, err := history.ReadHistory(e.Paths.History, f.window(), e.Redactor)
	if err != nil {
		return nil, err
	}
	var out []types.SessionView
	for _, v := range all {
		if f.matches(v.ProjectName) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f Filter) matches(projectName string) bool {
	if f.Project == "" {
		return true
	}
	return strings.Contains(strings.ToLower(projectName), strings.ToLower(f.Project))
}

// LastDays is a filter window ending today and covering n days.
func LastDays(n int, now time.Time) types.DateRange {
	if n < 1 {
		n = 1
	}
	return types.NewDateRange(now.AddDate(0, 0, -(n - 1)), now)
}

// locator finds transcripts for one report call. The encoded project
// directory is tried first; sessions whose directory name does not match
// the simple encoding are found through a scan of projects/, done at most
// once per call.
type locator struct {
	projects string
	index    map[string]string
}

func (e *Engine) locator() *locator {
	return &locator{projects: e.Paths.Projects}
}

func (l *locator) transcriptPath(view types.SessionView) string {
	path := discovery.TranscriptPath(l.projects, view.SourcePath, view.SessionID)
	if _, err := os.Stat(path); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return path
	}

	if l.index == nil {
		l.index = make(map[string]string)
		sessions, err := discovery.ScanAllSessions(l.projects)
		if err != nil {
			logger.Warn("Could not index transcripts: %v", err)
		}
		for _, s := range sessions {
			l.index[s.SessionID] = s.TranscriptPath
		}
	}
	if p, ok := l.index[view.SessionID]; ok {
		return p
	}
	return path
}

// cost prices one session with the engine's table.
func (e *Engine) cost(meta types.SessionMeta) Money {
	return Money{SessionCost(meta, e.Pricing)}
}
