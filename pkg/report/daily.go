package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/santaclaude2025/ccdigest/pkg/artifacts"
	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/history"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/transcript"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

// DailySummary is one calendar day of activity.
type DailySummary struct {
	Date string `json:"date"`

	// Detailed sessions had enough prompts to be fully parsed.
	Detailed []types.SessionDetail `json:"detailed"`
	Short    []types.SessionView   `json:"short"`

	// Todos are keyed by session id, Memory by displayed project path.
	Todos  map[string][]artifacts.Todo `json:"todos,omitempty"`
	Plans  []artifacts.Plan            `json:"plans,omitempty"`
	Memory map[string]string           `json:"memory,omitempty"`

	Totals DailyTotals `json:"totals"`
}

// DailyTotals are the headline numbers of a day.
type DailyTotals struct {
	Prompts          int      `json:"prompts"`
	Sessions         int      `json:"sessions"`
	Projects         []string `json:"projects"`
	EstimatedHours   float64  `json:"estimatedHours"`
	EstimatedCostUSD Money    `json:"estimatedCostUSD"`
}

// IsEmpty reports whether the day has no sessions, todos or plans.
func (d *DailySummary) IsEmpty() bool {
	return d.Totals.Sessions == 0 && len(d.Todos) == 0 && len(d.Plans) == 0
}

// Daily summarizes the calendar day containing date, in the engine's
// location.
func (e *Engine) Daily(date time.Time) (*DailySummary, error) {
	window := types.SingleDay(date.In(e.location()))
	views, err := history.ReadHistory(e.Paths.History, window, e.Redactor)
	if err != nil {
		return nil, err
	}
	return e.buildDaily(window, views, e.locator())
}

// DailyRange summarizes every day from from to to inclusive, skipping days
// with no sessions, todos or plans. The history log is read once.
func (e *Engine) DailyRange(from, to time.Time) ([]*DailySummary, error) {
	loc := e.location()
	window := types.NewDateRange(from.In(loc), to.In(loc))

	views, err := history.ReadHistory(e.Paths.History, window, e.Redactor)
	if err != nil {
		return nil, err
	}
	byDay := splitByDay(views, window)
	transcripts := e.locator()

	var out []*DailySummary
	for _, day := range window.Days() {
		dayWindow := types.SingleDay(day)
		summary, err := e.buildDaily(dayWindow, byDay[dayWindow.From], transcripts)
		if err != nil {
			return nil, fmt.Errorf("summarizing %s: %w", dayWindow.From, err)
		}
		if !summary.IsEmpty() {
			out = append(out, summary)
		}
	}
	return out, nil
}

// splitByDay regroups multi-day views into one view per session per day,
// the same views a single-day read would have produced.
func splitByDay(views []types.SessionView, window types.DateRange) map[string][]types.SessionView {
	out := make(map[string][]types.SessionView)
	for _, v := range views {
		perDay := make(map[string]*types.SessionView)
		var order []string
		for i, ts := range v.PromptTimestamps {
			key := window.DayKey(ts)
			dv, ok := perDay[key]
			if !ok {
				dv = &types.SessionView{
					SessionID:   v.SessionID,
					ProjectPath: v.ProjectPath,
					ProjectName: v.ProjectName,
					TimeRange:   types.TimeRange{Start: ts, End: ts},
					SourcePath:  v.SourcePath,
				}
				perDay[key] = dv
				order = append(order, key)
			}
			dv.Prompts = append(dv.Prompts, v.Prompts[i])
			dv.PromptTimestamps = append(dv.PromptTimestamps, ts)
			dv.TimeRange.Start = min(dv.TimeRange.Start, ts)
			dv.TimeRange.End = max(dv.TimeRange.End, ts)
		}
		for _, key := range order {
			out[key] = append(out[key], *perDay[key])
		}
	}
	for key := range out {
		day := out[key]
		sort.SliceStable(day, func(i, j int) bool { return day[i].TimeRange.Start < day[j].TimeRange.Start })
	}
	return out
}

func (e *Engine) buildDaily(window types.DateRange, views []types.SessionView, transcripts *locator) (*DailySummary, error) {
	s := &DailySummary{
		Date:     window.From,
		Detailed: []types.SessionDetail{},
		Short:    []types.SessionView{},
	}

	projects := make(map[string]bool)
	displayPath := make(map[string]string)
	var projectPaths, sessionIDs []string

	for _, v := range views {
		s.Totals.Prompts += v.PromptCount()
		s.Totals.Sessions++
		if !projects[v.ProjectName] {
			projects[v.ProjectName] = true
			s.Totals.Projects = append(s.Totals.Projects, v.ProjectName)
		}
		projectPaths = append(projectPaths, v.SourcePath)
		displayPath[v.SourcePath] = v.ProjectPath
		sessionIDs = append(sessionIDs, v.SessionID)

		if v.PromptCount() < config.DetailedSessionMinPrompts {
			s.Short = append(s.Short, v)
			continue
		}

		detail, err := transcript.Full(v, transcripts.transcriptPath(v), e.Redactor)
		if err != nil {
			return nil, err
		}
		s.Detailed = append(s.Detailed, detail)
		s.Totals.EstimatedCostUSD = s.Totals.EstimatedCostUSD.Add(e.cost(detail.SessionMeta))
	}
	sort.Strings(s.Totals.Projects)
	if s.Totals.Projects == nil {
		s.Totals.Projects = []string{}
	}
	s.Totals.EstimatedHours = roundHours(EstimateHours(views))

	todos, err := artifacts.TodosForSessions(e.Paths.Todos, sessionIDs, e.Redactor)
	if err != nil {
		logger.Warn("Could not read todos: %v", err)
	}
	if len(todos) > 0 {
		s.Todos = todos
	}

	plans, err := artifacts.PlansInRange(e.Paths.Plans, window, e.Redactor)
	if err != nil {
		logger.Warn("Could not read plans: %v", err)
	}
	s.Plans = plans

	s.Memory = memoryByDisplayPath(artifacts.MemorySnippets(projectPaths, e.Redactor), displayPath)

	return s, nil
}

// memoryByDisplayPath re-keys snippets from recorded project paths to their
// display form. Distinct projects that redact to the same display path get
// numbered keys, in recorded-path order.
func memoryByDisplayPath(snippets map[string]string, displayPath map[string]string) map[string]string {
	if len(snippets) == 0 {
		return nil
	}
	sources := make([]string, 0, len(snippets))
	for p := range snippets {
		sources = append(sources, p)
	}
	sort.Strings(sources)

	out := make(map[string]string, len(snippets))
	for _, p := range sources {
		base := displayPath[p]
		key := base
		for n := 2; ; n++ {
			if _, taken := out[key]; !taken {
				break
			}
			key = fmt.Sprintf("%s (%d)", base, n)
		}
		out[key] = snippets[p]
	}
	return out
}
