package report

import (
	"sort"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/transcript"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

// RankedItem is one entry of a top list.
type RankedItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ToolUsageReport counts tool use across the sessions in a window.
type ToolUsageReport struct {
	SessionsAnalyzed int `json:"sessionsAnalyzed"`
	SessionsSkipped  int `json:"sessionsSkipped"`

	Tools      map[string]int             `json:"tools"`
	Categories map[types.ToolCategory]int `json:"categories"`

	TopFiles    []RankedItem `json:"topFiles"`
	TopCommands []RankedItem `json:"topCommands"`
}

// ranking counts names and remembers the order they were first seen in.
type ranking struct {
	counts map[string]int
	order  []string
}

func newRanking() *ranking {
	return &ranking{counts: make(map[string]int)}
}

func (r *ranking) add(name string) {
	if name == "" {
		return
	}
	if _, ok := r.counts[name]; !ok {
		r.order = append(r.order, name)
	}
	r.counts[name]++
}

// top returns the n most frequent names; ties keep first-seen order.
func (r *ranking) top(n int) []RankedItem {
	items := make([]RankedItem, 0, len(r.order))
	for _, name := range r.order {
		items = append(items, RankedItem{Name: name, Count: r.counts[name]})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// ToolUsage fully parses every session with at least two prompts and
// counts its tool calls by name and category, plus the most referenced
// files and shell commands.
func (e *Engine) ToolUsage(f Filter) (*ToolUsageReport, error) {
	views, err := e.views(f)
	if err != nil {
		return nil, err
	}
	transcripts := e.locator()

	report := &ToolUsageReport{
		Tools:      make(map[string]int),
		Categories: make(map[types.ToolCategory]int),
	}
	files, commands := newRanking(), newRanking()

	for _, v := range views {
		if v.PromptCount() < config.ToolReportMinPrompts {
			report.SessionsSkipped++
			continue
		}
		detail, err := transcript.Full(v, transcripts.transcriptPath(v), e.Redactor)
		if err != nil {
			return nil, err
		}
		report.SessionsAnalyzed++

		for _, call := range detail.ToolCalls {
			report.Tools[call.Tool]++
			report.Categories[call.Category]++
			if call.Tool == "Bash" {
				commands.add(call.Target)
			}
		}
		for _, path := range detail.FilesReferenced {
			files.add(path)
		}
	}

	report.TopFiles = files.top(config.TopListSize)
	report.TopCommands = commands.top(config.TopListSize)
	return report, nil
}
