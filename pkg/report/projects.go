package report

import (
	"sort"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/transcript"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

// ProjectSummary aggregates every session of one project in the window.
type ProjectSummary struct {
	Name string `json:"name"`
	// Paths lists the distinct project paths grouped under Name.
	Paths []string `json:"paths"`

	Sessions         int   `json:"sessions"`
	DetailedSessions int   `json:"detailedSessions"`
	Prompts          int   `json:"prompts"`
	FirstActive      int64 `json:"firstActive"`
	LastActive       int64 `json:"lastActive"`

	EstimatedHours   float64 `json:"estimatedHours"`
	EstimatedCostUSD Money   `json:"estimatedCostUSD"`

	Tokens        types.TokenCounts            `json:"tokens"`
	TokensByModel map[string]types.TokenCounts `json:"tokensByModel,omitempty"`

	Tools    map[string]int `json:"tools"`
	Files    []string       `json:"files"`
	Branches []string       `json:"branches"`
	Models   []string       `json:"models"`
}

// projectAccumulator collects one project's group before it is finalized.
type projectAccumulator struct {
	summary *ProjectSummary
	views   []types.SessionView

	seenPaths, seenFiles, seenBranches, seenModels map[string]bool
}

func newProjectAccumulator(name string) *projectAccumulator {
	return &projectAccumulator{
		summary: &ProjectSummary{
			Name:     name,
			Paths:    []string{},
			Tools:    make(map[string]int),
			Files:    []string{},
			Branches: []string{},
			Models:   []string{},
		},
		seenPaths:    make(map[string]bool),
		seenFiles:    make(map[string]bool),
		seenBranches: make(map[string]bool),
		seenModels:   make(map[string]bool),
	}
}

func appendUnique(list []string, seen map[string]bool, v string) []string {
	if v == "" || seen[v] {
		return list
	}
	seen[v] = true
	return append(list, v)
}

func (a *projectAccumulator) addView(v types.SessionView) {
	s := a.summary
	a.views = append(a.views, v)
	s.Paths = appendUnique(s.Paths, a.seenPaths, v.ProjectPath)
	s.Sessions++
	s.Prompts += v.PromptCount()
	if s.FirstActive == 0 || v.TimeRange.Start < s.FirstActive {
		s.FirstActive = v.TimeRange.Start
	}
	s.LastActive = max(s.LastActive, v.TimeRange.End)
}

func (a *projectAccumulator) addDetail(d types.SessionDetail, cost Money) {
	s := a.summary
	s.DetailedSessions++
	s.EstimatedCostUSD = s.EstimatedCostUSD.Add(cost)
	s.Tokens.Add(d.Tokens)
	for model, counts := range d.TokensByModel {
		if s.TokensByModel == nil {
			s.TokensByModel = make(map[string]types.TokenCounts)
		}
		total := s.TokensByModel[model]
		total.Add(counts)
		s.TokensByModel[model] = total
	}
	for _, call := range d.ToolCalls {
		s.Tools[call.Tool]++
	}
	for _, f := range d.FilesReferenced {
		s.Files = appendUnique(s.Files, a.seenFiles, f)
	}
	s.Branches = appendUnique(s.Branches, a.seenBranches, d.GitBranch)
	s.Models = appendUnique(s.Models, a.seenModels, d.Model)
}

// Projects groups sessions by project name. Only sessions with enough
// prompts are fully parsed; the rest contribute counts and hours. Results
// are sorted by prompt count, highest first, ties by name.
func (e *Engine) Projects(f Filter) ([]*ProjectSummary, error) {
	views, err := e.views(f)
	if err != nil {
		return nil, err
	}
	transcripts := e.locator()

	groups := make(map[string]*projectAccumulator)
	for _, v := range views {
		acc, ok := groups[v.ProjectName]
		if !ok {
			acc = newProjectAccumulator(v.ProjectName)
			groups[v.ProjectName] = acc
		}
		acc.addView(v)

		if v.PromptCount() < config.DetailedSessionMinPrompts {
			continue
		}
		detail, err := transcript.Full(v, transcripts.transcriptPath(v), e.Redactor)
		if err != nil {
			return nil, err
		}
		acc.addDetail(detail, e.cost(detail.SessionMeta))
	}

	out := make([]*ProjectSummary, 0, len(groups))
	for _, acc := range groups {
		acc.summary.EstimatedHours = roundHours(EstimateHours(acc.views))
		out = append(out, acc.summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Prompts != out[j].Prompts {
			return out[i].Prompts > out[j].Prompts
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
