package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/santaclaude2025/ccdigest/pkg/artifacts"
	"github.com/santaclaude2025/ccdigest/pkg/pricing"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/report"
	"github.com/santaclaude2025/ccdigest/pkg/statscache"
	"github.com/santaclaude2025/ccdigest/pkg/types"
	"github.com/santaclaude2025/ccdigest/pkg/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// render writes v as indented JSON, or calls text for --format text.
func render(w io.Writer, v any, text func(io.Writer)) error {
	if formatFlag == formatText {
		text(w)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label+":")), valueStyle.Render(fmt.Sprint(value)))
}

func timeOf(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func renderDailyText(w io.Writer, days []*report.DailySummary, loc *time.Location) {
	if len(days) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No activity."))
		return
	}
	for i, d := range days {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render("=== "+d.Date+" ==="))
		field(w, "Sessions", d.Totals.Sessions)
		field(w, "Prompts", d.Totals.Prompts)
		field(w, "Projects", strings.Join(d.Totals.Projects, ", "))
		field(w, "Active time", utils.FormatHours(d.Totals.EstimatedHours))
		field(w, "Est. cost", utils.FormatUSD(d.Totals.EstimatedCostUSD.Decimal))

		if len(d.Detailed) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, headingStyle.Render("Sessions"))
			for _, s := range d.Detailed {
				renderDetailLine(w, s, loc)
			}
		}
		if len(d.Short) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, headingStyle.Render("Quick sessions"))
			for _, v := range d.Short {
				prompt := ""
				if len(v.Prompts) > 0 {
					prompt = utils.TruncateWithEllipsis(utils.SingleLine(v.Prompts[0]), 70)
				}
				fmt.Fprintf(w, "  %s %-20s %s\n",
					dimStyle.Render(timeOf(v.TimeRange.Start).In(loc).Format("15:04")), v.ProjectName, prompt)
			}
		}
		if len(d.Todos) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, headingStyle.Render("Todos"))
			ids := make([]string, 0, len(d.Todos))
			for id := range d.Todos {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				for _, t := range d.Todos[id] {
					fmt.Fprintf(w, "  [%s] %s\n", todoMark(t.Status), t.Content)
				}
			}
		}
		if len(d.Plans) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, headingStyle.Render("Plans"))
			for _, p := range d.Plans {
				fmt.Fprintf(w, "  %s %s\n", dimStyle.Render(p.ModTime.In(loc).Format("15:04")), p.Title)
			}
		}
	}
}

func todoMark(status string) string {
	switch status {
	case "completed":
		return "x"
	case "in_progress":
		return "~"
	default:
		return " "
	}
}

func renderDetailLine(w io.Writer, s types.SessionDetail, loc *time.Location) {
	title := s.Title
	if title == "" {
		title = s.SessionID
	}
	fmt.Fprintf(w, "  %s %-20s %s\n",
		dimStyle.Render(timeOf(s.TimeRange.Start).In(loc).Format("15:04")),
		s.ProjectName,
		utils.TruncateWithEllipsis(title, 70))
	fmt.Fprintf(w, "        %s\n", dimStyle.Render(fmt.Sprintf("%d prompts, %d tool calls, %s tokens, %s",
		s.PromptCount(), len(s.ToolCalls), utils.FormatTokens(s.Tokens.Total()), shortModel(s.Model))))
}

func shortModel(model string) string {
	if model == "" {
		return "unknown model"
	}
	return pricing.ModelFamily(model)
}

func renderProjectsText(w io.Writer, projects []*report.ProjectSummary) {
	if len(projects) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No projects in range."))
		return
	}
	fmt.Fprintln(w, titleStyle.Render("=== Projects ==="))
	fmt.Fprintf(w, "  %s\n", headingStyle.Render(fmt.Sprintf("%-24s %8s %8s %8s %10s  %s", "PROJECT", "SESSIONS", "PROMPTS", "HOURS", "COST", "LAST ACTIVE")))
	for _, p := range projects {
		fmt.Fprintf(w, "  %-24s %8d %8d %8s %10s  %s\n",
			utils.TruncateWithEllipsis(p.Name, 24),
			p.Sessions,
			p.Prompts,
			utils.FormatHours(p.EstimatedHours),
			utils.FormatUSD(p.EstimatedCostUSD.Decimal),
			dimStyle.Render(humanize.Time(timeOf(p.LastActive))))
	}
}

func renderToolsText(w io.Writer, r *report.ToolUsageReport) {
	fmt.Fprintln(w, titleStyle.Render("=== Tool usage ==="))
	field(w, "Sessions", fmt.Sprintf("%d analyzed, %d skipped", r.SessionsAnalyzed, r.SessionsSkipped))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("By tool"))
	for _, item := range sortedCounts(r.Tools) {
		fmt.Fprintf(w, "  %-32s %s\n", item.Name, utils.FormatCount(int64(item.Count)))
	}

	categories := make(map[string]int, len(r.Categories))
	for c, n := range r.Categories {
		categories[string(c)] = n
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("By category"))
	for _, item := range sortedCounts(categories) {
		fmt.Fprintf(w, "  %-32s %s\n", item.Name, utils.FormatCount(int64(item.Count)))
	}

	renderRanked(w, "Top files", r.TopFiles)
	renderRanked(w, "Top commands", r.TopCommands)
}

func renderRanked(w io.Writer, heading string, items []report.RankedItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(heading))
	for _, item := range items {
		fmt.Fprintf(w, "  %5d  %s\n", item.Count, item.Name)
	}
}

// sortedCounts orders a count map by count, then name.
func sortedCounts(m map[string]int) []report.RankedItem {
	items := make([]report.RankedItem, 0, len(m))
	for name, n := range m {
		items = append(items, report.RankedItem{Name: name, Count: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	return items
}

func renderSessionText(w io.Writer, v any, loc *time.Location) {
	var (
		meta   types.SessionMeta
		detail *types.SessionDetail
		hours  float64
		cost   report.Money
	)
	switch s := v.(type) {
	case *report.SessionMetaReport:
		meta, hours, cost = s.SessionMeta, s.EstimatedHours, s.EstimatedCostUSD
	case *report.SessionDetailReport:
		meta, hours, cost = s.SessionMeta, s.EstimatedHours, s.EstimatedCostUSD
		detail = &s.SessionDetail
	default:
		return
	}

	fmt.Fprintln(w, titleStyle.Render("=== Session "+meta.SessionID+" ==="))
	if detail != nil && detail.Title != "" {
		field(w, "Title", detail.Title)
	}
	field(w, "Project", meta.ProjectPath)
	if meta.TimeRange.Start > 0 {
		field(w, "Started", timeOf(meta.TimeRange.Start).In(loc).Format("2006-01-02 15:04"))
	}
	if meta.GitBranch != "" {
		field(w, "Branch", meta.GitBranch)
	}
	field(w, "Model", shortModel(meta.Model))
	field(w, "Prompts", meta.PromptCount())
	field(w, "Messages", meta.MessageCount)
	field(w, "Tokens", fmt.Sprintf("%s in, %s out, %s cache write, %s cache read",
		utils.FormatTokens(meta.Tokens.Input), utils.FormatTokens(meta.Tokens.Output),
		utils.FormatTokens(meta.Tokens.CacheWrite), utils.FormatTokens(meta.Tokens.CacheRead)))
	field(w, "Active time", utils.FormatHours(hours))
	field(w, "Est. cost", utils.FormatUSD(cost.Decimal))

	if detail == nil {
		return
	}
	if len(detail.ToolCalls) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Tool calls"))
		for _, c := range detail.ToolCalls {
			fmt.Fprintf(w, "  %-9s %s\n", dimStyle.Render(string(c.Category)), c.DisplayName)
		}
	}
	if len(detail.Summaries) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Summaries"))
		for _, s := range detail.Summaries {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
}

func renderStatsText(w io.Writer, s *statscache.Stats) {
	fmt.Fprintln(w, titleStyle.Render("=== Claude Code stats ==="))
	if s.LastComputedDate == "" {
		fmt.Fprintln(w, dimStyle.Render("  No stats cache found."))
		return
	}
	field(w, "Computed", s.LastComputedDate)
	field(w, "First session", s.FirstSessionDate)
	field(w, "Sessions", utils.FormatCount(int64(s.TotalSessions)))
	field(w, "Messages", utils.FormatCount(int64(s.TotalMessages)))

	models := make([]string, 0, len(s.ModelUsage))
	for m := range s.ModelUsage {
		models = append(models, m)
	}
	sort.Strings(models)
	if len(models) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Tokens by model"))
	}
	for _, m := range models {
		u := s.ModelUsage[m]
		fmt.Fprintf(w, "  %-32s %8s in %8s out\n", m, utils.FormatTokens(u.InputTokens), utils.FormatTokens(u.OutputTokens))
	}
}

func renderSkillsText(w io.Writer, skills []artifacts.Skill) {
	if len(skills) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No skills installed."))
		return
	}
	fmt.Fprintln(w, titleStyle.Render("=== Skills ==="))
	for _, s := range skills {
		fmt.Fprintf(w, "  %s\n", headingStyle.Render(s.Name))
		if s.Description != "" {
			fmt.Fprintf(w, "    %s\n", dimStyle.Render(s.Description))
		}
	}
}

func renderPrivacyText(w io.Writer, profile string, cfg redactor.Config) {
	fmt.Fprintln(w, titleStyle.Render("=== Privacy profile: "+profile+" ==="))
	field(w, "Redact prompts", cfg.RedactPrompts)
	field(w, "Redact paths", cfg.RedactAbsolutePaths)
	field(w, "Redact home", cfg.RedactHomeDir)
	field(w, "Strip thinking", cfg.StripThinking)
	field(w, "Strip tool output", cfg.StripToolResults)
	if len(cfg.ExcludeProjects) > 0 {
		field(w, "Excluded", strings.Join(cfg.ExcludeProjects, ", "))
	}
	if len(cfg.Patterns) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Patterns"))
		for _, p := range cfg.Patterns {
			name := p.Name
			if name == "" {
				name = p.Pattern
			}
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}

func renderPricingText(w io.Writer, table pricing.Table) {
	fmt.Fprintln(w, titleStyle.Render("=== Pricing (USD per million tokens) ==="))
	fmt.Fprintf(w, "  %s\n", headingStyle.Render(fmt.Sprintf("%-14s %8s %8s %12s %12s", "MODEL", "INPUT", "OUTPUT", "CACHE WRITE", "CACHE READ")))
	for _, m := range table.Models() {
		r := table[m]
		fmt.Fprintf(w, "  %-14s %8s %8s %12s %12s\n", m,
			r.Input.StringFixed(2), r.Output.StringFixed(2), r.CacheWrite.StringFixed(2), r.CacheRead.StringFixed(2))
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  Unknown models are priced as %s.", pricing.FallbackModel)))
}
