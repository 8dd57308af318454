package transcript

import (
	"strings"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/types"
	"github.com/santaclaude2025/ccdigest/pkg/utils"
)

// detachedHead is what Claude Code records as the branch outside any branch.
const detachedHead = "HEAD"

// syntheticModel tags messages Claude Code generates itself.
const syntheticModel = "<synthetic>"

type metaCollector struct {
	meta *types.SessionMeta
}

func newMetaCollector(meta *types.SessionMeta) *metaCollector {
	return &metaCollector{meta: meta}
}

func (c *metaCollector) Collect(rec *types.Record) {
	m := c.meta

	if m.GitBranch == "" && rec.GitBranch != "" && rec.GitBranch != detachedHead {
		m.GitBranch = rec.GitBranch
	}

	model := rec.Model()
	if model == syntheticModel {
		model = ""
	}
	if m.Model == "" && model != "" {
		m.Model = model
	}

	if u := rec.Usage(); u != nil {
		m.Tokens.AddUsage(u)
		key := model
		if key == "" {
			key = m.Model
		}
		if key != "" {
			if m.TokensByModel == nil {
				m.TokensByModel = make(map[string]types.TokenCounts)
			}
			t := m.TokensByModel[key]
			t.AddUsage(u)
			m.TokensByModel[key] = t
		}
	}

	if rec.HasRole() {
		m.MessageCount++
	}
}

type detailCollector struct {
	detail    *types.SessionDetail
	r         *redactor.Redactor
	seenTools map[string]bool
	seenFiles map[string]bool
}

func newDetailCollector(detail *types.SessionDetail, r *redactor.Redactor) *detailCollector {
	return &detailCollector{
		detail:    detail,
		r:         r,
		seenTools: make(map[string]bool),
		seenFiles: make(map[string]bool),
	}
}

func (c *detailCollector) Collect(rec *types.Record) {
	d := c.detail

	if rec.IsSidechain {
		d.HasSidechain = true
	}
	if rec.PlanContent != "" {
		d.PlanReferenced = true
	}
	if d.Title == "" && rec.Type == "summary" && rec.Summary != "" {
		d.Title = cleanTitle(rec.Summary)
	}

	if rec.Kind != types.KindAssistantMessage || rec.Message == nil {
		return
	}

	var text strings.Builder
	if !rec.Message.Content.IsBlocks {
		text.WriteString(rec.Message.Content.Text)
	}

	for _, b := range rec.Message.Content.Blocks {
		switch b.Type {
		case types.BlockText:
			if text.Len() > 0 {
				text.WriteByte('\n')
			}
			text.WriteString(b.Text)
		case types.BlockThinking:
			d.ThinkingBlocks++
		case types.BlockToolUse:
			c.collectTool(b)
		}
	}

	c.collectSummary(text.String())
}

func (c *detailCollector) collectSummary(text string) {
	d := c.detail
	text = strings.TrimSpace(text)
	if len(d.Summaries) >= config.MaxSummaries || len([]rune(text)) <= config.SummaryMinChars {
		return
	}
	d.Summaries = append(d.Summaries, utils.Truncate(utils.SingleLine(text), config.SummaryMaxChars))
}

func (c *detailCollector) collectTool(b types.ContentBlock) {
	if b.Name == "" {
		return
	}
	input := redactInput(c.r, b.Input)

	summary := Summarize(b.Name, input)
	if !c.seenTools[summary.DisplayName] {
		c.seenTools[summary.DisplayName] = true
		c.detail.ToolCalls = append(c.detail.ToolCalls, summary)
	}

	if file := referencedFile(input); file != "" && !c.seenFiles[file] {
		c.seenFiles[file] = true
		c.detail.FilesReferenced = append(c.detail.FilesReferenced, file)
	}
}

// salientKeys are the only tool input fields that leave the parser.
var salientKeys = []string{"file_path", "notebook_path", "command", "pattern", "query"}

// redactInput copies the salient string arguments of a tool input through
// the redactor. Tool inputs are not touched by record filtering, so this is
// where their paths and secrets are scrubbed.
func redactInput(r *redactor.Redactor, input map[string]any) map[string]any {
	out := make(map[string]any, len(salientKeys))
	for _, k := range salientKeys {
		if s, ok := input[k].(string); ok && s != "" {
			out[k] = r.RedactString(s)
		}
	}
	return out
}
