package transcript

import (
	"path/filepath"
	"strings"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/types"
	"github.com/santaclaude2025/ccdigest/pkg/utils"
)

// mcpPrefix marks tools provided by MCP servers: mcp__<server>__<tool>.
const mcpPrefix = "mcp__"

var toolCategories = map[string]types.ToolCategory{
	"Read":         types.CategoryRead,
	"NotebookRead": types.CategoryRead,
	"LS":           types.CategoryRead,

	"Write":        types.CategoryWrite,
	"Edit":         types.CategoryWrite,
	"MultiEdit":    types.CategoryWrite,
	"NotebookEdit": types.CategoryWrite,

	"Grep": types.CategorySearch,
	"Glob": types.CategorySearch,

	"Bash":       types.CategoryExecute,
	"BashOutput": types.CategoryExecute,
	"KillShell":  types.CategoryExecute,
	"KillBash":   types.CategoryExecute,

	"WebFetch":  types.CategoryWeb,
	"WebSearch": types.CategoryWeb,

	"Task":  types.CategoryAgent,
	"Agent": types.CategoryAgent,
	"Skill": types.CategoryAgent,

	"TodoWrite":     types.CategoryPlanning,
	"TodoRead":      types.CategoryPlanning,
	"ExitPlanMode":  types.CategoryPlanning,
	"EnterPlanMode": types.CategoryPlanning,
}

// Categorize maps a tool name to its category. Known names use a fixed
// table; MCP tools fall back to keywords in the name; anything else is
// "other".
func Categorize(name string) types.ToolCategory {
	if c, ok := toolCategories[name]; ok {
		return c
	}
	if !strings.HasPrefix(name, mcpPrefix) {
		return types.CategoryOther
	}

	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "search"):
		return types.CategorySearch
	case strings.Contains(lower, "fetch"), strings.Contains(lower, "read"):
		return types.CategoryRead
	case strings.Contains(lower, "write"), strings.Contains(lower, "create"), strings.Contains(lower, "edit"):
		return types.CategoryWrite
	}
	return types.CategoryOther
}

// baseToolName strips the MCP namespace: mcp__github__create_issue becomes
// github/create_issue.
func baseToolName(name string) string {
	if !strings.HasPrefix(name, mcpPrefix) {
		return name
	}
	return strings.ReplaceAll(strings.TrimPrefix(name, mcpPrefix), "__", "/")
}

// Summarize builds the summary of one tool invocation. The display name is
// the base tool name plus its most salient argument, and doubles as the
// dedup key within a session.
func Summarize(name string, input map[string]any) types.ToolCallSummary {
	target := salientArgument(input)
	display := baseToolName(name)
	if target != "" {
		display += ": " + target
	}
	return types.ToolCallSummary{
		Tool:        name,
		DisplayName: display,
		Category:    Categorize(name),
		Target:      target,
	}
}

// salientArgument picks, in order: file path, notebook path, the first word
// of a shell command, a search pattern, then a query.
func salientArgument(input map[string]any) string {
	if p := stringArg(input, "file_path"); p != "" {
		return utils.PathTail(p, 2)
	}
	if p := stringArg(input, "notebook_path"); p != "" {
		return utils.PathTail(p, 2)
	}
	if c := stringArg(input, "command"); c != "" {
		return CommandName(c)
	}
	if p := stringArg(input, "pattern"); p != "" {
		return p
	}
	if q := stringArg(input, "query"); q != "" {
		return utils.Truncate(q, config.QueryMaxChars)
	}
	return ""
}

// CommandName is the first whitespace-delimited token of a shell command.
func CommandName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// referencedFile returns the file or notebook a tool invocation points at.
func referencedFile(input map[string]any) string {
	if p := stringArg(input, "file_path"); p != "" {
		return filepath.Clean(p)
	}
	if p := stringArg(input, "notebook_path"); p != "" {
		return filepath.Clean(p)
	}
	return ""
}

func stringArg(input map[string]any, key string) string {
	if input == nil {
		return ""
	}
	s, _ := input[key].(string)
	return strings.TrimSpace(s)
}
