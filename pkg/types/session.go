package types

// TimeRange is the span of a session's prompt timestamps, epoch milliseconds.
type TimeRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// SessionView is the tier-1 view of a session, built from the history log.
// Prompts and PromptTimestamps are parallel and in arrival order.
type SessionView struct {
	SessionID string `json:"sessionId"`
	// ProjectPath is the display form of the project path, already redacted.
	ProjectPath      string    `json:"projectPath"`
	ProjectName      string    `json:"projectName"`
	Prompts          []string  `json:"prompts"`
	PromptTimestamps []int64   `json:"promptTimestamps"`
	TimeRange        TimeRange `json:"timeRange"`

	// SourcePath is the project path as recorded, used only to locate
	// files on disk. It is never serialized.
	SourcePath string `json:"-"`
}

// PromptCount is the number of prompts seen for the session.
func (v SessionView) PromptCount() int {
	return len(v.Prompts)
}

// TokenCounts accumulates the four billed token buckets.
type TokenCounts struct {
	Input      int64 `json:"input"`
	Output     int64 `json:"output"`
	CacheWrite int64 `json:"cacheWrite"`
	CacheRead  int64 `json:"cacheRead"`
}

// AddUsage folds an API usage block into the counts.
func (t *TokenCounts) AddUsage(u *TokenUsage) {
	if u == nil {
		return
	}
	t.Input += u.InputTokens
	t.Output += u.OutputTokens
	t.CacheWrite += u.CacheCreationInputTokens
	t.CacheRead += u.CacheReadInputTokens
}

// Add sums two counts.
func (t *TokenCounts) Add(o TokenCounts) {
	t.Input += o.Input
	t.Output += o.Output
	t.CacheWrite += o.CacheWrite
	t.CacheRead += o.CacheRead
}

// Total is the sum of all buckets.
func (t TokenCounts) Total() int64 {
	return t.Input + t.Output + t.CacheWrite + t.CacheRead
}

// SessionMeta is the tier-2 ("peek") view.
type SessionMeta struct {
	SessionView
	GitBranch    string      `json:"gitBranch,omitempty"`
	Model        string      `json:"model,omitempty"`
	Tokens       TokenCounts `json:"tokens"`
	MessageCount int         `json:"messageCount"`

	// TokensByModel splits Tokens by the model that produced them.
	TokensByModel map[string]TokenCounts `json:"tokensByModel,omitempty"`
}

// SessionDetail is the tier-3 ("full") view.
type SessionDetail struct {
	SessionMeta
	Title           string            `json:"title,omitempty"`
	Summaries       []string          `json:"summaries"`
	ToolCalls       []ToolCallSummary `json:"toolCalls"`
	FilesReferenced []string          `json:"filesReferenced"`
	ThinkingBlocks  int               `json:"thinkingBlocks"`
	PlanReferenced  bool              `json:"planReferenced"`
	HasSidechain    bool              `json:"hasSidechain"`
}

// ToolCategory is one of a closed set of tool groupings.
type ToolCategory string

const (
	CategoryRead     ToolCategory = "read"
	CategoryWrite    ToolCategory = "write"
	CategorySearch   ToolCategory = "search"
	CategoryExecute  ToolCategory = "execute"
	CategoryWeb      ToolCategory = "web"
	CategoryAgent    ToolCategory = "agent"
	CategoryPlanning ToolCategory = "planning"
	CategoryOther    ToolCategory = "other"
)

// ToolCallSummary describes one distinct tool invocation within a session.
// DisplayName is the dedup key.
type ToolCallSummary struct {
	Tool        string       `json:"tool"`
	DisplayName string       `json:"displayName"`
	Category    ToolCategory `json:"category"`
	Target      string       `json:"target,omitempty"`
}
