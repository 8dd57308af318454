package types

import (
	"bytes"
	"encoding/json"
)

// RecordKind discriminates transcript records by the fields they carry.
type RecordKind int

const (
	KindOther RecordKind = iota
	KindUserMessage
	KindAssistantMessage
	KindProgress
	KindSnapshot
)

func (k RecordKind) String() string {
	switch k {
	case KindUserMessage:
		return "user"
	case KindAssistantMessage:
		return "assistant"
	case KindProgress:
		return "progress"
	case KindSnapshot:
		return "snapshot"
	default:
		return "other"
	}
}

// Record is a single line of a session transcript. Kind is derived on parse;
// every other field mirrors the on-disk JSON and may be empty.
type Record struct {
	Kind RecordKind `json:"-"`

	Type        string          `json:"type,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	GitBranch   string          `json:"gitBranch,omitempty"`
	PlanContent string          `json:"planContent,omitempty"`
	IsSidechain bool            `json:"isSidechain,omitempty"`
	Summary     string          `json:"summary,omitempty"` // type:"summary" records
	Message     *Message        `json:"message,omitempty"`
	Snapshot    json.RawMessage `json:"snapshot,omitempty"`

	// ToolUseResult is the structured tool output Claude Code attaches to
	// tool-result user messages. Kept raw; only its presence matters here.
	ToolUseResult json.RawMessage `json:"toolUseResult,omitempty"`
}

// Message is the API message payload of user/assistant records.
type Message struct {
	Role    string         `json:"role,omitempty"`
	Model   string         `json:"model,omitempty"`
	Content MessageContent `json:"content"`
	Usage   *TokenUsage    `json:"usage,omitempty"`
}

// TokenUsage is the usage block of an assistant API response.
type TokenUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens,omitempty"`
}

// MessageContent is either a plain string or a list of content blocks.
type MessageContent struct {
	Text   string
	Blocks []ContentBlock
	// IsBlocks is true when the JSON value was an array.
	IsBlocks bool
}

// UnmarshalJSON accepts a JSON string or an array of content blocks.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = MessageContent{}
		return nil
	}
	if data[0] == '[' {
		var blocks []ContentBlock
		if err := json.Unmarshal(data, &blocks); err != nil {
			return err
		}
		*c = MessageContent{Blocks: blocks, IsBlocks: true}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*c = MessageContent{Text: text}
	return nil
}

// MarshalJSON writes the content back in the shape it was read.
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.IsBlocks {
		if c.Blocks == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.Blocks)
	}
	return json.Marshal(c.Text)
}

// BlockType tags a ContentBlock.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockThinking   BlockType = "thinking"
	BlockToolUse    BlockType = "tool_use"
	BlockToolResult BlockType = "tool_result"
)

// ContentBlock is a typed fragment of a message. Only the fields relevant to
// Type are populated: Text for text, Thinking for thinking, Name/Input for
// tool_use and Content for tool_result.
type ContentBlock struct {
	Type     BlockType       `json:"type"`
	Text     string          `json:"text,omitempty"`
	Thinking string          `json:"thinking,omitempty"`
	Name     string          `json:"name,omitempty"`
	Input    map[string]any  `json:"input,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// ParseRecord decodes one transcript line and classifies it.
func ParseRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	rec.Kind = classify(&rec)
	return rec, nil
}

func classify(rec *Record) RecordKind {
	if rec.Message != nil {
		switch rec.Message.Role {
		case "user":
			return KindUserMessage
		case "assistant":
			return KindAssistantMessage
		}
	}
	switch {
	case rec.Type == "progress":
		return KindProgress
	case rec.Type == "file-history-snapshot" || len(rec.Snapshot) > 0:
		return KindSnapshot
	case rec.Type == "user" && rec.Message != nil:
		return KindUserMessage
	case rec.Type == "assistant" && rec.Message != nil:
		return KindAssistantMessage
	}
	return KindOther
}

// HasRole reports whether the record carries a user or assistant message.
func (r *Record) HasRole() bool {
	return r.Kind == KindUserMessage || r.Kind == KindAssistantMessage
}

// HasToolResultPayload reports whether the record carries tool output: a
// toolUseResult field, or tool_result blocks in a user message.
func (r *Record) HasToolResultPayload() bool {
	if raw := bytes.TrimSpace(r.ToolUseResult); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		return true
	}
	if r.Kind != KindUserMessage || r.Message == nil {
		return false
	}
	for _, b := range r.Message.Content.Blocks {
		if b.Type == BlockToolResult {
			return true
		}
	}
	return false
}

// Model returns the model id, or "" for non-assistant records.
func (r *Record) Model() string {
	if r.Message == nil {
		return ""
	}
	return r.Message.Model
}

// Usage returns the token usage block, or nil.
func (r *Record) Usage() *TokenUsage {
	if r.Message == nil {
		return nil
	}
	return r.Message.Usage
}

// Blocks returns the block-structured content, or nil for string content.
func (r *Record) Blocks() []ContentBlock {
	if r.Message == nil {
		return nil
	}
	return r.Message.Content.Blocks
}
