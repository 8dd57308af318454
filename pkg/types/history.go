package types

// HistoryRecord is one prompt event from ~/.claude/history.jsonl.
type HistoryRecord struct {
	Display   string `json:"display"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
	Project   string `json:"project"`
	SessionID string `json:"sessionId"`
}
