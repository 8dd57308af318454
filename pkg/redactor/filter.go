package redactor

import "github.com/santaclaude2025/ccdigest/pkg/types"

// FilterRecord applies the privacy config to one transcript record. The
// second return is false when the record is suppressed outright: with
// StripToolResults set, any record carrying tool output is dropped rather
// than filtered. The input record is never modified.
func (r *Redactor) FilterRecord(rec types.Record) (types.Record, bool) {
	if r == nil {
		return rec, true
	}
	if r.cfg.StripToolResults && rec.HasToolResultPayload() {
		return types.Record{}, false
	}

	out := rec
	out.Summary = r.RedactString(rec.Summary)

	if rec.Message == nil {
		return out, true
	}
	msg := *rec.Message
	out.Message = &msg

	switch rec.Kind {
	case types.KindUserMessage:
		msg.Content = r.filterUserContent(rec.Message.Content)
	case types.KindAssistantMessage:
		msg.Content = r.filterAssistantContent(rec.Message.Content)
	default:
		msg.Content = r.redactContent(rec.Message.Content)
	}

	return out, true
}

func (r *Redactor) filterUserContent(c types.MessageContent) types.MessageContent {
	if !r.cfg.RedactPrompts {
		return r.redactContent(c)
	}
	if !c.IsBlocks {
		return types.MessageContent{Text: PromptMarker}
	}

	blocks := make([]types.ContentBlock, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		if b.Type == types.BlockText {
			b.Text = PromptMarker
		}
		blocks = append(blocks, b)
	}
	return types.MessageContent{Blocks: blocks, IsBlocks: true}
}

func (r *Redactor) filterAssistantContent(c types.MessageContent) types.MessageContent {
	if !c.IsBlocks {
		return types.MessageContent{Text: r.RedactString(c.Text)}
	}

	blocks := make([]types.ContentBlock, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		switch b.Type {
		case types.BlockThinking:
			if r.cfg.StripThinking {
				continue
			}
			b.Thinking = r.RedactString(b.Thinking)
		case types.BlockToolResult:
			if r.cfg.StripToolResults {
				continue
			}
		case types.BlockText:
			b.Text = r.RedactString(b.Text)
		}
		blocks = append(blocks, b)
	}
	return types.MessageContent{Blocks: blocks, IsBlocks: true}
}

// redactContent runs string redaction over every text-bearing part.
func (r *Redactor) redactContent(c types.MessageContent) types.MessageContent {
	if !c.IsBlocks {
		return types.MessageContent{Text: r.RedactString(c.Text)}
	}

	blocks := make([]types.ContentBlock, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		switch b.Type {
		case types.BlockText:
			b.Text = r.RedactString(b.Text)
		case types.BlockThinking:
			b.Thinking = r.RedactString(b.Thinking)
		}
		blocks = append(blocks, b)
	}
	return types.MessageContent{Blocks: blocks, IsBlocks: true}
}
