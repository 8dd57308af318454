package report

import (
	"errors"
	"fmt"

	"github.com/santaclaude2025/ccdigest/pkg/discovery"
	"github.com/santaclaude2025/ccdigest/pkg/history"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/transcript"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

// SessionMetaReport is the peek view of one session with its estimates.
type SessionMetaReport struct {
	types.SessionMeta
	TranscriptPath   string  `json:"-"`
	EstimatedHours   float64 `json:"estimatedHours"`
	EstimatedCostUSD Money   `json:"estimatedCostUSD"`
}

// SessionDetailReport is the full view of one session with its estimates.
type SessionDetailReport struct {
	types.SessionDetail
	TranscriptPath   string  `json:"-"`
	EstimatedHours   float64 `json:"estimatedHours"`
	EstimatedCostUSD Money   `json:"estimatedCostUSD"`
}

// Session reports on one session by full id or unique id prefix. With peek
// set it returns a *SessionMetaReport, otherwise a *SessionDetailReport.
// Sessions of excluded projects are reported as not found.
func (e *Engine) Session(id string, peek bool) (any, error) {
	view, path, err := e.resolveSession(id)
	if err != nil {
		return nil, err
	}
	hours := roundHours(EstimateHours([]types.SessionView{view}))

	if peek {
		meta, err := transcript.Peek(view, path, e.Redactor)
		if err != nil {
			return nil, err
		}
		return &SessionMetaReport{
			SessionMeta:      meta,
			TranscriptPath:   path,
			EstimatedHours:   hours,
			EstimatedCostUSD: e.cost(meta),
		}, nil
	}

	detail, err := transcript.Full(view, path, e.Redactor)
	if err != nil {
		return nil, err
	}
	return &SessionDetailReport{
		SessionDetail:    detail,
		TranscriptPath:   path,
		EstimatedHours:   hours,
		EstimatedCostUSD: e.cost(detail.SessionMeta),
	}, nil
}

// resolveSession finds the session's history view and transcript. The
// transcript directory is searched first so prefixes work; a session only
// present in the history log is still found by its full id.
func (e *Engine) resolveSession(id string) (types.SessionView, string, error) {
	info, err := discovery.FindSessionByID(e.Paths.Projects, id)
	if err != nil {
		if !errors.Is(err, discovery.ErrSessionNotFound) {
			return types.SessionView{}, "", err
		}
		view, ok, herr := history.FindSession(e.Paths.History, id, e.Redactor)
		if herr != nil {
			return types.SessionView{}, "", herr
		}
		if !ok {
			return types.SessionView{}, "", err
		}
		return view, e.locator().transcriptPath(view), nil
	}

	if e.Redactor.ExcludesProject(info.ProjectPath()) || e.Redactor.ExcludesProject(info.ProjectDir) {
		return types.SessionView{}, "", fmt.Errorf("%w: %s", discovery.ErrSessionNotFound, id)
	}

	view, ok, err := history.FindSession(e.Paths.History, info.SessionID, e.Redactor)
	if err != nil {
		return types.SessionView{}, "", err
	}
	if !ok {
		logger.Debug("Session %s not in history log, using transcript location", info.SessionID)
		decoded := info.ProjectPath()
		view = types.SessionView{
			SessionID:        info.SessionID,
			ProjectPath:      e.Redactor.RedactString(decoded),
			ProjectName:      e.Redactor.RedactString(history.ProjectName(decoded)),
			Prompts:          []string{},
			PromptTimestamps: []int64{},
			SourcePath:       decoded,
		}
	}
	return view, info.TranscriptPath, nil
}
