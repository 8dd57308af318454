// Package history reads Claude Code's prompt log into per-session views.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

// UnknownProject names sessions whose history rows carry no project path.
const UnknownProject = "(unknown)"

// ProjectName is the display name of a project path: its last element.
func ProjectName(projectPath string) string {
	if projectPath == "" {
		return UnknownProject
	}
	name := filepath.Base(projectPath)
	if name == "/" || name == "." {
		return projectPath
	}
	return name
}

// ReadHistory scans the prompt log once and groups the rows that fall inside
// window into session views, ordered by session start. Rows outside the
// window are dropped before anything else; rows from excluded projects are
// dropped next; prompt text is redacted before it is grouped.
//
// A missing log yields no views and no error. Malformed lines are skipped.
func ReadHistory(path string, window types.DateRange, r *redactor.Redactor) ([]types.SessionView, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No history log at %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	views := make(map[string]*types.SessionView)
	var order []string
	var malformed int

	scanner := types.NewJSONLScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec types.HistoryRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			malformed++
			continue
		}

		if !window.Contains(rec.Timestamp) {
			continue
		}
		if rec.SessionID == "" {
			continue
		}
		if r.ExcludesProject(rec.Project) {
			continue
		}

		prompt := r.RedactPrompt(rec.Display)

		v, ok := views[rec.SessionID]
		if !ok {
			v = &types.SessionView{
				SessionID:   rec.SessionID,
				ProjectPath: r.RedactString(rec.Project),
				ProjectName: r.RedactString(ProjectName(rec.Project)),
				TimeRange:   types.TimeRange{Start: rec.Timestamp, End: rec.Timestamp},
				SourcePath:  rec.Project,
			}
			views[rec.SessionID] = v
			order = append(order, rec.SessionID)
		}

		v.Prompts = append(v.Prompts, prompt)
		v.PromptTimestamps = append(v.PromptTimestamps, rec.Timestamp)
		if rec.Timestamp < v.TimeRange.Start {
			v.TimeRange.Start = rec.Timestamp
		}
		if rec.Timestamp > v.TimeRange.End {
			v.TimeRange.End = rec.Timestamp
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("Stopped reading history %s early: %v", path, err)
	}
	if n := scanner.Oversized(); n > 0 {
		logger.Warn("Skipped %d history line(s) over %d bytes in %s", n, types.MaxJSONLLineSize, path)
		malformed += n
	}
	if malformed > 0 {
		logger.Debug("Skipped %d malformed history line(s) in %s", malformed, path)
	}

	out := make([]types.SessionView, 0, len(order))
	for _, id := range order {
		out = append(out, *views[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeRange.Start < out[j].TimeRange.Start
	})

	return out, nil
}

// FindSession returns the view of one session across the whole log.
func FindSession(path, sessionID string, r *redactor.Redactor) (types.SessionView, bool, error) {
	views, err := ReadHistory(path, types.AllTime(), r)
	if err != nil {
		return types.SessionView{}, false, err
	}
	for _, v := range views {
		if v.SessionID == sessionID {
			return v, true, nil
		}
	}
	return types.SessionView{}, false, nil
}
