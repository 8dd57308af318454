// Package transcript parses a session's transcript file into the peek and
// full views.
package transcript

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

// Collector accumulates one view of a transcript during a single pass.
// Collect only ever sees records that survived privacy filtering.
type Collector interface {
	Collect(rec *types.Record)
}

// ScanStats counts what a pass saw.
type ScanStats struct {
	Lines      int
	Malformed  int
	Suppressed int
}

// Scan reads the transcript at path once, filters each record through r and
// hands the survivors to every collector in order. Malformed lines are
// skipped. A missing file returns an error satisfying fs.ErrNotExist.
func Scan(path string, r *redactor.Redactor, collectors ...Collector) (ScanStats, error) {
	var stats ScanStats

	f, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()

	scanner := types.NewJSONLScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Lines++

		rec, err := types.ParseRecord(line)
		if err != nil {
			stats.Malformed++
			continue
		}

		filtered, keep := r.FilterRecord(rec)
		if !keep {
			stats.Suppressed++
			continue
		}

		for _, c := range collectors {
			c.Collect(&filtered)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("Stopped reading transcript %s early: %v", path, err)
	}
	if n := scanner.Oversized(); n > 0 {
		logger.Warn("Skipped %d line(s) over %d bytes in %s", n, types.MaxJSONLLineSize, path)
		stats.Lines += n
		stats.Malformed += n
	}
	if stats.Malformed > 0 {
		logger.Debug("Skipped %d malformed line(s) in %s", stats.Malformed, path)
	}

	return stats, nil
}

// Peek returns the metadata view of a session. The whole file is read:
// token totals keep accumulating after branch and model are known.
// A missing transcript yields the view with zero metadata.
func Peek(view types.SessionView, path string, r *redactor.Redactor) (types.SessionMeta, error) {
	meta := types.SessionMeta{SessionView: view}

	if _, err := Scan(path, r, newMetaCollector(&meta)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No transcript for session %s at %s", view.SessionID, path)
			return meta, nil
		}
		return meta, err
	}
	return meta, nil
}

// Full returns the complete view of a session: the metadata plus
// summaries, tool calls, referenced files and flags.
// A missing transcript yields the view with zero detail.
func Full(view types.SessionView, path string, r *redactor.Redactor) (types.SessionDetail, error) {
	detail := types.SessionDetail{
		SessionMeta:     types.SessionMeta{SessionView: view},
		Summaries:       []string{},
		ToolCalls:       []types.ToolCallSummary{},
		FilesReferenced: []string{},
	}

	dc := newDetailCollector(&detail, r)
	_, err := Scan(path, r, newMetaCollector(&detail.SessionMeta), dc)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return detail, err
	}
	if err != nil {
		logger.Debug("No transcript for session %s at %s", view.SessionID, path)
	}

	if detail.Title == "" && len(view.Prompts) > 0 {
		detail.Title = cleanTitle(view.Prompts[0])
	}
	return detail, nil
}
