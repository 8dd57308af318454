// Package artifacts reads the side files Claude Code keeps next to its
// transcripts: todo lists, plans, project memory and skills.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
)

// Todo is one entry of a TodoWrite list.
type Todo struct {
	Content    string `json:"content"`
	Status     string `json:"status"`
	ActiveForm string `json:"activeForm,omitempty"`
}

// todoAgentSep separates the session id from the agent id in todo file
// names: {sessionID}-agent-{agentID}.json
const todoAgentSep = "-agent-"

// TodosForSessions reads the todo lists of the given sessions, main session
// and subagents alike, keyed by session id. A missing directory yields an
// empty map. Unparseable files are skipped.
func TodosForSessions(dir string, sessionIDs []string, r *redactor.Redactor) (map[string][]Todo, error) {
	out := make(map[string][]Todo)
	if len(sessionIDs) == 0 {
		return out, nil
	}

	wanted := make(map[string]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		wanted[id] = true
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read todos directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		idx := strings.Index(name, todoAgentSep)
		if idx <= 0 {
			continue
		}
		sessionID := name[:idx]
		if !wanted[sessionID] {
			continue
		}

		todos, err := readTodoFile(filepath.Join(dir, name))
		if err != nil {
			logger.Debug("Skipping todo file %s: %v", name, err)
			continue
		}
		for _, t := range todos {
			t.Content = r.RedactString(t.Content)
			t.ActiveForm = r.RedactString(t.ActiveForm)
			out[sessionID] = append(out[sessionID], t)
		}
	}

	return out, nil
}

func readTodoFile(path string) ([]Todo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var todos []Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}
