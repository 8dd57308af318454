package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
)

var (
	// ErrSessionNotFound means no transcript matched the requested id.
	ErrSessionNotFound = errors.New("session not found")

	// ErrAmbiguousSession means an id prefix matched several transcripts.
	ErrAmbiguousSession = errors.New("ambiguous session id")
)

// SessionInfo holds metadata about a transcript file found on disk
type SessionInfo struct {
	SessionID      string
	TranscriptPath string
	// ProjectDir is the encoded directory name under projects/.
	ProjectDir string
	ModTime    time.Time
	SizeBytes  int64
}

// ProjectPath is the decoded, and possibly lossy, project path.
func (s SessionInfo) ProjectPath() string {
	return DecodeProjectPath(s.ProjectDir)
}

// ScanAllSessions finds all session transcript files under projectsDir.
// Returns sessions sorted by modification time (oldest first).
func ScanAllSessions(projectsDir string) ([]SessionInfo, error) {
	if _, err := os.Stat(projectsDir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var sessions []SessionInfo
	err := walkSessions(projectsDir, "scan", func(s SessionInfo) {
		sessions = append(sessions, s)
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModTime.Before(sessions[j].ModTime)
	})

	return sessions, nil
}

// FindSessionByID finds a session transcript by full id or id prefix.
// An exact match wins over prefix matches.
func FindSessionByID(projectsDir, partialID string) (SessionInfo, error) {
	partialID = strings.TrimSpace(partialID)
	if partialID == "" {
		return SessionInfo{}, fmt.Errorf("%w: empty id", ErrSessionNotFound)
	}

	var matches []SessionInfo
	var exact *SessionInfo

	err := walkSessions(projectsDir, "search", func(s SessionInfo) {
		if s.SessionID == partialID {
			found := s
			exact = &found
			return
		}
		if strings.HasPrefix(s.SessionID, partialID) {
			matches = append(matches, s)
		}
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SessionInfo{}, err
	}

	if exact != nil {
		return *exact, nil
	}
	if len(matches) == 0 {
		return SessionInfo{}, fmt.Errorf("%w: %s", ErrSessionNotFound, partialID)
	}
	if len(matches) > 1 {
		return SessionInfo{}, fmt.Errorf("%w: '%s' matches %d sessions", ErrAmbiguousSession, partialID, len(matches))
	}

	return matches[0], nil
}

// walkSessions visits every transcript under projectsDir. Unreadable paths
// are logged and skipped.
func walkSessions(projectsDir, operation string, visit func(SessionInfo)) error {
	var skipped int

	err := filepath.WalkDir(projectsDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == projectsDir {
				return walkErr
			}
			logger.Warn("Failed to access path during %s: %s: %v", operation, path, walkErr)
			skipped++
			return nil
		}

		if session := parseSessionFromPath(path, d, projectsDir); session != nil {
			visit(*session)
		}
		return nil
	})

	if skipped > 0 {
		logger.Warn("Skipped %d unreadable path(s) during %s of %s", skipped, operation, projectsDir)
	}
	if err != nil {
		return fmt.Errorf("failed to walk projects directory: %w", err)
	}
	return nil
}

// parseSessionFromPath checks if a path is a session transcript and returns SessionInfo
func parseSessionFromPath(path string, d os.DirEntry, projectsDir string) *SessionInfo {
	if d.IsDir() {
		return nil
	}

	name := d.Name()
	if !strings.HasSuffix(name, ".jsonl") {
		return nil
	}

	// Subagent transcripts are not sessions
	if strings.HasPrefix(name, "agent-") {
		return nil
	}

	sessionID := strings.TrimSuffix(name, ".jsonl")
	if _, err := uuid.Parse(sessionID); err != nil || len(sessionID) != 36 {
		return nil
	}

	info, err := d.Info()
	if err != nil {
		return nil
	}

	relPath, _ := filepath.Rel(projectsDir, filepath.Dir(path))

	return &SessionInfo{
		SessionID:      sessionID,
		TranscriptPath: path,
		ProjectDir:     relPath,
		ModTime:        info.ModTime(),
		SizeBytes:      info.Size(),
	}
}
