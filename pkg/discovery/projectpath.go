package discovery

import (
	"path/filepath"
	"strings"
)

// EncodeProjectPath converts an absolute project path into the directory name
// Claude Code uses under projects/: every "/" becomes "-".
//
//	/Users/jane/src/app -> -Users-jane-src-app
func EncodeProjectPath(projectPath string) string {
	return strings.ReplaceAll(projectPath, "/", "-")
}

// DecodeProjectPath reverses EncodeProjectPath by turning every "-" back into
// "/". The mapping is lossy: a project path that itself contains "-" does not
// round-trip ("/src/my-app" decodes as "/src/my/app"). Callers that know the
// real path, e.g. from history.jsonl, should prefer it.
func DecodeProjectPath(dirName string) string {
	return strings.ReplaceAll(dirName, "-", "/")
}

// TranscriptPath returns where the transcript for a session of a project lives.
func TranscriptPath(projectsDir, projectPath, sessionID string) string {
	return filepath.Join(projectsDir, EncodeProjectPath(projectPath), sessionID+".jsonl")
}
