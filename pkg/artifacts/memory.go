package artifacts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the memory file reads in flight.
const maxConcurrentReads = 8

// MemorySnippets reads the start of each project's CLAUDE.md, keyed by
// project path. Projects without one are absent from the result. Reads run
// concurrently; each goroutine owns one slot of the result slice.
func MemorySnippets(projectPaths []string, r *redactor.Redactor) map[string]string {
	paths := uniqueNonEmpty(projectPaths)
	snippets := make([]string, len(paths))

	var g errgroup.Group
	g.SetLimit(maxConcurrentReads)
	for i, p := range paths {
		g.Go(func() error {
			snippets[i] = readSnippet(filepath.Join(p, config.ProjectMemoryFile), r)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]string, len(paths))
	for i, p := range paths {
		if snippets[i] != "" {
			out[p] = snippets[i]
		}
	}
	return out
}

func readSnippet(path string, r *redactor.Redactor) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Could not read %s: %v", path, err)
		}
		return ""
	}
	text := strings.TrimSpace(utils.Truncate(string(data), config.MemorySnippetChars))
	return r.RedactString(text)
}

func uniqueNonEmpty(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
