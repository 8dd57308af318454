package artifacts

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/types"
)

// Plan is a plan-mode document.
type Plan struct {
	Name    string    `json:"name"`
	Title   string    `json:"title"`
	ModTime time.Time `json:"modTime"`
}

// PlansInRange lists plans/*.md last modified on a day inside window,
// oldest first. A missing directory yields no plans.
func PlansInRange(dir string, window types.DateRange, r *redactor.Redactor) ([]Plan, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read plans directory: %w", err)
	}

	var plans []Plan
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		info, err := e.Info()
		if err != nil || !window.ContainsTime(info.ModTime()) {
			continue
		}

		name := strings.TrimSuffix(e.Name(), ".md")
		title := planTitle(filepath.Join(dir, e.Name()))
		if title == "" {
			title = name
		}
		plans = append(plans, Plan{
			Name:    name,
			Title:   r.RedactString(title),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(plans, func(i, j int) bool { return plans[i].ModTime.Before(plans[j].ModTime) })
	return plans, nil
}

// planTitle returns the text of the first "# " heading, or "".
func planTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
