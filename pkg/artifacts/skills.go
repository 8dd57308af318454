package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"gopkg.in/yaml.v3"
)

// skillFile is the manifest each skill directory carries.
const skillFile = "SKILL.md"

// Skill is an installed skill.
type Skill struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Dir         string `json:"dir" yaml:"-"`
}

// ListSkills reads skills/<name>/SKILL.md front matter, sorted by name. A
// skill without front matter is listed under its directory name.
func ListSkills(dir string) ([]Skill, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read skills directory: %w", err)
	}

	var skills []Skill
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		skillDir := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(filepath.Join(skillDir, skillFile))
		if err != nil {
			continue
		}

		s, err := parseFrontMatter(data)
		if err != nil {
			logger.Debug("Bad front matter in %s: %v", skillDir, err)
		}
		if s.Name == "" {
			s.Name = e.Name()
		}
		s.Dir = skillDir
		skills = append(skills, s)
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}

var frontMatterDelim = []byte("---")

// parseFrontMatter decodes the YAML block between the leading "---" lines.
func parseFrontMatter(data []byte) (Skill, error) {
	var s Skill
	data = bytes.TrimLeft(data, "\ufeff \t\r\n")
	if !bytes.HasPrefix(data, frontMatterDelim) {
		return s, nil
	}

	rest := data[len(frontMatterDelim):]
	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
	if end < 0 {
		return s, fmt.Errorf("unterminated front matter")
	}

	if err := yaml.Unmarshal(rest[:end], &s); err != nil {
		return Skill{}, err
	}
	return s, nil
}
