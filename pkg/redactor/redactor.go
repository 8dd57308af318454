package redactor

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
)

// Rule is one (matcher, replacement) step of the redaction pass.
type Rule struct {
	Name    string
	Matcher *regexp.Regexp
	// Replacement is a regexp template ($1 etc. expand).
	Replacement string
	// CaptureGroup > 0 replaces only that group, literally, and keeps the
	// rest of the match.
	CaptureGroup int
}

// Apply runs the rule over s.
func (r Rule) Apply(s string) string {
	if r.CaptureGroup <= 0 {
		return r.Matcher.ReplaceAllString(s, r.Replacement)
	}
	return replaceGroup(r.Matcher, s, r.CaptureGroup, r.Replacement)
}

// replaceGroup swaps the span of one capture group in every match.
func replaceGroup(re *regexp.Regexp, s string, group int, marker string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := 2*group, 2*group+1
		if end >= len(m) || m[start] < 0 {
			continue
		}
		b.WriteString(s[last:m[start]])
		b.WriteString(marker)
		last = m[end]
	}
	b.WriteString(s[last:])
	return b.String()
}

// Redactor applies a resolved Config. A nil *Redactor passes everything through.
type Redactor struct {
	cfg   Config
	rules []Rule
}

// absPathRegex matches absolute paths of three or more segments that start
// at a boundary, so "~/x/y/z" and URLs are left alone. Group 1 keeps the
// boundary character, group 2 the last two segments.
var absPathRegex = regexp.MustCompile(`(^|[\s"'(=:,\[{<>])/(?:[^/\s"'(),\[\]{}<>]+/)+([^/\s"'(),\[\]{}<>]+/[^/\s"'(),\[\]{}<>]+)`)

// New builds a Redactor for the current user's home directory.
func New(cfg Config) *Redactor {
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("Could not determine home directory for redaction: %v", err)
		home = ""
	}
	return NewWithHome(cfg, home)
}

// NewWithHome builds a Redactor treating home as the home directory.
// Rules are compiled once, in order: home literal, absolute paths, then each
// pattern. Patterns that fail to compile are logged and skipped.
func NewWithHome(cfg Config, home string) *Redactor {
	var rules []Rule

	home = strings.TrimRight(home, "/")
	if cfg.RedactHomeDir && home != "" {
		rules = append(rules, Rule{
			Name:        "home directory",
			Matcher:     regexp.MustCompile(regexp.QuoteMeta(home) + `([^A-Za-z0-9_.-]|$)`),
			Replacement: HomeMarker + "${1}",
		})
	}

	if cfg.RedactAbsolutePaths {
		rules = append(rules, Rule{
			Name:        "absolute path",
			Matcher:     absPathRegex,
			Replacement: "${1}${2}",
		})
	}

	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			logger.Warn("Skipping invalid redaction pattern %q: %v", patternLabel(p), err)
			continue
		}
		if p.CaptureGroup > re.NumSubexp() {
			logger.Warn("Skipping redaction pattern %q: capture group %d out of range", patternLabel(p), p.CaptureGroup)
			continue
		}
		replacement := markerFor(p)
		if p.CaptureGroup <= 0 {
			replacement = escapeTemplate(replacement)
		}
		rules = append(rules, Rule{
			Name:         patternLabel(p),
			Matcher:      re,
			Replacement:  replacement,
			CaptureGroup: p.CaptureGroup,
		})
	}

	return &Redactor{cfg: cfg, rules: rules}
}

func patternLabel(p Pattern) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Pattern
}

func markerFor(p Pattern) string {
	if p.Type == "" {
		return PatternMarker
	}
	return fmt.Sprintf("[REDACTED:%s]", strings.ToUpper(p.Type))
}

// escapeTemplate keeps a literal marker from being read as $-expansions.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// Config returns the configuration the redactor was built from.
func (r *Redactor) Config() Config {
	if r == nil {
		return Config{}
	}
	return r.cfg
}

// Rules returns the compiled rules in evaluation order.
func (r *Redactor) Rules() []Rule {
	if r == nil {
		return nil
	}
	return append([]Rule(nil), r.rules...)
}

// RedactString applies every rule to s, in order.
func (r *Redactor) RedactString(s string) string {
	if r == nil || s == "" {
		return s
	}
	for _, rule := range r.rules {
		s = rule.Apply(s)
	}
	return s
}

// RedactPrompt returns the text to keep for a user prompt: the prompt marker
// when prompts are redacted, otherwise the string-redacted prompt.
func (r *Redactor) RedactPrompt(s string) string {
	if r == nil {
		return s
	}
	if r.cfg.RedactPrompts {
		return PromptMarker
	}
	return r.RedactString(s)
}

// ExcludesProject reports whether a project path matches any excluded substring.
func (r *Redactor) ExcludesProject(projectPath string) bool {
	if r == nil {
		return false
	}
	for _, sub := range r.cfg.ExcludeProjects {
		if sub != "" && strings.Contains(projectPath, sub) {
			return true
		}
	}
	return false
}
