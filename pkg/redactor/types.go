package redactor

// Config is a fully resolved privacy configuration.
type Config struct {
	RedactPrompts       bool      `json:"redactPrompts" toml:"redact_prompts"`
	RedactAbsolutePaths bool      `json:"redactAbsolutePaths" toml:"redact_absolute_paths"`
	RedactHomeDir       bool      `json:"redactHomeDir" toml:"redact_home_dir"`
	StripThinking       bool      `json:"stripThinking" toml:"strip_thinking"`
	StripToolResults    bool      `json:"stripToolResults" toml:"strip_tool_results"`
	Patterns            []Pattern `json:"patterns" toml:"patterns"`
	ExcludeProjects     []string  `json:"excludeProjects" toml:"exclude_projects"`
}

// Pattern is a single substitution pattern. Pattern is a Go regular
// expression; when CaptureGroup > 0 only that group is replaced.
type Pattern struct {
	Name         string `json:"name,omitempty" toml:"name"`
	Pattern      string `json:"pattern" toml:"pattern"`
	Type         string `json:"type,omitempty" toml:"type"`
	CaptureGroup int    `json:"captureGroup,omitempty" toml:"capture_group"`
}

// Overrides are caller adjustments layered onto a profile. Nil booleans
// leave the profile value in place.
type Overrides struct {
	RedactPrompts       *bool     `json:"redactPrompts,omitempty" toml:"redact_prompts"`
	RedactAbsolutePaths *bool     `json:"redactAbsolutePaths,omitempty" toml:"redact_absolute_paths"`
	RedactHomeDir       *bool     `json:"redactHomeDir,omitempty" toml:"redact_home_dir"`
	StripThinking       *bool     `json:"stripThinking,omitempty" toml:"strip_thinking"`
	StripToolResults    *bool     `json:"stripToolResults,omitempty" toml:"strip_tool_results"`
	Patterns            []Pattern `json:"patterns,omitempty" toml:"patterns"`
	ExcludeProjects     []string  `json:"excludeProjects,omitempty" toml:"exclude_projects"`
}

// Markers substituted for redacted content.
const (
	PromptMarker  = "[REDACTED:PROMPT]"
	PatternMarker = "[REDACTED]"
	HomeMarker    = "~"
)
