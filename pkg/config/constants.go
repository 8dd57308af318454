package config

import "time"

// Application constants - centralized configuration values used across packages

// === Aggregation Thresholds ===

const (
	// DetailedSessionMinPrompts is the prompt count at which a daily or
	// project report fully parses a session's transcript
	DetailedSessionMinPrompts = 3

	// ToolReportMinPrompts is the prompt count below which the tool report
	// skips a session entirely
	ToolReportMinPrompts = 2

	// TopListSize caps the ranked file and command lists of the tool report
	TopListSize = 20
)

// Active time estimation
const (
	// GapCap is the most a single inter-prompt gap contributes
	GapCap = 15 * time.Minute

	// SinglePromptFloor is what a session with zero or one timestamp contributes
	SinglePromptFloor = 5 * time.Minute
)

// === Transcript Extraction ===

const (
	// MaxSummaries is the number of assistant summaries kept per session
	MaxSummaries = 10

	// SummaryMinChars is the length an assistant text must exceed to be summarized
	SummaryMinChars = 20

	// SummaryMaxChars truncates each assistant summary
	SummaryMaxChars = 200

	// QueryMaxChars truncates query arguments in tool display names
	QueryMaxChars = 80

	// MemorySnippetChars is how much of a project's CLAUDE.md is shown
	MemorySnippetChars = 500
)

// === File Processing ===

const (
	// WatchDebounce coalesces bursts of history writes in watch mode
	WatchDebounce = 500 * time.Millisecond
)

// === File Paths ===

// Directory and file names (relative to home or ccdigest directories)
const (
	// AppDir is the ccdigest settings directory
	AppDir = ".ccdigest"

	// SettingsTOMLFile is the preferred settings file name
	SettingsTOMLFile = "config.toml"

	// SettingsJSONFile is read when no TOML settings file exists
	SettingsJSONFile = "config.json"
)

// Claude Code directories
const (
	// ClaudeStateDir is the Claude Code state directory name
	ClaudeStateDir = ".claude"

	// ClaudeHistoryFile is the append-only prompt log
	ClaudeHistoryFile = "history.jsonl"

	// ClaudeProjectsSubdir holds one directory of transcripts per project
	ClaudeProjectsSubdir = "projects"

	// ClaudeTodosSubdir is the todos subdirectory within Claude state dir
	ClaudeTodosSubdir = "todos"

	// ClaudePlansSubdir holds plan-mode markdown files
	ClaudePlansSubdir = "plans"

	// ClaudeSkillsSubdir holds one directory per installed skill
	ClaudeSkillsSubdir = "skills"

	// ClaudeStatsCacheFile is Claude Code's precomputed usage stats
	ClaudeStatsCacheFile = "stats-cache.json"

	// ProjectMemoryFile is the per-project memory file
	ProjectMemoryFile = "CLAUDE.md"
)

// === Environment Variables ===

const (
	// ProfileEnv selects the privacy profile, overriding the settings file
	ProfileEnv = "CCDIGEST_PROFILE"
)
