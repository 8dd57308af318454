package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ClaudeStateDirEnv is the environment variable to override the default Claude state directory
const ClaudeStateDirEnv = "CCDIGEST_CLAUDE_DIR"

// AppDirEnv overrides the ccdigest settings directory (~/.ccdigest)
const AppDirEnv = "CCDIGEST_DIR"

// GetClaudeStateDir returns the Claude state directory path.
// Defaults to ~/.claude but can be overridden with CCDIGEST_CLAUDE_DIR env var.
func GetClaudeStateDir() (string, error) {
	if envDir := os.Getenv(ClaudeStateDirEnv); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ClaudeStateDir), nil
}

// GetAppDir returns the directory holding ccdigest's own settings.
func GetAppDir() (string, error) {
	if envDir := os.Getenv(AppDirEnv); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, AppDir), nil
}

// Paths locates every file ccdigest reads under a Claude state directory.
type Paths struct {
	ClaudeDir  string `json:"claudeDir"`
	History    string `json:"history"`
	Projects   string `json:"projects"`
	Todos      string `json:"todos"`
	Plans      string `json:"plans"`
	Skills     string `json:"skills"`
	StatsCache string `json:"statsCache"`
}

// PathsFor derives all paths from a Claude state directory.
func PathsFor(claudeDir string) Paths {
	return Paths{
		ClaudeDir:  claudeDir,
		History:    filepath.Join(claudeDir, ClaudeHistoryFile),
		Projects:   filepath.Join(claudeDir, ClaudeProjectsSubdir),
		Todos:      filepath.Join(claudeDir, ClaudeTodosSubdir),
		Plans:      filepath.Join(claudeDir, ClaudePlansSubdir),
		Skills:     filepath.Join(claudeDir, ClaudeSkillsSubdir),
		StatsCache: filepath.Join(claudeDir, ClaudeStatsCacheFile),
	}
}

// ResolvePaths uses override when set, otherwise GetClaudeStateDir.
func ResolvePaths(override string) (Paths, error) {
	if override != "" {
		return PathsFor(override), nil
	}
	dir, err := GetClaudeStateDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get claude state directory: %w", err)
	}
	return PathsFor(dir), nil
}
