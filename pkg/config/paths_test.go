package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetClaudeStateDir(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name   string
		envVal string
		want   string
	}{
		{
			name:   "default to ~/.claude",
			envVal: "",
			want:   filepath.Join(home, ".claude"),
		},
		{
			name:   "override with env var",
			envVal: "/tmp/custom-claude",
			want:   "/tmp/custom-claude",
		},
		{
			name:   "override with relative path",
			envVal: "my-claude-dir",
			want:   "my-claude-dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ClaudeStateDirEnv, tt.envVal)

			got, err := GetClaudeStateDir()
			if err != nil {
				t.Fatalf("GetClaudeStateDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetClaudeStateDir() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetAppDir(t *testing.T) {
	t.Setenv(AppDirEnv, "/tmp/ccdigest-test")

	got, err := GetAppDir()
	if err != nil {
		t.Fatalf("GetAppDir() error = %v", err)
	}
	if got != "/tmp/ccdigest-test" {
		t.Errorf("GetAppDir() = %v", got)
	}
}

func TestPathsFor(t *testing.T) {
	p := PathsFor("/tmp/test-claude")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"history", p.History, "/tmp/test-claude/history.jsonl"},
		{"projects", p.Projects, "/tmp/test-claude/projects"},
		{"todos", p.Todos, "/tmp/test-claude/todos"},
		{"plans", p.Plans, "/tmp/test-claude/plans"},
		{"skills", p.Skills, "/tmp/test-claude/skills"},
		{"stats cache", p.StatsCache, "/tmp/test-claude/stats-cache.json"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestResolvePathsPrefersOverride(t *testing.T) {
	t.Setenv(ClaudeStateDirEnv, "/tmp/from-env")

	p, err := ResolvePaths("/tmp/from-flag")
	if err != nil {
		t.Fatalf("ResolvePaths() error = %v", err)
	}
	if p.ClaudeDir != "/tmp/from-flag" {
		t.Errorf("ClaudeDir = %v", p.ClaudeDir)
	}

	p, err = ResolvePaths("")
	if err != nil {
		t.Fatalf("ResolvePaths() error = %v", err)
	}
	if p.ClaudeDir != "/tmp/from-env" {
		t.Errorf("ClaudeDir = %v", p.ClaudeDir)
	}
}
