package redactor

import (
	"errors"
	"testing"
)

func TestProfilesAreSupersets(t *testing.T) {
	local, _ := ProfileConfig(ProfileLocal)
	shareable, _ := ProfileConfig(ProfileShareable)
	strict, _ := ProfileConfig(ProfileStrict)

	if !local.StripToolResults || !local.StripThinking {
		t.Error("local must strip tool results and thinking")
	}
	if local.RedactAbsolutePaths || local.RedactHomeDir || local.RedactPrompts {
		t.Error("local must not redact paths or prompts")
	}

	if !shareable.StripToolResults || !shareable.StripThinking || !shareable.RedactAbsolutePaths || !shareable.RedactHomeDir {
		t.Errorf("shareable must include local plus path redaction: %+v", shareable)
	}
	if shareable.RedactPrompts {
		t.Error("shareable must not redact prompts")
	}

	if !strict.RedactPrompts || !strict.RedactAbsolutePaths || !strict.RedactHomeDir || !strict.StripThinking || !strict.StripToolResults {
		t.Errorf("strict must include everything: %+v", strict)
	}
	if len(strict.Patterns) != len(DefaultPatterns()) {
		t.Errorf("strict should carry %d built-in patterns, got %d", len(DefaultPatterns()), len(strict.Patterns))
	}
}

func TestUnknownProfileRejected(t *testing.T) {
	_, err := Resolve("paranoid", Overrides{})
	if !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("Expected ErrUnknownProfile, got %v", err)
	}
}

func TestEmptyProfileIsDefault(t *testing.T) {
	cfg, err := Resolve("", Overrides{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want, _ := ProfileConfig(DefaultProfile)
	if cfg.StripThinking != want.StripThinking || cfg.RedactHomeDir != want.RedactHomeDir {
		t.Errorf("Got %+v, want %+v", cfg, want)
	}
}

func TestResolveMergesOverrides(t *testing.T) {
	off := false
	on := true

	cfg, err := Resolve(ProfileStrict, Overrides{
		StripThinking:   &off,
		RedactPrompts:   &on,
		Patterns:        []Pattern{{Name: "dup", Pattern: DefaultPatterns()[0].Pattern}, {Name: "codename", Pattern: `project-falcon`}},
		ExcludeProjects: []string{"secret-client", "secret-client"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if cfg.StripThinking {
		t.Error("Scalar override should replace profile value")
	}
	if !cfg.StripToolResults {
		t.Error("Unset override should keep profile value")
	}

	if got, want := len(cfg.Patterns), len(DefaultPatterns())+1; got != want {
		t.Errorf("Patterns should union by expression: got %d, want %d", got, want)
	}
	if last := cfg.Patterns[len(cfg.Patterns)-1]; last.Name != "codename" {
		t.Errorf("Override patterns should follow profile patterns, last = %+v", last)
	}
	if len(cfg.ExcludeProjects) != 1 || cfg.ExcludeProjects[0] != "secret-client" {
		t.Errorf("ExcludeProjects = %v", cfg.ExcludeProjects)
	}
}
