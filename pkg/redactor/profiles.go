package redactor

import (
	"errors"
	"fmt"
	"strings"
)

// Profile names. Each profile is a strict superset of the one before it.
const (
	ProfileLocal     = "local"
	ProfileShareable = "shareable"
	ProfileStrict    = "strict"

	DefaultProfile = ProfileLocal
)

// ErrUnknownProfile is returned by Resolve for unrecognised profile names.
var ErrUnknownProfile = errors.New("unknown privacy profile")

// ProfileNames lists the profiles in ascending strictness.
func ProfileNames() []string {
	return []string{ProfileLocal, ProfileShareable, ProfileStrict}
}

// ProfileConfig returns the configuration a named profile expands to.
func ProfileConfig(name string) (Config, error) {
	if name == "" {
		name = DefaultProfile
	}

	local := Config{
		StripToolResults: true,
		StripThinking:    true,
	}

	switch strings.ToLower(name) {
	case ProfileLocal:
		return local, nil
	case ProfileShareable:
		cfg := local
		cfg.RedactAbsolutePaths = true
		cfg.RedactHomeDir = true
		return cfg, nil
	case ProfileStrict:
		cfg := local
		cfg.RedactAbsolutePaths = true
		cfg.RedactHomeDir = true
		cfg.RedactPrompts = true
		cfg.Patterns = DefaultPatterns()
		return cfg, nil
	}

	return Config{}, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownProfile, name, strings.Join(ProfileNames(), ", "))
}

// Resolve expands a profile and merges caller overrides onto it. Scalar
// overrides replace the profile value; list overrides are unioned with the
// profile's lists, profile entries first.
func Resolve(profile string, ov Overrides) (Config, error) {
	cfg, err := ProfileConfig(profile)
	if err != nil {
		return Config{}, err
	}
	return Merge(cfg, ov), nil
}

// Merge applies overrides to an already resolved config.
func Merge(cfg Config, ov Overrides) Config {
	setBool(&cfg.RedactPrompts, ov.RedactPrompts)
	setBool(&cfg.RedactAbsolutePaths, ov.RedactAbsolutePaths)
	setBool(&cfg.RedactHomeDir, ov.RedactHomeDir)
	setBool(&cfg.StripThinking, ov.StripThinking)
	setBool(&cfg.StripToolResults, ov.StripToolResults)

	cfg.Patterns = unionPatterns(cfg.Patterns, ov.Patterns)
	cfg.ExcludeProjects = unionStrings(cfg.ExcludeProjects, ov.ExcludeProjects)
	return cfg
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// unionPatterns keys patterns by their expression.
func unionPatterns(base, extra []Pattern) []Pattern {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]Pattern, 0, len(base)+len(extra))
	for _, list := range [][]Pattern{base, extra} {
		for _, p := range list {
			if p.Pattern == "" || seen[p.Pattern] {
				continue
			}
			seen[p.Pattern] = true
			out = append(out, p)
		}
	}
	return out
}

func unionStrings(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
