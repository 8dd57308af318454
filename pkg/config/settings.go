package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/pricing"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
)

// Settings is the user's ccdigest configuration.
//
//	profile = "shareable"
//	timezone = "Europe/Berlin"
//
//	[privacy]
//	strip_thinking = false
//	exclude_projects = ["client-x"]
//
//	[[privacy.patterns]]
//	name = "codename"
//	pattern = "project-[a-z]+"
//
//	[pricing."claude-opus-4-5"]
//	input = 4.5
type Settings struct {
	Profile  string                          `json:"profile,omitempty" toml:"profile"`
	Timezone string                          `json:"timezone,omitempty" toml:"timezone"`
	Privacy  redactor.Overrides              `json:"privacy,omitempty" toml:"privacy"`
	Pricing  map[string]pricing.RateOverride `json:"pricing,omitempty" toml:"pricing"`

	// Source is the file the settings were read from, empty for defaults.
	Source string `json:"-" toml:"-"`
}

// LoadSettings reads settings from the ccdigest directory.
func LoadSettings() (*Settings, error) {
	dir, err := GetAppDir()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(dir)
}

// LoadSettingsFrom reads config.toml from dir, falling back to config.json.
// Neither file existing yields default settings.
func LoadSettingsFrom(dir string) (*Settings, error) {
	tomlPath := filepath.Join(dir, SettingsTOMLFile)
	if _, err := os.Stat(tomlPath); err == nil {
		var s Settings
		if _, err := toml.DecodeFile(tomlPath, &s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", tomlPath, err)
		}
		s.Source = tomlPath
		logger.Debug("Loaded settings from %s", tomlPath)
		return &s, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat settings: %w", err)
	}

	jsonPath := filepath.Join(dir, SettingsJSONFile)
	data, err := os.ReadFile(jsonPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
	}
	s.Source = jsonPath
	logger.Debug("Loaded settings from %s", jsonPath)
	return &s, nil
}

// ProfileName picks the privacy profile: flag, then CCDIGEST_PROFILE, then
// the settings file, then the default.
func (s *Settings) ProfileName(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(ProfileEnv); env != "" {
		return env
	}
	if s != nil && s.Profile != "" {
		return s.Profile
	}
	return redactor.DefaultProfile
}

// PrivacyConfig resolves the profile and merges the settings' privacy
// overrides onto it. Unknown profiles return redactor.ErrUnknownProfile.
func (s *Settings) PrivacyConfig(profileFlag string) (redactor.Config, error) {
	var ov redactor.Overrides
	if s != nil {
		ov = s.Privacy
	}
	return redactor.Resolve(s.ProfileName(profileFlag), ov)
}

// PriceTable returns the built-in price table with the settings' overrides
// merged onto it.
func (s *Settings) PriceTable() pricing.Table {
	table := pricing.DefaultTable()
	if s == nil || len(s.Pricing) == 0 {
		return table
	}
	return table.Override(s.Pricing)
}

// Location returns the configured timezone, or time.Local.
func (s *Settings) Location() (*time.Location, error) {
	if s == nil || s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
