package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/discovery"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/spf13/cobra"
)

// sourceStatus describes one Claude Code data source on disk.
type sourceStatus struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Detail string `json:"detail,omitempty"`
}

type statusReport struct {
	ClaudeDir    string         `json:"claudeDir"`
	SettingsFile string         `json:"settingsFile,omitempty"`
	Profile      string         `json:"profile"`
	Sources      []sourceStatus `json:"sources"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ccdigest status",
	Long: `Displays where ccdigest reads from: the Claude Code state directory,
which of its data sources exist, the settings file and the privacy profile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running status command")

		settings, err := config.LoadSettings()
		if err != nil {
			logger.Error("Failed to load settings: %v", err)
			return fmt.Errorf("failed to load settings: %w", err)
		}
		paths, err := config.ResolvePaths(claudeDirFlag)
		if err != nil {
			return err
		}

		st := statusReport{
			ClaudeDir:    paths.ClaudeDir,
			SettingsFile: settings.Source,
			Profile:      settings.ProfileName(profileFlag),
			Sources: []sourceStatus{
				fileStatus("history", paths.History),
				transcriptsStatus(paths.Projects),
				dirStatus("todos", paths.Todos),
				dirStatus("plans", paths.Plans),
				dirStatus("skills", paths.Skills),
				fileStatus("stats cache", paths.StatsCache),
			},
		}
		return render(cmd.OutOrStdout(), st, func(w io.Writer) {
			renderStatusText(w, st)
		})
	},
}

func fileStatus(name, path string) sourceStatus {
	s := sourceStatus{Name: name, Path: path}
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.Detail = err.Error()
		}
		return s
	}
	s.Exists = true
	s.Detail = fmt.Sprintf("%d bytes, modified %s", info.Size(), info.ModTime().Format("2006-01-02 15:04"))
	return s
}

func dirStatus(name, path string) sourceStatus {
	s := sourceStatus{Name: name, Path: path}
	entries, err := os.ReadDir(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.Detail = err.Error()
		}
		return s
	}
	s.Exists = true
	s.Detail = fmt.Sprintf("%d entries", len(entries))
	return s
}

func transcriptsStatus(path string) sourceStatus {
	s := sourceStatus{Name: "transcripts", Path: path}
	sessions, err := discovery.ScanAllSessions(path)
	if err != nil {
		logger.Warn("Failed to scan transcripts: %v", err)
		s.Detail = err.Error()
		return s
	}
	if _, err := os.Stat(path); err == nil {
		s.Exists = true
		s.Detail = fmt.Sprintf("%d sessions", len(sessions))
	}
	return s
}

func renderStatusText(w io.Writer, st statusReport) {
	fmt.Fprintln(w, titleStyle.Render("=== ccdigest: Status ==="))
	field(w, "Claude dir", st.ClaudeDir)
	settings := st.SettingsFile
	if settings == "" {
		settings = "(defaults)"
	}
	field(w, "Settings", settings)
	field(w, "Profile", st.Profile)
	fmt.Fprintln(w)
	for _, s := range st.Sources {
		mark := "✗"
		if s.Exists {
			mark = "✓"
		}
		fmt.Fprintf(w, "  %s %-12s %s\n", mark, s.Name, dimStyle.Render(s.Detail))
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
