package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/santaclaude2025/ccdigest/pkg/report"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatText = "text"
)

var (
	profileFlag   string
	formatFlag    string
	claudeDirFlag string
	verboseFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "ccdigest",
	Short: "Summarize your Claude Code activity",
	Long: `ccdigest reads Claude Code's local history and session transcripts and
reports on them: daily summaries, per-project rollups, tool usage and
single sessions, with estimated active hours and API cost.

Everything is read locally. Privacy profiles (local, shareable, strict)
control what is redacted from the output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging to file disabled: %v\n", err)
		}
		if verboseFlag {
			logger.Verbose()
		}
		if formatFlag != formatJSON && formatFlag != formatText {
			return fmt.Errorf("invalid --format %q (expected %s or %s)", formatFlag, formatJSON, formatText)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&profileFlag, "profile", "", "Privacy profile: local, shareable or strict (default from settings, then local)")
	pf.StringVar(&formatFlag, "format", formatJSON, "Output format: json or text")
	pf.StringVar(&claudeDirFlag, "claude-dir", "", "Claude Code state directory (default ~/.claude)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")
}

// app is what every reporting command needs, resolved from flags and
// settings.
type app struct {
	paths    config.Paths
	location *time.Location
	engine   *report.Engine
}

// loadApp resolves settings, privacy profile, paths and timezone. An
// unknown profile name is an error here rather than falling back.
func loadApp() (*app, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		logger.Error("Failed to load settings: %v", err)
		return nil, err
	}

	privacy, err := settings.PrivacyConfig(profileFlag)
	if err != nil {
		return nil, err
	}

	paths, err := config.ResolvePaths(claudeDirFlag)
	if err != nil {
		return nil, err
	}

	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}

	logger.Debug("Using profile %s, claude dir %s", settings.ProfileName(profileFlag), paths.ClaudeDir)

	r := redactor.New(privacy)
	return &app{
		paths:    paths,
		location: loc,
		engine:   report.NewEngine(paths, r, settings.PriceTable(), loc),
	}, nil
}

// now is replaceable in tests.
var now = time.Now
