package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/report"
	"github.com/spf13/cobra"
)

var (
	dailyDate  string
	dailyFrom  string
	dailyTo    string
	dailyWatch bool
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Summarize a day of activity",
	Long: `Summarizes one calendar day (today by default): sessions, prompts,
projects, todos, plans and project memory, with estimated active hours and
cost. Sessions with three or more prompts are parsed in full.

With --from/--to every day in the range that had activity is reported.
With --watch today's summary is re-rendered whenever the history log changes.`,
	Args: cobra.NoArgs,
	RunE: runDaily,
}

func runDaily(cmd *cobra.Command, args []string) error {
	logger.Info("Running daily command")

	a, err := loadApp()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if dailyFrom != "" || dailyTo != "" {
		if dailyWatch {
			return fmt.Errorf("--watch cannot be combined with --from/--to")
		}
		return renderDailyRange(out, a)
	}

	day := now().In(a.location)
	if dailyDate != "" {
		day, err = parseDate(dailyDate, a.location)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
	}

	if dailyWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchDaily(ctx, out, a, day)
	}
	return renderDaily(out, a, day)
}

func renderDaily(w io.Writer, a *app, day time.Time) error {
	summary, err := a.engine.Daily(day)
	if err != nil {
		logger.Error("Failed to build daily summary: %v", err)
		return fmt.Errorf("failed to build daily summary: %w", err)
	}
	return render(w, summary, func(w io.Writer) {
		renderDailyText(w, []*report.DailySummary{summary}, a.location)
	})
}

func renderDailyRange(w io.Writer, a *app) error {
	to := now().In(a.location)
	if dailyTo != "" {
		t, err := parseDate(dailyTo, a.location)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}
		to = t
	}
	from := to
	if dailyFrom != "" {
		t, err := parseDate(dailyFrom, a.location)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		from = t
	}
	if to.Before(from) {
		return fmt.Errorf("--to is before --from")
	}

	days, err := a.engine.DailyRange(from, to)
	if err != nil {
		logger.Error("Failed to build daily summaries: %v", err)
		return fmt.Errorf("failed to build daily summaries: %w", err)
	}
	if days == nil {
		days = []*report.DailySummary{}
	}
	return render(w, days, func(w io.Writer) {
		renderDailyText(w, days, a.location)
	})
}

// watchDaily renders once, then again after each burst of writes to the
// history log, until ctx is done. The directory is watched because Claude
// Code may replace the file rather than append to it.
func watchDaily(ctx context.Context, w io.Writer, a *app, day time.Time) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(a.paths.History)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("Watching %s", a.paths.History)

	if err := renderDaily(w, a, day); err != nil {
		return err
	}

	debounce := time.NewTimer(config.WatchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(a.paths.History) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounce.Reset(config.WatchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error: %v", err)

		case <-debounce.C:
			logger.Debug("History changed, re-rendering")
			if dailyDate == "" {
				day = now().In(a.location)
			}
			if formatFlag == formatText {
				fmt.Fprint(w, "\033[H\033[2J")
			}
			if err := renderDaily(w, a, day); err != nil {
				logger.Warn("Re-render failed: %v", err)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(dailyCmd)
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "Day to summarize (YYYY-MM-DD, default today)")
	dailyCmd.Flags().StringVar(&dailyFrom, "from", "", "First day of a range (YYYY-MM-DD)")
	dailyCmd.Flags().StringVar(&dailyTo, "to", "", "Last day of a range (YYYY-MM-DD, default today)")
	dailyCmd.Flags().BoolVarP(&dailyWatch, "watch", "w", false, "Re-render today's summary when the history log changes")
}
