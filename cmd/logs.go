package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/utils"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Manage ccdigest logs",
	Long:  "View or manage ccdigest logs",
}

var logsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print log directory path",
	RunE: func(cmd *cobra.Command, args []string) error {
		logDir, err := logger.LogDir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), logDir)
		return nil
	},
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all log files",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		files, err := logFiles("*")
		if err != nil {
			return err
		}

		if len(files) == 0 {
			fmt.Fprintln(out, "No log files found")
			return nil
		}

		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil {
				logger.Warn("Failed to stat %s: %v", file, err)
				continue
			}
			fmt.Fprintf(out, "%s (%s)\n", filepath.Base(file), utils.FormatBytes(info.Size()))
		}
		return nil
	},
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all old log files (keeps current)",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// Rotated logs only: ccdigest-<timestamp>.log[.gz], never ccdigest.log
		files, err := logFiles("-*")
		if err != nil {
			return err
		}

		if len(files) == 0 {
			fmt.Fprintln(out, "No old log files to delete")
			return nil
		}

		deletedCount := 0
		for _, file := range files {
			if err := os.Remove(file); err != nil {
				logger.Warn("Failed to delete %s: %v", filepath.Base(file), err)
			} else {
				fmt.Fprintf(out, "Deleted %s\n", filepath.Base(file))
				deletedCount++
			}
		}

		fmt.Fprintf(out, "\nDeleted %d old log file(s)\n", deletedCount)
		return nil
	},
}

// logFiles globs the log directory for the active log's base name plus
// suffix.
func logFiles(suffix string) ([]string, error) {
	logDir, err := logger.LogDir()
	if err != nil {
		return nil, err
	}
	base := logger.LogFileName()
	base = base[:len(base)-len(filepath.Ext(base))]
	files, err := filepath.Glob(filepath.Join(logDir, base+suffix))
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return files, nil
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsPathCmd)
	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsClearCmd)
}
