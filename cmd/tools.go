package cmd

import (
	"fmt"
	"io"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/spf13/cobra"
)

var toolsOpts windowOptions

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Report tool usage",
	Long: `Counts tool calls by name and category across sessions with at least
two prompts, and ranks the most referenced files and shell commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running tools command")

		a, err := loadApp()
		if err != nil {
			return err
		}
		f, err := toolsOpts.filter(a.location)
		if err != nil {
			return err
		}

		usage, err := a.engine.ToolUsage(f)
		if err != nil {
			logger.Error("Failed to build tool report: %v", err)
			return fmt.Errorf("failed to build tool report: %w", err)
		}
		return render(cmd.OutOrStdout(), usage, func(w io.Writer) {
			renderToolsText(w, usage)
		})
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsOpts.register(toolsCmd)
}
