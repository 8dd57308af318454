package cmd

import (
	"fmt"
	"io"

	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/spf13/cobra"
)

var projectsOpts windowOptions

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Roll up activity per project",
	Long: `Groups sessions by project over a window (the last 30 days by default)
and reports sessions, prompts, estimated hours and cost, tools, files,
branches and models. Projects are sorted by prompt count.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running projects command")

		a, err := loadApp()
		if err != nil {
			return err
		}
		f, err := projectsOpts.filter(a.location)
		if err != nil {
			return err
		}

		projects, err := a.engine.Projects(f)
		if err != nil {
			logger.Error("Failed to summarize projects: %v", err)
			return fmt.Errorf("failed to summarize projects: %w", err)
		}
		return render(cmd.OutOrStdout(), projects, func(w io.Writer) {
			renderProjectsText(w, projects)
		})
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsOpts.register(projectsCmd)
}
