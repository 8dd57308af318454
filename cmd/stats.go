package cmd

import (
	"fmt"
	"io"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/statscache"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print Claude Code's cached usage stats",
	Long: `Prints ~/.claude/stats-cache.json as Claude Code wrote it, or an empty
object when there is none.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running stats command")

		paths, err := config.ResolvePaths(claudeDirFlag)
		if err != nil {
			return err
		}
		stats, err := statscache.Read(paths.StatsCache)
		if err != nil {
			logger.Error("Failed to read stats cache: %v", err)
			return fmt.Errorf("failed to read stats cache: %w", err)
		}
		return render(cmd.OutOrStdout(), stats.Raw, func(w io.Writer) {
			renderStatsText(w, stats)
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
