package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/santaclaude2025/ccdigest/pkg/discovery"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/spf13/cobra"
)

var sessionPeek bool

var sessionCmd = &cobra.Command{
	Use:   "session <id>",
	Short: "Show one session",
	Long: `Shows a single session by full id or unique id prefix. By default the
transcript is parsed in full; --peek reports only branch, model, token totals
and message count.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running session command for %s", args[0])

		a, err := loadApp()
		if err != nil {
			return err
		}

		result, err := a.engine.Session(args[0], sessionPeek)
		if err != nil {
			if errors.Is(err, discovery.ErrSessionNotFound) || errors.Is(err, discovery.ErrAmbiguousSession) {
				return err
			}
			logger.Error("Failed to read session %s: %v", args[0], err)
			return fmt.Errorf("failed to read session: %w", err)
		}
		return render(cmd.OutOrStdout(), result, func(w io.Writer) {
			renderSessionText(w, result, a.location)
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.Flags().BoolVar(&sessionPeek, "peek", false, "Only read metadata and token totals")
}
