package cmd

import (
	"fmt"
	"io"

	"github.com/santaclaude2025/ccdigest/pkg/artifacts"
	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List installed skills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running skills command")

		paths, err := config.ResolvePaths(claudeDirFlag)
		if err != nil {
			return err
		}
		skills, err := artifacts.ListSkills(paths.Skills)
		if err != nil {
			logger.Error("Failed to list skills: %v", err)
			return fmt.Errorf("failed to list skills: %w", err)
		}
		if skills == nil {
			skills = []artifacts.Skill{}
		}
		return render(cmd.OutOrStdout(), skills, func(w io.Writer) {
			renderSkillsText(w, skills)
		})
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)
}
