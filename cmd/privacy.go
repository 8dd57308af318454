package cmd

import (
	"io"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/santaclaude2025/ccdigest/pkg/redactor"
	"github.com/spf13/cobra"
)

var privacyCmd = &cobra.Command{
	Use:   "privacy",
	Short: "Show the effective privacy configuration",
	Long: `Prints the privacy configuration reports run with: the selected profile
(--profile, then CCDIGEST_PROFILE, then the settings file, then local) with
the settings file's [privacy] overrides merged onto it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running privacy command")

		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		cfg, err := settings.PrivacyConfig(profileFlag)
		if err != nil {
			return err
		}
		if cfg.Patterns == nil {
			cfg.Patterns = []redactor.Pattern{}
		}
		if cfg.ExcludeProjects == nil {
			cfg.ExcludeProjects = []string{}
		}

		profile := settings.ProfileName(profileFlag)
		out := struct {
			Profile string          `json:"profile"`
			Source  string          `json:"settingsFile,omitempty"`
			Config  redactor.Config `json:"config"`
		}{profile, settings.Source, cfg}

		return render(cmd.OutOrStdout(), out, func(w io.Writer) {
			renderPrivacyText(w, profile, cfg)
		})
	},
}

func init() {
	rootCmd.AddCommand(privacyCmd)
}
