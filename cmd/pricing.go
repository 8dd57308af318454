package cmd

import (
	"io"

	"github.com/santaclaude2025/ccdigest/pkg/config"
	"github.com/santaclaude2025/ccdigest/pkg/logger"
	"github.com/spf13/cobra"
)

// priceRow is the JSON shape of one price table entry.
type priceRow struct {
	Input      float64 `json:"input"`
	Output     float64 `json:"output"`
	CacheWrite float64 `json:"cacheWrite"`
	CacheRead  float64 `json:"cacheRead"`
}

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Show the effective price table",
	Long: `Prints the USD-per-million-token rates used for cost estimates: the
built-in table with the settings file's [pricing] overrides merged onto it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Running pricing command")

		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		table := settings.PriceTable()

		rows := make(map[string]priceRow, len(table))
		for model, r := range table {
			rows[model] = priceRow{
				Input:      r.Input.InexactFloat64(),
				Output:     r.Output.InexactFloat64(),
				CacheWrite: r.CacheWrite.InexactFloat64(),
				CacheRead:  r.CacheRead.InexactFloat64(),
			}
		}
		return render(cmd.OutOrStdout(), rows, func(w io.Writer) {
			renderPricingText(w, table)
		})
	},
}

func init() {
	rootCmd.AddCommand(pricingCmd)
}
