package cmd

import (
	"fmt"
	"time"

	"github.com/santaclaude2025/ccdigest/pkg/report"
	"github.com/santaclaude2025/ccdigest/pkg/types"
	"github.com/spf13/cobra"
)

// defaultWindowDays is the window of project and tool reports when no
// dates are given.
const defaultWindowDays = 30

// windowOptions are the date and project flags shared by the rollup
// commands.
type windowOptions struct {
	days    int
	from    string
	to      string
	project string
}

func (o *windowOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.days, "days", defaultWindowDays, "Number of days ending today to include")
	cmd.Flags().StringVar(&o.from, "from", "", "First day to include (YYYY-MM-DD); overrides --days")
	cmd.Flags().StringVar(&o.to, "to", "", "Last day to include (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&o.project, "project", "", "Only projects whose name contains this text (case-insensitive)")
}

// filter turns the flags into a report filter in loc.
func (o *windowOptions) filter(loc *time.Location) (report.Filter, error) {
	today := now().In(loc)
	f := report.Filter{Project: o.project}

	if o.from == "" && o.to == "" {
		if o.days < 1 {
			return f, fmt.Errorf("--days must be at least 1, got %d", o.days)
		}
		f.Window = report.LastDays(o.days, today)
		return f, nil
	}

	to := today
	if o.to != "" {
		t, err := parseDate(o.to, loc)
		if err != nil {
			return f, fmt.Errorf("invalid --to: %w", err)
		}
		to = t
	}
	from := to.AddDate(0, 0, -(o.days - 1))
	if o.from != "" {
		t, err := parseDate(o.from, loc)
		if err != nil {
			return f, fmt.Errorf("invalid --from: %w", err)
		}
		from = t
	}
	if to.Before(from) {
		return f, fmt.Errorf("--to %s is before --from %s", to.Format(types.DateLayout), from.Format(types.DateLayout))
	}
	f.Window = types.NewDateRange(from, to)
	return f, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(types.DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}
