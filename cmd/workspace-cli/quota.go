package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/majidmanzarpour/workspace-cli/internal/ratelimit"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show the client-side quota budget per service family",
	Long: `Show the token bucket each service family is throttled by: bucket
capacity (burst) and refill rate in quota units per second. These are
the client-side budgets workspace-cli enforces before a request ever
leaves the machine; the server-side quotas are authoritative.`,
	RunE: runQuota,
}

func init() {
	rootCmd.AddCommand(quotaCmd)
}

func runQuota(cmd *cobra.Command, _ []string) error {
	rows := []struct {
		family string
		cfg    ratelimit.RateLimitConfig
		note   string
	}{
		{"gmail", ratelimit.GmailConfig(), "quota units, not requests"},
		{"drive", ratelimit.DriveConfig(), "plus 3 concurrent writes"},
		{"calendar", ratelimit.CalendarConfig(), ""},
		{"docs/sheets/slides", ratelimit.DocsConfig(), "shared quota class"},
		{"tasks", ratelimit.TasksConfig(), ""},
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tCAPACITY\tREFILL/S\tNOTES")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%s\n",
			row.family, row.cfg.Capacity, row.cfg.RefillRate, row.note)
	}

	return w.Flush()
}
