package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.ListJobs()
			if err != nil {
				return fmt.Errorf("list jobs: %w", err)
			}

			if len(resp.Jobs) == 0 {
				fmt.Println("No jobs found.")
				return nil
			}

			fmt.Printf("%-24s  %-30s  %-10s  %-8s  %s\n", "ID", "NAME", "INTERVAL", "ENABLED", "LAST SUCCESS")
			fmt.Printf("%-24s  %-30s  %-10s  %-8s  %s\n", "--", "----", "--------", "-------", "------------")
			for _, j := range resp.Jobs {
				interval := "-"
				if j.TimeIntervalMinutes != nil {
					interval = strconv.Itoa(*j.TimeIntervalMinutes) + "m"
				}
				enabled := "-"
				if j.Enabled != nil {
					enabled = strconv.FormatBool(*j.Enabled)
				}
				lastSuccess := "-"
				if j.LastSuccess != nil {
					lastSuccess = j.LastSuccess.Local().Format(time.RFC3339)
				}
				fmt.Printf("%-24s  %-30s  %-10s  %-8s  %s\n", j.ID, j.Name, interval, enabled, lastSuccess)
			}

			return nil
		},
	}
}
