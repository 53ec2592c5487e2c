package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <job_id>",
		Short: "Suspend a job's firings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.PauseJob(args[0])
			if err != nil {
				return fmt.Errorf("pause job: %w", err)
			}

			fmt.Println(resp.Message)
			return nil
		},
	}
}
