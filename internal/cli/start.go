package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <job_id>",
		Short: "Resume a paused job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.StartJob(args[0])
			if err != nil {
				return fmt.Errorf("start job: %w", err)
			}

			fmt.Println(resp.Message)
			return nil
		},
	}
}
