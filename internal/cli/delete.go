package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <job_id>",
		Short: "Remove a job from the scheduler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.DeleteJob(args[0])
			if err != nil {
				return fmt.Errorf("delete job: %w", err)
			}

			fmt.Println(resp.Message)
			return nil
		},
	}
}
