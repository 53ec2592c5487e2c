package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <job_id> <minutes>",
		Short: "Change a job's firing interval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be an integer, got %q", args[1])
			}

			resp, err := client.UpdateJob(args[0], minutes)
			if err != nil {
				return fmt.Errorf("update job: %w", err)
			}

			fmt.Println(resp.Message)
			return nil
		},
	}
}
