package cli

import (
	"log/slog"
	"os"

	"github.com/me/patrol/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking PATROL_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("PATROL_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the patrolctl CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "patrolctl",
		Short: "patrolctl controls recurring jobs on a patrol server",
		Long:  "patrolctl lists, starts, pauses, retunes, and deletes the recurring jobs of a running patrol scheduler.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "patrol server URL (or PATROL_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newListCmd(),
		newStartCmd(),
		newPauseCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
	)

	return root
}
