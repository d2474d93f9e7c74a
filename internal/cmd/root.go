package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edudash",
	Short: "School administration dashboard for the terminal",
	Long: `edudash is a terminal client for a hosted school administration backend.
It signs in against the backend's auth service, loads the active courses and
published announcements, and renders them in an interactive dashboard.

Running edudash with no arguments launches the dashboard.`,
	RunE:          runDashboard,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
