package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edumanage/edudash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show the resolved configuration and where it is loaded from.`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Printf("Backend URL:  %s\n", cfg.BackendURL)
		fmt.Printf("Anon key:     %s\n", maskKey(cfg.AnonKey))
		fmt.Printf("HTTP timeout: %s\n", cfg.HTTPTimeout())
		fmt.Printf("Log level:    %s\n", cfg.Logging.Level)
		fmt.Printf("Log format:   %s\n", cfg.Logging.Format)
		fmt.Printf("Log file:     %s\n", cfg.LogFile())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.FilePath())
		return nil
	},
}

// maskKey hides all but a short prefix of a secret.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:8] + "..."
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
