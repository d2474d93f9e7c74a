package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/edumanage/edudash/internal/config"
	"github.com/edumanage/edudash/internal/dashboard"
	"github.com/edumanage/edudash/internal/session"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive dashboard.

The dashboard restores the cached session if one exists, otherwise it shows
the sign-in form. Once signed in it loads the active courses and the latest
published announcements.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	app, err := newApp(true)
	if err != nil {
		return err
	}

	hasStoredSession := false
	if auth, err := loadStoredAuth(config.Dir()); err == nil {
		app.client.SetToken(auth.AccessToken)
		hasStoredSession = true
	}

	manager := session.NewManager(app.client, app.catalog, app.logger)
	manager.Subscribe(clearStoredAuthOnSignOut(config.Dir(), app.logger))
	model := dashboard.New(manager, app.catalog, app.logger, hasStoredSession)

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
