package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edumanage/edudash/internal/config"
	"github.com/edumanage/edudash/internal/errors"
	"github.com/edumanage/edudash/internal/store"
)

var announcementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "List recent announcements",
	Long: `List the latest published announcements, newest first.

Requires a cached session; run 'edudash auth login' first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(false)
		if err != nil {
			return err
		}

		auth, err := loadStoredAuth(config.Dir())
		if err != nil {
			return errors.NewSessionMissingError()
		}
		app.client.SetToken(auth.AccessToken)

		announcements, err := app.catalog.PublishedAnnouncements(cmd.Context(), store.AnnouncementLimit)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFetchAnnouncements, "loading announcements failed", err)
		}

		if len(announcements) == 0 {
			fmt.Println("No announcements yet.")
			return nil
		}

		for _, a := range announcements {
			fmt.Printf("[%s] %s\n", a.Priority, a.Title)
			fmt.Printf("  %s\n", a.Excerpt(100))
			meta := a.PublishDate.Format("Jan 2, 2006")
			if name := a.AuthorName(); name != "" {
				meta += " - " + name
			}
			fmt.Printf("  %s\n\n", meta)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(announcementsCmd)
}
