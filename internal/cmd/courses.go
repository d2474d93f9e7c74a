package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edumanage/edudash/internal/config"
	"github.com/edumanage/edudash/internal/errors"
	"github.com/edumanage/edudash/internal/store"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List active courses",
	Long: `List the active courses, up to the dashboard's row cap.

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

		courses, err := app.catalog.ActiveCourses(cmd.Context(), store.CourseLimit)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFetchCourses, "loading courses failed", err)
		}

		if len(courses) == 0 {
			fmt.Println("No courses found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tDEPARTMENT\tGRADE\tCREDITS")
		for _, c := range courses {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				c.CourseCode, c.Name, c.Department, c.GradeLevel, c.Credits)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}
