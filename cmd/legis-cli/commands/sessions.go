package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var sessionsYear *int
var sessionsSave *bool

func init() {
	sessionsYear = sessionsCmd.Flags().Int("year", 0, "The year to list sessions of.")
	sessionsSave = sessionsCmd.Flags().Bool("save", false, "Also write the sessions to the database.")
	sessionsCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(sessionsCmd)
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions --year <year> [--save]",
	Short: "Lists the legislative sessions held in a year.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e := getEnv(ctx)

		dir := e.directory()
		sessions, err := dir.GetSessions(ctx, *sessionsYear)
		if err != nil {
			return err
		}
		if skipped := dir.Warnings(); len(skipped) > 0 {
			slog.WarnContext(ctx, "some session rows were skipped", "count", len(skipped))
		}

		if *sessionsSave {
			store, db, err := e.openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			err = store.PushSessions(ctx, sessions)
			if err != nil {
				return err
			}
		}

		return writeSessions(os.Stdout, e.format, sessions)
	},
}
