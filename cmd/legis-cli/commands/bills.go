package commands

import (
	"legiscraper/lib/scrapers/legislature"
	"legiscraper/lib/timezone"
	"os"

	"github.com/spf13/cobra"
)

var billsYear *int
var billsSession *string
var billsSave *bool

func init() {
	billsYear = billsCmd.Flags().Int("year", 0, "The year to list bills of.")
	billsSession = billsCmd.Flags().String("session", "regular", "The session the bills are labeled with, matched loosely against the session names of the year.")
	billsSave = billsCmd.Flags().Bool("save", false, "Also write the bill summaries to the database.")
	billsCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(billsCmd)
}

var billsCmd = &cobra.Command{
	Use:   "bills --year <year> [--session <name>] [--save]",
	Short: "Lists every bill filed in a year.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e := getEnv(ctx)

		session, err := e.resolveSession(ctx, *billsYear, *billsSession)
		if err != nil {
			return err
		}
		bills, err := legislature.ListBills(ctx, *billsYear, session.Name, e.billOptions())
		if err != nil {
			return err
		}

		records := make([]legislature.Record, len(bills))
		for i, b := range bills {
			records[i] = b.ToRecord()
		}

		if *billsSave {
			store, db, err := e.openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			err = store.PushRecords(ctx, timezone.Now(), records)
			if err != nil {
				return err
			}
		}

		return writeRecords(os.Stdout, e.format, records)
	},
}
