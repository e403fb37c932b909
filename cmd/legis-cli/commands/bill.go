package commands

import (
	"errors"
	"fmt"
	"legiscraper/lib/billstore"
	"legiscraper/lib/scrapers/legislature"
	"legiscraper/lib/textutil"
	"legiscraper/lib/timezone"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var billYear *int
var billSession *string
var billId *string
var billForce *bool

func init() {
	billYear = billCmd.Flags().Int("year", 0, "The year the bill was filed in.")
	billSession = billCmd.Flags().String("session", "regular", "The session the bill belongs to, matched loosely.")
	billId = billCmd.Flags().String("id", "", "The bill's identifier, e.g. \"HB 1\".")
	billForce = billCmd.Flags().Bool("force", false, "Scrape the bill even if it was already scraped today.")
	billCmd.MarkFlagRequired("year")
	billCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(billCmd)
}

// findBill matches ids loosely since the listing pads them ("HB    1").
func findBill(bills []*legislature.Bill, id string) (*legislature.Bill, bool) {
	id = textutil.NormalizeName(id)
	for _, b := range bills {
		if textutil.NormalizeName(b.BillId()) == id {
			return b, true
		}
	}
	return nil, false
}

// detailFresh reports whether the stored bill's detail page was saved on
// the same day as `now`. Summary-only rows are never fresh.
func detailFresh(stored billstore.StoredBill, now time.Time) bool {
	if stored.DetailScrapedAt.IsZero() {
		return false
	}
	return !stored.DetailScrapedAt.Before(timezone.StartOfDay(now))
}

var billCmd = &cobra.Command{
	Use:   "bill --year <year> --id <bill id> [--session <name>] [--force]",
	Short: "Scrapes the sponsor, actions and versions of a single bill and saves them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e := getEnv(ctx)

		session, err := e.resolveSession(ctx, *billYear, *billSession)
		if err != nil {
			return err
		}

		store, db, err := e.openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		bills, err := legislature.ListBills(ctx, *billYear, session.Name, e.billOptions())
		if err != nil {
			return err
		}
		bill, ok := findBill(bills, *billId)
		if !ok {
			return fmt.Errorf("no bill '%s' in %s", *billId, session.Name)
		}

		if !*billForce {
			stored, err := store.GetBill(ctx, legislature.State, session.Name, bill.BillId())
			if err == nil && detailFresh(stored, timezone.Now()) {
				slog.InfoContext(ctx, "bill was already scraped today", "bill", bill.BillId(), "scraped_at", stored.DetailScrapedAt)
				return writeBill(os.Stdout, e.format, stored)
			}
			if err != nil && !errors.Is(err, billstore.ErrBillNotFound) {
				return err
			}
		}

		detail, err := bill.Detail(ctx)
		if err != nil {
			return err
		}
		for _, skipped := range detail.ActionErrors {
			slog.WarnContext(ctx, "skipped action", "bill", bill.BillId(), "text", skipped.Text, "reason", skipped.Reason)
		}

		now := timezone.Now()
		err = store.PushDetail(ctx, now, detail)
		if err != nil {
			return err
		}
		return writeBill(os.Stdout, e.format, billstore.StoredBill{
			Detail:          detail,
			ScrapedAt:       now,
			DetailScrapedAt: now,
		})
	},
}
