package commands

import (
	"context"
	"errors"
	"legiscraper/lib/billstore"
	"legiscraper/lib/scrapers/legislature"
	"legiscraper/lib/telemetry"
	"legiscraper/lib/timezone"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/cobra"
)

var scrapeYear *int
var scrapeSession *string
var scrapeWorkers *int

func init() {
	scrapeYear = scrapeCmd.Flags().Int("year", 0, "The year to scrape.")
	scrapeSession = scrapeCmd.Flags().String("session", "regular", "The session the bills are labeled with, matched loosely.")
	scrapeWorkers = scrapeCmd.Flags().Int("workers", 4, "How many bill detail pages are fetched at once.")
	scrapeCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(scrapeCmd)
}

type scrapeResult struct {
	scraped int
	failed  int
	// bills with action lines that couldn't be parsed
	partial int
}

// scrapeDetails fetches the detail page of every bill and saves it. A
// failing bill is logged and counted, it doesn't stop the others.
func scrapeDetails(ctx context.Context, store billstore.Store, bills []*legislature.Bill, workers int) scrapeResult {
	if workers < 1 {
		workers = 1
	}

	var result scrapeResult
	resultLock := sync.Mutex{}
	queue := make(chan *legislature.Bill)
	wg := sync.WaitGroup{}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for bill := range queue {
				detail, err := bill.Detail(ctx)
				if err == nil {
					err = store.PushDetail(ctx, timezone.Now(), detail)
				}

				resultLock.Lock()
				switch {
				case err != nil:
					result.failed++
					slog.ErrorContext(ctx, "failed to scrape bill", "bill", bill.BillId(), "err", err)
				case len(detail.ActionErrors) > 0:
					result.partial++
					result.scraped++
					slog.WarnContext(ctx, "scraped bill with skipped actions", "bill", bill.BillId(), "skipped", len(detail.ActionErrors))
				default:
					result.scraped++
				}
				resultLock.Unlock()
			}
		}()
	}

	for _, bill := range bills {
		select {
		case queue <- bill:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(queue)
	wg.Wait()

	return result
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --year <year> [--session <name>] [--workers <n>]",
	Short: "Scrapes every session and bill of a year into the database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e := getEnv(ctx)

		if *verbose {
			telemetry.InstrumentPerfStats(ctx, time.Second*5)
		}

		store, db, err := e.openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		dir := e.directory()
		sessions, err := dir.GetSessions(ctx, *scrapeYear)
		if err != nil {
			return err
		}
		err = store.PushSessions(ctx, sessions)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "saved sessions", "year", *scrapeYear, "count", len(sessions))

		session, err := dir.Find(ctx, *scrapeYear, *scrapeSession)
		if err != nil {
			return err
		}
		bills, err := legislature.ListBills(ctx, *scrapeYear, session.Name, e.billOptions())
		if err != nil {
			return err
		}

		records := make([]legislature.Record, len(bills))
		for i, b := range bills {
			records[i] = b.ToRecord()
		}
		err = store.PushRecords(ctx, timezone.Now(), records)
		if err != nil {
			return err
		}

		t1 := time.Now()
		result := scrapeDetails(ctx, store, bills, *scrapeWorkers)
		t2 := time.Now()

		slog.InfoContext(
			ctx, "scrape finished",
			"session", session.Name,
			"bills", len(bills),
			"scraped", result.scraped,
			"partial", result.partial,
			"failed", result.failed,
			"seconds", t2.Sub(t1).Seconds(),
		)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if result.failed > 0 {
			return errors.New("some bills could not be scraped")
		}
		return nil
	},
}
