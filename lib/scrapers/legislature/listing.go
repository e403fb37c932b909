package legislature

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// MeasuresUrl is the listing of every measure filed in a year.
func MeasuresUrl(host string, year int) string {
	return joinHost(host, fmt.Sprintf("%d/pdf/all_measures/allmsrs.xml", year))
}

// ParseBills builds one Bill per measure group of a listing document.
// Groups that are missing required nodes are skipped with a warning.
func ParseBills(ctx context.Context, listing *goquery.Selection, year int, session string, opts BillOptions) ([]*Bill, error) {
	if year < FirstDataYear {
		return nil, &OutOfRangeYearError{Year: year}
	}

	var bills []*Bill
	listing.Find("msrgroup").Each(func(i int, group *goquery.Selection) {
		bill, err := NewBill(group, year, session, opts)
		if err != nil {
			slog.WarnContext(ctx, "skipping measure group", "index", i, "err", err)
			return
		}
		bills = append(bills, bill)
	})
	return bills, nil
}

// ListBills fetches the measure listing for `year` and returns the bills
// in it, labeled with `session`.
func ListBills(ctx context.Context, year int, session string, opts BillOptions) ([]*Bill, error) {
	ctx, span := tracer.Start(ctx, "ListBills")
	defer span.End()

	if year < FirstDataYear {
		err := &OutOfRangeYearError{Year: year}
		span.RecordError(err)
		span.SetStatus(codes.Error, "year out of range")
		return nil, err
	}

	host := opts.DocumentHost
	if host == "" {
		host = DefaultDocumentHost
	}
	link := MeasuresUrl(host, year)
	span.SetAttributes(attribute.String("url", link))

	doc, err := opts.Fetcher.Fetch(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing")
		return nil, err
	}

	bills, err := ParseBills(ctx, doc.Selection, year, session, opts)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("bills", len(bills)))
	return bills, nil
}
