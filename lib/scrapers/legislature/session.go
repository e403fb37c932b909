package legislature

import (
	"context"
	"fmt"
	"html"
	"legiscraper/lib/htmlutil"
	"legiscraper/lib/textutil"
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultSessionLocator  = "http://www.nmlegis.gov/lcs/locator.aspx"
	DefaultSessionLinkBase = "http://www.nmlegis.gov/lcs/"
)

const sessionRowSelector = "table#ctl00_mainCopy_Locators tr td a"

type Session struct {
	Year int    `json:"year" yaml:"year"`
	Name string `json:"name" yaml:"name"`
	Url  string `json:"url" yaml:"url"`
}

// <span ..>2009</span> <span ..>Regular</span> <span ..>Session</span>
var sessionLabelRegex = regexp.MustCompile(`^\s*<span[^>]*>\s*(\d+)\s*</span>[^<]*<span[^>]*>([^<]+)</span>[^<]*<span[^>]*>([^<]+)</span>`)

// ParseSessionLabel reads the year and display name out of the inner
// markup of a session link.
func ParseSessionLabel(inner string) (int, string, bool) {
	groups := sessionLabelRegex.FindStringSubmatch(inner)
	if len(groups) < 4 {
		return 0, "", false
	}
	year, err := strconv.Atoi(groups[1])
	if err != nil {
		return 0, "", false
	}
	first := htmlutil.CleanText(html.UnescapeString(groups[2]))
	second := htmlutil.CleanText(html.UnescapeString(groups[3]))
	return year, fmt.Sprintf("%d %s %s", year, first, second), true
}

// ParseSessionIndex reads every session row of the locator page, rows
// that can't be parsed are returned separately and don't stop the scan.
func ParseSessionIndex(ctx context.Context, doc *goquery.Selection, linkBase string) ([]Session, []*SessionRowError) {
	var sessions []Session
	var warnings []*SessionRowError
	for _, a := range htmlutil.GetAnchors(ctx, doc.Find(sessionRowSelector)) {
		if a.Href == "" {
			warnings = append(warnings, &SessionRowError{Row: a.Inner, Reason: "missing href"})
			continue
		}
		_, err := url.Parse(a.Href)
		if err != nil {
			warnings = append(warnings, &SessionRowError{Row: a.Inner, Reason: fmt.Sprintf("invalid href '%s'", a.Href)})
			continue
		}
		year, name, ok := ParseSessionLabel(a.Inner)
		if !ok {
			warnings = append(warnings, &SessionRowError{Row: a.Inner, Reason: "expected year and two name spans"})
			continue
		}
		// the href is joined as written, not re-encoded
		sessions = append(sessions, Session{
			Year: year,
			Name: name,
			Url:  linkBase + a.Href,
		})
	}
	return sessions, warnings
}

type DirectoryOptions struct {
	Fetcher Fetcher
	// defaults to DefaultSessionLocator
	LocatorUrl string
	// defaults to DefaultSessionLinkBase
	LinkBase string
}

// Directory holds the legislature's sessions grouped by year. Every call
// to GetSessions re-reads the locator page so the result is always the
// current set.
type Directory struct {
	fetcher    Fetcher
	locatorUrl string
	linkBase   string

	mu       sync.Mutex
	sessions map[int][]Session
	warnings []*SessionRowError
}

func NewDirectory(opts DirectoryOptions) *Directory {
	if opts.LocatorUrl == "" {
		opts.LocatorUrl = DefaultSessionLocator
	}
	if opts.LinkBase == "" {
		opts.LinkBase = DefaultSessionLinkBase
	}
	return &Directory{
		fetcher:    opts.Fetcher,
		locatorUrl: opts.LocatorUrl,
		linkBase:   opts.LinkBase,
		sessions:   map[int][]Session{},
	}
}

func (d *Directory) Refresh(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "directory:Refresh")
	defer span.End()

	doc, err := d.fetcher.Fetch(ctx, d.locatorUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch session locator")
		return err
	}

	sessions, warnings := ParseSessionIndex(ctx, doc.Selection, d.linkBase)
	for _, w := range warnings {
		slog.WarnContext(ctx, "could not parse session row", "row", w.Row, "reason", w.Reason)
		span.AddEvent("unparsable session row", trace.WithAttributes(
			attribute.String("row", w.Row),
			attribute.String("reason", w.Reason),
		))
	}

	// sessions are keyed by the year they carry, not the year that was asked for
	byYear := map[int][]Session{}
	for _, s := range sessions {
		byYear[s.Year] = append(byYear[s.Year], s)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions = byYear
	d.warnings = warnings
	return nil
}

// GetSessions returns the sessions held in `year`, an empty list when
// there are none.
func (d *Directory) GetSessions(ctx context.Context, year int) ([]Session, error) {
	err := d.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return d.Cached(year), nil
}

// Cached returns the sessions of `year` found by the last refresh without
// fetching anything.
func (d *Directory) Cached(year int) []Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.sessions[year])
}

func (d *Directory) Years() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	years := make([]int, 0, len(d.sessions))
	for y := range d.sessions {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Warnings returns the rows the last refresh had to skip.
func (d *Directory) Warnings() []*SessionRowError {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.warnings)
}

// Find returns the session of `year` whose name is closest to `name`.
func (d *Directory) Find(ctx context.Context, year int, name string) (Session, error) {
	sessions, err := d.GetSessions(ctx, year)
	if err != nil {
		return Session{}, err
	}
	if len(sessions) == 0 {
		return Session{}, fmt.Errorf("no sessions found for %d", year)
	}
	names := make([]string, len(sessions))
	for i, s := range sessions {
		names[i] = s.Name
	}
	idx, _ := textutil.ClosestMatch(name, names)
	return sessions[idx], nil
}
