package legislature

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const State = "ms"

type BillOptions struct {
	Fetcher Fetcher
	// defaults to DefaultDocumentHost
	DocumentHost string
}

// Bill is one bill read from the legislature's measure listing. The
// summary fields come from the listing fragment, everything else is read
// from the detail page which is fetched once, on first use.
//
// A Bill is not safe for concurrent use.
type Bill struct {
	data    *goquery.Selection
	year    int
	session string
	host    string
	fetcher Fetcher

	detailFetched bool
	detail        *goquery.Document
}

func NewBill(fragment *goquery.Selection, year int, session string, opts BillOptions) (*Bill, error) {
	if year < FirstDataYear {
		return nil, &OutOfRangeYearError{Year: year}
	}
	for _, required := range []string{"measure", "actionlink"} {
		if fragment.Find(required).Length() == 0 {
			return nil, &MissingNodeError{Selector: required}
		}
	}

	host := opts.DocumentHost
	if host == "" {
		host = DefaultDocumentHost
	}
	return &Bill{
		data:    fragment,
		year:    year,
		session: session,
		host:    host,
		fetcher: opts.Fetcher,
	}, nil
}

func (b *Bill) Year() int {
	return b.year
}

func (b *Bill) Session() string {
	return b.session
}

func (b *Bill) text(selector string) string {
	return b.data.Find(selector).First().Text()
}

var lowerChamberRegex = regexp.MustCompile(`(?i)^h`)

func (b *Bill) Chamber() Chamber {
	if lowerChamberRegex.MatchString(b.text("measure")) {
		return ChamberLower
	}
	return ChamberUpper
}

// BillId is the measure text exactly as published, e.g. "HB 1234".
func (b *Bill) BillId() string {
	return b.text("measure")
}

func (b *Bill) Name() string {
	return b.text("shorttitle")
}

func (b *Bill) RemoteUrl() string {
	return NormalizeDetailUrl(b.host, b.year, b.text("actionlink"))
}

func (b *Bill) detailPage(ctx context.Context) (*goquery.Document, error) {
	if b.detailFetched {
		return b.detail, nil
	}
	doc, err := b.fetcher.Fetch(ctx, b.RemoteUrl())
	if err != nil {
		return nil, err
	}
	b.detail = doc
	b.detailFetched = true
	return doc, nil
}

func (b *Bill) PrimarySponsor(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "bill:PrimarySponsor")
	defer span.End()

	detail, err := b.detailPage(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch detail page")
		return "", err
	}

	name := detail.Find("authors principal p_name").First()
	if name.Length() == 0 {
		err := &MissingNodeError{Selector: "authors principal p_name", Url: b.RemoteUrl()}
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing principal author")
		return "", err
	}
	return strings.TrimSpace(name.Text()), nil
}

// OriginChamber returns the chamber of origin marker of the detail page,
// or an empty string when the page doesn't carry one.
func (b *Bill) OriginChamber(ctx context.Context) (string, error) {
	detail, err := b.detailPage(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(detail.Find("msr_hs").First().Text()), nil
}

// Actions returns the bill's action log in document order. Lines that
// could not be parsed are left out and reported together as an
// ActionErrors, the actions that did parse are returned regardless.
func (b *Bill) Actions(ctx context.Context) ([]Action, error) {
	ctx, span := tracer.Start(ctx, "bill:Actions")
	defer span.End()

	detail, err := b.detailPage(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch detail page")
		return nil, err
	}

	origin := strings.TrimSpace(detail.Find("msr_hs").First().Text())
	span.SetAttributes(attribute.String("origin_chamber", origin))

	var actions []Action
	var failed ActionErrors
	detail.Find("action").Each(func(_ int, node *goquery.Selection) {
		text := strings.TrimSpace(node.Find("act_desc").First().Text())
		action, err := ParseAction(text, b.year)
		if err != nil {
			slog.WarnContext(ctx, "skipping action", "bill", b.BillId(), "err", err)
			failed = append(failed, err.(*ActionParseError))
			return
		}
		actions = append(actions, action)
	})

	if len(failed) > 0 {
		span.RecordError(failed)
		return actions, failed
	}
	return actions, nil
}

func (b *Bill) Versions(ctx context.Context) ([]Version, error) {
	ctx, span := tracer.Start(ctx, "bill:Versions")
	defer span.End()

	detail, err := b.detailPage(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch detail page")
		return nil, err
	}

	versions, err := ExtractVersions(b.host, detail.Selection)
	if err != nil {
		if missing, ok := err.(*MissingNodeError); ok {
			missing.Url = b.RemoteUrl()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract versions")
		return nil, err
	}
	return versions, nil
}

type Record struct {
	State     string  `json:"state" yaml:"state"`
	Chamber   Chamber `json:"chamber" yaml:"chamber"`
	Session   string  `json:"session" yaml:"session"`
	BillId    string  `json:"bill_id" yaml:"bill_id"`
	BillName  string  `json:"bill_name" yaml:"bill_name"`
	RemoteUrl string  `json:"remote_url" yaml:"remote_url"`
}

func (r Record) Map() map[string]string {
	return map[string]string{
		"state":      r.State,
		"chamber":    string(r.Chamber),
		"session":    r.Session,
		"bill_id":    r.BillId,
		"bill_name":  r.BillName,
		"remote_url": r.RemoteUrl,
	}
}

func (b *Bill) ToRecord() Record {
	return Record{
		State:     State,
		Chamber:   b.Chamber(),
		Session:   b.session,
		BillId:    b.BillId(),
		BillName:  b.Name(),
		RemoteUrl: b.RemoteUrl(),
	}
}

type BillDetail struct {
	Record   Record    `json:"record" yaml:"record"`
	Year     int       `json:"year" yaml:"year"`
	Sponsor  string    `json:"sponsor" yaml:"sponsor"`
	Actions  []Action  `json:"actions" yaml:"actions"`
	Versions []Version `json:"versions" yaml:"versions"`
	// action lines that were skipped
	ActionErrors ActionErrors `json:"-" yaml:"-"`
}

// Detail reads everything the detail page has to offer. Unparsable action
// lines don't fail it, they are kept in ActionErrors.
func (b *Bill) Detail(ctx context.Context) (BillDetail, error) {
	sponsor, err := b.PrimarySponsor(ctx)
	if err != nil {
		return BillDetail{}, err
	}
	actions, err := b.Actions(ctx)
	var skipped ActionErrors
	if err != nil {
		var ok bool
		skipped, ok = err.(ActionErrors)
		if !ok {
			return BillDetail{}, err
		}
	}
	versions, err := b.Versions(ctx)
	if err != nil {
		return BillDetail{}, err
	}
	return BillDetail{
		Record:       b.ToRecord(),
		Year:         b.year,
		Sponsor:      sponsor,
		Actions:      actions,
		Versions:     versions,
		ActionErrors: skipped,
	}, nil
}
