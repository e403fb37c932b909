package legislature

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	_ "embed"
)

//go:embed testdata/allmsrs.xml
var allMeasuresXml string

//go:embed testdata/HB0001.xml
var hb1DetailXml string

//go:embed testdata/locator.html
var locatorHtml string

const hb1DetailUrl = "http://billstatus.ls.state.ms.us/2009/pdf/history/HB/HB0001.xml"

// memoryFetcher serves documents from memory and counts fetches per url.
type memoryFetcher struct {
	pages   map[string]string
	fetched map[string]int
}

func newMemoryFetcher(pages map[string]string) *memoryFetcher {
	return &memoryFetcher{pages: pages, fetched: map[string]int{}}
}

func (f *memoryFetcher) Fetch(ctx context.Context, link string) (*goquery.Document, error) {
	f.fetched[link]++
	page, ok := f.pages[link]
	if !ok {
		return nil, fmt.Errorf("no page at %s", link)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

func parseDoc(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// the first measure group of the listing fixture, HB 1
func hb1Fragment(t testing.TB) *goquery.Selection {
	return parseDoc(t, allMeasuresXml).Find("msrgroup").First()
}
