package legislature

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Version struct {
	Name string `json:"name" yaml:"name"`
	Url  string `json:"url" yaml:"url"`
}

func (v Version) Map() map[string]string {
	return map[string]string{
		"name": v.Name,
		"url":  v.Url,
	}
}

// versionStrategy knows how to pull the document links out of one
// category node of a bill's detail page.
type versionStrategy func(host string, node *goquery.Selection) ([]Version, error)

// singleLink reads the url from a fixed child node, most categories name
// it "<category>_other" but a few do not.
func singleLink(name, child string) versionStrategy {
	return func(host string, node *goquery.Selection) ([]Version, error) {
		link := node.Find(child).First()
		if link.Length() == 0 {
			return nil, &MissingNodeError{Selector: goquery.NodeName(node) + " " + child}
		}
		return []Version{{
			Name: name,
			Url:  NormalizeVersionUrl(host, link.Text()),
		}}, nil
	}
}

var amendmentKinds = []string{"amrpt", "ham", "sam"}

// every amendment report, house and senate amendment is its own
// document, they all come out as "amendment".
func amendmentLinks(host string, node *goquery.Selection) ([]Version, error) {
	var out []Version
	var err error
	node.Find(strings.Join(amendmentKinds, ", ")).EachWithBreak(func(_ int, amd *goquery.Selection) bool {
		child := goquery.NodeName(amd) + "_other"
		link := amd.Find(child).First()
		if link.Length() == 0 {
			err = &MissingNodeError{Selector: "amendments " + goquery.NodeName(amd) + " " + child}
			return false
		}
		out = append(out, Version{
			Name: "amendment",
			Url:  NormalizeVersionUrl(host, link.Text()),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

var versionCategories = map[string]versionStrategy{
	"current":    singleLink("current", "current_other"),
	"intro":      singleLink("intro", "intro_other"),
	"cmtesub":    singleLink("cmtesub", "cmtesub_other"),
	"passed":     singleLink("passed", "passed_other"),
	"asg":        singleLink("asg", "asg_other"),
	"confrpts":   singleLink("confrpts", "cr_other"),
	"vetomsg":    singleLink("vetomsg", "veto_other"),
	"amendments": amendmentLinks,
}

// the order categories are listed in doesn't matter, the selector union
// yields nodes in document order.
var versionSelector = strings.Join([]string{
	"current", "intro", "cmtesub", "passed",
	"asg", "confrpts", "amendments", "vetomsg",
}, ", ")

// ExtractVersions enumerates every document version linked from a bill's
// detail page, in document order.
func ExtractVersions(host string, detail *goquery.Selection) ([]Version, error) {
	var out []Version
	var err error
	detail.Find(versionSelector).EachWithBreak(func(_ int, node *goquery.Selection) bool {
		strategy, ok := versionCategories[goquery.NodeName(node)]
		if !ok {
			return true
		}
		var versions []Version
		versions, err = strategy(host, node)
		if err != nil {
			return false
		}
		out = append(out, versions...)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
