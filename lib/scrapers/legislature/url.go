package legislature

import (
	"fmt"
	"strings"
)

const DefaultDocumentHost = "http://billstatus.ls.state.ms.us"

// the legacy links are written relative to some page deep in the site
// (../../../2009/pdf/history/HB/HB0001.xml), only the part after the
// last ../ is meaningful.
func relativeRemainder(fragment string) string {
	parts := strings.Split(strings.TrimSpace(fragment), "../")
	return parts[len(parts)-1]
}

func joinHost(host, path string) string {
	return strings.TrimRight(host, "/") + "/" + strings.TrimLeft(path, "/")
}

// NormalizeDetailUrl resolves the action link of a bill summary into the
// absolute url of its detail page.
func NormalizeDetailUrl(host string, year int, fragment string) string {
	return joinHost(host, fmt.Sprintf("%d/pdf/%s", year, relativeRemainder(fragment)))
}

// NormalizeVersionUrl resolves a document version link, it carries no
// year segment.
func NormalizeVersionUrl(host string, fragment string) string {
	return joinHost(host, relativeRemainder(fragment))
}
