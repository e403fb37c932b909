package legislature

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDetailUrl(t *testing.T) {
	testCases := []struct {
		fragment string
		year     int
		expected string
	}{
		{
			fragment: "../history/HB/HB0001.xml",
			year:     2009,
			expected: "http://billstatus.ls.state.ms.us/2009/pdf/history/HB/HB0001.xml",
		},
		{
			fragment: "  \n../../../history/SB/SB2001.xml\t",
			year:     2010,
			expected: "http://billstatus.ls.state.ms.us/2010/pdf/history/SB/SB2001.xml",
		},
		{
			// without a ../ the whole trimmed fragment is the remainder
			fragment: "history/HC/HC0005.xml",
			year:     2011,
			expected: "http://billstatus.ls.state.ms.us/2011/pdf/history/HC/HC0005.xml",
		},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeDetailUrl(DefaultDocumentHost, test.year, test.fragment))
	}
}

func TestNormalizeVersionUrl(t *testing.T) {
	require.Equal(
		t,
		"http://billstatus.ls.state.ms.us/documents/2009/pdf/HB/0001-0099/HB0001IN.pdf",
		NormalizeVersionUrl(DefaultDocumentHost, "../../../documents/2009/pdf/HB/0001-0099/HB0001IN.pdf"),
	)
	require.Equal(
		t,
		"http://example.com/documents/x.pdf",
		NormalizeVersionUrl("http://example.com/", "../documents/x.pdf"),
	)
}

func TestNormalizeIdempotenceBoundary(t *testing.T) {
	fragment := "../../../documents/2009/pdf/HB/0001-0099/HB0001IN.pdf"
	once := NormalizeVersionUrl(DefaultDocumentHost, fragment)

	// as long as the ../ marker is still there, normalizing again gives the same url
	require.Equal(t, once, NormalizeVersionUrl(DefaultDocumentHost, fragment))
	require.Equal(t, once, NormalizeVersionUrl(DefaultDocumentHost, "../"+once[len(DefaultDocumentHost)+1:]))

	// an absolute url has no marker, so it is reused verbatim as the remainder
	require.Equal(
		t,
		DefaultDocumentHost+"/"+once,
		NormalizeVersionUrl(DefaultDocumentHost, once),
	)

	detail := NormalizeDetailUrl(DefaultDocumentHost, 2009, "../history/HB/HB0001.xml")
	require.Equal(
		t,
		DefaultDocumentHost+"/2009/pdf/"+detail,
		NormalizeDetailUrl(DefaultDocumentHost, 2009, detail),
	)
}
