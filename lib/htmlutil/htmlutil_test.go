package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "  Regular \n\n Session\t", expected: "Regular Session"},
		{in: "First Special", expected: "First Special"},
		{in: "", expected: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, CleanText(test.in))
	}
}

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div>
			<a href="a.aspx?id=1"><span>2009</span> <b>Regular</b></a>
			<a href="b.aspx">  Second
				Link </a>
			<a href="%zz.aspx">Third</a>
			<a>Fourth</a>
		</div>
	`))
	if err != nil {
		t.Fatal(err)
	}

	anchors := GetAnchors(context.Background(), doc.Find("a"))
	require.Len(t, anchors, 4)

	require.Equal(t, "a.aspx?id=1", anchors[0].Href)
	require.Equal(t, "2009 Regular", anchors[0].Name)
	require.Equal(t, "<span>2009</span> <b>Regular</b>", anchors[0].Inner)

	require.Equal(t, "b.aspx", anchors[1].Href)
	require.Equal(t, "Second Link", anchors[1].Name)

	// unparsable and missing hrefs are passed through for the caller to judge
	require.Equal(t, "%zz.aspx", anchors[2].Href)
	require.Equal(t, "", anchors[3].Href)
	require.Equal(t, "Fourth", anchors[3].Inner)
}
