package legislature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	lower := ChamberLower
	upper := ChamberUpper

	testCases := []struct {
		text     string
		year     int
		expected Action
	}{
		{
			text:     "03/14 (H) Referred to committee",
			year:     2021,
			expected: Action{Chamber: &lower, Text: "Referred to committee", Date: "03/14/2021"},
		},
		{
			text:     "03/14 Signed by governor",
			year:     2021,
			expected: Action{Chamber: nil, Text: "Signed by governor", Date: "03/14/2021"},
		},
		{
			text:     "01/05 (S) Passed",
			year:     2009,
			expected: Action{Chamber: &upper, Text: "Passed", Date: "01/05/2009"},
		},
		{
			text:     "01/05 (h)   Passed As Amended",
			year:     2009,
			expected: Action{Chamber: &lower, Text: "Passed As Amended", Date: "01/05/2009"},
		},
		{
			text:     "01/05 (s) Returned For Concurrence",
			year:     2009,
			expected: Action{Chamber: &upper, Text: "Returned For Concurrence", Date: "01/05/2009"},
		},
		{
			text:     "  03/14 (S) Indented",
			year:     2021,
			expected: Action{Chamber: &upper, Text: "Indented", Date: "03/14/2021"},
		},
		{
			text:     "02/29 (H) Leap day",
			year:     2020,
			expected: Action{Chamber: &lower, Text: "Leap day", Date: "02/29/2020"},
		},
	}

	for _, test := range testCases {
		action, err := ParseAction(test.text, test.year)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, test.expected, action, test.text)
	}
}

func TestParseActionFailures(t *testing.T) {
	testCases := []struct {
		text string
		year int
	}{
		{text: "Referred to committee", year: 2021},
		{text: "", year: 2021},
		{text: "3/14 (H) single digit month", year: 2021},
		{text: "02/30 (H) no such day", year: 2021},
		{text: "02/29 (H) not a leap year", year: 2021},
		{text: "Passed 12/31 (H) late", year: 2021},
	}

	for _, test := range testCases {
		_, err := ParseAction(test.text, test.year)
		require.Error(t, err, test.text)

		var parseErr *ActionParseError
		require.True(t, errors.As(err, &parseErr), test.text)
		require.Equal(t, test.text, parseErr.Text)
	}
}

func TestActionMap(t *testing.T) {
	lower := ChamberLower
	require.Equal(t, map[string]any{
		"chamber": "lower",
		"text":    "Referred to committee",
		"date":    "03/14/2021",
	}, Action{Chamber: &lower, Text: "Referred to committee", Date: "03/14/2021"}.Map())

	require.Equal(t, map[string]any{
		"chamber": nil,
		"text":    "Signed by governor",
		"date":    "03/14/2021",
	}, Action{Text: "Signed by governor", Date: "03/14/2021"}.Map())
}
