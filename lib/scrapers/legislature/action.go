package legislature

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type Chamber string

const (
	ChamberLower Chamber = "lower"
	ChamberUpper Chamber = "upper"
)

// chamberFromCode maps the single letter house codes used by the
// legislature, anything that isn't an H is the senate.
func chamberFromCode(code string) Chamber {
	if strings.EqualFold(code, "h") {
		return ChamberLower
	}
	return ChamberUpper
}

type Action struct {
	// nil when the log line carries no chamber marker
	Chamber *Chamber `json:"chamber" yaml:"chamber"`
	Text    string   `json:"text" yaml:"text"`
	// MM/DD/YYYY
	Date string `json:"date" yaml:"date"`
}

// leading date, optional (S)/(H) marker, remaining text
var actionRegex = regexp.MustCompile(`(?i)^\s*(\d{2}/\d{2})\s*(?:\(([SH])\))?(.*)$`)

// ParseAction parses one line of a bill's action log. The log omits the
// year so the bill's year is assumed for every entry.
func ParseAction(text string, year int) (Action, error) {
	groups := actionRegex.FindStringSubmatch(text)
	if len(groups) < 4 {
		return Action{}, &ActionParseError{
			Text:   text,
			Reason: "expected a leading MM/DD date",
		}
	}

	date, err := time.Parse("01/02/2006", fmt.Sprintf("%s/%04d", groups[1], year))
	if err != nil {
		return Action{}, &ActionParseError{
			Text:   text,
			Reason: fmt.Sprintf("invalid date '%s'", groups[1]),
		}
	}

	action := Action{
		Text: strings.TrimSpace(groups[3]),
		Date: date.Format("01/02/2006"),
	}
	if groups[2] != "" {
		chamber := chamberFromCode(groups[2])
		action.Chamber = &chamber
	}
	return action, nil
}

// Map returns the action in its flat external form.
func (a Action) Map() map[string]any {
	var chamber any
	if a.Chamber != nil {
		chamber = string(*a.Chamber)
	}
	return map[string]any{
		"chamber": chamber,
		"text":    a.Text,
		"date":    a.Date,
	}
}
