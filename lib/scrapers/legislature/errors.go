package legislature

import (
	"errors"
	"fmt"
)

// the site has nothing published before this year
const FirstDataYear = 1996

var ErrNoDataForYear = errors.New("no data available online before 1996")
var ErrMissingNode = errors.New("missing node")

type OutOfRangeYearError struct {
	Year int
}

func (e *OutOfRangeYearError) Error() string {
	return fmt.Sprintf("year %d: %s", e.Year, ErrNoDataForYear.Error())
}

func (e *OutOfRangeYearError) Unwrap() error {
	return ErrNoDataForYear
}

// MissingNodeError is returned when a document lacks a node that the
// extractor cannot do without. It is never masked.
type MissingNodeError struct {
	Selector string
	Url      string
}

func (e *MissingNodeError) Error() string {
	if e.Url == "" {
		return fmt.Sprintf("missing node '%s'", e.Selector)
	}
	return fmt.Sprintf("missing node '%s' in %s", e.Selector, e.Url)
}

func (e *MissingNodeError) Unwrap() error {
	return ErrMissingNode
}

type ActionParseError struct {
	Text   string
	Reason string
}

func (e *ActionParseError) Error() string {
	return fmt.Sprintf("could not parse action '%s': %s", e.Text, e.Reason)
}

// ActionErrors collects the lines of an action log that could not be
// parsed. The actions that did parse are still returned alongside it.
type ActionErrors []*ActionParseError

func (e ActionErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%d action lines could not be parsed (first: %s)", len(e), e[0].Error())
}

func (e ActionErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, err := range e {
		out[i] = err
	}
	return out
}

type SessionRowError struct {
	Row    string
	Reason string
}

func (e *SessionRowError) Error() string {
	return fmt.Sprintf("could not parse session row '%s': %s", e.Row, e.Reason)
}
