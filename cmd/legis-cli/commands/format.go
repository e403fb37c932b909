package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"legiscraper/lib/billstore"
	"legiscraper/lib/scrapers/legislature"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJson  outputFormat = "json"
	formatYaml  outputFormat = "yaml"
)

func parseFormat(value string) (outputFormat, error) {
	switch outputFormat(value) {
	case formatTable, formatJson, formatYaml:
		return outputFormat(value), nil
	}
	return "", fmt.Errorf("unknown output format '%s'", value)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// writeStructured writes `value` as json or yaml. It returns false when
// the format is a table, which the caller renders itself.
func writeStructured(w io.Writer, format outputFormat, value any) (bool, error) {
	switch format {
	case formatJson:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(value)
	case formatYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(value)
		if err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func writeSessions(w io.Writer, format outputFormat, sessions []legislature.Session) error {
	if sessions == nil {
		sessions = []legislature.Session{}
	}
	done, err := writeStructured(w, format, sessions)
	if done {
		return err
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Year", "Name", "Url"})
	for _, s := range sessions {
		t.AppendRow(table.Row{s.Year, s.Name, s.Url})
	}
	t.Render()
	return nil
}

func writeRecords(w io.Writer, format outputFormat, records []legislature.Record) error {
	if records == nil {
		records = []legislature.Record{}
	}
	done, err := writeStructured(w, format, records)
	if done {
		return err
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Bill", "Chamber", "Name", "Url"})
	for _, r := range records {
		t.AppendRow(table.Row{r.BillId, r.Chamber, r.BillName, r.RemoteUrl})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(records)})
	t.Render()
	return nil
}

func writeBill(w io.Writer, format outputFormat, bill billstore.StoredBill) error {
	detail := bill.Detail
	done, err := writeStructured(w, format, detail)
	if done {
		return err
	}

	summary := newTable(w)
	summary.AppendRows([]table.Row{
		{"Bill", detail.Record.BillId},
		{"Name", detail.Record.BillName},
		{"Session", detail.Record.Session},
		{"Chamber", detail.Record.Chamber},
		{"Sponsor", detail.Sponsor},
		{"Url", detail.Record.RemoteUrl},
		{"Scraped", bill.DetailScrapedAt.Format(time.DateTime)},
	})
	summary.Render()

	actions := newTable(w)
	actions.AppendHeader(table.Row{"Date", "Chamber", "Action"})
	for _, a := range detail.Actions {
		chamber := ""
		if a.Chamber != nil {
			chamber = string(*a.Chamber)
		}
		actions.AppendRow(table.Row{a.Date, chamber, a.Text})
	}
	actions.Render()

	versions := newTable(w)
	versions.AppendHeader(table.Row{"Version", "Url"})
	for _, v := range detail.Versions {
		versions.AppendRow(table.Row{v.Name, v.Url})
	}
	versions.Render()
	return nil
}
