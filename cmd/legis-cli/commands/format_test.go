package commands

import (
	"bytes"
	"encoding/json"
	"legiscraper/lib/billstore"
	"legiscraper/lib/scrapers/legislature"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var testSessions = []legislature.Session{
	{Year: 2009, Name: "2009 Regular Session", Url: "http://www.nmlegis.gov/lcs/Locator.aspx?year=2009&session=R"},
	{Year: 2009, Name: "2009 First Special", Url: "http://www.nmlegis.gov/lcs/Locator.aspx?year=2009&session=S1"},
}

func TestParseFormat(t *testing.T) {
	for _, value := range []string{"table", "json", "yaml"} {
		format, err := parseFormat(value)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, outputFormat(value), format)
	}

	_, err := parseFormat("csv")
	require.Error(t, err)
	_, err = parseFormat("")
	require.Error(t, err)
}

func TestWriteSessionsJson(t *testing.T) {
	var buf bytes.Buffer
	err := writeSessions(&buf, formatJson, testSessions)
	if err != nil {
		t.Fatal(err)
	}

	var decoded []legislature.Session
	err = json.Unmarshal(buf.Bytes(), &decoded)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, testSessions, decoded)

	buf.Reset()
	err = writeSessions(&buf, formatJson, nil)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "[]\n", buf.String())
}

func TestWriteSessionsYaml(t *testing.T) {
	var buf bytes.Buffer
	err := writeSessions(&buf, formatYaml, testSessions)
	if err != nil {
		t.Fatal(err)
	}

	var decoded []legislature.Session
	err = yaml.Unmarshal(buf.Bytes(), &decoded)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, testSessions, decoded)
	require.Contains(t, buf.String(), "name: 2009 First Special")
}

func TestWriteSessionsTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeSessions(&buf, formatTable, testSessions)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	require.Contains(t, out, "2009 Regular Session")
	require.Contains(t, out, "2009 First Special")
	require.Contains(t, strings.ToLower(out), "url")
}

func TestWriteRecords(t *testing.T) {
	records := []legislature.Record{{
		State:     "ms",
		Chamber:   legislature.ChamberLower,
		Session:   "2009 Regular Session",
		BillId:    "HB 1",
		BillName:  "Appropriations; state agencies.",
		RemoteUrl: "http://billstatus.ls.state.ms.us/2009/pdf/history/HB/HB0001.xml",
	}}

	var buf bytes.Buffer
	err := writeRecords(&buf, formatJson, records)
	if err != nil {
		t.Fatal(err)
	}

	var decoded []map[string]string
	err = json.Unmarshal(buf.Bytes(), &decoded)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []map[string]string{records[0].Map()}, decoded)

	buf.Reset()
	err = writeRecords(&buf, formatTable, records)
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, buf.String(), "Appropriations; state agencies.")
}

func TestWriteBill(t *testing.T) {
	lower := legislature.ChamberLower
	stored := billstore.StoredBill{
		Detail: legislature.BillDetail{
			Record: legislature.Record{
				State:   "ms",
				Chamber: legislature.ChamberLower,
				Session: "2009 Regular Session",
				BillId:  "HB 1",
			},
			Year:    2009,
			Sponsor: "Smith",
			Actions: []legislature.Action{
				{Chamber: &lower, Text: "Referred To Appropriations", Date: "01/12/2009"},
				{Text: "Approved by Governor", Date: "03/14/2009"},
			},
			Versions: []legislature.Version{
				{Name: "intro", Url: "http://billstatus.ls.state.ms.us/documents/2009/pdf/HB/0001-0099/HB0001IN.pdf"},
			},
		},
		ScrapedAt:       time.Date(2009, time.March, 14, 9, 0, 0, 0, time.UTC),
		DetailScrapedAt: time.Date(2009, time.March, 15, 10, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	err := writeBill(&buf, formatYaml, stored)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	require.Contains(t, out, "sponsor: Smith")
	require.Contains(t, out, "chamber: null")
	require.Contains(t, out, "text: Approved by Governor")

	buf.Reset()
	err = writeBill(&buf, formatTable, stored)
	if err != nil {
		t.Fatal(err)
	}
	out = buf.String()
	require.Contains(t, out, "Smith")
	require.Contains(t, out, "Referred To Appropriations")
	require.Contains(t, out, "HB0001IN.pdf")
	require.Contains(t, out, "2009-03-15 10:00:00")
}
