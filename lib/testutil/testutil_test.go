package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupDB(t *testing.T) {
	db := SetupDB(t, DBParams{Schema: "create table bill (id text primary key);"})
	_, err := db.Exec("insert into bill (id) values ('HB 1')")
	if err != nil {
		t.Fatal(err)
	}

	var count int
	err = db.QueryRow("select count(*) from bill").Scan(&count)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 1, count)
}

func TestSetupDBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.db")
	db := SetupDB(t, DBParams{File: path})
	require.FileExists(t, path)
	require.NoError(t, db.Ping())
}
