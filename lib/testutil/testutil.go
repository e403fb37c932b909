package testutil

import (
	"database/sql"
	configlibsql "legiscraper/lib/configutil/libsql"
	"testing"
)

type DBParams struct {
	// if unspecified, the database is left empty
	Schema string
	// if unspecified, it will use `:memory:`
	File string
}

// SetupDB opens a database for a test, it is closed when the test ends.
func SetupDB(t testing.TB, params DBParams) *sql.DB {
	file := params.File
	if file == "" {
		file = ":memory:"
	}
	db, err := configlibsql.Struct{File: file}.OpenDB(params.Schema)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
