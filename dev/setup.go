package main

import (
	"fmt"
	devenv "legiscraper/dev/env"
	"legiscraper/lib/billstore"
	configlibsql "legiscraper/lib/configutil/libsql"
	"os"
)

const billsDbPath = "<dev_state>/bills.db"

func CreateBillsDB() error {
	path, err := devenv.ResolvePath(billsDbPath)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	db, err := configlibsql.Struct{File: billsDbPath}.OpenDB(billstore.Schema)
	if err != nil {
		return err
	}
	return db.Close()
}

const defaultConfig = `{
  // where the bill listings and detail pages are served from
  document_host: "http://billstatus.ls.state.ms.us",
  session_locator: "http://www.nmlegis.gov/lcs/locator.aspx",
  session_link_base: "http://www.nmlegis.gov/lcs/",

  timeout_seconds: 30,
  retry_count: 2,
  cache_ttl_seconds: 600,
  cloudflare_bypass: false,

  database: {
    file: "<dev_state>/bills.db",
    // or a remote libsql database:
    // url: "libsql://<db>.turso.io",
    // auth_token: "...",
  },
}
`

func WriteDefaultConfig() error {
	_, err := os.Stat("legis.json5")
	if err == nil {
		fmt.Println("config already exists at legis.json5")
		return nil
	}
	fmt.Println("writing default config to legis.json5")
	return os.WriteFile("legis.json5", []byte(defaultConfig), 0666)
}

func PrintConfigLocations() {
	fmt.Println()
	fmt.Println("configuration:")
	fmt.Println("  legis.json5        scraper hosts, retries and database (override in legis.local.json5)")
	fmt.Println("  telemetry.json5    otlp exporters, telemetry stays off without it")
	fmt.Println("  dev/.state/        databases and request dumps (legis-cli -v)")
}
