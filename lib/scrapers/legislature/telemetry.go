package legislature

import (
	"legiscraper/lib/restyutil"
	"legiscraper/lib/telemetry"
)

var tracer = telemetry.Tracer("legiscraper.lib.scrapers.legislature")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes every client created afterwards dump its
// requests and responses to `out` when debug logging is enabled.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
