package timezone

import "time"

// the legislature publishes in central time
var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Chicago")
	if err != nil {
		panic(err)
	}
}

// force timezone to be the legislature's because our servers may be
// elsewhere, which shifts what "today" means around midnight.
func Now() time.Time {
	return time.Now().In(Location)
}

// StartOfDay returns midnight of the day `t` falls on, in the
// legislature's timezone.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}
