package dbtest

import "time"

// Now is the UTC wall clock truncated to the precision SQLite keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
