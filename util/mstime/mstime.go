// Package mstime converts between time.Time and block header timestamps,
// which count milliseconds since the Unix epoch.
package mstime

import "time"

// Now returns the current header timestamp
func Now() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// ToTime converts a header timestamp to a time.Time in UTC
func ToTime(ms int64) time.Time {
	return time.Unix(0, ms*int64(time.Millisecond)).UTC()
}
