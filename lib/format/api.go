// Package format provides convenience functions for formatting values in log
// messages and on the status page.
package format

import "time"

const TimeFormatSeconds = "02 Jan 2006 15:04:05 MST"

// Duration is similar to the time.Duration.String method from the standard
// library but shows only 3 digits of precision when the duration is less than
// 1 minute and drops sub-second precision beyond that.
func Duration(duration time.Duration) string {
	return formatDuration(duration)
}

// FormatBytes returns a string with the number of bytes specified converted
// into a human-friendly format with a binary multiplier (i.e. MiB).
func FormatBytes(bytes uint64) string {
	return formatBytes(bytes)
}
