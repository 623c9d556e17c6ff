// Package timeutil formats timestamps and durations for CLI display.
package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// LocalTimeFormat is the layout for local timestamps in table output.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatUptime rewrites a Go duration string such as "72h30m15s" as
// "3d 0h 30m 15s". Unparseable input is returned unchanged.
func FormatUptime(uptime string) string {
	d, err := time.ParseDuration(uptime)
	if err != nil {
		return uptime
	}

	total := int64(d.Seconds())
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	var b strings.Builder
	if days > 0 {
		b.WriteString(strconv.FormatInt(days, 10))
		b.WriteString("d ")
	}
	if days > 0 || hours > 0 {
		b.WriteString(strconv.FormatInt(hours, 10))
		b.WriteString("h ")
	}
	if days > 0 || hours > 0 || minutes > 0 {
		b.WriteString(strconv.FormatInt(minutes, 10))
		b.WriteString("m ")
	}
	b.WriteString(strconv.FormatInt(seconds, 10))
	b.WriteString("s")
	return b.String()
}

// FormatTime converts an RFC3339 timestamp to local time in
// LocalTimeFormat. Unparseable input is returned unchanged.
func FormatTime(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Local().Format(LocalTimeFormat)
}
