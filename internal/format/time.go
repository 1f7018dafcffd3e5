package format

import (
	"fmt"
	"math"
	"time"
)

// LayoutLong renders as "Thu, Sep 4, 1986 8:30 PM EST".
const LayoutLong = "Mon, Jan 2, 2006 3:04 PM MST"

// InUserTimezone formats t in loc with LayoutLong. A nil loc means the
// local timezone. The zero time formats as "".
func InUserTimezone(t time.Time, loc *time.Location) string {
	return FormatIn(t, loc, LayoutLong)
}

// FormatIn formats t in loc with layout. The zero time formats as "".
func FormatIn(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}

// FromNow describes t relative to the current time.
func FromNow(t time.Time) string {
	return RelativeTime(t, time.Now())
}

// RelativeTime describes t relative to now in words, such as
// "a few seconds ago", "3 hours ago" or "in 2 days". Each unit is rounded
// to the nearest whole value before the thresholds are applied.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	past := d >= 0
	if !past {
		d = -d
	}

	seconds := math.Round(d.Seconds())
	minutes := math.Round(d.Minutes())
	hours := math.Round(d.Hours())
	days := math.Round(d.Hours() / 24)
	months := math.Round(d.Hours() / 24 * 4800 / 146097)
	years := math.Round(d.Hours() / 24 * 400 / 146097)

	var s string
	switch {
	case seconds < 45:
		s = "a few seconds"
	case minutes <= 1:
		s = "a minute"
	case minutes < 45:
		s = fmt.Sprintf("%d minutes", int(minutes))
	case hours <= 1:
		s = "an hour"
	case hours < 22:
		s = fmt.Sprintf("%d hours", int(hours))
	case days <= 1:
		s = "a day"
	case days < 26:
		s = fmt.Sprintf("%d days", int(days))
	case months <= 1:
		s = "a month"
	case months < 11:
		s = fmt.Sprintf("%d months", int(months))
	case years <= 1:
		s = "a year"
	default:
		s = fmt.Sprintf("%d years", int(years))
	}

	if past {
		return s + " ago"
	}
	return "in " + s
}
