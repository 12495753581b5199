// Package daypart buckets local clock times into the four fixed dayparts
// used to order photos within a day story.
package daypart

import "time"

const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
)

// CanonicalOrder is the natural progression of dayparts through a day.
var CanonicalOrder = []string{Morning, Afternoon, Evening, Night}

// Boundaries in minutes since midnight. Each range is inclusive-start,
// exclusive-end: 11:59 is morning, 12:00 is afternoon, 17:00 is evening.
const (
	morningStart   = 5 * 60
	afternoonStart = 12 * 60
	eveningStart   = 17 * 60
	nightStart     = 21 * 60
)

// BucketClock returns the daypart for an hour/minute pair.
func BucketClock(hour, minute int) string {
	m := hour*60 + minute
	switch {
	case m >= morningStart && m < afternoonStart:
		return Morning
	case m >= afternoonStart && m < eveningStart:
		return Afternoon
	case m >= eveningStart && m < nightStart:
		return Evening
	default:
		return Night
	}
}

// Bucket returns the daypart for a local time.
func Bucket(t time.Time) string {
	return BucketClock(t.Hour(), t.Minute())
}

// LocalClock converts t into loc and returns its daypart together with the
// HH:MM local time string used for chronological sorting.
func LocalClock(t time.Time, loc *time.Location) (daypart, hhmm string) {
	local := t.In(loc)
	return Bucket(local), local.Format("15:04")
}

// Order returns the subsequence of the canonical order restricted to the
// dayparts actually present, regardless of input order or duplicates.
func Order(present []string) []string {
	seen := make(map[string]bool, len(present))
	for _, dp := range present {
		seen[dp] = true
	}

	var order []string
	for _, dp := range CanonicalOrder {
		if seen[dp] {
			order = append(order, dp)
		}
	}
	return order
}
