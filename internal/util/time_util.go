package util

import "time"

// NewDate builds a UTC midnight timestamp, the convention bar and
// statement dates follow throughout.
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
