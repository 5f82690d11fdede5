package utils

import (
	"strings"
	"time"
)

const (
	layoutDate    = "2006-01-02"
	layoutDisplay = "02/01/2006"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// DisplayDate turns an upstream YYYY-MM-DD date into DD/MM/YYYY. Values it
// cannot parse are returned unchanged.
func DisplayDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return t.Format(layoutDisplay)
}
