package domain

import (
	"regexp"
	"time"
)

// DateLayout is the calendar date format used for work dates and invoice periods.
const DateLayout = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether value is a YYYY-MM-DD string naming a real calendar day.
// time.Parse rejects days such as 2026-02-30.
func IsValidDate(value string) bool {
	if !isoDatePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// FormatDate renders t's UTC calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
