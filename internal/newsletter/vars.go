package newsletter

import (
	"strings"
	"time"
)

// ExpandVars substitutes placeholders in config-provided text fields
// (title, preface, postscript).
//
// Supported variables:
// - {.CurrentDate} => YYYY-MM-DD (UTC)
// - {.DayName}     => weekday name, e.g. "Friday"
func ExpandVars(s string, now time.Time) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	now = now.UTC()
	s = strings.ReplaceAll(s, "{.CurrentDate}", now.Format("2006-01-02"))
	s = strings.ReplaceAll(s, "{.DayName}", now.Format("Monday"))
	return s
}
