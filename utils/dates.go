// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// CurrentBillingPeriod returns the YYYY-MM key for the given time.
func CurrentBillingPeriod(t time.Time) string {
	return t.Format("2006-01")
}
