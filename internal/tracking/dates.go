package tracking

import "time"

// DateLayout is the calendar-day key used in persisted state.
const DateLayout = "2006-01-02"

// DateKey formats t as a calendar day in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// PreviousDateKey is the calendar day before t.
func PreviousDateKey(t time.Time) string {
	return t.AddDate(0, 0, -1).Format(DateLayout)
}
