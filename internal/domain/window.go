package domain

import "time"

// Window is a half-open UTC interval [Start, End) used to admit articles by
// publish date.
type Window struct {
	Start time.Time `json:"window_start"`
	End   time.Time `json:"window_end"`
}

// Contains reports whether t falls inside the half-open interval.
func (w Window) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && t.Before(w.End)
}

// CurrentWeek returns the ISO calendar week containing now, in UTC:
// [Monday 00:00:00, next Monday 00:00:00).
func CurrentWeek(now time.Time) Window {
	now = now.UTC()
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -daysSinceMonday)
	return Window{Start: monday, End: monday.AddDate(0, 0, 7)}
}
