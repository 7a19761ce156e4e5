// Package busday is the single authority for business-day arithmetic.
// A business day is a calendar day that is not Saturday or Sunday. All
// "N business days after X" rules in the scheduler and the gate layer go
// through Add so date math cannot drift between components.
package busday

import "time"

// Add walks from t one calendar day at a time in the sign direction of
// days, counting a step only when it lands on a weekday, until the
// required number of business-day steps have been taken. The time-of-day
// component is carried through unchanged. Add(t, 0) returns t exactly.
func Add(t time.Time, days int) time.Time {
	if days == 0 {
		return t
	}
	step := 1
	if days < 0 {
		step = -1
		days = -days
	}
	for days > 0 {
		t = t.AddDate(0, 0, step)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days--
		}
	}
	return t
}

// AddString parses s (RFC 3339, or a bare 2006-01-02 date) and applies
// Add. Returns nil when s does not parse to a valid instant; callers
// must treat nil as "cannot schedule yet".
func AddString(s string, days int) *time.Time {
	t, ok := parseInstant(s)
	if !ok {
		return nil
	}
	out := Add(t, days)
	return &out
}

// SameDay reports whether a and b fall on the same calendar date,
// ignoring the time-of-day component.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Until counts the business days remaining between now and t at day
// granularity. Returns 0 when t's date is not after now's date.
func Until(now, t time.Time) int {
	d := StartOfDay(now)
	end := StartOfDay(t)
	n := 0
	for d.Before(end) {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

func parseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
