package types

import "time"

// DateLayout is the calendar-day key format used for windowing.
const DateLayout = "2006-01-02"

// DateRange is an inclusive window of calendar days in a fixed location.
// Comparisons are done on day keys, so a record at 23:59 local time on To
// is still inside the window.
type DateRange struct {
	From     string
	To       string
	Location *time.Location
}

// NewDateRange builds a window from two instants, using from's location.
// If to is before from the two are swapped.
func NewDateRange(from, to time.Time) DateRange {
	loc := from.Location()
	f := from.In(loc).Format(DateLayout)
	t := to.In(loc).Format(DateLayout)
	if t < f {
		f, t = t, f
	}
	return DateRange{From: f, To: t, Location: loc}
}

// SingleDay returns a window covering only day's calendar date.
func SingleDay(day time.Time) DateRange {
	return NewDateRange(day, day)
}

func (r DateRange) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// DayKey returns the calendar-day key of an epoch-millisecond timestamp.
func (r DateRange) DayKey(ms int64) string {
	return time.UnixMilli(ms).In(r.location()).Format(DateLayout)
}

// Contains reports whether the timestamp falls on a day inside the window.
func (r DateRange) Contains(ms int64) bool {
	key := r.DayKey(ms)
	return key >= r.From && key <= r.To
}

// ContainsTime is Contains for a time.Time.
func (r DateRange) ContainsTime(t time.Time) bool {
	key := t.In(r.location()).Format(DateLayout)
	return key >= r.From && key <= r.To
}

// Days lists every calendar day in the window, midnight-aligned, ascending.
func (r DateRange) Days() []time.Time {
	loc := r.location()
	start, err := time.ParseInLocation(DateLayout, r.From, loc)
	if err != nil {
		return nil
	}
	end, err := time.ParseInLocation(DateLayout, r.To, loc)
	if err != nil {
		return nil
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// AllTime is a window no timestamp falls outside of. Days must not be
// called on it.
func AllTime() DateRange {
	return DateRange{From: "0000-01-01", To: "9999-12-31"}
}
