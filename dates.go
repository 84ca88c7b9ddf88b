package main

import "time"

const (
	birthdayLayout = "2006-01-02"
	day            = 24 * time.Hour
)

// Clock is the time source used for every "now" the app needs.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var SystemClock Clock = ClockFunc(time.Now)

// ParseBirthday parses a YYYY-MM-DD birthday as midnight in loc.
func ParseBirthday(text string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(birthdayLayout, text, loc)
	if err != nil {
		return time.Time{}, &DateError{Input: text, Err: err}
	}
	return t, nil
}

// WeeksLived counts whole weeks between birth and now, read as wall-clock
// times. Calendar days are counted, so DST shifts never move the result; leap
// days are not corrected for. A birthday after now yields a negative count.
func WeeksLived(birth, now time.Time) int {
	days := int(wallClock(now).Sub(wallClock(birth)) / day)
	return days / 7
}

// wallClock drops the zone, keeping the date and time of day as read.
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.UTC)
}

func ProjectedEndYear(birth time.Time, lifeExpectancy int) int {
	return birth.Year() + lifeExpectancy
}
