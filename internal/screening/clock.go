package screening

import "time"

// Clock supplies the current time. Open-ended date ranges ("2019 - Present")
// end in the clock's current year.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedYear returns a clock pinned to mid-year of year. Used for
// reproducible scoring and tests.
func FixedYear(year int) Clock {
	t := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
	return ClockFunc(func() time.Time { return t })
}
