package reservation

import (
	"encoding/json"
	"fmt"
	"time"

	"tablebook/internal/pkg/errs"
)

var (
	ErrInvalidTimeOfDay = errs.New("invalid time of day")
	ErrInvalidDate      = errs.New("invalid date")
	ErrInvalidDuration  = errs.New("duration must be positive")
)

// TimeOfDay is minutes since midnight. Wall-clock arithmetic on bookings
// happens in minutes so interval comparisons stay integral.
type TimeOfDay int

const MinutesPerDay = 24 * 60

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, errs.Mark(errs.Newf("parse time of day %q", s), ErrInvalidTimeOfDay)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errs.Mark(errs.Newf("time of day %q out of range", s), ErrInvalidTimeOfDay)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) Minutes() int {
	return int(t)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeWindow is the half-open interval [Start, Start+Minutes).
type TimeWindow struct {
	start   TimeOfDay
	minutes int
}

func NewTimeWindow(start TimeOfDay, minutes int) (TimeWindow, error) {
	if minutes <= 0 {
		return TimeWindow{}, errs.Mark(errs.Newf("duration %d minutes", minutes), ErrInvalidDuration)
	}
	return TimeWindow{start: start, minutes: minutes}, nil
}

func (w TimeWindow) Start() TimeOfDay { return w.start }
func (w TimeWindow) Minutes() int     { return w.minutes }

func (w TimeWindow) End() TimeOfDay {
	return w.start.Add(w.minutes)
}

// Overlaps applies the half-open interval test: [a,b) and [c,d) overlap
// iff a < d && b > c. Touching endpoints do not collide.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.start < o.End() && w.End() > o.start
}

func (w TimeWindow) String() string {
	return w.start.String() + "-" + w.End().String()
}

// Date is a calendar date with no time zone of its own.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errs.Mark(errs.Newf("parse date %q", s), ErrInvalidDate)
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// At anchors a time of day on this date in the given location.
func (d Date) At(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, t.Minutes(), 0, 0, loc)
}

func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
