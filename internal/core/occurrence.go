package core

import (
	"time"

	"github.com/teambition/rrule-go"
)

var rruleDays = map[Weekday]rrule.Weekday{
	Monday:    rrule.MO,
	Tuesday:   rrule.TU,
	Wednesday: rrule.WE,
	Thursday:  rrule.TH,
	Friday:    rrule.FR,
	Saturday:  rrule.SA,
	Sunday:    rrule.SU,
}

// NextOccurrence returns the first start of a weekly window (day at HH:mm in loc)
// at or after now.
func NextOccurrence(day Weekday, start string, loc *time.Location, now time.Time) (time.Time, error) {
	wd, ok := rruleDays[day]
	if !ok {
		return time.Time{}, &ValidationError{Message: "Expected weekday: one of mon, tue, wed, thu, fri, sat, sun", Value: string(day)}
	}
	if _, err := ParseTimeOfDay(start); err != nil {
		return time.Time{}, err
	}
	hm, _ := time.Parse("15:04", start)

	local := now.In(loc)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{wd},
		Dtstart:   time.Date(local.Year(), local.Month(), local.Day(), hm.Hour(), hm.Minute(), 0, 0, loc),
	})
	if err != nil {
		return time.Time{}, &UnexpectedError{Err: err}
	}
	return r.After(now, true), nil
}
