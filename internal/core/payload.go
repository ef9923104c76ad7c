package core

import (
	"encoding/json"
)

// SchedulePatch is the body of a schedule update. The remote endpoint replaces both
// sequences wholesale, so a patch always carries both, even the one it did not touch.
type SchedulePatch struct {
	Availability []json.RawMessage `json:"availability"`
	Overrides    []json.RawMessage `json:"overrides"`
}

// MergeOverrideSet replaces any override on o.Date with o, appended at the end.
// Availability is echoed unchanged.
func MergeOverrideSet(s Schedule, o OverrideWindow) SchedulePatch {
	kept := withoutMatching(s.Overrides, "date", o.Date)
	return SchedulePatch{
		Availability: nonNil(s.Availability),
		Overrides: append(kept, mustRaw(OverrideEntry{
			Date:      o.Date,
			StartTime: o.Start,
			EndTime:   o.End,
			TimeZone:  o.TimeZone,
		})),
	}
}

// MergeOverrideClear removes any override on date. Clearing a date with no override
// returns the overrides unchanged.
func MergeOverrideClear(s Schedule, date string) SchedulePatch {
	return SchedulePatch{
		Availability: nonNil(s.Availability),
		Overrides:    withoutMatching(s.Overrides, "date", date),
	}
}

// MergeWindowSet replaces any recurring window on w.Day with w, appended at the end.
// Overrides are echoed unchanged.
func MergeWindowSet(s Schedule, w AvailabilityWindow) SchedulePatch {
	kept := withoutMatching(s.Availability, "day", string(w.Day))
	return SchedulePatch{
		Availability: append(kept, mustRaw(WindowEntry{
			Day:       string(w.Day),
			StartTime: w.Start,
			EndTime:   w.End,
			TimeZone:  w.TimeZone,
		})),
		Overrides: nonNil(s.Overrides),
	}
}

// FilterOverrides returns the overrides whose date falls in r. Entries without a
// string date are left out.
func FilterOverrides(s Schedule, r DateRange) []json.RawMessage {
	out := []json.RawMessage{}
	for _, raw := range s.Overrides {
		date, ok := entryString(raw, "date")
		if !ok || date == "" || !r.Contains(date) {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// withoutMatching copies entries, dropping those whose key equals value. Entries that
// are not objects or have no string key never match and are kept as-is.
func withoutMatching(entries []json.RawMessage, key, value string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(entries)+1)
	for _, raw := range entries {
		if v, ok := entryString(raw, key); ok && v == value {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// mustRaw marshals an entry made only of strings; that cannot fail.
func mustRaw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// CancelPayload is the body of a booking cancellation.
type CancelPayload struct {
	Reason string `json:"reason,omitempty"`
}

// BuildBookingCancelPayload returns {reason} or {} when no reason was given.
func BuildBookingCancelPayload(reason string) CancelPayload {
	return CancelPayload{Reason: reason}
}

// ReschedulePayload is the body of a booking reschedule.
type ReschedulePayload struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	TimeZone string `json:"timeZone"`
}

// BuildBookingReschedulePayload requires start to be strictly before end. Instants are
// compared in absolute time, so differing offsets order correctly.
func BuildBookingReschedulePayload(start, end, tz string) (ReschedulePayload, error) {
	startAt, err := InstantTime(start)
	if err != nil {
		return ReschedulePayload{}, err
	}
	endAt, err := InstantTime(end)
	if err != nil {
		return ReschedulePayload{}, err
	}
	if !startAt.Before(endAt) {
		return ReschedulePayload{}, &ValidationError{Message: "Reschedule end time must be after start time"}
	}
	return ReschedulePayload{Start: start, End: end, TimeZone: tz}, nil
}

// ValidateInstantRange requires start < end for two ISO instants.
func ValidateInstantRange(start, end string) error {
	startAt, err := InstantTime(start)
	if err != nil {
		return err
	}
	endAt, err := InstantTime(end)
	if err != nil {
		return err
	}
	if !startAt.Before(endAt) {
		return &ValidationError{Message: "`--end` must be after `--start`"}
	}
	return nil
}
