package core

import (
	"encoding/json"
	"errors"
)

// Schedule is a remote availability schedule. Availability and Overrides keep each
// entry's raw JSON so that fields this client does not know about, and entries it
// cannot parse, are sent back exactly as they were received.
type Schedule struct {
	ID           ID
	Name         string
	TimeZone     string
	Availability []json.RawMessage
	Overrides    []json.RawMessage

	// Raw is the schedule object as returned by the API.
	Raw json.RawMessage
}

func (s *Schedule) UnmarshalJSON(b []byte) error {
	obj, ok := asObject(b)
	if !ok {
		return errors.New("schedule: expected a JSON object")
	}
	*s = Schedule{
		ID:           idField(obj, "id"),
		Availability: arrayField(obj, "availability"),
		Overrides:    arrayField(obj, "overrides"),
		Raw:          append(json.RawMessage(nil), b...),
	}
	s.Name, _ = stringField(obj, "name")
	s.TimeZone, _ = stringField(obj, "timeZone", "timezone")
	return nil
}

// MarshalJSON returns the schedule as received, so output shows every remote field.
func (s Schedule) MarshalJSON() ([]byte, error) {
	if len(s.Raw) > 0 {
		return s.Raw, nil
	}
	return json.Marshal(struct {
		ID           ID                `json:"id"`
		Name         string            `json:"name,omitempty"`
		TimeZone     string            `json:"timeZone,omitempty"`
		Availability []json.RawMessage `json:"availability"`
		Overrides    []json.RawMessage `json:"overrides"`
	}{s.ID, s.Name, s.TimeZone, nonNil(s.Availability), nonNil(s.Overrides)})
}

// AvailabilityWindow is a requested recurring weekly window.
type AvailabilityWindow struct {
	Day      Weekday
	Start    string
	End      string
	TimeZone string
}

// OverrideWindow is a requested one-off window for a single date.
type OverrideWindow struct {
	Date     string
	Start    string
	End      string
	TimeZone string
}

// WindowEntry is the wire form of a recurring availability entry.
type WindowEntry struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	TimeZone  string `json:"timeZone,omitempty"`
}

// OverrideEntry is the wire form of a date override.
type OverrideEntry struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	TimeZone  string `json:"timeZone,omitempty"`
}

// DecodeWindow reads an availability entry for display. Non-object entries report false;
// missing or oddly typed fields come back empty.
func DecodeWindow(raw json.RawMessage) (WindowEntry, bool) {
	obj, ok := asObject(raw)
	if !ok {
		return WindowEntry{}, false
	}
	return WindowEntry{
		Day:       textField(obj, "day"),
		StartTime: textField(obj, "startTime"),
		EndTime:   textField(obj, "endTime"),
		TimeZone:  textField(obj, "timeZone"),
	}, true
}

// DecodeOverride reads an override entry for display.
func DecodeOverride(raw json.RawMessage) (OverrideEntry, bool) {
	obj, ok := asObject(raw)
	if !ok {
		return OverrideEntry{}, false
	}
	return OverrideEntry{
		Date:      textField(obj, "date"),
		StartTime: textField(obj, "startTime"),
		EndTime:   textField(obj, "endTime"),
		TimeZone:  textField(obj, "timeZone"),
	}, true
}

func nonNil(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return []json.RawMessage{}
	}
	return items
}
