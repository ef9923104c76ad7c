package core

import (
	"encoding/json"
	"errors"
	"time"
)

// Booking is an appointment as returned by the bookings endpoint.
type Booking struct {
	ID          ID
	UID         string
	Title       string
	Status      string
	Start       string
	End         string
	Description string
	Location    string
	MeetingURL  string
	Attendees   []Attendee

	Raw json.RawMessage
}

// Attendee is a booking participant.
type Attendee struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	TimeZone string `json:"timeZone,omitempty"`
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	obj, ok := asObject(data)
	if !ok {
		return errors.New("booking: expected a JSON object")
	}
	*b = Booking{
		ID:          idField(obj, "id"),
		UID:         textField(obj, "uid"),
		Title:       textField(obj, "title"),
		Status:      textField(obj, "status"),
		Start:       textField(obj, "startTime", "start"),
		End:         textField(obj, "endTime", "end"),
		Description: textField(obj, "description"),
		Location:    textField(obj, "location"),
		MeetingURL:  textField(obj, "meetingUrl", "videoCallUrl"),
		Raw:         append(json.RawMessage(nil), data...),
	}
	for _, raw := range arrayField(obj, "attendees") {
		if a, ok := asObject(raw); ok {
			b.Attendees = append(b.Attendees, Attendee{
				Name:     textField(a, "name"),
				Email:    textField(a, "email"),
				TimeZone: textField(a, "timeZone"),
			})
		}
	}
	return nil
}

func (b Booking) MarshalJSON() ([]byte, error) {
	if len(b.Raw) > 0 {
		return b.Raw, nil
	}
	return json.Marshal(struct {
		ID          ID         `json:"id"`
		UID         string     `json:"uid,omitempty"`
		Title       string     `json:"title"`
		Status      string     `json:"status"`
		Start       string     `json:"start"`
		End         string     `json:"end"`
		Description string     `json:"description,omitempty"`
		Location    string     `json:"location,omitempty"`
		MeetingURL  string     `json:"meetingUrl,omitempty"`
		Attendees   []Attendee `json:"attendees,omitempty"`
	}{b.ID, b.UID, b.Title, b.Status, b.Start, b.End, b.Description, b.Location, b.MeetingURL, b.Attendees})
}

// StartTime parses Start; the zero time and false are returned when it is missing or malformed.
func (b Booking) StartTime() (time.Time, bool) {
	t, err := InstantTime(b.Start)
	return t, err == nil
}

// EndTime parses End.
func (b Booking) EndTime() (time.Time, bool) {
	t, err := InstantTime(b.End)
	return t, err == nil
}

// Duration returns the length of the booking, or zero when either end is unknown.
func (b Booking) Duration() time.Duration {
	start, ok1 := b.StartTime()
	end, ok2 := b.EndTime()
	if !ok1 || !ok2 {
		return 0
	}
	return end.Sub(start)
}

// InProgress checks if the booking is happening at now.
func (b Booking) InProgress(now time.Time) bool {
	start, ok1 := b.StartTime()
	end, ok2 := b.EndTime()
	return ok1 && ok2 && now.After(start) && now.Before(end)
}

// BookingFilter selects bookings for `booking list`.
type BookingFilter int

const (
	FilterAll BookingFilter = iota
	// FilterToday keeps bookings starting on the current date in the active timezone.
	FilterToday
	// FilterUpcoming keeps bookings starting now or later.
	FilterUpcoming
)

// FilterBookings applies f relative to now in loc. Bookings without a parseable
// start are dropped.
func FilterBookings(bookings []Booking, f BookingFilter, now time.Time, loc *time.Location) []Booking {
	today := now.In(loc).Format("2006-01-02")
	var out []Booking
	for _, b := range bookings {
		start, ok := b.StartTime()
		if !ok {
			continue
		}
		switch f {
		case FilterToday:
			if start.In(loc).Format("2006-01-02") != today {
				continue
			}
		case FilterUpcoming:
			if start.Before(now) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// EventType is a bookable event type ("link").
type EventType struct {
	ID         ID
	Slug       string
	Title      string
	Length     string
	BookingURL string

	Raw json.RawMessage
}

func (e *EventType) UnmarshalJSON(data []byte) error {
	obj, ok := asObject(data)
	if !ok {
		return errors.New("event type: expected a JSON object")
	}
	*e = EventType{
		ID:         idField(obj, "id"),
		Slug:       textField(obj, "slug"),
		Title:      textField(obj, "title"),
		Length:     textField(obj, "lengthInMinutes", "length"),
		BookingURL: textField(obj, "bookingUrl"),
		Raw:        append(json.RawMessage(nil), data...),
	}
	return nil
}

func (e EventType) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}
	return json.Marshal(struct {
		ID         ID     `json:"id"`
		Slug       string `json:"slug"`
		Title      string `json:"title"`
		BookingURL string `json:"bookingUrl,omitempty"`
	}{e.ID, e.Slug, e.Title, e.BookingURL})
}
