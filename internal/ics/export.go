// Package ics renders bookings as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/theakshaypant/calcom/internal/core"
)

const productID = "-//calcom-cli//bookings export//EN"

// Export writes one VEVENT per booking to w. Bookings without a parseable start and
// end are skipped; the number written is returned. stamp is used as DTSTAMP.
func Export(w io.Writer, bookings []core.Booking, stamp time.Time) (int, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("Cal.com bookings")

	written := 0
	for _, b := range bookings {
		start, ok := b.StartTime()
		if !ok {
			continue
		}
		end, ok := b.EndTime()
		if !ok {
			continue
		}

		ev := cal.AddEvent(eventUID(b))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(title(b))
		ev.SetStatus(status(b.Status))
		if b.Description != "" {
			ev.SetDescription(b.Description)
		}
		if loc := location(b); loc != "" {
			ev.SetLocation(loc)
		}
		if b.MeetingURL != "" {
			ev.SetURL(b.MeetingURL)
		}
		for _, a := range b.Attendees {
			if a.Email == "" {
				continue
			}
			if a.Name != "" {
				ev.AddAttendee(a.Email, ical.WithCN(a.Name))
			} else {
				ev.AddAttendee(a.Email)
			}
		}
		written++
	}

	if err := cal.SerializeTo(w); err != nil {
		return 0, fmt.Errorf("write calendar: %w", err)
	}
	return written, nil
}

func eventUID(b core.Booking) string {
	id := b.UID
	if id == "" {
		id = b.ID.String()
	}
	return id + "@cal.com"
}

func title(b core.Booking) string {
	if strings.TrimSpace(b.Title) == "" {
		return "Booking " + b.ID.String()
	}
	return b.Title
}

// location prefers a physical or named location and falls back to the meeting link.
func location(b core.Booking) string {
	if b.Location != "" {
		return b.Location
	}
	return b.MeetingURL
}

func status(s string) ical.ObjectStatus {
	switch strings.ToLower(s) {
	case "cancelled", "canceled", "rejected":
		return ical.ObjectStatusCancelled
	case "pending", "awaiting_host", "unconfirmed":
		return ical.ObjectStatusTentative
	default:
		return ical.ObjectStatusConfirmed
	}
}
