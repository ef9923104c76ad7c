package calcom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/theakshaypant/calcom/internal/core"
)

func (c *Client) ListSchedules(ctx context.Context) ([]core.Schedule, error) {
	raw, err := c.Request(ctx, "/v2/schedules", RequestOptions{Endpoint: EndpointSchedules})
	if err != nil {
		return nil, err
	}
	return decodeEach[core.Schedule](coerceArray(raw, "schedules")), nil
}

func (c *Client) GetSchedule(ctx context.Context, id string) (core.Schedule, error) {
	raw, err := c.Request(ctx, "/v2/schedules/"+url.PathEscape(id), RequestOptions{Endpoint: EndpointSchedules})
	if err != nil {
		return core.Schedule{}, err
	}
	var s core.Schedule
	if err := json.Unmarshal(coerceObject(raw, "schedule"), &s); err != nil {
		return core.Schedule{}, &core.UnexpectedError{Err: fmt.Errorf("decode schedule %s: %w", id, err)}
	}
	return s, nil
}

// PatchSchedule sends the full availability and overrides lists for schedule id.
func (c *Client) PatchSchedule(ctx context.Context, id string, patch core.SchedulePatch) (json.RawMessage, error) {
	return c.Request(ctx, "/v2/schedules/"+url.PathEscape(id), RequestOptions{
		Method:   "PATCH",
		Endpoint: EndpointSchedules,
		Body:     patch,
	})
}

// ResolveScheduleID returns explicit when given, otherwise the id of the account's
// first schedule.
func (c *Client) ResolveScheduleID(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	schedules, err := c.ListSchedules(ctx)
	if err != nil {
		return "", err
	}
	for _, s := range schedules {
		if s.ID != "" {
			return s.ID.String(), nil
		}
	}
	return "", &core.NotFoundError{Message: "No schedules available for this account."}
}

func (c *Client) ListEventTypes(ctx context.Context) ([]core.EventType, error) {
	raw, err := c.Request(ctx, "/v2/event-types", RequestOptions{Endpoint: EndpointEventTypes})
	if err != nil {
		return nil, err
	}
	return decodeEach[core.EventType](coerceArray(raw, "eventTypes")), nil
}

// FindEventTypeBySlug returns the event type whose slug matches exactly.
func (c *Client) FindEventTypeBySlug(ctx context.Context, slug string) (core.EventType, error) {
	types, err := c.ListEventTypes(ctx)
	if err != nil {
		return core.EventType{}, err
	}
	for _, et := range types {
		if et.Slug == slug {
			return et, nil
		}
	}
	return core.EventType{}, &core.NotFoundError{Message: "No event type found for slug: " + slug}
}

// CheckSlots returns the raw availability response for an event type between two instants.
func (c *Client) CheckSlots(ctx context.Context, eventTypeID, start, end, timeZone string) (json.RawMessage, error) {
	return c.Request(ctx, "/v2/slots", RequestOptions{
		Endpoint: EndpointSlots,
		Query: map[string]string{
			"eventTypeId": eventTypeID,
			"start":       start,
			"end":         end,
			"timeZone":    timeZone,
		},
	})
}

// ListBookings fetches bookings; limit <= 0 leaves the page size to the server.
func (c *Client) ListBookings(ctx context.Context, limit int) ([]core.Booking, error) {
	query := map[string]string{}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}
	raw, err := c.Request(ctx, "/v2/bookings", RequestOptions{Endpoint: EndpointBookings, Query: query})
	if err != nil {
		return nil, err
	}
	return decodeEach[core.Booking](coerceArray(raw, "bookings")), nil
}

func (c *Client) CancelBooking(ctx context.Context, id string, payload core.CancelPayload) (json.RawMessage, error) {
	return c.Request(ctx, "/v2/bookings/"+url.PathEscape(id)+"/cancel", RequestOptions{
		Method:   "POST",
		Endpoint: EndpointBookings,
		Body:     payload,
	})
}

func (c *Client) RescheduleBooking(ctx context.Context, id string, payload core.ReschedulePayload) (json.RawMessage, error) {
	return c.Request(ctx, "/v2/bookings/"+url.PathEscape(id)+"/reschedule", RequestOptions{
		Method:   "POST",
		Endpoint: EndpointBookings,
		Body:     payload,
	})
}

// decodeEach decodes list entries one at a time, skipping the ones that do not decode
// (typically entries that are not objects).
func decodeEach[T any](items []json.RawMessage) []T {
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
