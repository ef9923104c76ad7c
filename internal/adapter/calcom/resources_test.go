package calcom

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theakshaypant/calcom/internal/core"
)

// route serves canned bodies keyed by "METHOD path" and records what was called.
type route struct {
	responses map[string]string
	calls     []string
	bodies    map[string]string
}

func (rt *route) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		rt.calls = append(rt.calls, key)
		if r.Body != nil {
			b, _ := io.ReadAll(r.Body)
			if rt.bodies == nil {
				rt.bodies = map[string]string{}
			}
			rt.bodies[key] = string(b)
		}
		body, ok := rt.responses[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"no route"}`))
			return
		}
		w.Write([]byte(body))
	}
}

func TestListSchedules(t *testing.T) {
	rt := &route{responses: map[string]string{
		"GET /v2/schedules": `{"status":"success","data":[{"id":11,"name":"Work","availability":[]},"garbage",{"id":"12","name":"Side"}]}`,
	}}
	c := newTestClient(t, rt.handler(t))

	schedules, err := c.ListSchedules(context.Background())
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, core.ID("11"), schedules[0].ID)
	assert.Equal(t, "Side", schedules[1].Name)
}

func TestGetSchedule(t *testing.T) {
	rt := &route{responses: map[string]string{
		"GET /v2/schedules/11": `{"status":"success","data":{"id":11,"name":"Work","timeZone":"Europe/Oslo","availability":[{"day":"mon","startTime":"09:00","endTime":"17:00"}],"overrides":[]}}`,
	}}
	c := newTestClient(t, rt.handler(t))

	s, err := c.GetSchedule(context.Background(), "11")
	require.NoError(t, err)
	assert.Equal(t, "Work", s.Name)
	assert.Equal(t, "Europe/Oslo", s.TimeZone)
	assert.Len(t, s.Availability, 1)
	assert.Empty(t, s.Overrides)
}

func TestGetSchedule_NotFound(t *testing.T) {
	rt := &route{}
	c := newTestClient(t, rt.handler(t))

	_, err := c.GetSchedule(context.Background(), "404")
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no route", apiErr.Message)
}

func TestPatchSchedule(t *testing.T) {
	rt := &route{responses: map[string]string{"PATCH /v2/schedules/11": `{"status":"success"}`}}
	c := newTestClient(t, rt.handler(t))

	patch := core.MergeOverrideClear(core.Schedule{}, "2026-03-02")
	_, err := c.PatchSchedule(context.Background(), "11", patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"availability":[],"overrides":[]}`, rt.bodies["PATCH /v2/schedules/11"])
}

func TestResolveScheduleID(t *testing.T) {
	t.Run("explicit skips the network", func(t *testing.T) {
		rt := &route{}
		c := newTestClient(t, rt.handler(t))
		id, err := c.ResolveScheduleID(context.Background(), "77")
		require.NoError(t, err)
		assert.Equal(t, "77", id)
		assert.Empty(t, rt.calls)
	})

	t.Run("first schedule", func(t *testing.T) {
		rt := &route{responses: map[string]string{"GET /v2/schedules": `{"data":[{"id":5},{"id":6}]}`}}
		c := newTestClient(t, rt.handler(t))
		id, err := c.ResolveScheduleID(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "5", id)
	})

	t.Run("none", func(t *testing.T) {
		rt := &route{responses: map[string]string{"GET /v2/schedules": `{"data":[]}`}}
		c := newTestClient(t, rt.handler(t))
		_, err := c.ResolveScheduleID(context.Background(), "")
		var nf *core.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestFindEventTypeBySlug(t *testing.T) {
	rt := &route{responses: map[string]string{
		"GET /v2/event-types": `{"status":"success","data":[{"id":1,"slug":"intro","title":"Intro","bookingUrl":"https://cal.com/me/intro"},{"id":2,"slug":"deep-dive","title":"Deep dive"}]}`,
	}}
	c := newTestClient(t, rt.handler(t))

	et, err := c.FindEventTypeBySlug(context.Background(), "intro")
	require.NoError(t, err)
	assert.Equal(t, "https://cal.com/me/intro", et.BookingURL)

	_, err = c.FindEventTypeBySlug(context.Background(), "Intro")
	var nf *core.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "No event type found for slug: Intro", nf.Error())
}

func TestCheckSlots(t *testing.T) {
	var query map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"status":"success","data":{"2026-03-02":[{"start":"2026-03-02T09:00:00.000+01:00"}]}}`))
	})

	raw, err := c.CheckSlots(context.Background(), "42", "2026-03-02T00:00:00+01:00", "2026-03-03T00:00:00+01:00", "Europe/Oslo")
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
	assert.Equal(t, []string{"42"}, query["eventTypeId"])
	assert.Equal(t, []string{"2026-03-02T00:00:00+01:00"}, query["start"])
	assert.Equal(t, []string{"Europe/Oslo"}, query["timeZone"])
}

func TestListBookings(t *testing.T) {
	var rawQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{"status":"success","data":[{"id":1,"title":"A","start":"2026-03-02T09:00:00Z"},null,{"id":2,"title":"B","start":"2026-03-03T09:00:00Z"}]}`))
	})

	bookings, err := c.ListBookings(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "limit=10", rawQuery)
	require.Len(t, bookings, 2)
	assert.Equal(t, "B", bookings[1].Title)

	_, err = c.ListBookings(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, rawQuery)
}

func TestCancelAndRescheduleBooking(t *testing.T) {
	rt := &route{responses: map[string]string{
		"POST /v2/bookings/bk 1/cancel":     `{"status":"success"}`,
		"POST /v2/bookings/bk 1/reschedule": `{"status":"success"}`,
	}}
	c := newTestClient(t, rt.handler(t))

	_, err := c.CancelBooking(context.Background(), "bk 1", core.BuildBookingCancelPayload("sick"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"reason":"sick"}`, rt.bodies["POST /v2/bookings/bk 1/cancel"])

	payload, err := core.BuildBookingReschedulePayload("2026-03-02T09:00:00Z", "2026-03-02T10:00:00Z", "UTC")
	require.NoError(t, err)
	_, err = c.RescheduleBooking(context.Background(), "bk 1", payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2026-03-02T09:00:00Z","end":"2026-03-02T10:00:00Z","timeZone":"UTC"}`, rt.bodies["POST /v2/bookings/bk 1/reschedule"])
}
