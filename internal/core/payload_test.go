package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raws(t *testing.T, entries ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		require.True(t, json.Valid([]byte(e)), e)
		out = append(out, json.RawMessage(e))
	}
	return out
}

func strs(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, string(item))
	}
	return out
}

func TestMergeOverrideSet_ReplacesSameDate(t *testing.T) {
	s := Schedule{
		Availability: raws(t, `{"day":"mon","startTime":"08:00","endTime":"16:00"}`),
		Overrides: raws(t,
			`{"date":"2026-03-02","startTime":"10:00","endTime":"11:00"}`,
			`{"date":"2026-03-03","startTime":"13:00","endTime":"14:00"}`,
		),
	}

	patch := MergeOverrideSet(s, OverrideWindow{Date: "2026-03-02", Start: "09:00", End: "12:00", TimeZone: "Europe/Oslo"})

	require.Len(t, patch.Overrides, 2)
	assert.JSONEq(t, `{"date":"2026-03-03","startTime":"13:00","endTime":"14:00"}`, string(patch.Overrides[0]))
	assert.JSONEq(t, `{"date":"2026-03-02","startTime":"09:00","endTime":"12:00","timeZone":"Europe/Oslo"}`, string(patch.Overrides[1]))
	assert.Equal(t, strs(s.Availability), strs(patch.Availability))
}

func TestMergeOverrideSet_EmptySchedule(t *testing.T) {
	patch := MergeOverrideSet(Schedule{}, OverrideWindow{Date: "2026-03-02", Start: "09:00", End: "12:00", TimeZone: "UTC"})

	b, err := json.Marshal(patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"availability":[],"overrides":[{"date":"2026-03-02","startTime":"09:00","endTime":"12:00","timeZone":"UTC"}]}`, string(b))
}

func TestMergeOverrideSet_KeepsMalformedEntries(t *testing.T) {
	s := Schedule{
		Overrides: raws(t, `"junk"`, `{"date":20260302}`, `{"date":"2026-03-02","extra":true}`, `null`),
	}

	patch := MergeOverrideSet(s, OverrideWindow{Date: "2026-03-02", Start: "09:00", End: "10:00"})

	require.Len(t, patch.Overrides, 4)
	assert.Equal(t, `"junk"`, string(patch.Overrides[0]))
	assert.Equal(t, `{"date":20260302}`, string(patch.Overrides[1]))
	assert.Equal(t, `null`, string(patch.Overrides[2]))
	assert.JSONEq(t, `{"date":"2026-03-02","startTime":"09:00","endTime":"10:00"}`, string(patch.Overrides[3]))
}

func TestMergeOverrideClear(t *testing.T) {
	s := Schedule{
		Availability: raws(t, `{"day":"fri","startTime":"09:00","endTime":"17:00"}`),
		Overrides: raws(t,
			`{"date":"2026-03-02","startTime":"10:00","endTime":"11:00"}`,
			`{"date":"2026-03-03","startTime":"13:00","endTime":"14:00"}`,
		),
	}

	t.Run("removes matching date", func(t *testing.T) {
		patch := MergeOverrideClear(s, "2026-03-02")
		require.Len(t, patch.Overrides, 1)
		assert.Equal(t, string(s.Overrides[1]), string(patch.Overrides[0]))
		assert.Equal(t, strs(s.Availability), strs(patch.Availability))
	})

	t.Run("no match is a no-op", func(t *testing.T) {
		patch := MergeOverrideClear(s, "2027-01-01")
		assert.Equal(t, strs(s.Overrides), strs(patch.Overrides))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := MergeOverrideClear(s, "2026-03-02")
		twice := MergeOverrideClear(Schedule{Availability: once.Availability, Overrides: once.Overrides}, "2026-03-02")
		assert.Equal(t, strs(once.Overrides), strs(twice.Overrides))
	})
}

func TestMergeWindowSet(t *testing.T) {
	s := Schedule{
		Availability: raws(t,
			`{"day":"mon","startTime":"08:00","endTime":"09:00"}`,
			`{"day":"tue","startTime":"10:00","endTime":"11:00"}`,
		),
		Overrides: raws(t, `{"date":"2026-03-02","startTime":"10:00","endTime":"11:00"}`),
	}

	patch := MergeWindowSet(s, AvailabilityWindow{Day: Monday, Start: "09:00", End: "12:00", TimeZone: "Europe/Oslo"})

	require.Len(t, patch.Availability, 2)
	var mons int
	for _, raw := range patch.Availability {
		w, ok := DecodeWindow(raw)
		require.True(t, ok)
		if w.Day == "mon" {
			mons++
			assert.Equal(t, "09:00", w.StartTime)
			assert.Equal(t, "12:00", w.EndTime)
			assert.Equal(t, "Europe/Oslo", w.TimeZone)
		}
	}
	assert.Equal(t, 1, mons)
	assert.Equal(t, string(s.Availability[1]), string(patch.Availability[0]))
	assert.Equal(t, strs(s.Overrides), strs(patch.Overrides))
}

func TestMergeDoesNotAliasInput(t *testing.T) {
	s := Schedule{
		Availability: raws(t, `{"day":"tue","startTime":"10:00","endTime":"11:00"}`),
	}
	before := strs(s.Availability)

	_ = MergeWindowSet(s, AvailabilityWindow{Day: Monday, Start: "09:00", End: "12:00"})

	assert.Equal(t, before, strs(s.Availability))
}

func TestFilterOverrides(t *testing.T) {
	s := Schedule{
		Overrides: raws(t,
			`{"date":"2026-02-28"}`,
			`{"date":"2026-03-01"}`,
			`{"date":"2026-03-15"}`,
			`{"nodate":true}`,
			`{"date":"2026-04-01"}`,
		),
	}

	got := FilterOverrides(s, DateRange{From: "2026-03-01", To: "2026-03-31"})
	assert.Equal(t, []string{`{"date":"2026-03-01"}`, `{"date":"2026-03-15"}`}, strs(got))

	all := FilterOverrides(s, DateRange{})
	assert.Len(t, all, 4)
}

func TestBuildBookingCancelPayload(t *testing.T) {
	b, err := json.Marshal(BuildBookingCancelPayload(""))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))

	b, err = json.Marshal(BuildBookingCancelPayload("double booked"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"reason":"double booked"}`, string(b))
}

func TestBuildBookingReschedulePayload(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "ordered", start: "2026-03-02T09:00:00+01:00", end: "2026-03-02T10:00:00+01:00"},
		{name: "equal", start: "2026-03-02T09:00:00Z", end: "2026-03-02T09:00:00Z", wantErr: true},
		{name: "reversed", start: "2026-03-02T10:00:00Z", end: "2026-03-02T09:00:00Z", wantErr: true},
		// Lexically ordered but the same instant once offsets are applied.
		{name: "same instant different offsets", start: "2026-03-02T09:00:00+01:00", end: "2026-03-02T08:00:00Z", wantErr: true},
		{name: "offsets ordered", start: "2026-03-02T10:00:00+02:00", end: "2026-03-02T09:30:00+01:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildBookingReschedulePayload(tt.start, tt.end, "Europe/Oslo")
			if tt.wantErr {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ReschedulePayload{Start: tt.start, End: tt.end, TimeZone: "Europe/Oslo"}, got)
		})
	}
}

func TestValidateInstantRange(t *testing.T) {
	assert.NoError(t, ValidateInstantRange("2026-03-02T00:00:00Z", "2026-03-09T00:00:00Z"))

	err := ValidateInstantRange("2026-03-09T00:00:00Z", "2026-03-02T00:00:00Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--end")

	assert.Error(t, ValidateInstantRange("soon", "2026-03-02T00:00:00Z"))
}
