package calcom

import (
	"encoding/json"
	"sort"
	"strings"
)

// Cal.com wraps most payloads in an envelope ({"status": "success", "data": ...}), but
// the exact nesting differs between endpoints and API versions. These helpers are the
// only place that probes a response's shape.

// coerceNested follows path through nested objects. It reports false as soon as a
// segment is missing or the current value is not an object.
func coerceNested(raw json.RawMessage, path ...string) (json.RawMessage, bool) {
	current := raw
	for _, segment := range path {
		obj, ok := object(current)
		if !ok {
			return nil, false
		}
		next, ok := obj[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// coerceArray finds the list in a response: data.<key>, then data, then the root
// itself. Anything else is an empty list.
func coerceArray(raw json.RawMessage, key string) []json.RawMessage {
	candidates := [][]string{{"data", key}, {"data"}, {}}
	for _, path := range candidates {
		v, ok := coerceNested(raw, path...)
		if !ok {
			continue
		}
		if items, ok := array(v); ok {
			return items
		}
	}
	return []json.RawMessage{}
}

// coerceObject finds the single resource in a response: data.<key>, then data, then
// the root.
func coerceObject(raw json.RawMessage, key string) json.RawMessage {
	for _, path := range [][]string{{"data", key}, {"data"}} {
		v, ok := coerceNested(raw, path...)
		if !ok {
			continue
		}
		if _, ok := object(v); ok {
			return v
		}
	}
	return raw
}

func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func array(raw json.RawMessage) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

// errorMessage pulls a human-readable message out of an error body: a top-level
// "message", a top-level "error" string, or "error.message".
func errorMessage(raw json.RawMessage) (string, bool) {
	obj, ok := object(raw)
	if !ok {
		return "", false
	}
	if s, ok := nonBlank(obj["message"]); ok {
		return s, true
	}
	if s, ok := nonBlank(obj["error"]); ok {
		return s, true
	}
	if nested, ok := coerceNested(raw, "error", "message"); ok {
		if s, ok := nonBlank(nested); ok {
			return s, true
		}
	}
	return "", false
}

func nonBlank(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// SlotDay is the free start times on one date.
type SlotDay struct {
	Date   string
	Starts []string
}

// GroupSlots reads a slots response as dates mapped to lists of slots, where a slot
// is either a plain string or an object with a "start" (or older "time") field.
// Entries that are not lists are ignored. It reports false when the response
// holds no object at all.
func GroupSlots(raw json.RawMessage) ([]SlotDay, bool) {
	obj, ok := object(coerceObject(raw, "slots"))
	if !ok {
		return nil, false
	}

	dates := make([]string, 0, len(obj))
	for k := range obj {
		dates = append(dates, k)
	}
	sort.Strings(dates)

	var days []SlotDay
	for _, date := range dates {
		items, ok := array(obj[date])
		if !ok {
			continue
		}
		day := SlotDay{Date: date}
		for _, item := range items {
			if s, ok := nonBlank(item); ok {
				day.Starts = append(day.Starts, s)
				continue
			}
			for _, key := range []string{"start", "time"} {
				if v, ok := coerceNested(item, key); ok {
					if s, ok := nonBlank(v); ok {
						day.Starts = append(day.Starts, s)
						break
					}
				}
			}
		}
		days = append(days, day)
	}
	return days, true
}
