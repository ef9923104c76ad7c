package core

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Remote payloads are loosely shaped: ids arrive as numbers or strings, optional
// arrays may be missing or null, and list entries may not even be objects.
// Every "is this field present and of the right shape" check lives here.

// ID is a remote identifier that may be a JSON number or a JSON string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// asObject decodes raw as a JSON object. It reports false for arrays, scalars, null
// and invalid JSON.
func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// stringField returns the first of keys holding a JSON string.
func stringField(obj map[string]json.RawMessage, keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s, true
		}
	}
	return "", false
}

// textField is like stringField but also renders numbers and booleans, for display.
func textField(obj map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || bytes.Equal(v, []byte("null")) {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
		var scalar any
		if err := json.Unmarshal(v, &scalar); err == nil {
			switch scalar.(type) {
			case float64, bool:
				return string(v)
			}
		}
	}
	return ""
}

// idField decodes the first present key as an ID.
func idField(obj map[string]json.RawMessage, keys ...string) ID {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok {
			continue
		}
		var id ID
		if err := json.Unmarshal(v, &id); err == nil && id != "" {
			return id
		}
	}
	return ""
}

// arrayField returns the entries of obj[key] when it is a JSON array, else nil.
func arrayField(obj map[string]json.RawMessage, key string) []json.RawMessage {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil
	}
	return items
}

// entryString reads a string discriminator from a list entry. Entries that are not
// objects, or lack the key, or hold a non-string value report false.
func entryString(raw json.RawMessage, key string) (string, bool) {
	obj, ok := asObject(raw)
	if !ok {
		return "", false
	}
	return stringField(obj, key)
}
