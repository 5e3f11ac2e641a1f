package models

import (
	"encoding/json"
	"strconv"
)

// PropertyBag is the open-ended property map the API attaches to threads.
// Values arrive wrapped and loosely typed: the payload may be a real number,
// a stringified integer, an identity key, or a stringified JSON array of
// identity keys. The accessors parse once and report success explicitly so
// callers never pass raw strings around.
type PropertyBag map[string]PropertyValue

// PropertyValue is the wrapped value record: {"$type": ..., "$value": ...}.
type PropertyValue struct {
	Type  string      `json:"$type,omitempty"`
	Value interface{} `json:"$value"`
}

// Get returns the wrapped value for key.
func (b PropertyBag) Get(key string) (PropertyValue, bool) {
	if b == nil {
		return PropertyValue{}, false
	}
	v, ok := b[key]
	return v, ok
}

// AsInt interprets the payload as an integer. Numeric JSON values and
// stringified integers both succeed.
func (v PropertyValue) AsInt() (int, bool) {
	switch p := v.Value.(type) {
	case float64:
		return int(p), true
	case int:
		return p, true
	case string:
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsString interprets the payload as a plain string, typically an identity
// key into the thread's identities map.
func (v PropertyValue) AsString() (string, bool) {
	s, ok := v.Value.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// AsStringList interprets the payload as a JSON-encoded array of strings.
// A malformed payload yields ok=false; parse errors are never propagated.
func (v PropertyValue) AsStringList() ([]string, bool) {
	s, ok := v.Value.(string)
	if !ok || s == "" {
		return nil, false
	}
	var keys []string
	if err := json.Unmarshal([]byte(s), &keys); err != nil {
		return nil, false
	}
	if len(keys) == 0 {
		return nil, false
	}
	return keys, true
}
