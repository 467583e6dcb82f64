package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FieldError is a client input problem tied to one payload field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func missingField(key string) *FieldError {
	return &FieldError{Field: key, Message: "Missing required field: " + key}
}

func invalidDate(key string) *FieldError {
	return &FieldError{Field: key, Message: fmt.Sprintf("Invalid %s format. Use YYYY-MM-DD.", key)}
}

func invalidType(key, want string) *FieldError {
	return &FieldError{Field: key, Message: fmt.Sprintf("Invalid %s: expected %s", key, want)}
}

// Payload is a decoded JSON object body. Each accessor applies the presence
// rule for its field: a key that is absent leaves the current value alone, a
// key sent as null (or "" for dates and numbers) clears it, and a key with a
// value overwrites it.
type Payload map[string]json.RawMessage

// ParsePayload decodes a JSON object from r.
func ParsePayload(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("invalid JSON body: expected an object")
	}
	return p, nil
}

// Has reports whether key was sent, whatever its value.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Payload) isNull(key string) bool {
	raw, ok := p[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// str decodes key as a string. ok is false when the value is not a string.
func (p Payload) str(key string) (s string, ok bool) {
	if err := json.Unmarshal(p[key], &s); err != nil {
		return "", false
	}
	return s, true
}

// RequiredString returns a non-empty string or a "Missing required field"
// error when the key is absent, null or blank.
func (p Payload) RequiredString(key string) (string, error) {
	if !p.Has(key) || p.isNull(key) {
		return "", missingField(key)
	}
	s, ok := p.str(key)
	if !ok {
		return "", invalidType(key, "string")
	}
	if strings.TrimSpace(s) == "" {
		return "", missingField(key)
	}
	return s, nil
}

// NonEmptyStringOr merges a required column: absent keeps cur, a value
// replaces it, null or blank is rejected.
func (p Payload) NonEmptyStringOr(key, cur string) (string, error) {
	if !p.Has(key) {
		return cur, nil
	}
	if p.isNull(key) {
		return "", &FieldError{Field: key, Message: key + " cannot be empty"}
	}
	s, ok := p.str(key)
	if !ok {
		return "", invalidType(key, "string")
	}
	if strings.TrimSpace(s) == "" {
		return "", &FieldError{Field: key, Message: key + " cannot be empty"}
	}
	return s, nil
}

// StringOr merges a nullable text column.
func (p Payload) StringOr(key string, cur *string) (*string, error) {
	if !p.Has(key) {
		return cur, nil
	}
	if p.isNull(key) {
		return nil, nil
	}
	s, ok := p.str(key)
	if !ok {
		return nil, invalidType(key, "string")
	}
	return &s, nil
}

// NameOr returns the string sent for key, or fallback when the key is absent
// or null. Unlike StringOr an empty string is returned as is so callers can
// reject it.
func (p Payload) NameOr(key, fallback string) (string, error) {
	if !p.Has(key) || p.isNull(key) {
		return fallback, nil
	}
	s, ok := p.str(key)
	if !ok {
		return "", invalidType(key, "string")
	}
	return s, nil
}

// Int64Or merges a nullable integer column. Numeric strings are accepted.
func (p Payload) Int64Or(key string, cur *int64) (*int64, error) {
	if !p.Has(key) {
		return cur, nil
	}
	if p.isNull(key) {
		return nil, nil
	}
	raw := p[key]
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n, nil
	}
	if s, ok := p.str(key); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &v, nil
		}
	}
	return nil, invalidType(key, "integer")
}

// IntOr is Int64Or for int columns.
func (p Payload) IntOr(key string, cur *int) (*int, error) {
	var cur64 *int64
	if cur != nil {
		v := int64(*cur)
		cur64 = &v
	}
	n, err := p.Int64Or(key, cur64)
	if err != nil || n == nil {
		return nil, err
	}
	v := int(*n)
	return &v, nil
}

// DateOr merges a nullable date column: absent keeps cur, null or "" clears
// it, and anything else must parse as YYYY-MM-DD.
func (p Payload) DateOr(key string, cur *Date) (*Date, error) {
	if !p.Has(key) {
		return cur, nil
	}
	if p.isNull(key) {
		return nil, nil
	}
	s, ok := p.str(key)
	if !ok {
		return nil, invalidDate(key)
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, invalidDate(key)
	}
	return &d, nil
}

// stringField binds a payload key to a nullable text column.
type stringField struct {
	key string
	dst **string
}

func mergeStrings(p Payload, fields []stringField) error {
	for _, f := range fields {
		v, err := p.StringOr(f.key, *f.dst)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
