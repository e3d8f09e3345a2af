// Package formfield decodes structured values that arrive as JSON text inside
// multipart form fields.
package formfield

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is either a decoded value or the raw text that failed to decode.
// It is stored as the JSON value when parsed and as a JSON string otherwise.
type Field[T any] struct {
	value  T
	raw    string
	parsed bool
}

// Of wraps an already decoded value.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, parsed: true}
}

// RawText wraps text that could not be decoded.
func RawText[T any](raw string) Field[T] {
	return Field[T]{raw: raw}
}

// Decode parses raw as JSON into T. On failure the exact input is kept as Raw.
func Decode[T any](raw string) Field[T] {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Field[T]{raw: raw}
	}
	return Field[T]{value: v, raw: raw, parsed: true}
}

// DecodeWith parses raw over a copy of base, so keys absent from raw keep base's values.
func DecodeWith[T any](raw string, base T) Field[T] {
	v := base
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Field[T]{raw: raw}
	}
	return Field[T]{value: v, raw: raw, parsed: true}
}

// Parsed returns the decoded value and whether decoding succeeded.
func (f Field[T]) Parsed() (T, bool) {
	return f.value, f.parsed
}

// Raw returns the original input text.
func (f Field[T]) Raw() string {
	return f.raw
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.parsed {
		return json.Marshal(f.value)
	}
	return json.Marshal(f.raw)
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		// a plain string may itself be the serialized object
		*f = Decode[T](s)
		return nil
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		*f = Field[T]{raw: string(trimmed)}
		return nil
	}
	*f = Field[T]{value: v, parsed: true}
	return nil
}

// Form is the subset of a multipart form the decoders read from.
type Form interface {
	GetPostForm(key string) (string, bool)
}

// Lookup decodes key from form. ok is false when the key was not sent.
func Lookup[T any](form Form, key string) (Field[T], bool) {
	raw, ok := form.GetPostForm(key)
	if !ok {
		return Field[T]{}, false
	}
	return Decode[T](strings.TrimSpace(raw)), true
}

// LookupWith is Lookup with defaults, see DecodeWith.
func LookupWith[T any](form Form, key string, base T) (Field[T], bool) {
	raw, ok := form.GetPostForm(key)
	if !ok {
		return Field[T]{}, false
	}
	return DecodeWith(strings.TrimSpace(raw), base), true
}
