package redact

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

// ParseContainer decodes s and returns the result when it is a JSON object or
// array. Scalars, null, malformed input and trailing data all report false.
//
// Numbers are decoded as json.Number so that re-encoding does not change
// their textual form.
func ParseContainer(s string) (any, bool) {
	trimmed := strings.TrimLeft(s, " \t\r\n")
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}

	switch v.(type) {
	case map[string]any, []any:
		return v, true
	default:
		return nil, false
	}
}

// encode serializes v as compact JSON without HTML escaping, matching what a
// producer of string-encoded payloads typically emits.
func encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// roundTrip converts an arbitrary Go value into its generic JSON form.
func roundTrip(v any) (any, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	return out, true
}
