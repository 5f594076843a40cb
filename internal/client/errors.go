package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForeignLocator is returned when a page locator points outside the API host.
	ErrForeignLocator = errors.New("page locator does not belong to the api host")
)

// StatusError is a non-2xx response that carried no usable validation payload.
type StatusError struct {
	Method   string
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Endpoint, e.Code)
}

// Unwrap maps well-known statuses onto the package sentinels.
func (e *StatusError) Unwrap() error {
	return sentinelFor(e.Code)
}

func sentinelFor(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

// FieldErrors are the messages the server attached to one field.
type FieldErrors struct {
	Field    string
	Messages []string
}

// ValidationError is a 4xx response whose body carried messages for the user.
// Code 400 means the submitted fields were rejected.
type ValidationError struct {
	Code   int
	Fields []FieldErrors
}

// Message flattens every field's messages, in field-name order, joined with ". ".
func (e *ValidationError) Message() string {
	var parts []string
	for _, f := range e.Fields {
		parts = append(parts, f.Messages...)
	}
	return strings.Join(parts, ". ")
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rejected with status %d: %s", e.Code, e.Message())
}

// Unwrap maps well-known statuses onto the package sentinels.
func (e *ValidationError) Unwrap() error {
	return sentinelFor(e.Code)
}

// Rejected reports whether the server refused the submitted fields.
func (e *ValidationError) Rejected() bool {
	return e.Code == http.StatusBadRequest
}

func classify(method, endpoint string, code int, body []byte) error {
	if code >= 400 && code < 500 {
		if ve := parseValidation(body); ve != nil {
			ve.Code = code
			return ve
		}
	}
	return &StatusError{Method: method, Endpoint: endpoint, Code: code, Body: string(body)}
}

// parseValidation understands `{"field": ["msg", ...]}`, `["msg", ...]` and `"msg"` payloads.
// It returns nil when the body holds no messages.
func parseValidation(body []byte) *ValidationError {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err == nil {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		ve := &ValidationError{}
		for _, name := range names {
			if msgs := flatten(fields[name]); len(msgs) > 0 {
				ve.Fields = append(ve.Fields, FieldErrors{Field: name, Messages: msgs})
			}
		}
		if len(ve.Fields) == 0 {
			return nil
		}
		return ve
	}

	if msgs := flatten(trimmed); len(msgs) > 0 {
		return &ValidationError{Fields: []FieldErrors{{Field: "non_field_errors", Messages: msgs}}}
	}
	return nil
}

// flatten collects every string found in a JSON value, depth first.
func flatten(raw json.RawMessage) []string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	var out []string
	var walk func(any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			if t != "" {
				out = append(out, t)
			}
		case []any:
			for _, item := range t {
				walk(item)
			}
		case map[string]any:
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(t[k])
			}
		}
	}
	walk(v)
	return out
}
