package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is one cursor-paginated slice of a server collection.
// Next and Previous are opaque locators; an empty string means there is no such page.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// HasNext reports whether the server provided a next-page locator.
func (p *Page[T]) HasNext() bool { return p != nil && p.Next != "" }

// HasPrevious reports whether the server provided a previous-page locator.
func (p *Page[T]) HasPrevious() bool { return p != nil && p.Previous != "" }

// List is a plain collection that the server may send either bare or wrapped in a page envelope.
type List[T any] []T

// UnmarshalJSON accepts both `[...]` and `{"results": [...], ...}`.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = List[T]{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
	case '{':
		var page Page[T]
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return err
		}
		*l = page.Results
	default:
		return fmt.Errorf("unexpected list payload starting with %q", trimmed[0])
	}

	if *l == nil {
		*l = List[T]{}
	}
	return nil
}
