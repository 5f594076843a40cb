package parse

import (
	"fmt"
	"strings"
)

// Ordering is a single sort key as understood by the API's `ordering` parameter.
type Ordering struct {
	Field string
	Desc  bool
}

// String renders the key back into its wire form: "field", "-field" or "" when unset.
func (o Ordering) String() string {
	if o.Field == "" {
		return ""
	}
	if o.Desc {
		return "-" + o.Field
	}
	return o.Field
}

// IsZero reports whether no sort key is active.
func (o Ordering) IsZero() bool {
	return o.Field == ""
}

// ParseOrdering parses a raw `ordering` value and checks the field against allowed.
// Only one key is accepted; the list view never sorts by more than one column.
func ParseOrdering(raw string, allowed []string) (Ordering, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Ordering{}, nil
	}
	if strings.Contains(s, ",") {
		return Ordering{}, fmt.Errorf("multiple sort keys are not supported: %q", raw)
	}

	o := Ordering{Field: s}
	if strings.HasPrefix(s, "-") {
		o = Ordering{Field: strings.TrimPrefix(s, "-"), Desc: true}
	}
	if o.Field == "" {
		return Ordering{}, fmt.Errorf("empty sort field: %q", raw)
	}

	for _, field := range allowed {
		if field == o.Field {
			return o, nil
		}
	}
	return Ordering{}, fmt.Errorf("unknown sort field %q", o.Field)
}
