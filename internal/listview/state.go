package listview

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/form"

	"silant-servicebook-web/internal/parse"
)

// Query parameter names understood by the machines endpoint.
const (
	ParamTechniqueModel    = "technique_model__name__icontains"
	ParamEngineModel       = "engine_model__name__icontains"
	ParamTransmissionModel = "transmission_model__name__icontains"
	ParamDriveAxleModel    = "drive_axle_model__name__icontains"
	ParamSteeringAxleModel = "steering_axle_model__name__icontains"
	ParamOrdering          = "ordering"
)

var (
	encoder = form.NewEncoder()
	decoder = form.NewDecoder()
)

// Filters holds the case-insensitive substring filters. An empty value means "no filter".
type Filters struct {
	TechniqueModel    string `form:"technique_model__name__icontains"`
	EngineModel       string `form:"engine_model__name__icontains"`
	TransmissionModel string `form:"transmission_model__name__icontains"`
	DriveAxleModel    string `form:"drive_axle_model__name__icontains"`
	SteeringAxleModel string `form:"steering_axle_model__name__icontains"`
}

// Get returns the filter value for a query parameter name.
func (f Filters) Get(param string) string {
	switch param {
	case ParamTechniqueModel:
		return f.TechniqueModel
	case ParamEngineModel:
		return f.EngineModel
	case ParamTransmissionModel:
		return f.TransmissionModel
	case ParamDriveAxleModel:
		return f.DriveAxleModel
	case ParamSteeringAxleModel:
		return f.SteeringAxleModel
	}
	return ""
}

// State is the filter and sort state of the machines table.
type State struct {
	Filters  Filters
	Ordering parse.Ordering
}

// ToggleSort applies a header click. A new column sorts ascending; the active ascending column flips
// to descending; the active descending column returns to ascending.
func (s *State) ToggleSort(key string) error {
	if _, err := parse.ParseOrdering(key, SortKeys()); err != nil {
		return err
	}
	if s.Ordering.Field == key && !s.Ordering.Desc {
		s.Ordering = parse.Ordering{Field: key, Desc: true}
		return nil
	}
	s.Ordering = parse.Ordering{Field: key}
	return nil
}

// Reset clears every filter and the sort key.
func (s *State) Reset() {
	*s = State{}
}

// Query builds the first-page request parameters: all five filters, empty ones included, plus ordering.
func (s State) Query() (url.Values, error) {
	values, err := encoder.Encode(s.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filters: %w", err)
	}
	values.Set(ParamOrdering, s.Ordering.String())
	return values, nil
}

// FromValues reads the state from page query parameters.
// An unknown ordering is reported alongside the filters that did decode.
func FromValues(values url.Values) (State, error) {
	var st State
	if err := decoder.Decode(&st.Filters, values); err != nil {
		return State{}, fmt.Errorf("failed to decode filters: %w", err)
	}
	ordering, err := parse.ParseOrdering(values.Get(ParamOrdering), SortKeys())
	if err != nil {
		return st, err
	}
	st.Ordering = ordering
	return st, nil
}

// ErrInvalidLocator is returned when a page locator is not a URL.
var ErrInvalidLocator = errors.New("invalid page locator")

// FromLocator reconstructs the state encoded in a server-issued page locator.
// Like FromValues it returns the filters it could read even when the ordering is unknown.
func FromLocator(locator string) (State, error) {
	u, err := url.Parse(locator)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidLocator, err)
	}
	return FromValues(u.Query())
}

// Href renders the dashboard address for this state.
func (s State) Href(path string) string {
	values, err := s.Query()
	if err != nil {
		return path
	}
	return path + "?" + values.Encode()
}
