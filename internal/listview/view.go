package listview

import (
	"context"
	"errors"
	"net/url"

	"silant-servicebook-web/internal/model"
)

// Messages shown in place of the table.
const (
	EmptyMessage  = "Техника не найдена."
	FailedMessage = "Ошибка загрузки данных."
)

// Status of a loaded list.
type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusFailed
)

// Fetcher is the subset of the API client the list view needs.
type Fetcher interface {
	ListMachines(ctx context.Context, query url.Values) (*model.Page[model.Machine], error)
	FollowMachines(ctx context.Context, locator string) (*model.Page[model.Machine], error)
}

// Header is one rendered column header.
type Header struct {
	Column
	Indicator string
	Href      string
}

// View is a loaded list page ready for rendering.
type View struct {
	State   State
	Page    *model.Page[model.Machine]
	Status  Status
	Message string
	Err     error
}

// Load fetches a page. A non-empty cursor is followed as-is; otherwise the first page for st is
// requested. When following a cursor the returned state is rebuilt from the cursor itself.
func Load(ctx context.Context, f Fetcher, st State, cursor string) *View {
	v := &View{State: st}

	var (
		page *model.Page[model.Machine]
		err  error
	)
	if cursor != "" {
		if fromCursor, perr := FromLocator(cursor); !errors.Is(perr, ErrInvalidLocator) {
			v.State = fromCursor
		}
		page, err = f.FollowMachines(ctx, cursor)
	} else {
		var query url.Values
		query, err = st.Query()
		if err == nil {
			page, err = f.ListMachines(ctx, query)
		}
	}

	if err != nil {
		v.Status = StatusFailed
		v.Message = FailedMessage
		v.Err = err
		return v
	}

	v.Page = page
	if page == nil || len(page.Results) == 0 {
		v.Status = StatusEmpty
		v.Message = EmptyMessage
	}
	return v
}

// Failed reports whether the page could not be loaded.
func (v *View) Failed() bool {
	return v.Status == StatusFailed
}

// Machines returns the rows of the loaded page.
func (v *View) Machines() []model.Machine {
	if v.Page == nil {
		return nil
	}
	return v.Page.Results
}

// Headers returns the sortable headers with their direction indicator and toggle link.
func (v *View) Headers(path string) []Header {
	headers := make([]Header, len(Sortable))
	for i, col := range Sortable {
		indicator := "⇅"
		if !v.State.Ordering.IsZero() && v.State.Ordering.Field == col.Key {
			indicator = "▲"
			if v.State.Ordering.Desc {
				indicator = "▼"
			}
		}
		headers[i] = Header{
			Column:    col,
			Indicator: indicator,
			Href:      v.State.Href(path) + "&sort=" + url.QueryEscape(col.Key),
		}
	}
	return headers
}

// NextHref returns the link for the next page, or "" when there is none.
func (v *View) NextHref(path string) string {
	if v.Status != StatusOK || !v.Page.HasNext() {
		return ""
	}
	return path + "?cursor=" + url.QueryEscape(v.Page.Next)
}

// PreviousHref returns the link for the previous page, or "" when there is none.
func (v *View) PreviousHref(path string) string {
	if v.Status != StatusOK || !v.Page.HasPrevious() {
		return ""
	}
	return path + "?cursor=" + url.QueryEscape(v.Page.Previous)
}
