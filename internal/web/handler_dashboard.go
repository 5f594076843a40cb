package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"silant-servicebook-web/internal/listview"
	"silant-servicebook-web/internal/mw"
)

const dashboardPath = "/dashboard"

// Dashboard renders the machines table. Query parameters carry the filters and ordering;
// `sort` toggles a column, `reset` clears everything, `cursor` follows a server page locator.
func (h *Handler) Dashboard(c *gin.Context) {
	values := c.Request.URL.Query()
	log := h.logFor(c)

	if values.Get("reset") != "" {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}

	st, err := listview.FromValues(values)
	if err != nil {
		log.WithError(err).Debug("ignoring invalid list state")
	}

	if col := values.Get("sort"); col != "" {
		if err := st.ToggleSort(col); err != nil {
			log.WithError(err).Debug("ignoring unknown sort column")
		}
		c.Redirect(http.StatusSeeOther, st.Href(dashboardPath))
		return
	}

	view := listview.Load(c.Request.Context(), h.apiFor(c), st, values.Get("cursor"))
	if view.Err != nil {
		log.WithError(view.Err).Warn("failed to load machines")
	}

	page := dashboardPage{
		layout:       layout{Title: "Ваша техника", User: mw.Credentials(c)},
		View:         view,
		Headers:      view.Headers(dashboardPath),
		Ordering:     view.State.Ordering.String(),
		NextHref:     view.NextHref(dashboardPath),
		PreviousHref: view.PreviousHref(dashboardPath),
	}
	if view.Page != nil {
		page.Count = view.Page.Count
	}
	for _, f := range listview.FilterFields {
		page.Filters = append(page.Filters, filterInput{FilterField: f, Value: view.State.Filters.Get(f.Param)})
	}
	c.HTML(http.StatusOK, "dashboard.html", page)
}
