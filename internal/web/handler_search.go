package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"silant-servicebook-web/internal/mw"
	"silant-servicebook-web/internal/search"
)

type searchQuery struct {
	SerialNumber string `form:"serial_number" binding:"required"`
}

// Home shows the dashboard to signed-in users and the public search otherwise.
func (h *Handler) Home(c *gin.Context) {
	if mw.Credentials(c).Authenticated() {
		h.Dashboard(c)
		return
	}
	h.renderSearch(c, http.StatusOK, search.Result{})
}

// Search handles the public serial-number lookup.
func (h *Handler) Search(c *gin.Context) {
	if _, submitted := c.GetQuery("serial_number"); !submitted {
		h.renderSearch(c, http.StatusOK, search.Result{})
		return
	}

	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.renderSearch(c, http.StatusOK, search.Result{Error: search.EmptySerialMessage})
		return
	}

	res, err := search.Lookup(c.Request.Context(), h.api, q.SerialNumber)
	if err != nil {
		h.logFor(c).WithError(err).Warn("machine search failed")
	}
	h.renderSearch(c, http.StatusOK, res)
}

func (h *Handler) renderSearch(c *gin.Context, status int, res search.Result) {
	c.HTML(status, "search.html", searchPage{
		layout: layout{Title: "Поиск техники", User: mw.Credentials(c)},
		Result: res,
	})
}
