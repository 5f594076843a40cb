package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"silant-servicebook-web/internal/catalog"
	"silant-servicebook-web/internal/client"
	"silant-servicebook-web/internal/detail"
	"silant-servicebook-web/internal/forms"
	"silant-servicebook-web/internal/mw"
)

const (
	formMaintenance = "maintenance"
	formComplaint   = "complaint"
)

// Machine renders the detail page, optionally with one of the creation forms open.
func (h *Handler) Machine(c *gin.Context) {
	id, ok := h.machineID(c)
	if !ok {
		return
	}

	var (
		maintenance *forms.MaintenanceForm
		complaint   *forms.ComplaintForm
	)
	loader := catalog.NewLoader(h.apiFor(c))
	switch c.Query("form") {
	case formMaintenance:
		maintenance = &forms.MaintenanceForm{}
		if err := maintenance.Open(c.Request.Context(), loader); err != nil {
			h.logFor(c).WithError(err).Warn("failed to load service types")
		}
	case formComplaint:
		complaint = &forms.ComplaintForm{}
		if err := complaint.Open(c.Request.Context(), loader); err != nil {
			h.logFor(c).WithError(err).Warn("failed to load complaint catalogs")
		}
	}

	h.renderMachine(c, http.StatusOK, id, detail.ParseTab(c.Query("tab")), maintenance, complaint)
}

// CreateMaintenance appends a maintenance record and returns to the maintenance tab.
func (h *Handler) CreateMaintenance(c *gin.Context) {
	id, ok := h.machineID(c)
	if !ok {
		return
	}

	form := &forms.MaintenanceForm{}
	if err := c.ShouldBind(&form.Fields); err != nil {
		c.String(http.StatusBadRequest, "invalid request")
		return
	}

	h.submit(c, id, detail.TabMaintenance, func(ctx context.Context, api *client.Client, serial string, hooks forms.Hooks) error {
		if err := form.Submit(ctx, api, serial, api.Credentials(), hooks); err != nil {
			if openErr := form.Open(ctx, catalog.NewLoader(api)); openErr != nil {
				h.logFor(c).WithError(openErr).Warn("failed to load service types")
			}
			return err
		}
		return nil
	}, func(status int) {
		h.renderMachine(c, status, id, detail.TabMaintenance, form, nil)
	})
}

// CreateComplaint appends a complaint and returns to the complaints tab.
func (h *Handler) CreateComplaint(c *gin.Context) {
	id, ok := h.machineID(c)
	if !ok {
		return
	}

	form := &forms.ComplaintForm{}
	if err := c.ShouldBind(&form.Fields); err != nil {
		c.String(http.StatusBadRequest, "invalid request")
		return
	}

	h.submit(c, id, detail.TabComplaints, func(ctx context.Context, api *client.Client, serial string, hooks forms.Hooks) error {
		if err := form.Submit(ctx, api, serial, api.Credentials(), hooks); err != nil {
			if openErr := form.Open(ctx, catalog.NewLoader(api)); openErr != nil {
				h.logFor(c).WithError(openErr).Warn("failed to load complaint catalogs")
			}
			return err
		}
		return nil
	}, func(status int) {
		h.renderMachine(c, status, id, detail.TabComplaints, nil, form)
	})
}

type submitFunc func(ctx context.Context, api *client.Client, serial string, hooks forms.Hooks) error

// submit resolves the machine's serial number, runs the form submission and either redirects
// back to tab on success or re-renders the page with the form open.
func (h *Handler) submit(c *gin.Context, id int64, tab detail.Tab, run submitFunc, rerender func(status int)) {
	ctx := c.Request.Context()
	api := h.apiFor(c)
	log := h.logFor(c).WithField("machine_id", id)

	machine, err := api.GetMachine(ctx, id)
	if err != nil {
		log.WithError(err).Warn("failed to resolve machine for record creation")
		h.renderMachineError(c, statusFor(err))
		return
	}

	err = run(ctx, api, machine.SerialNumber, forms.Hooks{
		OnSuccess: func() {
			log.WithField("tab", tab).Info("record created")
		},
		OnClose: func() {
			c.Redirect(http.StatusSeeOther, detail.Href(id, tab))
		},
	})
	if err == nil {
		return
	}

	log.WithError(err).Warn("record creation failed")
	status := statusFor(err)
	var ve *client.ValidationError
	if errors.As(err, &ve) && ve.Rejected() {
		status = http.StatusUnprocessableEntity
	}
	rerender(status)
}

func (h *Handler) renderMachine(c *gin.Context, status int, id int64, tab detail.Tab, maintenance *forms.MaintenanceForm, complaint *forms.ComplaintForm) {
	view, err := detail.Load(c.Request.Context(), h.apiFor(c), id)
	if err != nil {
		h.logFor(c).WithError(err).WithField("machine_id", id).Warn("failed to load machine details")
		h.renderMachineError(c, statusFor(err))
		return
	}

	page := machinePage{
		layout:              layout{Title: "Машина " + view.Machine.SerialNumber, User: mw.Credentials(c)},
		ID:                  id,
		Tab:                 tab,
		View:                view,
		Maintenance:         maintenance,
		Complaint:           complaint,
		MaintenanceFormHref: detail.Href(id, detail.TabMaintenance) + "&form=" + formMaintenance,
		ComplaintFormHref:   detail.Href(id, detail.TabComplaints) + "&form=" + formComplaint,
		MaintenanceAction:   fmt.Sprintf("/machines/%d/maintenances", id),
		ComplaintAction:     fmt.Sprintf("/machines/%d/complaints", id),
		CloseHref:           detail.Href(id, tab),
		EmptyMaintenance:    detail.EmptyMaintenanceMessage,
		EmptyComplaints:     detail.EmptyComplaintsMessage,
	}
	for _, t := range detail.Tabs {
		page.Tabs = append(page.Tabs, tabLink{Title: t.Title, Href: detail.Href(id, t.Tab), Active: t.Tab == tab})
	}
	c.HTML(status, "machine.html", page)
}

func (h *Handler) renderMachineError(c *gin.Context, status int) {
	c.HTML(status, "machine.html", machinePage{
		layout: layout{Title: "Ошибка", User: mw.Credentials(c)},
		Error:  detail.ErrorMessage,
	})
}

func (h *Handler) machineID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.renderMachineError(c, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// statusFor maps an API failure onto the status of the page that reports it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, client.ErrUnauthorized):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}
