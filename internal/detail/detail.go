package detail

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"silant-servicebook-web/internal/model"
)

// Messages shown by the detail page.
const (
	ErrorMessage            = "Ошибка загрузки данных. Возможно, у вас нет доступа к этой машине."
	EmptyMaintenanceMessage = "Записей о ТО нет"
	EmptyComplaintsMessage  = "Рекламаций нет"
)

// Tab is a section of the detail page.
type Tab string

const (
	TabInfo        Tab = "info"
	TabMaintenance Tab = "maintenance"
	TabComplaints  Tab = "complaints"
)

// Tabs lists the sections in display order with their titles.
var Tabs = []struct {
	Tab   Tab
	Title string
}{
	{TabInfo, "Общая инфо"},
	{TabMaintenance, "ТО"},
	{TabComplaints, "Рекламации"},
}

// ParseTab maps a query value onto a tab; anything unknown is the info tab.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabMaintenance, TabComplaints:
		return Tab(s)
	}
	return TabInfo
}

// Source is the subset of the API client the detail page needs.
type Source interface {
	GetMachine(ctx context.Context, id int64) (*model.Machine, error)
	ListMaintenances(ctx context.Context, serial string) (model.List[model.Maintenance], error)
	ListComplaints(ctx context.Context, serial string) (model.List[model.Complaint], error)
}

// View is a fully loaded detail page.
type View struct {
	Machine      model.Machine
	Maintenances []model.Maintenance
	Complaints   []model.Complaint
}

// Load fetches the machine, then both record lists in parallel by its serial number.
// Any failure fails the whole load.
func Load(ctx context.Context, src Source, id int64) (*View, error) {
	machine, err := src.GetMachine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load machine %d: %w", id, err)
	}

	v := &View{Machine: *machine}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := src.ListMaintenances(gctx, machine.SerialNumber)
		if err != nil {
			return fmt.Errorf("failed to load maintenances: %w", err)
		}
		v.Maintenances = list
		return nil
	})
	g.Go(func() error {
		list, err := src.ListComplaints(gctx, machine.SerialNumber)
		if err != nil {
			return fmt.Errorf("failed to load complaints: %w", err)
		}
		v.Complaints = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return v, nil
}

// InfoRows is the fixed label/value list of the info tab.
func (v *View) InfoRows() []model.Field {
	return v.Machine.InfoFields()
}

// Href is the detail page address for the given tab.
func Href(id int64, tab Tab) string {
	return fmt.Sprintf("/machines/%d?tab=%s", id, url.QueryEscape(string(tab)))
}
