package forms

import (
	"context"

	"silant-servicebook-web/internal/catalog"
	"silant-servicebook-web/internal/model"
	"silant-servicebook-web/internal/session"
)

// MaintenanceFields are the user-entered values of the maintenance form.
type MaintenanceFields struct {
	ServiceType    string `form:"service_type"`
	EventDate      string `form:"event_date"`
	OperatingHours string `form:"operating_hours"`
	OrderNumber    string `form:"order_number"`
	OrderDate      string `form:"order_date"`
}

// MaintenanceForm appends a maintenance record to a machine.
type MaintenanceForm struct {
	Fields       MaintenanceFields
	ServiceTypes []model.CatalogEntry
	Error        string
	Visible      bool
}

// Open shows the form and fills the service-type select. A catalog failure leaves
// the select empty; the form still opens.
func (f *MaintenanceForm) Open(ctx context.Context, loader *catalog.Loader) error {
	f.Visible = true
	types, err := loader.ServiceTypes(ctx)
	if err != nil {
		return err
	}
	f.ServiceTypes = types
	f.Fields.ServiceType = catalog.Default(types, f.Fields.ServiceType)
	return nil
}

// Submit sends the record. On success the hooks run and the form closes with its
// transient fields cleared; on failure Error is set and the values stay in place.
func (f *MaintenanceForm) Submit(ctx context.Context, api Creator, machineSerial string, creds session.Credentials, hooks Hooks) error {
	f.Error = ""

	_, err := api.CreateMaintenance(ctx, model.MaintenanceInput{
		Machine:        machineSerial,
		ServiceType:    f.Fields.ServiceType,
		EventDate:      f.Fields.EventDate,
		OperatingHours: f.Fields.OperatingHours,
		OrderNumber:    f.Fields.OrderNumber,
		OrderDate:      f.Fields.OrderDate,
		ServiceCompany: creds.Username,
	})
	if err != nil {
		f.Error = errorText(err, MaintenanceFailedMessage)
		f.Visible = true
		return err
	}

	hooks.fire()
	f.Close()
	return nil
}

// Close hides the form and resets the fields, keeping the catalog default.
func (f *MaintenanceForm) Close() {
	f.Visible = false
	f.Error = ""
	f.Fields = MaintenanceFields{ServiceType: catalog.Default(f.ServiceTypes, "")}
}
