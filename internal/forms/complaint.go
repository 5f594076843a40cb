package forms

import (
	"context"

	"silant-servicebook-web/internal/catalog"
	"silant-servicebook-web/internal/model"
	"silant-servicebook-web/internal/session"
)

// ComplaintFields are the user-entered values of the complaint form.
type ComplaintFields struct {
	FailureDate        string `form:"failure_date"`
	OperatingHours     string `form:"operating_hours"`
	FailureNode        string `form:"failure_node"`
	FailureDescription string `form:"failure_description"`
	RecoveryMethod     string `form:"recovery_method"`
	SparePartsUsed     string `form:"spare_parts_used"`
	RestorationDate    string `form:"restoration_date"`
}

// ComplaintForm appends a complaint to a machine.
type ComplaintForm struct {
	Fields          ComplaintFields
	FailureNodes    []model.CatalogEntry
	RecoveryMethods []model.CatalogEntry
	Error           string
	Visible         bool
}

// Open shows the form and fills both catalog selects.
func (f *ComplaintForm) Open(ctx context.Context, loader *catalog.Loader) error {
	f.Visible = true
	nodes, methods, err := loader.ComplaintCatalogs(ctx)
	if err != nil {
		return err
	}
	f.FailureNodes, f.RecoveryMethods = nodes, methods
	f.Fields.FailureNode = catalog.Default(nodes, f.Fields.FailureNode)
	f.Fields.RecoveryMethod = catalog.Default(methods, f.Fields.RecoveryMethod)
	return nil
}

// Submit sends the complaint; see MaintenanceForm.Submit.
func (f *ComplaintForm) Submit(ctx context.Context, api Creator, machineSerial string, creds session.Credentials, hooks Hooks) error {
	f.Error = ""

	_, err := api.CreateComplaint(ctx, model.ComplaintInput{
		Machine:            machineSerial,
		FailureDate:        f.Fields.FailureDate,
		OperatingHours:     f.Fields.OperatingHours,
		FailureNode:        f.Fields.FailureNode,
		FailureDescription: f.Fields.FailureDescription,
		RecoveryMethod:     f.Fields.RecoveryMethod,
		SparePartsUsed:     f.Fields.SparePartsUsed,
		RestorationDate:    f.Fields.RestorationDate,
		ServiceCompany:     creds.Username,
	})
	if err != nil {
		f.Error = errorText(err, ComplaintFailedMessage)
		f.Visible = true
		return err
	}

	hooks.fire()
	f.Close()
	return nil
}

// Close hides the form and resets the fields, keeping the catalog defaults.
func (f *ComplaintForm) Close() {
	f.Visible = false
	f.Error = ""
	f.Fields = ComplaintFields{
		FailureNode:    catalog.Default(f.FailureNodes, ""),
		RecoveryMethod: catalog.Default(f.RecoveryMethods, ""),
	}
}
