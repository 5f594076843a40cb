package web

import (
	"embed"
	"html/template"

	"silant-servicebook-web/internal/detail"
	"silant-servicebook-web/internal/forms"
	"silant-servicebook-web/internal/listview"
	"silant-servicebook-web/internal/search"
	"silant-servicebook-web/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

type layout struct {
	Title string
	User  session.Credentials
}

type searchPage struct {
	layout
	Result search.Result
}

type loginPage struct {
	layout
	Username string
	Error    string
}

type filterInput struct {
	listview.FilterField
	Value string
}

type dashboardPage struct {
	layout
	View         *listview.View
	Count        int
	Headers      []listview.Header
	Filters      []filterInput
	Ordering     string
	NextHref     string
	PreviousHref string
}

type tabLink struct {
	Title  string
	Href   string
	Active bool
}

type machinePage struct {
	layout
	ID                  int64
	Tab                 detail.Tab
	Tabs                []tabLink
	View                *detail.View
	Error               string
	Maintenance         *forms.MaintenanceForm
	Complaint           *forms.ComplaintForm
	MaintenanceFormHref string
	ComplaintFormHref   string
	MaintenanceAction   string
	ComplaintAction     string
	CloseHref           string
	EmptyMaintenance    string
	EmptyComplaints     string
}

type errorPage struct {
	layout
	Error string
}
