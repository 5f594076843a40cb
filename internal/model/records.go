package model

// Maintenance is a logged scheduled-service event for a machine.
type Maintenance struct {
	ID             int64  `json:"id"`
	Machine        string `json:"machine"`
	ServiceType    string `json:"service_type"`
	EventDate      string `json:"event_date"`
	OperatingHours int    `json:"operating_hours"`
	OrderNumber    string `json:"order_number"`
	OrderDate      string `json:"order_date"`
	ServiceCompany string `json:"service_company"`
}

// Complaint is a logged failure/repair event. Downtime is computed by the server, in days.
type Complaint struct {
	ID                 int64  `json:"id"`
	Machine            string `json:"machine"`
	FailureDate        string `json:"failure_date"`
	OperatingHours     int    `json:"operating_hours"`
	FailureNode        string `json:"failure_node"`
	FailureDescription string `json:"failure_description"`
	RecoveryMethod     string `json:"recovery_method"`
	SparePartsUsed     string `json:"spare_parts_used"`
	RestorationDate    string `json:"restoration_date"`
	ServiceCompany     string `json:"service_company"`
	Downtime           int    `json:"downtime"`
}

// CatalogEntry is one row of a server-owned reference list.
type CatalogEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MaintenanceInput is the creation payload for a maintenance record.
// Machine carries the machine's serial number; the API resolves machines by it.
type MaintenanceInput struct {
	Machine        string `json:"machine"`
	ServiceType    string `json:"service_type"`
	EventDate      string `json:"event_date"`
	OperatingHours string `json:"operating_hours"`
	OrderNumber    string `json:"order_number"`
	OrderDate      string `json:"order_date"`
	ServiceCompany string `json:"service_company"`
}

// ComplaintInput is the creation payload for a complaint record.
type ComplaintInput struct {
	Machine            string `json:"machine"`
	FailureDate        string `json:"failure_date"`
	OperatingHours     string `json:"operating_hours"`
	FailureNode        string `json:"failure_node"`
	FailureDescription string `json:"failure_description"`
	RecoveryMethod     string `json:"recovery_method"`
	SparePartsUsed     string `json:"spare_parts_used"`
	RestorationDate    string `json:"restoration_date"`
	ServiceCompany     string `json:"service_company"`
}
