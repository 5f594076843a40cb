package listview

// Column is a sortable header of the machines table.
type Column struct {
	Key   string
	Label string
}

// Sortable lists the table columns in display order. Keys are the API's ordering fields.
var Sortable = []Column{
	{Key: "serial_number", Label: "Зав. № машины"},
	{Key: "technique_model__name", Label: "Модель техники"},
	{Key: "engine_model__name", Label: "Модель двигателя"},
	{Key: "engine_number", Label: "Зав. № двигателя"},
	{Key: "transmission_model__name", Label: "Модель трансмиссии"},
	{Key: "transmission_number", Label: "Зав. № трансмиссии"},
	{Key: "drive_axle_model__name", Label: "Модель вед. моста"},
	{Key: "steering_axle_model__name", Label: "Модель упр. моста"},
	{Key: "shipment_date", Label: "Дата отгрузки"},
}

// SortKeys returns the ordering fields accepted by the list view.
func SortKeys() []string {
	keys := make([]string, len(Sortable))
	for i, col := range Sortable {
		keys[i] = col.Key
	}
	return keys
}

// FilterField describes one text filter input.
type FilterField struct {
	Param       string
	Placeholder string
}

// FilterFields lists the filter inputs in display order.
var FilterFields = []FilterField{
	{Param: ParamTechniqueModel, Placeholder: "Модель техники"},
	{Param: ParamEngineModel, Placeholder: "Модель двигателя"},
	{Param: ParamTransmissionModel, Placeholder: "Модель трансмиссии"},
	{Param: ParamDriveAxleModel, Placeholder: "Модель вед. моста"},
	{Param: ParamSteeringAxleModel, Placeholder: "Модель упр. моста"},
}
