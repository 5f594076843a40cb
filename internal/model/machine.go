package model

// Machine is a tracked piece of equipment as returned by the service-book API.
// Reference fields (models, client, service company) arrive already resolved to their names.
type Machine struct {
	ID                 int64  `json:"id"`
	SerialNumber       string `json:"serial_number"`
	TechniqueModel     string `json:"technique_model"`
	EngineModel        string `json:"engine_model"`
	EngineNumber       string `json:"engine_number"`
	TransmissionModel  string `json:"transmission_model"`
	TransmissionNumber string `json:"transmission_number"`
	DriveAxleModel     string `json:"drive_axle_model"`
	DriveAxleNumber    string `json:"drive_axle_number"`
	SteeringAxleModel  string `json:"steering_axle_model"`
	SteeringAxleNumber string `json:"steering_axle_number"`
	SupplyContract     string `json:"supply_contract_num_date"`
	ShipmentDate       string `json:"shipment_date"`
	Consignee          string `json:"consignee"`
	DeliveryAddress    string `json:"delivery_address"`
	EquipmentOptions   string `json:"equipment_options"`
	Client             string `json:"client"`
	ServiceCompany     string `json:"service_company"`
}

// Field is a label/value pair rendered in key/value tables.
type Field struct {
	Label string
	Value string
}

// SpecFields returns the public specification of the machine, as shown to guests on search.
func (m Machine) SpecFields() []Field {
	return []Field{
		{"Заводской номер", m.SerialNumber},
		{"Модель техники", m.TechniqueModel},
		{"Модель двигателя", m.EngineModel},
		{"Зав. № двигателя", m.EngineNumber},
		{"Модель трансмиссии", m.TransmissionModel},
		{"Зав. № трансмиссии", m.TransmissionNumber},
		{"Модель ведущего моста", m.DriveAxleModel},
		{"Зав. № ведущего моста", m.DriveAxleNumber},
		{"Модель управляемого моста", m.SteeringAxleModel},
		{"Зав. № управляемого моста", m.SteeringAxleNumber},
	}
}

// InfoFields returns every attribute of the machine for the detail view.
func (m Machine) InfoFields() []Field {
	return []Field{
		{"Зав. № машины", m.SerialNumber},
		{"Модель техники", m.TechniqueModel},
		{"Модель двигателя", m.EngineModel},
		{"Зав. № двигателя", m.EngineNumber},
		{"Модель трансмиссии", m.TransmissionModel},
		{"Зав. № трансмиссии", m.TransmissionNumber},
		{"Модель вед. моста", m.DriveAxleModel},
		{"Зав. № вед. моста", m.DriveAxleNumber},
		{"Модель упр. моста", m.SteeringAxleModel},
		{"Зав. № упр. моста", m.SteeringAxleNumber},
		{"Договор поставки №, дата", m.SupplyContract},
		{"Дата отгрузки", m.ShipmentDate},
		{"Грузополучатель", m.Consignee},
		{"Адрес поставки", m.DeliveryAddress},
		{"Комплектация", m.EquipmentOptions},
		{"Клиент", m.Client},
		{"Сервисная компания", m.ServiceCompany},
	}
}
