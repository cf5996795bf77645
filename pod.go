package podpointclient

import "time"

// Status names reported for a connector/door on a pod.
const (
	StatusAvailable    = "Available"
	StatusUnavailable  = "Unavailable"
	StatusCharging     = "Charging"
	StatusOutOfService = "Out of Service"
)

const (
	StatusKeyAvailable    = "available"
	StatusKeyUnavailable  = "unavailable"
	StatusKeyCharging     = "charging"
	StatusKeyOutOfService = "out-of-service"
)

// Pod is a physical charger unit as reported by the Pod Point API.
type Pod struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	PPID               string          `json:"ppid"`
	PayG               bool            `json:"payg"`
	Home               bool            `json:"home"`
	Public             bool            `json:"public"`
	EVZone             bool            `json:"evZone"`
	Location           PodLocation     `json:"location"`
	AddressID          int             `json:"address_id"`
	Description        string          `json:"description"`
	CommissionedAt     *time.Time      `json:"commissioned_at"`
	CreatedAt          *time.Time      `json:"created_at"`
	LastContactAt      *time.Time      `json:"last_contact_at"`
	ContactlessEnabled bool            `json:"contactless_enabled"`
	UnitID             int             `json:"unit_id"`
	Timezone           string          `json:"timezone"`
	Model              PodModel        `json:"model"`
	Price              int             `json:"price"`
	Statuses           []PodStatus     `json:"statuses"`
	UnitConnectors     []UnitConnector `json:"unit_connectors"`
	ChargeSchedules    []Schedule      `json:"charge_schedules"`
	ChargeOverride     *ChargeOverride `json:"charge_override,omitempty"`
}

type PodModel struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Vendor              string `json:"vendor"`
	SupportsPayG        bool   `json:"supports_payg"`
	SupportsOCPP        bool   `json:"supports_ocpp"`
	SupportsContactless bool   `json:"supports_contactless"`
	ImageURL            string `json:"image_url"`
}

type PodLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PodStatus struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	KeyName string `json:"key_name"`
	Label   string `json:"label"`
	Door    string `json:"door"`
	DoorID  int    `json:"door_id"`
}

// UnitConnector wraps the connector envelope the API nests each connector in.
type UnitConnector struct {
	Connector Connector `json:"connector"`
}

type Connector struct {
	ID           int     `json:"id"`
	Door         string  `json:"door"`
	DoorID       int     `json:"door_id"`
	Power        int     `json:"power"`
	Current      int     `json:"current"`
	Voltage      int     `json:"voltage"`
	ChargeMethod string  `json:"charge_method"`
	HasCable     bool    `json:"has_cable"`
	Socket       *Socket `json:"socket"`
}

type Socket struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	OCPPName    string `json:"ocpp_name"`
	OCPPCode    int    `json:"ocpp_code"`
}

type podsEnvelope struct {
	Pods []Pod `json:"pods"`
}

// Firmware describes one firmware image on a unit.
type Firmware struct {
	SerialNumber string           `json:"serial_number"`
	VersionInfo  *FirmwareVersion `json:"version_info"`
	UpdateStatus *FirmwareStatus  `json:"update_status"`
}

type FirmwareVersion struct {
	ManifestID string `json:"manifest_id"`
}

type FirmwareStatus struct {
	IsUpdateAvailable bool `json:"is_update_available"`
}

// FirmwareVersionName returns the manifest id of the installed firmware, or
// "" when the version block is absent.
func (f Firmware) FirmwareVersionName() string {
	if f.VersionInfo == nil {
		return ""
	}
	return f.VersionInfo.ManifestID
}

// UpdateAvailable reports whether an update is waiting for the unit.
func (f Firmware) UpdateAvailable() bool {
	return f.UpdateStatus != nil && f.UpdateStatus.IsUpdateAvailable
}

type firmwaresEnvelope struct {
	Data []Firmware `json:"data"`
}
