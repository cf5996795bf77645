package podpointclient

import "time"

// ConnectivityStatus describes a charger's cloud connection and the charging
// state of its connectors.
type ConnectivityStatus struct {
	PPID                string   `json:"ppid"`
	Evses               []Evse   `json:"evses"`
	ConnectedComponents []string `json:"connectedComponents"`
}

type Evse struct {
	ID                int               `json:"id"`
	Architecture      string            `json:"architecture"`
	ConnectivityState ConnectivityState `json:"connectivityState"`
	Connectors        []EvseConnector   `json:"connectors"`
	EnergyOfferStatus EnergyOfferStatus `json:"energyOfferStatus"`
}

type ConnectivityState struct {
	Protocol            string     `json:"protocol"`
	ConnectivityStatus  string     `json:"connectivityStatus"`
	SignalStrength      int        `json:"signalStrength"`
	LastMessageAt       *time.Time `json:"lastMessageAt"`
	ConnectionStartedAt *time.Time `json:"connectionStartedAt"`
	ConnectionQuality   int        `json:"connectionQuality"`
}

type EvseConnector struct {
	ID            int    `json:"id"`
	Door          string `json:"door"`
	ChargingState string `json:"chargingState"`
}

type EnergyOfferStatus struct {
	IsOfferingEnergy bool       `json:"isOfferingEnergy"`
	Reason           string     `json:"reason"`
	Until            *time.Time `json:"until"`
	RandomDelay      *int       `json:"randomDelay"`
	DoNotCache       bool       `json:"doNotCache"`
}

// The convenience accessors below read the first EVSE, which is the only one
// home units report.

func (c *ConnectivityStatus) Status() string {
	if c == nil || len(c.Evses) == 0 {
		return ""
	}
	return c.Evses[0].ConnectivityState.ConnectivityStatus
}

func (c *ConnectivityStatus) LastMessageAt() *time.Time {
	if c == nil || len(c.Evses) == 0 {
		return nil
	}
	return c.Evses[0].ConnectivityState.LastMessageAt
}

func (c *ConnectivityStatus) ChargingState() string {
	if c == nil || len(c.Evses) == 0 || len(c.Evses[0].Connectors) == 0 {
		return ""
	}
	return c.Evses[0].Connectors[0].ChargingState
}

func (c *ConnectivityStatus) OfferingEnergy() bool {
	if c == nil || len(c.Evses) == 0 {
		return false
	}
	return c.Evses[0].EnergyOfferStatus.IsOfferingEnergy
}
