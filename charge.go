package podpointclient

import (
	"strings"
	"time"
)

// Charge is one completed or in-progress charging session.
type Charge struct {
	ID               int                `json:"id"`
	KWhUsed          float64            `json:"kwh_used"`
	Duration         int                `json:"duration"`
	StartsAt         *time.Time         `json:"starts_at"`
	EndsAt           *time.Time         `json:"ends_at"`
	EnergyCost       int                `json:"energy_cost"`
	ChargingDuration ChargingDuration   `json:"charging_duration"`
	BillingEvent     ChargeBillingEvent `json:"billing_event"`
	Location         ChargeLocation     `json:"location"`
	Pod              ChargePod          `json:"pod"`
	Organisation     ChargeOrganisation `json:"organisation"`
}

// Home reports whether the charge happened at the user's home charger.
func (c Charge) Home() bool {
	return c.Location.Home
}

type ChargingDuration struct {
	Raw       int                    `json:"raw"`
	Formatted []ChargeDurationFormat `json:"formatted"`
}

// String joins the formatted components, e.g. "2 hours 15 minutes".
func (d ChargingDuration) String() string {
	parts := make([]string, 0, len(d.Formatted))
	for _, f := range d.Formatted {
		if s := f.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

type ChargeDurationFormat struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

func (f ChargeDurationFormat) String() string {
	parts := []string{}
	if f.Value != "" {
		parts = append(parts, f.Value)
	}
	if f.Unit != "" {
		parts = append(parts, f.Unit)
	}
	return strings.Join(parts, " ")
}

type ChargeBillingEvent struct {
	ID                  int      `json:"id"`
	Amount              *float64 `json:"amount"`
	Currency            string   `json:"currency"`
	ExchangeRate        float64  `json:"exchange_rate"`
	PresentmentAmount   *float64 `json:"presentment_amount"`
	PresentmentCurrency string   `json:"presentment_currency"`
}

type ChargeLocation struct {
	ID       int           `json:"id"`
	Home     bool          `json:"home"`
	Timezone string        `json:"timezone"`
	Address  ChargeAddress `json:"address"`
}

type ChargeAddress struct {
	ID           int    `json:"id"`
	BusinessName string `json:"business_name"`
}

type ChargePod struct {
	ID int `json:"id"`
}

type ChargeOrganisation struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type chargesEnvelope struct {
	Charges []Charge `json:"charges"`
}
