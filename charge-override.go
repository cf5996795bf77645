package podpointclient

import "time"

// ChargeMode is the charging behavior a unit is currently following.
type ChargeMode string

const (
	ChargeModeManual   ChargeMode = "Manual"
	ChargeModeSmart    ChargeMode = "Smart"
	ChargeModeOverride ChargeMode = "Override"
)

// ChargeOverride tells a unit to charge now, either indefinitely (manual
// mode) or until a fixed instant. Its absence means the unit follows its
// smart schedule.
type ChargeOverride struct {
	PPID        string     `json:"ppid"`
	RequestedAt *time.Time `json:"requested_at"`
	ReceivedAt  *time.Time `json:"received_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// Mode maps the override document onto a charge mode: a bounded override is
// Override, an unbounded one is Manual.
func (o *ChargeOverride) Mode(now time.Time) ChargeMode {
	if o == nil {
		return ChargeModeSmart
	}
	if o.EndsAt == nil {
		return ChargeModeManual
	}
	return ChargeModeOverride
}

// Active reports whether a bounded override is still running.
func (o *ChargeOverride) Active(now time.Time) bool {
	return o != nil && o.EndsAt != nil && o.EndsAt.After(now)
}

// RemainingTime returns how long the override has left, or zero once it has
// lapsed or when no end is set.
func (o *ChargeOverride) RemainingTime(now time.Time) time.Duration {
	if !o.Active(now) {
		return 0
	}
	return o.EndsAt.Sub(now)
}
