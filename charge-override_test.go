package podpointclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChargeOverrideMode(t *testing.T) {
	now := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	endsAt := now.Add(time.Hour)

	var none *ChargeOverride
	assert.Equal(t, ChargeModeSmart, none.Mode(now))
	assert.Equal(t, ChargeModeManual, (&ChargeOverride{PPID: "PSL-1"}).Mode(now))
	assert.Equal(t, ChargeModeOverride, (&ChargeOverride{PPID: "PSL-1", EndsAt: &endsAt}).Mode(now))
}

func TestChargeOverrideActive(t *testing.T) {
	now := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	var none *ChargeOverride
	assert.False(t, none.Active(now))
	assert.False(t, (&ChargeOverride{}).Active(now), "manual overrides have no bounded window")
	assert.True(t, (&ChargeOverride{EndsAt: &future}).Active(now))
	assert.False(t, (&ChargeOverride{EndsAt: &past}).Active(now))
	assert.False(t, (&ChargeOverride{EndsAt: &now}).Active(now), "an override lapses at its end instant")
}

func TestChargeOverrideRemainingTime(t *testing.T) {
	now := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(90 * time.Minute)
	past := now.Add(-time.Minute)

	var none *ChargeOverride
	assert.Equal(t, time.Duration(0), none.RemainingTime(now))
	assert.Equal(t, time.Duration(0), (&ChargeOverride{}).RemainingTime(now))
	assert.Equal(t, time.Duration(0), (&ChargeOverride{EndsAt: &past}).RemainingTime(now))
	assert.Equal(t, 90*time.Minute, (&ChargeOverride{EndsAt: &future}).RemainingTime(now))
}
