package podpointclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeeklySchedules(t *testing.T) {
	schedules := NewWeeklySchedules(true)
	require.Len(t, schedules, 7)
	for i, schedule := range schedules {
		assert.Equal(t, i+1, schedule.StartDay)
		assert.Equal(t, i+1, schedule.EndDay)
		assert.Equal(t, "00:00:00", schedule.StartTime)
		assert.Equal(t, "00:00:01", schedule.EndTime)
		assert.True(t, schedule.IsActive())
	}

	for _, schedule := range NewWeeklySchedules(false) {
		assert.False(t, schedule.IsActive())
	}
}

func TestScheduleOmitsEmptyUID(t *testing.T) {
	body, err := json.Marshal(NewWeeklySchedules(true)[0])
	require.NoError(t, err)
	assert.NotContains(t, string(body), "uid", "new schedules must not send a uid")

	body, err = json.Marshal(Schedule{UID: "abc123"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"uid":"abc123"`)
}
