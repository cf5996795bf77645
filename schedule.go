package podpointclient

// Schedule is one chargeable window on a unit. New schedules omit the uid;
// the API assigns one.
type Schedule struct {
	UID       string         `json:"uid,omitempty"`
	StartDay  int            `json:"start_day"`
	StartTime string         `json:"start_time"`
	EndDay    int            `json:"end_day"`
	EndTime   string         `json:"end_time"`
	Status    ScheduleStatus `json:"status"`
}

type ScheduleStatus struct {
	IsActive bool `json:"is_active"`
}

func (s Schedule) IsActive() bool {
	return s.Status.IsActive
}

// NewWeeklySchedules builds the seven per-day schedule entries the schedule
// endpoint expects, one for each weekday, all carrying the same active flag.
// The near-zero window (00:00:00 to 00:00:01) mirrors what the mobile app
// sends: the flag, not the window, is what enables or disables charging.
func NewWeeklySchedules(enabled bool) []Schedule {
	schedules := make([]Schedule, 0, 7)
	for day := 1; day <= 7; day++ {
		schedules = append(schedules, Schedule{
			StartDay:  day,
			StartTime: "00:00:00",
			EndDay:    day,
			EndTime:   "00:00:01",
			Status:    ScheduleStatus{IsActive: enabled},
		})
	}
	return schedules
}

type schedulesDocument struct {
	Data []Schedule `json:"data"`
}
