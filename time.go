package podpointclient

import "time"

// Time abstracts the clock so credential freshness can be pinned in tests.
type Time interface {
	UTCNow() time.Time
}

type RealTime struct{}

func (RealTime) UTCNow() time.Time {
	return time.Now().UTC()
}
