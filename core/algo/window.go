package algo

import (
	"errors"
	"time"

	"github.com/bekerk/hotspot/schema"
)

// ErrClockBeforeEpoch is returned when the wall clock reads earlier than the Unix epoch.
var ErrClockBeforeEpoch = errors.New("system clock is before the Unix epoch")

// NowMillis converts t to milliseconds since the Unix epoch.
func NowMillis(t time.Time) (float64, error) {
	if t.Before(time.Unix(0, 0)) {
		return 0, ErrClockBeforeEpoch
	}
	return float64(t.UnixMilli()), nil
}

// EstimateTimeWindow finds the oldest fix timestamp and pairs it with now.
// The minimum starts at now, so an empty fix list yields a zero-width window.
func EstimateTimeWindow(fixes []schema.FixCommit, now float64) schema.TimeWindow {
	oldest := now
	for _, f := range fixes {
		if t := f.TimeMillis(); t < oldest {
			oldest = t
		}
	}
	return schema.TimeWindow{Now: now, OldestFixTime: oldest}
}
