package algo

import (
	"testing"
	"time"

	"github.com/bekerk/hotspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowMillis(t *testing.T) {
	t.Run("after epoch", func(t *testing.T) {
		ms, err := NowMillis(time.Unix(1700000000, 500_000_000))
		require.NoError(t, err)
		assert.Equal(t, 1700000000500.0, ms)
	})

	t.Run("at epoch", func(t *testing.T) {
		ms, err := NowMillis(time.Unix(0, 0))
		require.NoError(t, err)
		assert.Zero(t, ms)
	})

	t.Run("before epoch", func(t *testing.T) {
		_, err := NowMillis(time.Unix(-1, 0))
		assert.ErrorIs(t, err, ErrClockBeforeEpoch)
	})
}

func TestEstimateTimeWindow(t *testing.T) {
	now := float64(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli())

	t.Run("no fixes", func(t *testing.T) {
		w := EstimateTimeWindow(nil, now)
		assert.Equal(t, now, w.Now)
		assert.Equal(t, now, w.OldestFixTime)
		assert.Zero(t, w.Span())
	})

	t.Run("oldest of several", func(t *testing.T) {
		fixes := []schema.FixCommit{
			{Time: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			{Time: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		}
		w := EstimateTimeWindow(fixes, now)
		assert.Equal(t, float64(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()), w.OldestFixTime)
		assert.LessOrEqual(t, w.OldestFixTime, w.Now)
	})

	t.Run("future fix does not move oldest past now", func(t *testing.T) {
		fixes := []schema.FixCommit{{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}}
		w := EstimateTimeWindow(fixes, now)
		assert.Equal(t, now, w.OldestFixTime)
	})

	t.Run("zone offset is ignored", func(t *testing.T) {
		tz := time.FixedZone("UTC+9", 9*3600)
		utc := []schema.FixCommit{{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
		local := []schema.FixCommit{{Time: utc[0].Time.In(tz)}}
		assert.Equal(t, EstimateTimeWindow(utc, now), EstimateTimeWindow(local, now))
	})
}
