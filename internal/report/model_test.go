package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayWindow(t *testing.T) {
	now := time.Date(2026, 8, 26, 15, 4, 5, 0, time.UTC)
	w := Today(now)

	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), w.To)
}

func TestISOWeekWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		from time.Time
	}{
		{
			name: "wednesday",
			now:  time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC), // Wed
			from: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),  // Mon
		},
		{
			name: "monday is its own start",
			now:  time.Date(2026, 8, 24, 0, 30, 0, 0, time.UTC),
			from: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday closes the week",
			now:  time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC), // Sun
			from: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ThisISOWeek(tt.now)
			assert.Equal(t, tt.from, w.From)
			assert.Equal(t, tt.from.AddDate(0, 0, 7), w.To)
		})
	}
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	w := ThisMonth(now)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), w.To)
}

func TestCustomWindow(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	w, err := Custom(from, to)
	require.NoError(t, err)
	assert.Equal(t, from, w.From)
	assert.Equal(t, to, w.To)

	_, err = Custom(to, from)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Custom(time.Time{}, to)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

	t.Run("defaults to today", func(t *testing.T) {
		w, err := ResolveWindow("", "", "", now)
		require.NoError(t, err)
		assert.Equal(t, Today(now), w)
	})

	t.Run("named windows", func(t *testing.T) {
		w, err := ResolveWindow("week", "", "", now)
		require.NoError(t, err)
		assert.Equal(t, ThisISOWeek(now), w)

		w, err = ResolveWindow("month", "", "", now)
		require.NoError(t, err)
		assert.Equal(t, ThisMonth(now), w)
	})

	t.Run("custom date range is end-inclusive", func(t *testing.T) {
		w, err := ResolveWindow("custom", "2026-08-01", "2026-08-31", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), w.From)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), w.To)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ResolveWindow("fortnight", "", "", now)
		assert.ErrorIs(t, err, ErrInvalidWindow)

		_, err = ResolveWindow("custom", "not-a-date", "2026-08-31", now)
		assert.ErrorIs(t, err, ErrInvalidWindow)

		_, err = ResolveWindow("custom", "2026-08-31", "2026-08-01", now)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}
