package revenue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/revenue"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestWindow_Validate(t *testing.T) {
	assert.NoError(t, revenue.Window{Start: date(2025, 1, 1), End: date(2025, 2, 1)}.Validate())

	err := revenue.Window{Start: date(2025, 2, 1), End: date(2025, 2, 1)}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	err = revenue.Window{Start: date(2025, 3, 1), End: date(2025, 2, 1)}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestWindow_ContainsEsSemiabierta(t *testing.T) {
	w := revenue.Window{Start: date(2025, 1, 1), End: date(2025, 2, 1)}
	assert.True(t, w.Contains(date(2025, 1, 1)))
	assert.True(t, w.Contains(date(2025, 2, 1).Add(-time.Nanosecond)))
	assert.False(t, w.Contains(date(2025, 2, 1)), "End es exclusivo")
	assert.False(t, w.Contains(date(2024, 12, 31)))
}

func TestValidateAll_UnInvalidoRechazaElLote(t *testing.T) {
	err := revenue.ValidateAll([]revenue.Window{
		{Start: date(2025, 1, 1), End: date(2025, 2, 1)},
		{Start: date(2025, 3, 1), End: date(2025, 2, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
	assert.Contains(t, err.Error(), "periodo 1")

	assert.NoError(t, revenue.ValidateAll(nil))
}

func TestFixedWindow(t *testing.T) {
	// miércoles 2025-12-31 15:30
	now := time.Date(2025, 12, 31, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		period     revenue.Period
		start, end time.Time
	}{
		{revenue.Daily, date(2025, 12, 31), date(2026, 1, 1)},
		{revenue.Weekly, date(2025, 12, 29), date(2026, 1, 5)},
		{revenue.Monthly, date(2025, 12, 1), date(2026, 1, 1)},
		{revenue.Annual, date(2025, 1, 1), date(2026, 1, 1)},
	}
	for _, tc := range cases {
		t.Run(string(tc.period), func(t *testing.T) {
			w, err := revenue.FixedWindow(tc.period, now)
			require.NoError(t, err)
			assert.True(t, w.Start.Equal(tc.start), "start %s", w.Start)
			assert.True(t, w.End.Equal(tc.end), "end %s", w.End)
			assert.True(t, w.Contains(now))
		})
	}
}

func TestFixedWindow_SemanaEmpiezaLunes(t *testing.T) {
	sunday := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC)
	w, err := revenue.FixedWindow(revenue.Weekly, sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.True(t, w.Start.Equal(date(2025, 3, 10)))

	monday := date(2025, 3, 17)
	w, err = revenue.FixedWindow(revenue.Weekly, monday)
	require.NoError(t, err)
	assert.True(t, w.Start.Equal(monday))
}

func TestFixedWindow_RespetaZonaHoraria(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 6, 1, 1, 0, 0, 0, loc) // 06:00 UTC
	w, err := revenue.FixedWindow(revenue.Daily, now)
	require.NoError(t, err)
	assert.True(t, w.Start.Equal(time.Date(2025, 6, 1, 5, 0, 0, 0, time.UTC)))
}

func TestParsePeriod(t *testing.T) {
	p, err := revenue.ParsePeriod("Weekly")
	require.NoError(t, err)
	assert.Equal(t, revenue.Weekly, p)

	_, err = revenue.ParsePeriod("hourly")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
