package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToQuarterHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		stop  string
		want  float64
	}{
		{"exact hour", "09:00", "10:00", 1.0},
		{"exact quarter", "09:00", "09:15", 0.25},
		{"remainder below threshold stays", "09:00", "09:52", 0.75},
		{"remainder at eight minutes rounds up", "09:00", "09:53", 1.0},
		{"seven minutes rounds to zero", "09:00", "09:07", 0.0},
		{"eight minutes rounds to first quarter", "09:00", "09:08", 0.25},
		{"twenty-two minutes", "09:00", "09:22", 0.25},
		{"twenty-three minutes", "09:00", "09:23", 0.5},
		{"zero elapsed coerces to zero", "09:00", "09:00", 0.0},
		{"stop before start coerces to zero", "10:00", "09:30", 0.0},
		{"full day", "00:00", "23:45", 23.75},
		{"across noon", "11:50", "13:05", 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RoundToQuarterHours(tt.start, tt.stop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundToQuarterHours_AlwaysQuarterMultiple(t *testing.T) {
	for startMin := 0; startMin < 24*60; startMin += 37 {
		for elapsed := 1; elapsed < 300; elapsed += 13 {
			stopMin := startMin + elapsed
			if stopMin >= 24*60 {
				continue
			}
			start := hhmm(startMin)
			stop := hhmm(stopMin)

			got, err := RoundToQuarterHours(start, stop)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0.0)

			quarters := got / 0.25
			assert.Equal(t, float64(int(quarters)), quarters,
				"duration %v for %s-%s is not a quarter multiple", got, start, stop)
		}
	}
}

func hhmm(minutes int) string {
	return string([]byte{
		byte('0' + minutes/60/10), byte('0' + minutes/60%10),
		':',
		byte('0' + minutes%60/10), byte('0' + minutes%60%10),
	})
}

func TestRoundToQuarterHours_Malformed(t *testing.T) {
	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd", "12-30"} {
		_, err := RoundToQuarterHours(bad, "10:00")
		assert.Error(t, err, "start %q", bad)

		_, err = RoundToQuarterHours("09:00", bad)
		assert.Error(t, err, "stop %q", bad)
	}
}

func TestComputeDuration_OpenEntryIsNil(t *testing.T) {
	start := "09:00"
	stop := "09:53"
	empty := ""

	got, err := ComputeDuration(&start, nil)
	require.NoError(t, err)
	assert.Nil(t, got, "missing stop means open entry, not zero")

	got, err = ComputeDuration(nil, &stop)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ComputeDuration(&start, &empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ComputeDuration(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestComputeDuration_RecomputeIsIdempotent(t *testing.T) {
	start := "09:00"
	stop := "09:53"

	first, err := ComputeDuration(&start, &stop)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1.0, *first)

	// Clearing the stop time reopens the entry.
	cleared, err := ComputeDuration(&start, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared)

	// Re-supplying the same stop time recomputes the identical value.
	again, err := ComputeDuration(&start, &stop)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, *first, *again)
}

func TestComputeDuration_BadRangeCoercesToZero(t *testing.T) {
	start := "10:00"
	stop := "09:00"

	got, err := ComputeDuration(&start, &stop)
	require.NoError(t, err)
	require.NotNil(t, got, "a bad range is a computed zero, not an open entry")
	assert.Equal(t, 0.0, *got)
}
