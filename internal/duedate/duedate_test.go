package duedate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		today string
		d     Duration
		want  string
	}{
		{"month rollover", "2024-01-25", TwoWeeks, "2024-02-08"},
		{"one week", "2024-03-01", OneWeek, "2024-03-08"},
		{"leap february", "2024-02-20", OneWeek, "2024-02-27"},
		{"leap day crossing", "2024-02-25", OneWeek, "2024-03-03"},
		{"year rollover", "2023-12-20", OneMonth, "2024-01-19"},
		{"non-leap february", "2023-02-25", TwoWeeks, "2023-03-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(day(tt.today), tt.d)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("custom computes nothing", func(t *testing.T) {
		got, ok := Resolve(day("2024-01-25"), Custom)
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		late := time.Date(2024, 1, 25, 23, 59, 0, 0, time.UTC)
		got, _ := Resolve(late, OneWeek)
		assert.Equal(t, "2024-02-01", got)
	})
}

func TestParseDuration(t *testing.T) {
	for _, s := range []string{"7", "14", "30", "custom"} {
		d, err := ParseDuration(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, d.String())
	}

	for _, s := range []string{"", "0", "10", "two weeks", "-7"} {
		_, err := ParseDuration(s)
		assert.Error(t, err, s)
	}

	assert.Equal(t, TwoWeeks, Default)
}
