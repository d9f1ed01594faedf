package food

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpiryWindowCalendarArithmetic(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantEnd time.Time
	}{
		{
			name:    "mid month",
			now:     time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC),
			wantEnd: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:    "month rollover",
			now:     time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC),
			wantEnd: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "leap february rollover",
			now:     time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC),
			wantEnd: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "year rollover",
			now:     time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
			wantEnd: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := expiryWindow(tt.now)
			assert.True(t, start.Equal(tt.now), "window starts at now")
			assert.True(t, end.Equal(tt.wantEnd), "window ends %d calendar days later", ExpiryWindowDays)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-01-10")
	assert.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))

	got, err = parseDate("2025-01-10T15:04:05Z")
	assert.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 1, 10, 15, 4, 5, 0, time.UTC)))

	_, err = parseDate("10/01/2025")
	assert.Error(t, err)
}
