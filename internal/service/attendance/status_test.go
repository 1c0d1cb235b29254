package attendance

import (
	"testing"
	"time"

	"github.com/arusdata/hrm-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func timeOfDay(hour, min int) *time.Time {
	t := time.Date(2000, 1, 1, hour, min, 0, 0, time.UTC)
	return &t
}

func TestCalculateStatus(t *testing.T) {
	grace := 15 * time.Minute

	tests := []struct {
		name       string
		checkIn    time.Time
		shiftStart *time.Time
		want       attendance.Status
	}{
		{
			name:       "no shift is always present",
			checkIn:    time.Date(2026, 9, 1, 11, 45, 0, 0, time.UTC),
			shiftStart: nil,
			want:       attendance.StatusPresent,
		},
		{
			name:       "on time",
			checkIn:    time.Date(2026, 9, 1, 8, 58, 0, 0, time.UTC),
			shiftStart: timeOfDay(9, 0),
			want:       attendance.StatusPresent,
		},
		{
			name:       "within grace period",
			checkIn:    time.Date(2026, 9, 1, 9, 15, 0, 0, time.UTC),
			shiftStart: timeOfDay(9, 0),
			want:       attendance.StatusPresent,
		},
		{
			name:       "one minute past grace",
			checkIn:    time.Date(2026, 9, 1, 9, 16, 0, 0, time.UTC),
			shiftStart: timeOfDay(9, 0),
			want:       attendance.StatusLate,
		},
		{
			name:       "hours late",
			checkIn:    time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC),
			shiftStart: timeOfDay(9, 0),
			want:       attendance.StatusLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStatus(tt.checkIn, tt.shiftStart, grace)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkHours(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut time.Time
		want     float64
	}{
		{"full day", time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC), 8},
		{"half hour granularity survives", time.Date(2026, 9, 1, 17, 30, 0, 0, time.UTC), 8.5},
		{"short shift", time.Date(2026, 9, 1, 9, 45, 0, 0, time.UTC), 0.75},
		{"zero", checkIn, 0},
		{"rounded to two decimals", time.Date(2026, 9, 1, 17, 10, 0, 0, time.UTC), 8.17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WorkHours(checkIn, tt.checkOut), 0.001)
		})
	}
}
