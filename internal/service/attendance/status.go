package attendance

import (
	"time"

	"github.com/arusdata/hrm-backend-go/internal/domain/attendance"
)

// CalculateStatus derives the status written at check-in. Without an
// assigned shift every check-in is present; with one, a check-in falling
// more than the grace period after the shift start on that day is late.
func CalculateStatus(checkIn time.Time, shiftStart *time.Time, grace time.Duration) attendance.Status {
	if shiftStart == nil {
		return attendance.StatusPresent
	}

	startOfDay := time.Date(
		checkIn.Year(), checkIn.Month(), checkIn.Day(),
		shiftStart.Hour(), shiftStart.Minute(), shiftStart.Second(),
		0, checkIn.Location(),
	)

	if checkIn.After(startOfDay.Add(grace)) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// WorkHours returns the fractional elapsed hours between check-in and
// check-out, rounded to two decimals.
func WorkHours(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	return float64(int(hours*100+0.5)) / 100
}
