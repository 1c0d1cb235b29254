package leave

import (
	"time"
)

// Record is the read-only projection of an approved leave this core
// consumes. Leave request management and quota accrual are owned elsewhere.
type Record struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	StartDate      time.Time
	EndDate        time.Time
}

// Covers reports whether the leave spans the given calendar day.
func (r Record) Covers(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return !d.Before(r.StartDate.Truncate(24*time.Hour)) && !d.After(r.EndDate.Truncate(24*time.Hour))
}
