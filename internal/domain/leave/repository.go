package leave

import (
	"context"
	"time"
)

// LeaveRepository is the Leave Provider interface consumed by the
// attendance query engine.
type LeaveRepository interface {
	// FindOverlapping returns the leave record spanning the given day for
	// the employee, or nil when none exists.
	FindOverlapping(ctx context.Context, employeeID string, day time.Time, organizationID string) (*Record, error)
}
