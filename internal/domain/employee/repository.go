package employee

import (
	"context"
)

// RosterRepository is the Roster Provider interface. All methods take the
// organization ID so a query can never cross the tenant boundary. Listing
// the active roster is not exposed here: the day view joins the roster and
// attendance in one query, so only point lookups are needed.
type RosterRepository interface {
	// GetByID retrieves one roster entry with organization isolation.
	GetByID(ctx context.Context, id string, organizationID string) (RosterEntry, error)

	// GetShiftByID resolves a shift referenced explicitly by a request.
	GetShiftByID(ctx context.Context, id string, organizationID string) (Shift, error)

	// GetReportingManager resolves the approver for an employee; nil when
	// the employee has no reporting manager assigned.
	GetReportingManager(ctx context.Context, employeeID string, organizationID string) (*string, error)
}
