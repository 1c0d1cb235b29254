package attendance

import (
	"context"
	"time"
)

// DayRosterFilter narrows the single-day roster join. Nil fields mean "any".
type DayRosterFilter struct {
	Date          time.Time
	DepartmentID  *string
	DesignationID *string
	EmployeeName  *string
	Status        *Status // effective status, including leave and not_set

	Page  int
	Limit int
}

// HistoryFilter narrows the historical range listing over persisted rows.
// ManagerID, when set, restricts results to employees reporting to that
// manager; the service sets it for non-admin callers.
type HistoryFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	EmployeeID     *string
	Status         *Status
	ApprovalStatus *ApprovalStatus
	ManagerID      *string

	Page  int
	Limit int
}

// AttendanceRepository defines data access for attendance rows. Every method
// takes the organization ID so a query can never cross the tenant boundary.
type AttendanceRepository interface {
	// Create inserts a new row. A unique-constraint violation on
	// (organization_id, employee_id, date) surfaces as ErrDuplicateRecord.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves one row with organization isolation, joined with
	// employee and shift display fields.
	GetByID(ctx context.Context, id string, organizationID string) (Attendance, error)

	// ExistsForDate reports whether a row already exists for the employee
	// on the given day.
	ExistsForDate(ctx context.Context, employeeID string, date time.Time, organizationID string) (bool, error)

	// UpdateCheckOut writes the check-out fields and derived work hours.
	UpdateCheckOut(ctx context.Context, att Attendance) error

	// UpdateApproval writes the approval decision fields.
	UpdateApproval(ctx context.Context, att Attendance) error

	// DayRoster returns the roster-attendance join for one day plus the
	// pre-pagination total, ordered by first name then employee ID.
	DayRoster(ctx context.Context, filter DayRosterFilter, organizationID string) ([]DayRosterRow, int64, error)

	// History returns persisted rows matching the filter plus the
	// pre-pagination total, ordered by date then creation time descending.
	History(ctx context.Context, filter HistoryFilter, organizationID string) ([]Attendance, int64, error)

	// BulkUpsert inserts or updates one row per (employee, date) inside a
	// single transaction; any failure rolls back the whole batch.
	BulkUpsert(ctx context.Context, records []Attendance) (int, error)
}
