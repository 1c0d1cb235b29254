package employee

import (
	"time"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

// RosterEntry is the read-only projection of an employee this core consumes.
// Employee CRUD is owned elsewhere; the attendance subsystem only needs the
// identity, assignment and reporting-line fields below.
type RosterEntry struct {
	ID                 string
	OrganizationID     string
	FirstName          string
	LastName           string
	Email              string
	DepartmentID       *string
	DepartmentName     *string
	DesignationID      *string
	DesignationName    *string
	ShiftID            *string
	ShiftName          *string
	ShiftStart         *time.Time // time-of-day component only
	ShiftEnd           *time.Time
	ReportingManagerID *string
	Status             EmploymentStatus
	JoiningDate        time.Time
}

// Shift is the read-only projection of a work shift, used when a check-in
// names a shift other than the employee's assigned one.
type Shift struct {
	ID             string
	OrganizationID string
	Name           string
	StartTime      *time.Time // time-of-day component only
	EndTime        *time.Time
}

// FullName joins first and last name for display fields.
func (r RosterEntry) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}
