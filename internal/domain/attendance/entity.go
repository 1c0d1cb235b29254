package attendance

import (
	"time"
)

// Status is the attendance outcome for one employee on one day. Leave and
// NotSet are synthesized at read time by the day-roster query; they are never
// written by check-in or bulk mark.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
	StatusNotSet  Status = "not_set"
)

// PersistableStatuses are the values bulk mark may write.
var PersistableStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusLate),
}

// FilterableStatuses are the values the list filter accepts, including the
// two synthesized ones.
var FilterableStatuses = append([]string{
	string(StatusLeave),
	string(StatusNotSet),
}, PersistableStatuses...)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Attendance is one persisted row: at most one per
// (organization, employee, date), backed by a unique constraint.
type Attendance struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	ShiftID        *string
	Date           time.Time // calendar day, stored at date granularity

	CheckIn           *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckInPhoto      *string
	CheckOut          *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutPhoto     *string

	// WorkHours is the fractional elapsed hours between check-in and
	// check-out, set at check-out time.
	WorkHours *float64

	Status          Status
	ApprovalStatus  ApprovalStatus
	ApprovedBy      *string
	ApprovalDate    *time.Time
	RejectionReason *string

	Remarks   *string
	CreatedBy *string
	UpdatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Display joins
	EmployeeFirstName *string
	EmployeeLastName  *string
	ShiftName         *string
}

// EmployeeName joins the display name fields; empty when the row was
// fetched without joins.
func (a Attendance) EmployeeName() string {
	if a.EmployeeFirstName == nil {
		return ""
	}
	if a.EmployeeLastName == nil || *a.EmployeeLastName == "" {
		return *a.EmployeeFirstName
	}
	return *a.EmployeeFirstName + " " + *a.EmployeeLastName
}

// DayRosterRow is one row of the single-day roster view: every active
// employee, joined to that day's attendance row when one exists.
type DayRosterRow struct {
	EmployeeID      string
	FirstName       string
	LastName        string
	Email           string
	DepartmentName  *string
	DesignationName *string
	ShiftName       *string

	AttendanceID *string
	CheckIn      *time.Time
	CheckOut     *time.Time
	WorkHours    *float64

	// Status is the effective status: the persisted one when a row exists,
	// otherwise leave or not_set.
	Status         Status
	ApprovalStatus *ApprovalStatus
}
