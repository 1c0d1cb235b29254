package attendance

import (
	"strings"
	"time"

	"github.com/arusdata/hrm-backend-go/internal/pkg/validator"
)

// The wire schema is camelCase and distinct from the persisted snake_case
// schema; the mapping between the two lives in the response builders below
// and in the postgresql repository, nowhere else.

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CheckInRequest struct {
	EmployeeID      string   `json:"employeeId"`
	ShiftID         *string  `json:"shiftId,omitempty"`
	Date            string   `json:"date"`        // YYYY-MM-DD
	CheckInTime     string   `json:"checkInTime"` // RFC3339
	CheckInLocation Location `json:"checkInLocation"`
	CheckInPhoto    string   `json:"checkInPhoto"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.FieldError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.FieldError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.FieldError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.CheckInTime) {
		errs = append(errs, validator.FieldError{
			Field:   "checkInTime",
			Message: "checkInTime is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.CheckInTime); !ok {
		errs = append(errs, validator.FieldError{
			Field:   "checkInTime",
			Message: "checkInTime must be an ISO8601 timestamp",
		})
	}

	if !validator.IsValidLatitude(r.CheckInLocation.Latitude) {
		errs = append(errs, validator.FieldError{
			Field:   "checkInLocation.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.CheckInLocation.Longitude) {
		errs = append(errs, validator.FieldError{
			Field:   "checkInLocation.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if validator.IsEmpty(r.CheckInPhoto) {
		errs = append(errs, validator.FieldError{
			Field:   "checkInPhoto",
			Message: "check-in photo is required",
		})
	}

	if len(errs) > 0 {
		return errs.Dedupe()
	}

	return nil
}

type CheckOutRequest struct {
	ID               string   `json:"-"`
	CheckOutTime     string   `json:"checkOutTime"` // RFC3339
	CheckOutLocation Location `json:"checkOutLocation"`
	CheckOutPhoto    string   `json:"checkOutPhoto"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CheckOutTime) {
		errs = append(errs, validator.FieldError{
			Field:   "checkOutTime",
			Message: "checkOutTime is required",
		})
	} else if _, ok := validator.IsValidDateTime(r.CheckOutTime); !ok {
		errs = append(errs, validator.FieldError{
			Field:   "checkOutTime",
			Message: "checkOutTime must be an ISO8601 timestamp",
		})
	}

	if !validator.IsValidLatitude(r.CheckOutLocation.Latitude) {
		errs = append(errs, validator.FieldError{
			Field:   "checkOutLocation.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.CheckOutLocation.Longitude) {
		errs = append(errs, validator.FieldError{
			Field:   "checkOutLocation.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if validator.IsEmpty(r.CheckOutPhoto) {
		errs = append(errs, validator.FieldError{
			Field:   "checkOutPhoto",
			Message: "check-out photo is required",
		})
	}

	if len(errs) > 0 {
		return errs.Dedupe()
	}

	return nil
}

type ApprovalRequest struct {
	ID              string `json:"-"`
	Status          string `json:"status"` // approved | rejected
	RejectionReason string `json:"rejectionReason,omitempty"`
}

func (r *ApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	status := strings.ToLower(strings.TrimSpace(r.Status))
	if status != string(ApprovalApproved) && status != string(ApprovalRejected) {
		errs = append(errs, validator.FieldError{
			Field:   "status",
			Message: "status must be either approved or rejected",
		})
	}

	if status == string(ApprovalRejected) {
		reason := strings.TrimSpace(r.RejectionReason)
		if len(reason) < 10 || len(reason) > 500 {
			errs = append(errs, validator.FieldError{
				Field:   "rejectionReason",
				Message: "rejection reason must be between 10 and 500 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs.Dedupe()
	}

	return nil
}

type BulkMarkEntry struct {
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`
}

type BulkMarkRequest struct {
	Records []BulkMarkEntry `json:"records"`
}

func (r *BulkMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Records) == 0 {
		errs = append(errs, validator.FieldError{
			Field:   "records",
			Message: "records must contain at least one entry",
		})
	}

	for i, rec := range r.Records {
		prefix := "records[" + validator.Itoa(i) + "]."

		if validator.IsEmpty(rec.EmployeeID) {
			errs = append(errs, validator.FieldError{
				Field:   prefix + "employeeId",
				Message: "employeeId is required",
			})
		}
		if _, ok := validator.IsValidDate(rec.Date); !ok {
			errs = append(errs, validator.FieldError{
				Field:   prefix + "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if !validator.IsInSlice(rec.Status, PersistableStatuses) {
			errs = append(errs, validator.FieldError{
				Field:   prefix + "status",
				Message: "status must be one of: present, absent, half-day, late",
			})
		}
		if rec.Remarks != nil && len(*rec.Remarks) > 500 {
			errs = append(errs, validator.FieldError{
				Field:   prefix + "remarks",
				Message: "remarks must not exceed 500 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs.Dedupe()
	}

	return nil
}

// ListFilter carries the query parameters of GET /attendance. A nil Status
// means "any"; the former not_set sentinel is a real filter value here since
// absence of the field already expresses "no filter".
type ListFilter struct {
	Date      *string `json:"date,omitempty"`      // YYYY-MM-DD, day-roster mode
	StartDate *string `json:"startDate,omitempty"` // YYYY-MM-DD, history mode
	EndDate   *string `json:"endDate,omitempty"`

	EmployeeID     *string `json:"employeeId,omitempty"`
	DepartmentID   *string `json:"departmentId,omitempty"`
	DesignationID  *string `json:"designationId,omitempty"`
	EmployeeName   *string `json:"employeeName,omitempty"`
	Status         *string `json:"status,omitempty"`
	ApprovalStatus *string `json:"approvalStatus,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// HistoryMode reports whether the filter selects the historical range view
// over persisted rows rather than the single-day roster join.
func (f *ListFilter) HistoryMode() bool {
	return (f.StartDate != nil && *f.StartDate != "") || (f.EndDate != nil && *f.EndDate != "")
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.FieldError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.FieldError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 10 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.FieldError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	var start, end time.Time
	if f.Date != nil && *f.Date != "" {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.FieldError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.StartDate != nil && *f.StartDate != "" {
		var ok bool
		if start, ok = validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.FieldError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		var ok bool
		if end, ok = validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.FieldError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, validator.FieldError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, FilterableStatuses) {
		errs = append(errs, validator.FieldError{
			Field:   "status",
			Message: "status must be one of: present, absent, half-day, late, leave, not_set",
		})
	}

	if f.ApprovalStatus != nil {
		valid := []string{string(ApprovalPending), string(ApprovalApproved), string(ApprovalRejected)}
		if !validator.IsInSlice(*f.ApprovalStatus, valid) {
			errs = append(errs, validator.FieldError{
				Field:   "approvalStatus",
				Message: "approvalStatus must be one of: pending, approved, rejected",
			})
		}
	}

	if len(errs) > 0 {
		return errs.Dedupe()
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employeeId"`
	EmployeeName     string    `json:"employeeName"`
	ShiftID          *string   `json:"shiftId,omitempty"`
	ShiftName        *string   `json:"shiftName,omitempty"`
	Date             string    `json:"date"`
	CheckIn          *string   `json:"checkIn,omitempty"`
	CheckOut         *string   `json:"checkOut,omitempty"`
	CheckInLocation  *Location `json:"checkInLocation,omitempty"`
	CheckOutLocation *Location `json:"checkOutLocation,omitempty"`
	CheckInPhoto     *string   `json:"checkInPhoto,omitempty"`
	CheckOutPhoto    *string   `json:"checkOutPhoto,omitempty"`
	WorkHours        *float64  `json:"workHours,omitempty"`
	Status           Status    `json:"status"`
	ApprovalStatus   string    `json:"approvalStatus"`
	ApprovedBy       *string   `json:"approvedBy,omitempty"`
	ApprovalDate     *string   `json:"approvalDate,omitempty"`
	RejectionReason  *string   `json:"rejectionReason,omitempty"`
	Remarks          *string   `json:"remarks,omitempty"`
}

// ListItem is one row of GET /attendance, shared by both query modes. In
// day-roster mode attendanceId and the check fields are null for employees
// with no record yet.
type ListItem struct {
	EmployeeID      string   `json:"employeeId"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email,omitempty"`
	DepartmentName  *string  `json:"departmentName,omitempty"`
	DesignationName *string  `json:"designationName,omitempty"`
	ShiftName       *string  `json:"shiftName,omitempty"`
	AttendanceID    *string  `json:"attendanceId,omitempty"`
	Date            string   `json:"date,omitempty"`
	CheckIn         *string  `json:"checkIn,omitempty"`
	CheckOut        *string  `json:"checkOut,omitempty"`
	WorkHours       *float64 `json:"workHours,omitempty"`
	Status          Status   `json:"status"`
	ApprovalStatus  *string  `json:"approvalStatus,omitempty"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ListResponse struct {
	Data       []ListItem `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type BulkMarkResponse struct {
	Marked int `json:"marked"`
}
