package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrDuplicateRecord     = errors.New("attendance already recorded for this employee and date")
	ErrCheckInNotToday     = errors.New("check-in can only be marked for today")
	ErrEmployeeOnLeave     = errors.New("employee is on approved leave for this date")
	ErrOutsideOfficeRadius = errors.New("check-in location is outside the allowed office radius")

	// Check-out errors
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must not be before check-in time")
	ErrNotCheckedIn          = errors.New("attendance has no check-in to close")
	ErrAlreadyCheckedOut     = errors.New("attendance has already been checked out")

	// Approval errors
	ErrSelfApproval       = errors.New("employees cannot approve their own attendance")
	ErrNotAuthorizedToAct = errors.New("caller is not authorized to decide this attendance record")
	ErrAlreadyDecided     = errors.New("attendance has already been approved or rejected")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
