package response

import (
	"errors"
	"net/http"

	"github.com/arusdata/hrm-backend-go/internal/domain/attendance"
	"github.com/arusdata/hrm-backend-go/internal/domain/auth"
	"github.com/arusdata/hrm-backend-go/internal/domain/employee"
	"github.com/arusdata/hrm-backend-go/internal/domain/user"
	"github.com/arusdata/hrm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationFailed(w, validationErrs, "body")
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingTenant),
		errors.Is(err, auth.ErrMissingCaller):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrForbidden),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Attendance lifecycle errors
	case errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrAlreadyDecided):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrDuplicateRecord),
		errors.Is(err, attendance.ErrCheckInNotToday),
		errors.Is(err, attendance.ErrEmployeeOnLeave),
		errors.Is(err, attendance.ErrOutsideOfficeRadius),
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn),
		errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, err.Error())
	case errors.Is(err, attendance.ErrSelfApproval),
		errors.Is(err, attendance.ErrNotAuthorizedToAct):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
