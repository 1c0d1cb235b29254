package attendance

import (
	"github.com/arusdata/hrm-backend-go/internal/domain/auth"
	"github.com/arusdata/hrm-backend-go/internal/domain/user"
)

// IsSelfApproval reports whether the caller is deciding their own record.
// This holds regardless of role; an admin cannot approve themselves either.
func IsSelfApproval(caller auth.Identity, employeeID string) bool {
	return caller.EmployeeID != "" && caller.EmployeeID == employeeID
}

// CanApprove reports whether the caller may decide a record belonging to
// the employee with the given reporting manager. Roles with approve-any
// pass outright; everyone else must be the employee's reporting manager.
func CanApprove(caller auth.Identity, reportingManagerID *string) bool {
	if user.HasPermission(caller.Role, user.PermissionAttendanceApproveAny) {
		return true
	}
	return caller.EmployeeID != "" &&
		reportingManagerID != nil &&
		*reportingManagerID == caller.EmployeeID
}
