package user

type Permission string

const (
	// Attendance
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCheckIn Permission = "attendance.check_in"
	PermissionAttendanceBulk    Permission = "attendance.bulk_mark"

	// Approval. Managers approve their direct reports only; that part is a
	// per-record predicate, not a permission, so it is not listed here.
	PermissionAttendanceApproveAny Permission = "attendance.approve_any"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewAll,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCheckIn,
		PermissionAttendanceBulk,
		PermissionAttendanceApproveAny,
	},
	RoleHR: {
		PermissionAttendanceViewAll,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCheckIn,
		PermissionAttendanceBulk,
	},
	RoleManager: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCheckIn,
	},
	RoleView: {
		PermissionAttendanceViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// CanViewAll reports whether the role sees every employee's records in the
// historical listing; managers fall back to reporting-line scoping.
func CanViewAll(role Role) bool {
	return HasPermission(role, PermissionAttendanceViewAll)
}
