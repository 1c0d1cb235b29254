package attendance

import (
	"testing"

	"github.com/arusdata/hrm-backend-go/internal/domain/auth"
	"github.com/arusdata/hrm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func identity(employeeID string, role user.Role) auth.Identity {
	return auth.Identity{
		UserID:         "user-" + employeeID,
		EmployeeID:     employeeID,
		OrganizationID: "org-1",
		Role:           role,
	}
}

func strPtr(s string) *string { return &s }

func TestIsSelfApproval(t *testing.T) {
	assert.True(t, IsSelfApproval(identity("emp-1", user.RoleAdmin), "emp-1"))
	assert.False(t, IsSelfApproval(identity("emp-2", user.RoleAdmin), "emp-1"))

	// service accounts have no employee identity and never self-approve
	svc := auth.Identity{UserID: "svc", OrganizationID: "org-1", Role: user.RoleAdmin}
	assert.False(t, IsSelfApproval(svc, "emp-1"))
}

func TestCanApprove(t *testing.T) {
	tests := []struct {
		name      string
		caller    auth.Identity
		managerID *string
		want      bool
	}{
		{"admin approves anyone", identity("emp-9", user.RoleAdmin), nil, true},
		{"manager of the employee", identity("emp-2", user.RoleManager), strPtr("emp-2"), true},
		{"manager of someone else", identity("emp-2", user.RoleManager), strPtr("emp-3"), false},
		{"manager with no reporting line", identity("emp-2", user.RoleManager), nil, false},
		{"hr is not a blanket approver", identity("emp-4", user.RoleHR), strPtr("emp-5"), false},
		{"reporting line outranks role", identity("emp-6", user.RoleView), strPtr("emp-6"), true},
		{"service account without reporting line", auth.Identity{UserID: "svc", OrganizationID: "org-1", Role: user.RoleManager}, strPtr("emp-7"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanApprove(tt.caller, tt.managerID))
		})
	}
}
