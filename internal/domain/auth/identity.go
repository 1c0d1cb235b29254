package auth

import (
	"context"

	"github.com/arusdata/hrm-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the verified caller context every core operation receives.
// Token issuance happens outside this service; by the time a request reaches
// a handler the verifier middleware has already validated the signature.
type Identity struct {
	UserID         string
	EmployeeID     string
	OrganizationID string
	Role           user.Role
}

// IdentityFromContext resolves the caller identity from the verified JWT
// claims placed on the request context by jwtauth.Verifier.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrMissingCaller
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return Identity{}, ErrMissingTenant
	}

	// employee_id is absent for service accounts; role defaults are handled
	// by ParseRole.
	employeeID, _ := claims["employee_id"].(string)
	roleStr, _ := claims["role"].(string)

	return Identity{
		UserID:         userID,
		EmployeeID:     employeeID,
		OrganizationID: organizationID,
		Role:           user.ParseRole(roleStr),
	}, nil
}
