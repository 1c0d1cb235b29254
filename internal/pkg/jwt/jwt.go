package jwt

import (
	"time"

	"github.com/arusdata/hrm-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service mints and verifies the access tokens that carry the caller's
// tenant scope. Credential verification and token refresh live outside this
// service; the attendance core only ever reads verified claims.
type Service interface {
	GenerateAccessToken(userID, employeeID, organizationID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type jwtService struct {
	expiration string
	tokenAuth  *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpiration string) Service {
	return &jwtService{
		expiration: accessTokenExpiration,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *jwtService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *jwtService) GenerateAccessToken(userID, employeeID, organizationID string, role user.Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.expiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":         userID,
		"employee_id":     employeeID,
		"organization_id": organizationID,
		"role":            string(role),
		"type":            "access",
		"exp":             expiresAt,
	})
	return tokenString, expiresAt, err
}
