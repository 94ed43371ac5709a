package auth

import (
	"errors"
	"fmt"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token fails validation
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingClaims is returned when required claims are absent
	ErrMissingClaims = errors.New("token missing required claims")
)

// Claims are the custom claims carried by a session token. Sessions are
// issued by the identity provider; this service only validates them and
// resolves the tenant scope.
type Claims struct {
	Email  string   `json:"email"`
	SiteID string   `json:"siteId"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Validator validates bearer tokens with an HMAC shared secret
type Validator struct {
	secret []byte
}

// NewValidator creates a token validator
func NewValidator(secret string) *Validator {
	return &Validator{secret: []byte(secret)}
}

// Validate parses and verifies a bearer token and resolves it into a
// UserContext
func (v *Validator) Validate(tokenString string) (*UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.SiteID == "" {
		return nil, ErrMissingClaims
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrMissingClaims)
	}

	roles := make([]domain.UserRoleType, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		roles = append(roles, domain.UserRoleType(r))
	}

	return &UserContext{
		UserID: userID,
		Email:  claims.Email,
		Roles:  roles,
		SiteID: domain.SiteID(claims.SiteID),
	}, nil
}
