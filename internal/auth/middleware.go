package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middleware authenticates requests. Bearer tokens resolve a user and
// their site scope; the x-api-key header authorizes system calls with
// superadmin scope.
type Middleware struct {
	validator *Validator
	apiKey    string
	logger    *zap.Logger
}

// NewMiddleware creates the auth middleware
func NewMiddleware(validator *Validator, apiKey string, logger *zap.Logger) *Middleware {
	return &Middleware{
		validator: validator,
		apiKey:    apiKey,
		logger:    logger,
	}
}

// RequireAuth rejects requests without a valid bearer token or API key
// and stores the resolved UserContext on the request context
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("x-api-key"); key != "" && m.apiKey != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1 {
				system := &UserContext{
					UserID: uuid.Nil,
					Email:  "system",
					Roles:  []domain.UserRoleType{domain.RoleSuperAdmin},
				}
				next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), system)))
				return
			}
			m.logger.Warn("rejected request with invalid api key", zap.String("path", r.URL.Path))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := m.validator.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			m.logger.Warn("rejected request with invalid token",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
	})
}
