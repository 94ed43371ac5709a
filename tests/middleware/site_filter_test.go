package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizzul/santini-manager-sub003/internal/auth"
	"github.com/bizzul/santini-manager-sub003/internal/domain"
	"github.com/bizzul/santini-manager-sub003/internal/http/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func requestAs(t *testing.T, user *auth.UserContext, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(auth.WithUserContext(req.Context(), user))
}

func operatorAt(siteID domain.SiteID) *auth.UserContext {
	return &auth.UserContext{
		UserID: uuid.New(),
		SiteID: siteID,
		Roles:  []domain.UserRoleType{domain.RoleOperator},
	}
}

func superAdmin() *auth.UserContext {
	return &auth.UserContext{
		UserID: uuid.New(),
		Roles:  []domain.UserRoleType{domain.RoleSuperAdmin},
	}
}

func TestSiteFilter_SuperAdminNarrowsToSite(t *testing.T) {
	m := middleware.NewSiteFilterMiddleware(zap.NewNop())

	var effective *domain.SiteID
	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		effective = auth.GetEffectiveSiteFilter(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := requestAs(t, superAdmin(), "/api/v1/dashboard/metrics?site_id=site-b")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, effective)
	assert.Equal(t, domain.SiteID("site-b"), *effective)
}

func TestSiteFilter_SuperAdminWithoutParamSpansAllSites(t *testing.T) {
	m := middleware.NewSiteFilterMiddleware(zap.NewNop())

	called := false
	var effective *domain.SiteID
	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		effective = auth.GetEffectiveSiteFilter(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := requestAs(t, superAdmin(), "/api/v1/dashboard/metrics")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Nil(t, effective)
}

func TestSiteFilter_OperatorMayRequestOwnSite(t *testing.T) {
	m := middleware.NewSiteFilterMiddleware(zap.NewNop())

	var effective *domain.SiteID
	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		effective = auth.GetEffectiveSiteFilter(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := requestAs(t, operatorAt("site-a"), "/api/v1/dashboard/metrics?site_id=site-a")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, effective)
	assert.Equal(t, domain.SiteID("site-a"), *effective)
}

func TestSiteFilter_OperatorCrossSiteIsForbidden(t *testing.T) {
	m := middleware.NewSiteFilterMiddleware(zap.NewNop())

	called := false
	handler := m.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := requestAs(t, operatorAt("site-a"), "/api/v1/dashboard/metrics?site_id=site-b")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)
}
