package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
	apperrors "github.com/openfest/festival-ui-api/internal/errors"
	"github.com/openfest/festival-ui-api/internal/service"
)

func TestPageHandlers_Protected_RendersShell(t *testing.T) {
	handlers := &PageHandlers{Guards: &mockGuards{}}

	w := httptest.NewRecorder()
	handlers.Protected(w, sessionRequest("/events"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `data-role="operator"`)
	assert.Contains(t, body, `data-user-name="Kim Larsen"`)
	assert.Contains(t, body, "Festival | Events")
}

func TestPageHandlers_Protected_RequirementFromPolicy(t *testing.T) {
	var gotReq domainauth.Requirement
	handlers := &PageHandlers{Guards: &mockGuards{
		requireFunc: func(_ context.Context, _ string, req domainauth.Requirement) (*service.GrantedAccess, error) {
			gotReq = req
			return grantFor(domainauth.RoleAdmin), nil
		},
	}}

	w := httptest.NewRecorder()
	handlers.Protected(w, sessionRequest("/dashboard/settings"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domainauth.RequireAdmin, gotReq)
}

func TestPageHandlers_Protected_NoSessionRedirectsToLogin(t *testing.T) {
	handlers := &PageHandlers{Guards: &mockGuards{}}

	req := httptest.NewRequest(http.MethodGet, "/events?page=2", nil)
	w := httptest.NewRecorder()
	handlers.Protected(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirectTo=%2Fevents%3Fpage%3D2", w.Header().Get("Location"))
}

func TestPageHandlers_Protected_InactiveAccount(t *testing.T) {
	handlers := &PageHandlers{Guards: &mockGuards{
		requireFunc: func(_ context.Context, _ string, _ domainauth.Requirement) (*service.GrantedAccess, error) {
			return nil, apperrors.AccountInactive("user-1")
		},
	}}

	w := httptest.NewRecorder()
	handlers.Protected(w, sessionRequest("/events"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?error=account_inactive", w.Header().Get("Location"))
}

func TestPageHandlers_Protected_ForbiddenLandsOnOwnTier(t *testing.T) {
	handlers := &PageHandlers{Guards: &mockGuards{}}

	// Operator asking for the admin dashboard goes home, not to login.
	w := httptest.NewRecorder()
	handlers.Protected(w, sessionRequest("/dashboard"))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/events", w.Header().Get("Location"))
}

func TestPageHandlers_Protected_AdminForbiddenFromNothing(t *testing.T) {
	handlers := &PageHandlers{Guards: &mockGuards{
		authenticatedFunc: func(_ context.Context, sessionID string) (*service.GrantedAccess, error) {
			if sessionID == "" {
				return nil, apperrors.Unauthenticated("no session credentials")
			}
			return grantFor(domainauth.RoleAdmin), nil
		},
	}}

	w := httptest.NewRecorder()
	handlers.Protected(w, sessionRequest("/dashboard"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-role="admin"`)
}
