package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRouter(cfg ...RouterServices) http.Handler {
	services := RouterServices{
		Auth:   &mockAuthService{},
		Guards: &mockGuards{},
	}
	if len(cfg) > 0 {
		services = cfg[0]
	}
	return NewRouter(services)
}

func TestRouter_Healthz(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_LoginReachableWithoutSession(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusFound, w.Code)
}

func TestRouter_ProtectedPageGatedAtEdge(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirectTo=%2Fevents", w.Header().Get("Location"))
}

func TestRouter_ProtectedPageServedWithSession(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, sessionRequest("/events"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestRouter_PolicySubtreeRouted(t *testing.T) {
	router := testRouter()

	// Every protected prefix and its subtree must resolve to the page
	// handler, not a 404, so the policy table alone controls page access.
	for _, target := range []string{"/dashboard", "/dashboard/reports", "/settings", "/events/42", "/judging", "/profile"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, sessionRequest(target))
		assert.NotEqual(t, http.StatusNotFound, w.Code, target)
	}
}

func TestRouter_PrivateAPIGatedAtEdge(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/private/session", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
}

func TestRouter_SessionEndpointWithSession(t *testing.T) {
	router := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, sessionRequest("/api/private/session"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}
