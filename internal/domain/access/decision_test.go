package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
)

func TestEvaluateEdge_PublicPassesWithoutSession(t *testing.T) {
	for _, p := range []string{"/", "/login", "/static/app.js", "/healthz", "/auth/callback"} {
		d := EvaluateEdge(p, "", false)
		assert.Equal(t, KindAllow, d.Kind, "path %q", p)
	}
}

func TestEvaluateEdge_SessionPresencePasses(t *testing.T) {
	// Presence defers full verification to the guards; the edge filter only
	// stops trivially unauthenticated traffic.
	d := EvaluateEdge("/dashboard", "", true)
	assert.Equal(t, KindAllow, d.Kind)

	d = EvaluateEdge("/api/private/session", "", true)
	assert.Equal(t, KindAllow, d.Kind)
}

func TestEvaluateEdge_APIWithoutSessionDenies(t *testing.T) {
	d := EvaluateEdge("/api/private/admin/users", "", false)
	assert.Equal(t, KindDeny, d.Kind)
	assert.Equal(t, "unauthorized", d.Reason)
	assert.Empty(t, d.Location, "API denials never redirect")
}

func TestEvaluateEdge_PageWithoutSessionRedirects(t *testing.T) {
	d := EvaluateEdge("/dashboard/settings", "", false)
	assert.Equal(t, KindRedirect, d.Kind)
	assert.Equal(t, "/login?redirectTo=%2Fdashboard%2Fsettings", d.Location)
}

func TestEvaluateEdge_RedirectPreservesQuery(t *testing.T) {
	d := EvaluateEdge("/events", "page=2&sort=name", false)
	assert.Equal(t, KindRedirect, d.Kind)
	assert.Equal(t, "/login?redirectTo=%2Fevents%3Fpage%3D2%26sort%3Dname", d.Location)
}

func TestEvaluateEdge_DefaultDeny(t *testing.T) {
	d := EvaluateEdgeWith("/totally-new-area", "", false, Options{DefaultDeny: true})
	assert.Equal(t, KindRedirect, d.Kind)

	d = EvaluateEdgeWith("/totally-new-area", "", false, Options{})
	assert.Equal(t, KindAllow, d.Kind)
}

func TestRevalidate_NoSessionRedirectsToLogin(t *testing.T) {
	d := Revalidate(nil, "/dashboard")
	assert.Equal(t, KindRedirect, d.Kind)
	assert.Equal(t, "/login?redirectTo=%2Fdashboard", d.Location)
}

func TestRevalidate_InsufficientRoleRedirectsToOwnLanding(t *testing.T) {
	sess := domainauth.Session{ID: "s1", UserID: "op-1", Role: domainauth.RoleOperator}
	d := Revalidate(&sess, "/dashboard")
	assert.Equal(t, KindRedirect, d.Kind)
	// Authenticated but under-privileged: back to the operator's own landing
	// page, not to login.
	assert.Equal(t, "/events", d.Location)
}

func TestRevalidate_SufficientRoleAllows(t *testing.T) {
	sess := domainauth.Session{ID: "s1", UserID: "adm-1", Role: domainauth.RoleAdmin}
	d := Revalidate(&sess, "/dashboard")
	assert.Equal(t, KindAllow, d.Kind)
	assert.Equal(t, "adm-1", d.UserID)
	assert.Equal(t, domainauth.RoleAdmin, d.Role)
}

func TestRevalidate_UnlistedPathAllows(t *testing.T) {
	sess := domainauth.Session{ID: "s1", UserID: "op-1", Role: domainauth.RoleOperator}
	d := Revalidate(&sess, "/about")
	assert.Equal(t, KindAllow, d.Kind)
}

func TestLoginErrorRedirect(t *testing.T) {
	assert.Equal(t, "/login?error=account_inactive", LoginErrorRedirect(ErrorAccountInactive))
}
