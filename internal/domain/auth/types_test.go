package auth

import (
	"testing"
	"time"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]Role{
		"operator":   RoleOperator,
		"admin":      RoleAdmin,
		"master":     RoleMaster,
		"":           RoleOperator,
		"superadmin": RoleOperator,
		"ADMIN":      RoleOperator, // role strings are case-sensitive
	}
	for raw, want := range cases {
		if got := NormalizeRole(raw); got != want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		role Role
		req  Requirement
		want bool
	}{
		{RoleMaster, RequireMaster, true},
		{RoleAdmin, RequireMaster, false},
		{RoleOperator, RequireMaster, false},
		{RoleMaster, RequireAdmin, true},
		{RoleAdmin, RequireAdmin, true},
		{RoleOperator, RequireAdmin, false},
		{RoleMaster, RequireOperator, true},
		{RoleAdmin, RequireOperator, true},
		{RoleOperator, RequireOperator, true},
		{RoleMaster, RequireAuthenticated, true},
		{RoleOperator, RequireAuthenticated, true},
		{RoleMaster, Requirement("bogus"), false},
	}
	for _, tt := range tests {
		if got := Satisfies(tt.role, tt.req); got != tt.want {
			t.Fatalf("Satisfies(%q, %q) = %v, want %v", tt.role, tt.req, got, tt.want)
		}
	}
}

// A role satisfying the master requirement must also satisfy every weaker
// requirement; same one level down for admin.
func TestSatisfies_Monotonic(t *testing.T) {
	roles := []Role{RoleOperator, RoleAdmin, RoleMaster}
	for _, r := range roles {
		if Satisfies(r, RequireMaster) && !(Satisfies(r, RequireAdmin) && Satisfies(r, RequireOperator)) {
			t.Fatalf("role %q satisfies master but not a weaker requirement", r)
		}
		if Satisfies(r, RequireAdmin) && !Satisfies(r, RequireOperator) {
			t.Fatalf("role %q satisfies admin but not operator", r)
		}
		if Satisfies(r, RequireOperator) && !Satisfies(r, RequireAuthenticated) {
			t.Fatalf("role %q satisfies operator but not authenticated", r)
		}
	}
}

func TestRequirement_Valid(t *testing.T) {
	for _, req := range []Requirement{RequireAuthenticated, RequireOperator, RequireAdmin, RequireMaster} {
		if !req.Valid() {
			t.Fatalf("expected %q to be valid", req)
		}
	}
	if Requirement("root").Valid() {
		t.Fatal("did not expect unknown requirement to be valid")
	}
}

func TestSession_IsOperatorTier(t *testing.T) {
	s := Session{Role: RoleOperator, ExpiresAt: time.Now().Add(time.Hour)}
	if !s.IsOperatorTier() {
		t.Fatalf("expected operator tier")
	}
}
