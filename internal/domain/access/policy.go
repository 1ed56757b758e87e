package access

// Package access defines the route-classification and role-requirement policy
// shared by the edge filter, the server-side guards, and the client
// revalidator. The three enforcement points differ only in how they react to
// a failed check; what they check lives here, exactly once.

import (
	"strings"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
)

// Classification categorizes a request path. It is recomputed per request
// and never persisted.
type Classification string

const (
	// ClassPublic paths are served without any session check.
	ClassPublic Classification = "public"
	// ClassProtectedPage paths require a session; unauthenticated document
	// requests are redirected to login.
	ClassProtectedPage Classification = "protected_page"
	// ClassProtectedAPI paths require a session; unauthenticated calls get a
	// structured 401 and are never redirected.
	ClassProtectedAPI Classification = "protected_api"
)

// Well-known paths referenced across the HTTP layer.
const (
	LoginPath        = "/login"
	PrivateAPIPrefix = "/api/private"

	// RedirectParam carries the originally requested path+query through the
	// login flow so the user lands back where they started.
	RedirectParam = "redirectTo"
	// ErrorParam carries a machine-readable denial code to the login page.
	ErrorParam = "error"
	// ErrorAccountInactive is the ErrorParam value for administratively
	// disabled accounts.
	ErrorAccountInactive = "account_inactive"
)

// publicPrefixes is the fixed set of unauthenticated entry points. A prefix
// wrongly listed here is a full authorization bypass; the set is tested
// exhaustively in policy_test.go.
var publicPrefixes = []string{
	LoginPath,
	"/register",
	"/password-reset",
	"/auth/", // authentication provider callback namespace
	"/static/",
	"/healthz",
}

// RoutePolicy binds a path prefix to the minimum requirement for serving it.
type RoutePolicy struct {
	Prefix      string
	Requirement domainauth.Requirement
}

// routePolicies is the protected-page allow-list, evaluated first-match in
// order. Every new protected route group must be added here; nothing else in
// the repository maps paths to requirements.
var routePolicies = []RoutePolicy{
	{Prefix: "/dashboard", Requirement: domainauth.RequireAdmin},
	{Prefix: "/settings", Requirement: domainauth.RequireOperator},
	{Prefix: "/events", Requirement: domainauth.RequireOperator},
	{Prefix: "/judging", Requirement: domainauth.RequireOperator},
	{Prefix: "/profile", Requirement: domainauth.RequireOperator},
}

// RoutePolicies returns a copy of the protected-page policy table, in
// evaluation order.
func RoutePolicies() []RoutePolicy {
	out := make([]RoutePolicy, len(routePolicies))
	copy(out, routePolicies)
	return out
}

// PublicPrefixes returns a copy of the public prefix set.
func PublicPrefixes() []string {
	out := make([]string, len(publicPrefixes))
	copy(out, publicPrefixes)
	return out
}

// Options controls classification posture.
type Options struct {
	// DefaultDeny treats any path that is neither public nor explicitly
	// listed as a protected page requiring authentication. The historical
	// posture is permissive (unlisted paths are public); flipping this makes
	// the fallback an auditable choice instead of an unmatched case.
	DefaultDeny bool
}

// Classify maps a path to its classification using the permissive default
// posture.
func Classify(path string) Classification {
	return ClassifyWith(path, Options{})
}

// ClassifyWith maps a path to its classification under the given options.
func ClassifyWith(path string, opts Options) Classification {
	if path == "/" || isPublic(path) {
		return ClassPublic
	}
	if strings.HasPrefix(path, PrivateAPIPrefix) {
		return ClassProtectedAPI
	}
	if _, ok := RequirementForPath(path); ok {
		return ClassProtectedPage
	}
	if opts.DefaultDeny {
		return ClassProtectedPage
	}
	return ClassPublic
}

// RequirementForPath returns the role requirement for a protected-page path,
// first match wins. The second return is false when the path is not in the
// protected table.
func RequirementForPath(path string) (domainauth.Requirement, bool) {
	for _, p := range routePolicies {
		if strings.HasPrefix(path, p.Prefix) {
			return p.Requirement, true
		}
	}
	return "", false
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// LandingPathForRole returns the safe default page for an authenticated
// caller of the given role. A forbidden page request redirects here rather
// than to login: the caller is someone, just not someone privileged enough,
// and the two cases must not look identical.
func LandingPathForRole(role domainauth.Role) string {
	if domainauth.Satisfies(role, domainauth.RequireAdmin) {
		return "/dashboard"
	}
	return "/events"
}
