package access

import (
	"net/url"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
)

// DecisionKind enumerates the outcomes of an access evaluation.
type DecisionKind string

const (
	KindAllow    DecisionKind = "allow"
	KindRedirect DecisionKind = "redirect"
	KindDeny     DecisionKind = "deny"
)

// Decision is the output of an access evaluation. It carries enough for the
// caller to act (pass through, redirect, or emit a structured error) without
// re-deriving anything.
type Decision struct {
	Kind DecisionKind

	// Populated for KindAllow.
	UserID string
	Role   domainauth.Role

	// Populated for KindRedirect: target path including preserved query.
	Location string

	// Populated for KindDeny: machine-readable reason.
	Reason string
}

// Allowed reports whether the decision permits the request.
func (d Decision) Allowed() bool { return d.Kind == KindAllow }

// Allow builds an allow decision for the given session.
func Allow(sess domainauth.Session) Decision {
	return Decision{Kind: KindAllow, UserID: sess.UserID, Role: sess.Role}
}

// RedirectTo builds a redirect decision.
func RedirectTo(location string) Decision {
	return Decision{Kind: KindRedirect, Location: location}
}

// Deny builds a deny decision.
func Deny(reason string) Decision {
	return Decision{Kind: KindDeny, Reason: reason}
}

// LoginRedirect returns the login URL carrying the originally requested
// path+query so the login flow can return the caller to their destination.
func LoginRedirect(path, rawQuery string) string {
	target := path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return LoginPath + "?" + RedirectParam + "=" + url.QueryEscape(target)
}

// LoginErrorRedirect returns the login URL carrying a denial code (e.g.
// account_inactive) so the login page can render a specific message instead
// of a silent loop.
func LoginErrorRedirect(code string) string {
	return LoginPath + "?" + ErrorParam + "=" + url.QueryEscape(code)
}

// EvaluateEdge is the fast-path rule applied once per incoming request,
// before any handler. hasSession is a cookie-presence signal only; full
// session resolution is the guards' job downstream. This stage exists to
// short-circuit trivially unauthenticated traffic without a session-store
// round trip, not to be the authority.
func EvaluateEdge(path, rawQuery string, hasSession bool) Decision {
	return EvaluateEdgeWith(path, rawQuery, hasSession, Options{})
}

// EvaluateEdgeWith is EvaluateEdge under explicit classification options.
func EvaluateEdgeWith(path, rawQuery string, hasSession bool, opts Options) Decision {
	switch ClassifyWith(path, opts) {
	case ClassPublic:
		return Decision{Kind: KindAllow}
	case ClassProtectedAPI:
		if hasSession {
			return Decision{Kind: KindAllow}
		}
		return Deny("unauthorized")
	default: // ClassProtectedPage
		if hasSession {
			return Decision{Kind: KindAllow}
		}
		return RedirectTo(LoginRedirect(path, rawQuery))
	}
}

// Revalidate re-derives permission from a fully resolved session for a path,
// mirroring the guards' role requirements. It closes the gap the edge filter
// leaves open: cookie presence says nothing about role, and client-side
// navigations between protected pages never reach the edge filter at all.
// A nil session means resolution finished with no session; callers with a
// pending resolution hold rendering and do not call this yet.
func Revalidate(sess *domainauth.Session, path string) Decision {
	if sess == nil {
		return RedirectTo(LoginRedirect(path, ""))
	}
	req, ok := RequirementForPath(path)
	if !ok {
		// Not a protected page; nothing to re-check here.
		return Allow(*sess)
	}
	if !domainauth.Satisfies(sess.Role, req) {
		return RedirectTo(LandingPathForRole(sess.Role))
	}
	return Allow(*sess)
}
