package httpx

import (
	"net/http"

	"github.com/openfest/festival-ui-api/internal/domain/access"
	apperrors "github.com/openfest/festival-ui-api/internal/errors"
)

// WriteGuardError translates a guard failure at an API boundary into a
// structured JSON response: 401 for missing/invalid sessions and disabled
// accounts, 403 for insufficient role, 500 for programmer errors.
func WriteGuardError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsUnauthenticated(err):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: err})
	case apperrors.IsAccountInactive(err):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: string(apperrors.ErrCodeAccountInactive), Err: err})
	case apperrors.IsForbidden(err):
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "insufficient_permissions", Err: err})
	default:
		// Includes InvalidRequirement: surfaced hard, never interpreted.
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "internal", Err: err})
	}
}

// inactiveRedirect returns the login error redirect for disabled accounts,
// or "" when the failure is anything else.
func inactiveRedirect(err error) string {
	if apperrors.IsAccountInactive(err) {
		return access.LoginErrorRedirect(access.ErrorAccountInactive)
	}
	return ""
}

// RedirectGuardError translates a guard failure at a page boundary into a
// redirect. No session goes to login with the destination preserved, a
// disabled account goes to login with an explanatory error code, and an
// authenticated caller with too little privilege goes to their own tier's
// landing page rather than back to login.
func RedirectGuardError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.IsUnauthenticated(err):
		http.Redirect(w, r, access.LoginRedirect(r.URL.Path, r.URL.RawQuery), http.StatusSeeOther)
	case apperrors.IsAccountInactive(err):
		http.Redirect(w, r, access.LoginErrorRedirect(access.ErrorAccountInactive), http.StatusSeeOther)
	case apperrors.IsForbidden(err):
		http.Redirect(w, r, access.LandingPathForRole(apperrors.GetActualRole(err)), http.StatusSeeOther)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
