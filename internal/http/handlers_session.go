package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openfest/festival-ui-api/internal/domain/access"
	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
	"github.com/openfest/festival-ui-api/internal/service"
)

// GuardsInterface defines the guard operations the session handlers depend on.
type GuardsInterface interface {
	Authenticated(ctx context.Context, sessionID string) (*service.GrantedAccess, error)
	Require(ctx context.Context, sessionID string, req domainauth.Requirement) (*service.GrantedAccess, error)
	Master(ctx context.Context, sessionID string) (*service.GrantedAccess, error)
}

// UserLister lists all user accounts.
type UserLister interface {
	List(ctx context.Context) ([]domainauth.User, error)
}

// SessionHandlers provides the session and access-revalidation API surface
// consumed by browser-side navigation code.
type SessionHandlers struct {
	Guards GuardsInterface
	Users  UserLister
	Logger *slog.Logger
}

func (h *SessionHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// userPayload is the wire shape for a user record.
type userPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
}

func toUserPayload(u domainauth.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Active:    u.Active,
	}
}

// Session returns the caller's resolved session and fresh user record.
// GET /api/private/session.
func (h *SessionHandlers) Session(w http.ResponseWriter, r *http.Request) {
	grant, err := h.Guards.Authenticated(r.Context(), SessionIDFromRequest(r))
	if err != nil {
		WriteGuardError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user":          toUserPayload(grant.User),
		"role":          string(grant.Role),
		"expires_at":    grant.Session.ExpiresAt,
	})
}

// accessPayload is the wire shape for a route-access decision.
type accessPayload struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Role       string `json:"role,omitempty"`
}

// RouteAccess re-derives permission for a destination path on behalf of
// browser-side navigation, which bypasses the edge filter entirely once the
// app shell is loaded. It always answers 200 with a decision; a missing or
// dead session yields a login redirect decision rather than an error.
// GET /api/private/route-access?path=<destination>.
func (h *SessionHandlers) RouteAccess(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" || !strings.HasPrefix(path, "/") {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("path must be an absolute application path"),
		})
		return
	}

	grant, err := h.Guards.Authenticated(r.Context(), SessionIDFromRequest(r))
	if err != nil {
		// The revalidation contract: no usable session is itself a decision,
		// not a failure. Disabled accounts carry the error code to login.
		h.logger().DebugContext(r.Context(), "route access without session", "path", path, "error", err)
		decision := access.Revalidate(nil, path)
		if loc := inactiveRedirect(err); loc != "" {
			decision = access.RedirectTo(loc)
		}
		writeDecision(w, decision)
		return
	}

	// Revalidate against the directory role, not the session snapshot.
	sess := grant.Session
	sess.Role = grant.Role
	writeDecision(w, access.Revalidate(&sess, path))
}

func writeDecision(w http.ResponseWriter, d access.Decision) {
	WriteJSON(w, http.StatusOK, accessPayload{
		Allowed:    d.Allowed(),
		RedirectTo: d.Location,
		Role:       string(d.Role),
	})
}

// AdminUsers lists all user accounts. Restricted to the master role.
// GET /api/private/admin/users.
func (h *SessionHandlers) AdminUsers(w http.ResponseWriter, r *http.Request) {
	grant, err := h.Guards.Master(r.Context(), SessionIDFromRequest(r))
	if err != nil {
		WriteGuardError(w, err)
		return
	}

	users, err := h.Users.List(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list users failed", "error", err, "actor", grant.User.ID)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "list_users_failed",
			Err:     err,
		})
		return
	}

	payload := make([]userPayload, 0, len(users))
	for _, u := range users {
		payload = append(payload, toUserPayload(u))
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"users": payload})
}
