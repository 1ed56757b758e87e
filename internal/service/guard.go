package service

import (
	"context"
	"time"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
	apperrors "github.com/openfest/festival-ui-api/internal/errors"
	"github.com/openfest/festival-ui-api/internal/ports"
)

// Guards is the authoritative server-side authorization check, invoked inside
// privileged operations after the edge filter's cheap presence check has let
// the request through. Guards resolve the full session and the backing user
// row, then evaluate a role requirement. They are read-only and idempotent:
// the same request always yields the same decision, and a denial leaves no
// state behind. Guards never redirect; callers translate failures into page
// redirects or structured API errors.
type Guards struct {
	sessions ports.SessionStore
	users    ports.UserDirectory
}

// NewGuards constructs Guards over the session store and user directory.
func NewGuards(sessions ports.SessionStore, users ports.UserDirectory) *Guards {
	return &Guards{sessions: sessions, users: users}
}

// GrantedAccess is what a successful guard evaluation hands to the operation:
// the session, the fresh user row, and the effective role.
type GrantedAccess struct {
	Session domainauth.Session
	User    domainauth.User
	// Role is taken from the user directory, not the session snapshot, so a
	// role change by an administrator takes effect on the caller's very next
	// request.
	Role domainauth.Role
}

// Authenticated resolves the caller's full session and user record.
// Fails Unauthenticated when no valid session exists, and AccountInactive
// when the account has been administratively disabled.
func (g *Guards) Authenticated(ctx context.Context, sessionID string) (*GrantedAccess, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthenticated("no session credentials")
	}

	sess, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "no valid session")
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, apperrors.Unauthenticated("session expired")
	}

	user, err := g.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "session references unknown user")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.AccountInactive(user.ID)
	}

	return &GrantedAccess{Session: sess, User: user, Role: user.Role}, nil
}

// Require evaluates a role requirement on top of Authenticated. An
// unrecognized requirement fails loudly with InvalidRequirement and never
// downgrades to allow.
func (g *Guards) Require(ctx context.Context, sessionID string, req domainauth.Requirement) (*GrantedAccess, error) {
	if !req.Valid() {
		return nil, apperrors.InvalidRequirement(req)
	}

	grant, err := g.Authenticated(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !domainauth.Satisfies(grant.Role, req) {
		return nil, apperrors.Forbidden(req, grant.Role)
	}
	return grant, nil
}

// Master requires the master role.
func (g *Guards) Master(ctx context.Context, sessionID string) (*GrantedAccess, error) {
	return g.Require(ctx, sessionID, domainauth.RequireMaster)
}

// Admin requires admin or master.
func (g *Guards) Admin(ctx context.Context, sessionID string) (*GrantedAccess, error) {
	return g.Require(ctx, sessionID, domainauth.RequireAdmin)
}

// Operator requires any operator-tier role.
func (g *Guards) Operator(ctx context.Context, sessionID string) (*GrantedAccess, error) {
	return g.Require(ctx, sessionID, domainauth.RequireOperator)
}
