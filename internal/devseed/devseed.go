// Package devseed populates a development database with a known set of user
// accounts so the mock auth mode has directory rows to resolve against.
// Never wired in production; the entrypoint runs it only in dev mode.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/openfest/festival-ui-api/config"
	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
)

// Deps bundles the dependencies needed for development seeding.
type Deps struct {
	DB     *sql.DB
	Auth   config.AuthConfig
	Logger *slog.Logger
}

type seedUser struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Role      domainauth.Role
	Active    bool
}

// Run upserts the development user accounts. Safe to call repeatedly; the
// dev-auth identity from config is included so mock logins resolve to an
// active row.
func Run(ctx context.Context, deps Deps) error {
	if deps.DB == nil {
		return fmt.Errorf("devseed requires a database connection")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := []seedUser{
		{ID: "dev-master", Email: "master@festival.local", FirstName: "Maja", LastName: "Holm", Role: domainauth.RoleMaster, Active: true},
		{ID: "dev-admin", Email: "admin@festival.local", FirstName: "Jonas", LastName: "Berg", Role: domainauth.RoleAdmin, Active: true},
		{ID: "dev-operator", Email: "operator@festival.local", FirstName: "Sara", LastName: "Lind", Role: domainauth.RoleOperator, Active: true},
		{ID: "dev-inactive", Email: "inactive@festival.local", FirstName: "Nils", LastName: "Dahl", Role: domainauth.RoleOperator, Active: false},
	}

	if deps.Auth.DevAuth.UserID != "" {
		users = append(users, seedUser{
			ID:        deps.Auth.DevAuth.UserID,
			Email:     deps.Auth.DevAuth.Email,
			FirstName: "Dev",
			LastName:  "User",
			Role:      devRoleFromGroups(deps.Auth),
			Active:    true,
		})
	}

	for _, u := range users {
		if err := upsertUser(ctx, deps.DB, u); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "development users seeded", "count", len(users))
	return nil
}

func devRoleFromGroups(cfg config.AuthConfig) domainauth.Role {
	for _, g := range cfg.DevAuth.Groups {
		switch g {
		case cfg.MasterGroup:
			return domainauth.RoleMaster
		case cfg.AdminGroup:
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleOperator
}

func upsertUser(ctx context.Context, db *sql.DB, u seedUser) error {
	const q = `
		INSERT INTO users (id, email, first_name, last_name, role, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role = EXCLUDED.role,
			active = EXCLUDED.active`
	if _, err := db.ExecContext(ctx, q, u.ID, u.Email, u.FirstName, u.LastName, string(u.Role), u.Active); err != nil {
		return fmt.Errorf("seed user %s: %w", u.ID, err)
	}
	return nil
}
