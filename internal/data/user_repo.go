package data

// Package data provides PostgreSQL-backed repositories. The pgx driver is
// registered through its database/sql bridge in bootstrap.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
	apperrors "github.com/openfest/festival-ui-api/internal/errors"
)

// UserRepo reads the festival user directory, including the active flag the
// guards consult on every authenticated request.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, email, first_name, last_name, role, active, created_at`

// GetByID fetches a single user row. Returns a NotFound AppError when the id
// is unknown.
func (r *UserRepo) GetByID(ctx context.Context, id string) (domainauth.User, error) {
	if id == "" {
		return domainauth.User{}, apperrors.Validation("user id is required")
	}

	row := r.DB.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domainauth.User{}, apperrors.NotFoundf("user %s not found", id)
		}
		return domainauth.User{}, apperrors.MapDBError(fmt.Errorf("get user: %w", err))
	}
	return u, nil
}

// List returns all users ordered by email.
func (r *UserRepo) List(ctx context.Context) ([]domainauth.User, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY email`)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list users: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var users []domainauth.User
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, apperrors.MapDBError(fmt.Errorf("scan user: %w", scanErr))
		}
		users = append(users, u)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("iterate users: %w", rowsErr))
	}
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser decodes one user row. The role column is normalized here, the
// single boundary where raw strings become typed roles.
func scanUser(row rowScanner) (domainauth.User, error) {
	var (
		u       domainauth.User
		rawRole string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &rawRole, &u.Active, &u.CreatedAt); err != nil {
		return domainauth.User{}, err
	}
	u.Role = domainauth.NormalizeRole(rawRole)
	return u, nil
}
