package devseed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfest/festival-ui-api/config"
	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
	"github.com/openfest/festival-ui-api/internal/testutil"
)

func TestDevRoleFromGroups(t *testing.T) {
	cfg := config.AuthConfig{MasterGroup: "masters", AdminGroup: "admins"}

	cfg.DevAuth.Groups = []string{"masters"}
	assert.Equal(t, domainauth.RoleMaster, devRoleFromGroups(cfg))

	cfg.DevAuth.Groups = []string{"admins"}
	assert.Equal(t, domainauth.RoleAdmin, devRoleFromGroups(cfg))

	cfg.DevAuth.Groups = []string{"masters", "admins"}
	assert.Equal(t, domainauth.RoleMaster, devRoleFromGroups(cfg))

	cfg.DevAuth.Groups = []string{"staff"}
	assert.Equal(t, domainauth.RoleOperator, devRoleFromGroups(cfg))
}

func TestRun_SeedsAndIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)

	authCfg := config.AuthConfig{MasterGroup: "masters", AdminGroup: "admins"}
	authCfg.DevAuth.UserID = "dev-user"
	authCfg.DevAuth.Email = "dev@example.com"
	authCfg.DevAuth.Groups = []string{"admins"}

	require.NoError(t, Run(context.Background(), Deps{DB: db, Auth: authCfg}))
	// Second run must update in place, not fail on conflicts.
	require.NoError(t, Run(context.Background(), Deps{DB: db, Auth: authCfg}))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 5, count)

	var role string
	require.NoError(t, db.QueryRow("SELECT role FROM users WHERE id = 'dev-user'").Scan(&role))
	assert.Equal(t, "admin", role)
}
