package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
	"github.com/openfest/festival-ui-api/internal/mocks"
	"github.com/openfest/festival-ui-api/internal/ports"
)

// fakeProvider is a minimal AuthProvider double with deterministic outputs.
type fakeProvider struct {
	beginErr    error
	exchangeErr error
	identity    domainauth.Identity
}

func (f *fakeProvider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	if f.beginErr != nil {
		return "", "", "", f.beginErr
	}
	return "https://idp.example/auth", "state-1", "nonce-1", nil
}

func (f *fakeProvider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	if f.exchangeErr != nil {
		return domainauth.Identity{}, f.exchangeErr
	}
	return f.identity, nil
}

type fixedRoleMapper struct{ role domainauth.Role }

func (m fixedRoleMapper) Map(_ []string) domainauth.Role { return m.role }

func newAuthService(t *testing.T, provider ports.AuthProvider, role domainauth.Role) (*mocks.MockSessionStore, *AuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	sessions := mocks.NewMockSessionStore(ctrl)
	svc := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: sessions,
		Roles:    fixedRoleMapper{role: role},
	})
	return sessions, svc
}

func TestAuthService_BeginLogin(t *testing.T) {
	t.Parallel()
	_, svc := newAuthService(t, &fakeProvider{}, domainauth.RoleOperator)

	result, err := svc.BeginLogin(context.Background(), "/dashboard")
	require.NoError(t, err)
	assert.Equal(t, "https://idp.example/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)
}

func TestAuthService_BeginLogin_RequiresRedirect(t *testing.T) {
	t.Parallel()
	_, svc := newAuthService(t, &fakeProvider{}, domainauth.RoleOperator)

	_, err := svc.BeginLogin(context.Background(), "")
	assert.Error(t, err)
}

func TestAuthService_CompleteLogin(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{identity: domainauth.Identity{
		UserID:    "user-7",
		Email:     "judge@festival.example",
		Groups:    []string{"festival-admins"},
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	sessions, svc := newAuthService(t, provider, domainauth.RoleAdmin)

	var saved domainauth.Session
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sess domainauth.Session) error {
			saved = sess
			return nil
		})

	result, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "state-1", Nonce: "nonce-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-7", result.Session.UserID)
	assert.Equal(t, domainauth.RoleAdmin, result.Session.Role)
	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, saved.ID, result.Session.ID)
}

func TestAuthService_CompleteLogin_MissingParams(t *testing.T) {
	t.Parallel()
	_, svc := newAuthService(t, &fakeProvider{}, domainauth.RoleOperator)

	for _, input := range []CompleteLoginInput{
		{State: "s", Nonce: "n"},
		{Code: "c", Nonce: "n"},
		{Code: "c", State: "s"},
	} {
		_, err := svc.CompleteLogin(context.Background(), input)
		assert.Error(t, err, "input %+v", input)
	}
}

func TestAuthService_CompleteLogin_ExchangeFailure(t *testing.T) {
	t.Parallel()
	provider := &fakeProvider{exchangeErr: errors.New("idp unavailable")}
	_, svc := newAuthService(t, provider, domainauth.RoleOperator)

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	assert.ErrorContains(t, err, "exchange authorization code")
}

func TestAuthService_GetSession_ExpiredIsDeleted(t *testing.T) {
	t.Parallel()
	sessions, svc := newAuthService(t, &fakeProvider{}, domainauth.RoleOperator)

	expired := domainauth.Session{ID: "sess-1", UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}
	sessions.EXPECT().Get(gomock.Any(), "sess-1").Return(expired, nil)
	sessions.EXPECT().Delete(gomock.Any(), "sess-1").Return(nil)

	_, err := svc.GetSession(context.Background(), "sess-1")
	assert.ErrorIs(t, err, errSessionExpired)
}

func TestAuthService_GetSession_Valid(t *testing.T) {
	t.Parallel()
	sessions, svc := newAuthService(t, &fakeProvider{}, domainauth.RoleOperator)

	sess := domainauth.Session{ID: "sess-1", UserID: "u1", Role: domainauth.RoleMaster, ExpiresAt: time.Now().Add(time.Hour)}
	sessions.EXPECT().Get(gomock.Any(), "sess-1").Return(sess, nil)

	got, err := svc.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleMaster, got.Role)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()
	sessions, svc := newAuthService(t, &fakeProvider{}, domainauth.RoleOperator)

	sessions.EXPECT().Delete(gomock.Any(), "sess-1").Return(nil)
	assert.NoError(t, svc.Logout(context.Background(), "sess-1"))

	// Empty session ID is a no-op, not an error.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
