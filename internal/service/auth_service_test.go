package service

import (
	"testing"
	"time"

	"djibtrade/config"
	"djibtrade/internal/auth"
	"djibtrade/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  time.Minute,
			RefreshExpiry: time.Hour,
			Issuer:        "djibtrade-test",
		},
	}
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserStore, *fakePreferenceStore) {
	t.Helper()
	users := newFakeUserStore()
	prefs := newFakePreferenceStore()
	bus := NewBus()
	notifSvc := NewNotificationService(newFakeNotificationStore(), prefs, users, nil)
	require.NoError(t, bus.Subscribe(TopicUserCreated, notifSvc.HandleUserCreated))
	return NewAuthService(testConfig(), users, bus), users, prefs
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:       "contact@etsomar.dj",
		Password:    "motdepasse123",
		CompanyName: "Ets Omar Import",
		Phone:       "+253 77 12 34 56",
		City:        "Djibouti",
	}
}

func TestRegister(t *testing.T) {
	svc, users, prefs := newAuthFixture(t)

	u, access, refresh, err := svc.Register(registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, domain.RoleUser, u.Role, "registration never grants elevated roles")
	assert.True(t, u.IsActive)
	assert.False(t, u.IsPremium)
	assert.NotEqual(t, "motdepasse123", u.PasswordHash)

	stored, err := users.GetByEmail("contact@etsomar.dj")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("motdepasse123")))

	// user.created seeded the preference row.
	assert.Equal(t, 1, prefs.created)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, _, _, err := svc.Register(registerInput())
	require.NoError(t, err)
	_, _, _, err = svc.Register(registerInput())
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, _, _, err := svc.Register(registerInput())
	require.NoError(t, err)

	u, access, _, err := svc.Login("contact@etsomar.dj", "motdepasse123")
	require.NoError(t, err)
	assert.Equal(t, "contact@etsomar.dj", u.Email)

	claims, err := auth.ParseAccessToken(&testConfig().JWT, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, _, _, err := svc.Register(registerInput())
	require.NoError(t, err)

	_, _, _, err = svc.Login("contact@etsomar.dj", "mauvais")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, _, _, err := svc.Login("personne@djibtrade.dj", "x")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	u, _, _, err := svc.Register(registerInput())
	require.NoError(t, err)

	u.IsActive = false
	require.NoError(t, users.Update(u))

	_, _, _, err = svc.Login("contact@etsomar.dj", "motdepasse123")
	assert.ErrorIs(t, err, ErrInvalidCreds, "deactivated accounts cannot log in")
}

func TestRefresh(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	u, _, refresh, err := svc.Register(registerInput())
	require.NoError(t, err)

	access, _, err := svc.Refresh(refresh)
	require.NoError(t, err)
	claims, err := auth.ParseAccessToken(&testConfig().JWT, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, access, _, err := svc.Register(registerInput())
	require.NoError(t, err)

	_, _, err = svc.Refresh(access)
	assert.Error(t, err, "an access token is not a refresh token")
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	u, _, _, err := svc.Register(registerInput())
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(u.ID, "mauvais", "nouveau123"), ErrInvalidCreds)
	require.NoError(t, svc.ChangePassword(u.ID, "motdepasse123", "nouveau123"))

	_, _, _, err = svc.Login("contact@etsomar.dj", "nouveau123")
	assert.NoError(t, err)
	_, _, _, err = svc.Login("contact@etsomar.dj", "motdepasse123")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}
