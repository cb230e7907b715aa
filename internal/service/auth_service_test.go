package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sit-academy/enrollment-api/internal/models"
	appErrors "github.com/sit-academy/enrollment-api/pkg/errors"
)

type mockUserRepo struct {
	user       *models.User
	findErr    error
	lastLogins []string
}

func (m *mockUserRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	return m.user, m.findErr
}

func (m *mockUserRepo) FindByID(_ context.Context, _ string) (*models.User, error) {
	return m.user, m.findErr
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, _ time.Time) error {
	m.lastLogins = append(m.lastLogins, id)
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{AccessTokenSecret: "test-secret", AccessTokenExpiry: time.Hour, Issuer: "enrollment-api"}
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "usr-1",
		Email:        "admin@sit.example",
		PasswordHash: string(hash),
		FullName:     "Site Admin",
		Role:         models.RoleAdmin,
		Active:       true,
	}
}

func TestLogin(t *testing.T) {
	repo := &mockUserRepo{user: testUser(t, "s3cret-pass")}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@sit.example", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.Equal(t, []string{"usr-1"}, repo.lastLogins)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &mockUserRepo{user: testUser(t, "s3cret-pass")}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@sit.example", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.lastLogins)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &mockUserRepo{findErr: sql.ErrNoRows}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@sit.example", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	user := testUser(t, "s3cret-pass")
	user.Active = false
	svc := NewAuthService(&mockUserRepo{user: user}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@sit.example", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestLoginInvalidPayload(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLoginRepoFailure(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{findErr: errors.New("connection reset")}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@sit.example", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(&mockUserRepo{user: testUser(t, "s3cret-pass")}, nil, zap.NewNop(), testAuthConfig())
	resp, err := issuer.Login(context.Background(), models.LoginRequest{Email: "admin@sit.example", Password: "s3cret-pass"})
	require.NoError(t, err)

	other := testAuthConfig()
	other.AccessTokenSecret = "different-secret"
	verifier := NewAuthService(&mockUserRepo{}, nil, zap.NewNop(), other)

	_, err = verifier.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}
