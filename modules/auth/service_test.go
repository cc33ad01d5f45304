package auth

import (
	"context"
	"path/filepath"
	"testing"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/example/task-manager-api/modules/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := database.Open(database.Config{DSN: filepath.Join(t.TempDir(), "auth.db")})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return NewAuthService(
		NewUserRepository(db),
		NewPasswordHasherWithCost(bcrypt.MinCost),
		NewTokenManager(testTokenConfig()),
	)
}

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	profile, err := svc.Register(ctx, "Alice Johnson", "alice.johnson@example.com", "alice1234")
	require.NoError(t, err)
	assert.NotZero(t, profile.ID)
	assert.Equal(t, "Alice Johnson", profile.Name)
	assert.Equal(t, "alice.johnson@example.com", profile.Email)
	assert.False(t, profile.IsAdmin)

	stored, err := svc.repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "alice1234", stored.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"missing name", "", "a@example.com", "password1", ErrMissingField},
		{"missing email", "A", "", "password1", ErrMissingField},
		{"missing password", "A", "a@example.com", "", ErrMissingField},
		{"bad email", "A", "not-an-email", "password1", ErrInvalidEmail},
		{"email without tld", "A", "a@example", "password1", ErrInvalidEmail},
		{"short password", "A", "a@example.com", "short", ErrWeakPassword},
		{"long password", "A", "a@example.com", string(make([]byte, 73)), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_MissingFieldNamesColumn(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(context.Background(), "Bob", "bob@example.com", "")
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "the column password is required")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Bob Smith", "bob.smith@example.com", "bobpassword")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Bobby", "bob.smith@example.com", "otherpassword")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Bob Smith", "bob.smith@example.com", "bobpassword")
	require.NoError(t, err)

	err = svc.repo.Create(ctx, &domain.User{Name: "Race", Email: "bob.smith@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLogin(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Charlie Brown", "charlie.brown@example.com", "charliepass")
	require.NoError(t, err)

	session, err := svc.Login(ctx, "charlie.brown@example.com", "charliepass")
	require.NoError(t, err)
	assert.Equal(t, "charlie.brown@example.com", session.Email)
	assert.False(t, session.IsAdmin)
	assert.NotEmpty(t, session.Token)

	claims, err := svc.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	profile, err := svc.GetUser(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Charlie Brown", profile.Name)
}

func TestLogin_Failures(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Charlie Brown", "charlie.brown@example.com", "charliepass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"wrong password", "charlie.brown@example.com", "wrongpass", ErrInvalidCredentials},
		{"unknown email", "nobody@example.com", "charliepass", ErrInvalidCredentials},
		{"missing email", "", "charliepass", ErrMissingField},
		{"missing password", "charlie.brown@example.com", "", ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.Login(ctx, tt.email, tt.password)
			assert.Nil(t, session)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateSelf(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Alice", "alice@example.com", "alice1234")
	require.NoError(t, err)

	updated, err := svc.UpdateSelf(ctx, created.ID, UserPatch{Name: strPtr("Alice J"), Password: strPtr("newpassword")})
	require.NoError(t, err)
	assert.Equal(t, "Alice J", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	_, err = svc.Login(ctx, "alice@example.com", "alice1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "alice@example.com", "newpassword")
	assert.NoError(t, err)
}

func TestUpdateSelf_Errors(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Alice", "alice@example.com", "alice1234")
	require.NoError(t, err)

	_, err = svc.UpdateSelf(ctx, created.ID, UserPatch{Password: strPtr("short")})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.UpdateSelf(ctx, 9999, UserPatch{Name: strPtr("Ghost")})
	assert.ErrorIs(t, err, ErrUserNotFound)

	unchanged, err := svc.UpdateSelf(ctx, created.ID, UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Alice", unchanged.Name)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.ValidateToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
