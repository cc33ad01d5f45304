package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/modules/annotation"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/modules/database"
	"github.com/example/task-manager-api/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

type services struct {
	auth        *auth.AuthService
	catalog     *catalog.Service
	tasks       *task.Service
	annotations *annotation.Service
}

func setupServices(t *testing.T) (*services, func(label string) domain.Category) {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "scenario.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	tokens := auth.DefaultTokenConfig()
	tokens.SecretKey = "scenario-secret"

	categories := catalog.NewService(catalog.NewRepository(db), nil, &mockLogger{})
	svc := &services{
		auth: auth.NewAuthService(
			auth.NewUserRepository(db),
			auth.NewPasswordHasherWithCost(bcrypt.MinCost),
			auth.NewTokenManager(tokens),
		),
		catalog:     categories,
		tasks:       task.NewService(task.NewRepository(db), categories),
		annotations: annotation.NewService(annotation.NewRepository(db)),
	}

	insertCategory := func(label string) domain.Category {
		c := domain.Category{Label: label}
		require.NoError(t, db.Create(&c).Error)
		return c
	}
	return svc, insertCategory
}

func ptr[T any](v T) *T {
	return &v
}

func TestScenario_TrackedTaskReportsActualHours(t *testing.T) {
	ctx := context.Background()
	svc, insertCategory := setupServices(t)

	profile, err := svc.auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	session, err := svc.auth.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	claims, err := svc.auth.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, profile.ID, claims.UserID)

	work := insertCategory("Work")

	created, err := svc.tasks.Create(ctx, claims.UserID, task.CreateInput{
		Title:         "Write report",
		Priority:      "High",
		CategoryLabel: "work",
	})
	require.NoError(t, err)
	assert.Equal(t, work.ID, created.CategoryID)

	_, err = svc.annotations.AddComment(ctx, claims.UserID, created.ID, "First draft is ready")
	require.NoError(t, err)

	_, err = svc.annotations.CreateTracking(ctx, created.ID, annotation.TrackingInput{
		EstimatedHours: ptr(3.0),
		StartedAt:      ptr("01/03/24 09:00"),
		FinishedAt:     ptr("01/03/24 11:30"),
	})
	require.NoError(t, err)

	detail, err := svc.tasks.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", detail.Category.Label)
	assert.Equal(t, "Alice", detail.User.Name)
	require.Len(t, detail.Comments, 1)
	require.NotNil(t, detail.Tracking)
	require.NotNil(t, detail.Tracking.ActualHours)
	assert.Equal(t, 2.5, *detail.Tracking.ActualHours)
	assert.Equal(t, "closed", detail.Tracking.State)
}

func TestScenario_OnlyOwnerDeletesAndDeleteCascades(t *testing.T) {
	ctx := context.Background()
	svc, insertCategory := setupServices(t)
	insertCategory("Work")

	alice, err := svc.auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	bob, err := svc.auth.Register(ctx, "Bob", "bob@example.com", "password123")
	require.NoError(t, err)

	created, err := svc.tasks.Create(ctx, alice.ID, task.CreateInput{
		Title:         "Write report",
		Priority:      "High",
		CategoryLabel: "Work",
	})
	require.NoError(t, err)
	comment, err := svc.annotations.AddComment(ctx, bob.ID, created.ID, "Looks good")
	require.NoError(t, err)
	tracking, err := svc.annotations.CreateTracking(ctx, created.ID, annotation.TrackingInput{
		EstimatedHours: ptr(1.0),
		StartedAt:      ptr("01/03/24 09:00"),
	})
	require.NoError(t, err)

	_, err = svc.tasks.Delete(ctx, bob.ID, created.ID)
	assert.ErrorIs(t, err, task.ErrForbidden)
	_, err = svc.tasks.Get(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.tasks.Delete(ctx, alice.ID, created.ID)
	require.NoError(t, err)

	_, err = svc.tasks.Get(ctx, created.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	_, err = svc.annotations.GetTracking(ctx, created.ID, tracking.ID)
	assert.True(t, isNotFound(err), "tracking lookup after delete: %v", err)

	_, err = svc.annotations.EditComment(ctx, created.ID, comment.ID, ptr("edited"))
	assert.True(t, isNotFound(err), "comment lookup after delete: %v", err)
}

func TestScenario_DuplicateEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupServices(t)

	_, err := svc.auth.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.auth.Register(ctx, "Alice Again", "alice@example.com", "password456")
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	_, err = svc.auth.Login(ctx, "alice@example.com", "not-the-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func isNotFound(err error) bool {
	return errors.Is(err, annotation.ErrTaskNotFound) ||
		errors.Is(err, annotation.ErrTrackingNotFound) ||
		errors.Is(err, annotation.ErrCommentNotFound)
}

func TestRunDB_Commands(t *testing.T) {
	ctx := context.Background()
	cfg := database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "cli.db"),
	}

	require.NoError(t, runDB(ctx, cfg, "create"))
	require.NoError(t, runDB(ctx, cfg, "drop"))
	require.Error(t, runDB(ctx, cfg, "truncate"))
}

func TestRunDB_ReportsCloseFailure(t *testing.T) {
	ctx := context.Background()
	cfg := database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "cli.db"),
	}
	errClose := errors.New("close failed")

	closeDatabase = func(db *gorm.DB) error {
		_ = database.Close(db)
		return errClose
	}
	t.Cleanup(func() { closeDatabase = database.Close })

	assert.ErrorIs(t, runDB(ctx, cfg, "create"), errClose)

	// The command error wins over the close error.
	err := runDB(ctx, cfg, "truncate")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errClose)
}

func TestConfig_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DB_DRIVER", "DATABASE_URL", "JWT_TTL", "REDIS_ADDR", "LOGIN_RATE_LIMIT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg := loadConfig()

	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "task_manager.db", cfg.Database.DSN)
	assert.Equal(t, 24*time.Hour, cfg.Tokens.TTL)
	assert.Equal(t, "secret", cfg.Tokens.SecretKey)
	assert.Empty(t, cfg.Cache.Addr)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":3000", cfg.APIConfig().Addr)
}

func TestConfig_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("DB_DEBUG", "true")
	t.Setenv("LOGIN_RATE_LIMIT", "not-a-number")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := loadConfig()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 2*time.Hour, cfg.Tokens.TTL)
	assert.True(t, cfg.Database.Debug)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr)
}
