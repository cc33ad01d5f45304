package task

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/domain/user"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/modules/database"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

type testEnv struct {
	db    *gorm.DB
	svc   *Service
	alice user.User
	bob   user.User
	work  domain.Category
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(database.Config{DSN: filepath.Join(t.TempDir(), "task.db")})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	env := &testEnv{db: db}
	env.alice = user.User{Name: "Alice Johnson", Email: "alice@example.com", PasswordHash: "x"}
	env.bob = user.User{Name: "Bob Smith", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&env.alice).Error)
	require.NoError(t, db.Create(&env.bob).Error)
	env.work = domain.Category{Label: "Work"}
	require.NoError(t, db.Create(&env.work).Error)

	resolver := catalog.NewService(catalog.NewRepository(db), nil, &mockLogger{})
	env.svc = NewService(NewRepository(db), resolver)
	env.svc.now = func() time.Time { return time.Date(2024, time.March, 1, 15, 30, 0, 0, time.UTC) }
	return env
}

func (env *testEnv) createTask(t *testing.T, owner uint, title string) *domain.Task {
	t.Helper()
	created, err := env.svc.Create(context.Background(), owner, CreateInput{
		Title:         title,
		Description:   "desc",
		Priority:      "High",
		CategoryLabel: "Work",
	})
	require.NoError(t, err)
	return created
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	env := setupTestEnv(t)

	created, err := env.svc.Create(context.Background(), env.alice.ID, CreateInput{
		Title:         "Fix Bugs",
		Description:   "Resolve open issues",
		Status:        "To Do",
		Priority:      "Critical",
		CategoryLabel: " work ",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, env.alice.ID, created.UserID)
	assert.Equal(t, env.work.ID, created.CategoryID)
	assert.Equal(t, domain.PriorityCritical, created.Priority)

	detail := created.ToDetail()
	assert.Equal(t, "2024-03-01", detail.DueDate)
	assert.Equal(t, "Alice Johnson", detail.User.Name)
	assert.Equal(t, "Work", detail.Category.Label)
	assert.Empty(t, detail.Comments)
	assert.Nil(t, detail.Tracking)
}

func TestCreate_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{"short title", CreateInput{Title: "a", Priority: "Low", CategoryLabel: "Work"}, domain.ErrInvalidTitle},
		{"title punctuation", CreateInput{Title: "Fix it!", Priority: "Low", CategoryLabel: "Work"}, domain.ErrInvalidTitle},
		{"bad priority", CreateInput{Title: "Fix it", Priority: "Urgent", CategoryLabel: "Work"}, domain.ErrInvalidPriority},
		{"missing priority", CreateInput{Title: "Fix it", CategoryLabel: "Work"}, domain.ErrInvalidPriority},
		{"missing label", CreateInput{Title: "Fix it", Priority: "Low"}, domain.ErrInvalidLabel},
		{"unknown category", CreateInput{Title: "Fix it", Priority: "Low", CategoryLabel: "Nope"}, catalog.ErrCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Create(ctx, env.alice.ID, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var count int64
	env.db.Model(&domain.Task{}).Count(&count)
	assert.Zero(t, count)
}

func TestList_OrderedByDueDate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	first := env.createTask(t, env.alice.ID, "Older task")
	second := env.createTask(t, env.bob.ID, "Newer task")
	require.NoError(t, env.db.Model(&domain.Task{}).Where("id = ?", first.ID).
		Update("due_date", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)).Error)

	tasks, err := env.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, "Bob Smith", tasks[0].User.Name)
	assert.Equal(t, first.ID, tasks[1].ID)
}

func TestGet(t *testing.T) {
	env := setupTestEnv(t)
	created := env.createTask(t, env.alice.ID, "Write report")

	detail, err := env.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", detail.Title)

	_, err = env.svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdate(t *testing.T) {
	env := setupTestEnv(t)
	created := env.createTask(t, env.alice.ID, "Write report")

	updated, fields, err := env.svc.Update(context.Background(), env.alice.ID, created.ID, Patch{
		Title:    strPtr("Write final report"),
		Status:   strPtr("In Progress"),
		Priority: strPtr("Low"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "status", "priority"}, fields)
	assert.Equal(t, "Write final report", updated.Title)
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, "In Progress", updated.Status)
	assert.Equal(t, domain.PriorityLow, updated.Priority)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	env := setupTestEnv(t)
	created := env.createTask(t, env.alice.ID, "Write report")
	ctx := context.Background()

	_, _, err := env.svc.Update(ctx, env.bob.ID, created.ID, Patch{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = env.svc.Update(ctx, env.alice.ID, 999, Patch{Title: strPtr("Ghost")})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, _, err = env.svc.Update(ctx, env.alice.ID, created.ID, Patch{Priority: strPtr("Someday")})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)

	stored, err := env.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", stored.Title)
	assert.Equal(t, "High", stored.Priority)
}

func TestDelete_CascadesAnnotations(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	created := env.createTask(t, env.alice.ID, "Write report")
	kept := env.createTask(t, env.alice.ID, "Keep me")

	require.NoError(t, env.db.Create(&domain.Comment{Content: "c", Timestamp: time.Now(), UserID: env.bob.ID, TaskID: created.ID}).Error)
	require.NoError(t, env.db.Create(&domain.Comment{Content: "c", Timestamp: time.Now(), UserID: env.bob.ID, TaskID: kept.ID}).Error)
	require.NoError(t, env.db.Create(&domain.TaskTracking{TaskID: created.ID, EstimatedHours: 3}).Error)

	_, err := env.svc.Delete(ctx, env.bob.ID, created.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := env.svc.Delete(ctx, env.alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", deleted.Title)

	var comments, trackings, tasks int64
	env.db.Model(&domain.Comment{}).Count(&comments)
	env.db.Model(&domain.TaskTracking{}).Count(&trackings)
	env.db.Model(&domain.Task{}).Count(&tasks)
	assert.Equal(t, int64(1), comments)
	assert.Zero(t, trackings)
	assert.Equal(t, int64(1), tasks)

	_, err = env.svc.Delete(ctx, env.alice.ID, created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestModule_HandleDeleteMessage(t *testing.T) {
	env := setupTestEnv(t)
	created := env.createTask(t, env.alice.ID, "Fix Bugs")
	m := &Module{service: env.svc, logger: &mockLogger{}}

	resp, err := m.handleDelete(context.Background(), DeleteTaskRequest{UserID: env.alice.ID, TaskID: created.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Task 'Fix Bugs' deleted successfully", resp.Message)
}

// countingCatalog records listing invalidations. Only Invalidate is
// expected to be called.
type countingCatalog struct {
	catalog.CatalogPort
	invalidations int
}

func (c *countingCatalog) Invalidate(_ context.Context) error {
	c.invalidations++
	return nil
}

func TestModule_WritesInvalidateCategoryListing(t *testing.T) {
	env := setupTestEnv(t)
	categories := &countingCatalog{}
	m := &Module{service: env.svc, categories: categories, logger: &mockLogger{}}
	ctx := context.Background()

	created, err := m.handleCreate(ctx, CreateTaskRequest{
		UserID:        env.alice.ID,
		Title:         "Write report",
		Priority:      "High",
		CategoryLabel: "Work",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, categories.invalidations)

	_, err = m.handleUpdate(ctx, UpdateTaskRequest{UserID: env.alice.ID, TaskID: created.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, categories.invalidations, "empty patch changes nothing")

	_, err = m.handleUpdate(ctx, UpdateTaskRequest{UserID: env.alice.ID, TaskID: created.ID, Title: strPtr("Write final report")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, categories.invalidations)

	_, err = m.handleDelete(ctx, DeleteTaskRequest{UserID: env.bob.ID, TaskID: created.ID}, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 2, categories.invalidations)

	_, err = m.handleDelete(ctx, DeleteTaskRequest{UserID: env.alice.ID, TaskID: created.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, categories.invalidations)
}
