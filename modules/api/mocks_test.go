package api

import (
	"context"
	"errors"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/domain/user"
	"github.com/example/task-manager-api/modules/annotation"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/catalog"
	"github.com/example/task-manager-api/modules/task"
	"github.com/go-monolith/mono/pkg/types"
)

var errNotImplemented = errors.New("not implemented")

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

// mockAuthPort implements auth.AuthPort for testing.
type mockAuthPort struct {
	registerFunc      func(ctx context.Context, req auth.RegisterRequest) (*auth.UserResponse, error)
	loginFunc         func(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
	updateUserFunc    func(ctx context.Context, req auth.UpdateUserRequest) (*auth.UserResponse, error)
	validateTokenFunc func(ctx context.Context, token string) (*user.Claims, error)
	getUserFunc       func(ctx context.Context, userID uint) (*auth.UserResponse, error)
}

func (m *mockAuthPort) Register(ctx context.Context, req auth.RegisterRequest) (*auth.UserResponse, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthPort) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthPort) UpdateUser(ctx context.Context, req auth.UpdateUserRequest) (*auth.UserResponse, error) {
	if m.updateUserFunc != nil {
		return m.updateUserFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAuthPort) ValidateToken(ctx context.Context, token string) (*user.Claims, error) {
	if m.validateTokenFunc != nil {
		return m.validateTokenFunc(ctx, token)
	}
	if token == testToken {
		return &user.Claims{UserID: testUserID}, nil
	}
	return nil, auth.ErrInvalidToken
}

func (m *mockAuthPort) GetUser(ctx context.Context, userID uint) (*auth.UserResponse, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

// mockCatalogPort implements catalog.CatalogPort for testing.
type mockCatalogPort struct {
	listFunc          func(ctx context.Context) ([]domain.CategoryView, error)
	getFunc           func(ctx context.Context, id uint) (*domain.CategoryView, error)
	listTasksFunc     func(ctx context.Context, id uint) ([]domain.Summary, error)
	createForTaskFunc func(ctx context.Context, taskID uint, label string) (*domain.Detail, error)
	relabelFunc       func(ctx context.Context, id uint, label string) (*domain.CategoryView, error)
	deleteFunc        func(ctx context.Context, id uint) (string, error)
}

func (m *mockCatalogPort) List(ctx context.Context) ([]domain.CategoryView, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockCatalogPort) Get(ctx context.Context, id uint) (*domain.CategoryView, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockCatalogPort) ListTasks(ctx context.Context, id uint) ([]domain.Summary, error) {
	if m.listTasksFunc != nil {
		return m.listTasksFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockCatalogPort) CreateForTask(ctx context.Context, taskID uint, label string) (*domain.Detail, error) {
	if m.createForTaskFunc != nil {
		return m.createForTaskFunc(ctx, taskID, label)
	}
	return nil, errNotImplemented
}

func (m *mockCatalogPort) Relabel(ctx context.Context, id uint, label string) (*domain.CategoryView, error) {
	if m.relabelFunc != nil {
		return m.relabelFunc(ctx, id, label)
	}
	return nil, errNotImplemented
}

func (m *mockCatalogPort) Delete(ctx context.Context, id uint) (string, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return "", errNotImplemented
}

func (m *mockCatalogPort) ResolveLabel(_ context.Context, _ string) (uint, error) {
	return 0, errNotImplemented
}

func (m *mockCatalogPort) Invalidate(_ context.Context) error {
	return nil
}

// mockTaskPort implements task.TaskPort for testing.
type mockTaskPort struct {
	listFunc   func(ctx context.Context) ([]domain.Summary, error)
	getFunc    func(ctx context.Context, id uint) (*domain.Detail, error)
	createFunc func(ctx context.Context, req task.CreateTaskRequest) (*domain.Detail, error)
	updateFunc func(ctx context.Context, req task.UpdateTaskRequest) (*domain.Detail, error)
	deleteFunc func(ctx context.Context, req task.DeleteTaskRequest) (string, error)
}

func (m *mockTaskPort) List(ctx context.Context) ([]domain.Summary, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockTaskPort) Get(ctx context.Context, id uint) (*domain.Detail, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *mockTaskPort) Create(ctx context.Context, req task.CreateTaskRequest) (*domain.Detail, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockTaskPort) Update(ctx context.Context, req task.UpdateTaskRequest) (*domain.Detail, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockTaskPort) Delete(ctx context.Context, req task.DeleteTaskRequest) (string, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, req)
	}
	return "", errNotImplemented
}

// mockAnnotationPort implements annotation.AnnotationPort for testing.
type mockAnnotationPort struct {
	addCommentFunc     func(ctx context.Context, req annotation.AddCommentRequest) (*domain.CommentView, error)
	editCommentFunc    func(ctx context.Context, req annotation.EditCommentRequest) (*domain.CommentView, error)
	deleteCommentFunc  func(ctx context.Context, req annotation.CommentRequest) (string, error)
	createTrackingFunc func(ctx context.Context, req annotation.CreateTrackingRequest) (*domain.TrackingView, error)
	updateTrackingFunc func(ctx context.Context, req annotation.UpdateTrackingRequest) (*domain.TrackingView, error)
	getTrackingFunc    func(ctx context.Context, req annotation.TrackingRequest) (*domain.TrackingView, error)
	listTrackingsFunc  func(ctx context.Context, taskID uint) ([]domain.TrackingView, error)
	deleteTrackingFunc func(ctx context.Context, req annotation.TrackingRequest) (string, error)
}

func (m *mockAnnotationPort) AddComment(ctx context.Context, req annotation.AddCommentRequest) (*domain.CommentView, error) {
	if m.addCommentFunc != nil {
		return m.addCommentFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAnnotationPort) EditComment(ctx context.Context, req annotation.EditCommentRequest) (*domain.CommentView, error) {
	if m.editCommentFunc != nil {
		return m.editCommentFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAnnotationPort) DeleteComment(ctx context.Context, req annotation.CommentRequest) (string, error) {
	if m.deleteCommentFunc != nil {
		return m.deleteCommentFunc(ctx, req)
	}
	return "", errNotImplemented
}

func (m *mockAnnotationPort) CreateTracking(ctx context.Context, req annotation.CreateTrackingRequest) (*domain.TrackingView, error) {
	if m.createTrackingFunc != nil {
		return m.createTrackingFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAnnotationPort) UpdateTracking(ctx context.Context, req annotation.UpdateTrackingRequest) (*domain.TrackingView, error) {
	if m.updateTrackingFunc != nil {
		return m.updateTrackingFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAnnotationPort) GetTracking(ctx context.Context, req annotation.TrackingRequest) (*domain.TrackingView, error) {
	if m.getTrackingFunc != nil {
		return m.getTrackingFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockAnnotationPort) ListTrackings(ctx context.Context, taskID uint) ([]domain.TrackingView, error) {
	if m.listTrackingsFunc != nil {
		return m.listTrackingsFunc(ctx, taskID)
	}
	return nil, errNotImplemented
}

func (m *mockAnnotationPort) DeleteTracking(ctx context.Context, req annotation.TrackingRequest) (string, error) {
	if m.deleteTrackingFunc != nil {
		return m.deleteTrackingFunc(ctx, req)
	}
	return "", errNotImplemented
}

var (
	_ auth.AuthPort             = (*mockAuthPort)(nil)
	_ catalog.CatalogPort       = (*mockCatalogPort)(nil)
	_ task.TaskPort             = (*mockTaskPort)(nil)
	_ annotation.AnnotationPort = (*mockAnnotationPort)(nil)
)
