package annotation

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/pkg/rpcerr"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AnnotationPort is what other modules use to reach comments and tracking.
type AnnotationPort interface {
	AddComment(ctx context.Context, req AddCommentRequest) (*domain.CommentView, error)
	EditComment(ctx context.Context, req EditCommentRequest) (*domain.CommentView, error)
	DeleteComment(ctx context.Context, req CommentRequest) (string, error)
	CreateTracking(ctx context.Context, req CreateTrackingRequest) (*domain.TrackingView, error)
	UpdateTracking(ctx context.Context, req UpdateTrackingRequest) (*domain.TrackingView, error)
	GetTracking(ctx context.Context, req TrackingRequest) (*domain.TrackingView, error)
	ListTrackings(ctx context.Context, taskID uint) ([]domain.TrackingView, error)
	DeleteTracking(ctx context.Context, req TrackingRequest) (string, error)
}

var knownErrors = []error{
	ErrTaskNotFound,
	ErrCommentNotFound,
	ErrTrackingNotFound,
	ErrNoTrackings,
	ErrDuplicateTracking,
	ErrMissingContent,
	ErrMissingEstimate,
	ErrMissingStart,
	domain.ErrInvalidDate,
}

// AnnotationAdapter implements AnnotationPort over the annotation service
// container.
type AnnotationAdapter struct {
	container mono.ServiceContainer
}

var _ AnnotationPort = (*AnnotationAdapter)(nil)

// NewAnnotationAdapter creates an AnnotationAdapter. It panics on a nil
// container.
func NewAnnotationAdapter(container mono.ServiceContainer) *AnnotationAdapter {
	if container == nil {
		panic("annotation adapter requires non-nil ServiceContainer")
	}
	return &AnnotationAdapter{container: container}
}

func (a *AnnotationAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp,
	); err != nil {
		return rpcerr.Translate(fmt.Errorf("%s request failed: %w", service, err), knownErrors...)
	}
	return nil
}

func (a *AnnotationAdapter) AddComment(ctx context.Context, req AddCommentRequest) (*domain.CommentView, error) {
	var resp domain.CommentView
	if err := a.call(ctx, "add-comment", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AnnotationAdapter) EditComment(ctx context.Context, req EditCommentRequest) (*domain.CommentView, error) {
	var resp domain.CommentView
	if err := a.call(ctx, "edit-comment", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AnnotationAdapter) DeleteComment(ctx context.Context, req CommentRequest) (string, error) {
	var resp MessageResponse
	if err := a.call(ctx, "delete-comment", &req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (a *AnnotationAdapter) CreateTracking(ctx context.Context, req CreateTrackingRequest) (*domain.TrackingView, error) {
	var resp domain.TrackingView
	if err := a.call(ctx, "create-tracking", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AnnotationAdapter) UpdateTracking(ctx context.Context, req UpdateTrackingRequest) (*domain.TrackingView, error) {
	var resp domain.TrackingView
	if err := a.call(ctx, "update-tracking", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AnnotationAdapter) GetTracking(ctx context.Context, req TrackingRequest) (*domain.TrackingView, error) {
	var resp domain.TrackingView
	if err := a.call(ctx, "get-tracking", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AnnotationAdapter) ListTrackings(ctx context.Context, taskID uint) ([]domain.TrackingView, error) {
	var resp ListTrackingsResponse
	if err := a.call(ctx, "list-trackings", &ListTrackingsRequest{TaskID: taskID}, &resp); err != nil {
		return nil, err
	}
	return resp.Trackings, nil
}

func (a *AnnotationAdapter) DeleteTracking(ctx context.Context, req TrackingRequest) (string, error) {
	var resp MessageResponse
	if err := a.call(ctx, "delete-tracking", &req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
