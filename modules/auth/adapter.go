package auth

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/example/task-manager-api/pkg/rpcerr"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is what other modules use to reach the auth module.
type AuthPort interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*UserResponse, error)
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID uint) (*UserResponse, error)
}

// knownErrors are restored from reply messages, most specific first.
var knownErrors = []error{
	ErrDuplicateEmail,
	ErrMissingField,
	ErrInvalidEmail,
	ErrWeakPassword,
	ErrPasswordTooLong,
	ErrInvalidCredentials,
	ErrUserNotFound,
	ErrExpiredToken,
	ErrInvalidToken,
}

// AuthAdapter implements AuthPort over the auth service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates an AuthAdapter. It panics on a nil container.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	if container == nil {
		panic("auth adapter requires non-nil ServiceContainer")
	}
	return &AuthAdapter{container: container}
}

func (a *AuthAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp,
	); err != nil {
		return rpcerr.Translate(fmt.Errorf("%s request failed: %w", service, err), knownErrors...)
	}
	return nil
}

// Register creates an account.
func (a *AuthAdapter) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var resp UserResponse
	if err := a.call(ctx, "register", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token.
func (a *AuthAdapter) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := a.call(ctx, "login", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateUser changes the caller's own account.
func (a *AuthAdapter) UpdateUser(ctx context.Context, req UpdateUserRequest) (*UserResponse, error) {
	var resp UserResponse
	if err := a.call(ctx, "update-user", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateToken verifies a bearer token.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse
	if err := a.call(ctx, "validate-token", &req, &resp); err != nil {
		return nil, err
	}
	if !resp.Valid {
		return nil, rpcerr.Translate(fmt.Errorf("token validation failed: %s", resp.Error), ErrExpiredToken, ErrInvalidToken)
	}
	return &domain.Claims{UserID: resp.UserID}, nil
}

// GetUser loads a user's public profile.
func (a *AuthAdapter) GetUser(ctx context.Context, userID uint) (*UserResponse, error) {
	req := GetUserRequest{UserID: userID}
	var resp UserResponse
	if err := a.call(ctx, "get-user", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
