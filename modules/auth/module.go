package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/example/task-manager-api/events"
	"github.com/example/task-manager-api/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// AuthModule owns users and bearer tokens.
type AuthModule struct {
	database *database.PluginModule
	service  *AuthService
	tokens   TokenConfig
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*AuthModule)(nil)
	_ mono.ServiceProviderModule = (*AuthModule)(nil)
	_ mono.UsePluginModule       = (*AuthModule)(nil)
	_ mono.EventEmitterModule    = (*AuthModule)(nil)
	_ mono.EventBusAwareModule   = (*AuthModule)(nil)
	_ mono.HealthCheckableModule = (*AuthModule)(nil)
)

// NewModule creates the auth module.
func NewModule(tokens TokenConfig, logger types.Logger) *AuthModule {
	return &AuthModule{
		tokens: tokens,
		logger: logger,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// SetPlugin receives the database plugin.
func (m *AuthModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "db" {
		return
	}
	db, ok := plugin.(*database.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for db", "alias", alias)
		return
	}
	m.database = db
}

// SetEventBus is called by the framework before Start.
func (m *AuthModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *AuthModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.UserUpdatedV1.ToBase(),
	}
}

// Start wires the service onto the shared connection pool.
func (m *AuthModule) Start(_ context.Context) error {
	if m.database == nil || m.database.DB() == nil {
		return fmt.Errorf("db plugin not set - ensure the database plugin is registered")
	}

	m.service = NewAuthService(
		NewUserRepository(m.database.DB()),
		NewPasswordHasher(),
		NewTokenManager(m.tokens),
	)

	m.logger.Info("Auth module started", "issuer", m.tokens.Issuer, "ttl", m.tokens.TTL.String())
	return nil
}

// Stop stops the module. The pool belongs to the database plugin.
func (m *AuthModule) Stop(_ context.Context) error {
	m.logger.Info("Auth module stopped")
	return nil
}

// Health reports whether the service is wired.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "not started"}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

// RegisterServices registers the auth request-reply services.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "register", json.Unmarshal, json.Marshal, m.handleRegister,
	); err != nil {
		return fmt.Errorf("failed to register register service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "login", json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update-user", json.Unmarshal, json.Marshal, m.handleUpdateUser,
	); err != nil {
		return fmt.Errorf("failed to register update-user service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	m.logger.Info("Registered auth services",
		"services", []string{"register", "login", "update-user", "validate-token", "get-user"})
	return nil
}

func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (UserResponse, error) {
	profile, err := m.service.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return UserResponse{}, err
	}
	m.logger.Info("User registered", "user_id", profile.ID)
	return toUserResponse(profile), nil
}

func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	session, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		Email:   session.Email,
		IsAdmin: session.IsAdmin,
		Token:   session.Token,
	}, nil
}

func (m *AuthModule) handleUpdateUser(ctx context.Context, req UpdateUserRequest, _ *mono.Msg) (UserResponse, error) {
	profile, err := m.service.UpdateSelf(ctx, req.UserID, UserPatch{Name: req.Name, Password: req.Password})
	if err != nil {
		return UserResponse{}, err
	}

	// Task listings embed the owner's name.
	if fields := updatedFields(req); m.eventBus != nil && len(fields) > 0 {
		event := events.UserUpdatedEvent{
			UserID:    profile.ID,
			Name:      profile.Name,
			Fields:    fields,
			UpdatedAt: time.Now(),
		}
		if err := events.UserUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish UserUpdated event", "user_id", profile.ID, "error", err)
		}
	}
	return toUserResponse(profile), nil
}

func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		msg := ErrInvalidToken.Error()
		if errors.Is(err, ErrExpiredToken) {
			msg = ErrExpiredToken.Error()
		}
		return ValidateTokenResponse{Valid: false, Error: msg}, nil
	}
	return ValidateTokenResponse{Valid: true, UserID: claims.UserID}, nil
}

func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (UserResponse, error) {
	profile, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(profile), nil
}

func updatedFields(req UpdateUserRequest) []string {
	var fields []string
	if req.Name != nil {
		fields = append(fields, "name")
	}
	if req.Password != nil {
		fields = append(fields, "password")
	}
	return fields
}

func toUserResponse(p *domain.Profile) UserResponse {
	return UserResponse{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		IsAdmin: p.IsAdmin,
	}
}
