package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	domain "github.com/example/task-manager-api/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingField       = errors.New("required field missing")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 characters")
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

func missingField(column string) error {
	return fmt.Errorf("%w: the column %s is required", ErrMissingField, column)
}

// UserPatch carries the self-service fields a user may change.
type UserPatch struct {
	Name     *string
	Password *string
}

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
}

// NewAuthService creates an AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates an account and returns its public profile.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	switch {
	case name == "":
		return nil, missingField("name")
	case email == "":
		return nil, missingField("email")
	case password == "":
		return nil, missingField("password")
	}

	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := user.ToProfile()
	return &profile, nil
}

// Login checks credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, missingField("email")
	}
	if password == "" {
		return nil, missingField("password")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.Session{
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

// UpdateSelf applies patch to the caller's own account. Only name and
// password can change.
func (s *AuthService) UpdateSelf(ctx context.Context, userID uint, patch UserPatch) (*domain.Profile, error) {
	updates := make(map[string]any, 2)

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, missingField("name")
		}
		updates["name"] = name
	}
	if patch.Password != nil {
		if err := validatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = hash
	}

	user, err := s.repo.UpdateFields(ctx, userID, updates)
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}

// ValidateToken verifies a bearer token and returns the caller identity.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return &domain.Claims{UserID: claims.UserID}, nil
}

// GetUser returns the public profile of a user.
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*domain.Profile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
