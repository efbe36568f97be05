package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/acailab/goaltrack/internal/domain"
)

// AuthService orchestrates registration, login, and token verification.
type AuthService struct {
	users  domain.UserRepository
	hasher *PasswordHasher
	codec  *TokenCodec
	policy PasswordPolicy
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher *PasswordHasher, codec *TokenCodec, policy PasswordPolicy) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec, policy: policy}
}

// Register creates a new user account with the default role and
// returns the user together with a fresh access token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	user, err := s.createUser(ctx, email, password, name, domain.RoleUser)
	if err != nil {
		return nil, "", err
	}

	token, err := s.codec.Issue(identityOf(user))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// CreateUser creates a user with an explicit role. Intended for the
// admin-only user management endpoint; an empty role defaults to user.
func (s *AuthService) CreateUser(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	return s.createUser(ctx, email, password, name, role)
}

func (s *AuthService) createUser(ctx context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := s.policy.Validate(password); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the user and a fresh token.
// An unknown email and a wrong password both yield
// ErrInvalidCredentials so callers cannot probe which emails are
// registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if !user.Active {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(identityOf(user))
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Verify resolves a token string to the identity it carries. It is
// stateless: the user store is not consulted, so a role change takes
// effect only once the old token expires.
func (s *AuthService) Verify(tokenString string) (domain.Identity, error) {
	return s.codec.Decode(tokenString)
}

// ListUsers returns all registered users.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// UpdateRole assigns a new role to the given user.
func (s *AuthService) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	return s.users.UpdateRole(ctx, id, role)
}

func identityOf(user *domain.User) domain.Identity {
	return domain.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
}
