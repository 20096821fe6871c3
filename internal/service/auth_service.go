package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staffhub/internal/auth"
	apperrors "staffhub/internal/errors"
	"staffhub/internal/model"
	"staffhub/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries a registration request. Role is optional and
// defaults to EMPLOYEE.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"omitempty,oneof=ADMIN EMPLOYEE"`
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// ChangePasswordResult is the outcome of a password change. The two
// validation failure modes report through this value rather than an error;
// the client depends on that shape.
type ChangePasswordResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthService handles credential lifecycle and session resolution.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) *model.User
	Me(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*model.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) (*ChangePasswordResult, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	validate   *validator.Validate
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		validate:   validator.New(),
	}
}

// normalizeEmail mirrors the store's canonical form: trimmed, lowercased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password and returns a freshly
// issued token. The duplicate pre-check is best effort; the store's unique
// index is the authoritative guard.
func (s *authService) Register(ctx context.Context, input RegisterInput) (string, error) {
	input.Email = normalizeEmail(input.Email)
	if err := s.validate.Struct(&input); err != nil {
		return "", apperrors.NewUserInput(err.Error())
	}

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return "", apperrors.NewUserInput("Email already exists")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = model.RoleEmployee
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.NewUserInput("Email already exists")
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.jwtService.Issue(user)
}

// Login authenticates by email and password. Both failure modes return the
// same message so callers cannot tell which part was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.NewUserInput("Invalid email or password")
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.NewUserInput("Invalid email or password")
	}

	return s.jwtService.Issue(user)
}

// Authenticate resolves a bearer token to a live user record with a fresh
// lookup. Any parse failure, expired signature, malformed token, or missing
// user yields nil: the request proceeds unauthenticated.
func (s *authService) Authenticate(ctx context.Context, token string) *model.User {
	claims, err := s.jwtService.Parse(token)
	if err != nil {
		return nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

// Me re-fetches the session's user by id. A missing record means the session
// is stale, which is an authentication failure rather than a not-found.
func (s *authService) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewAuthentication("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile partially updates name and email.
func (s *authService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*model.User, error) {
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		input.Email = &email

		_, err := s.users.FindByEmailExcluding(ctx, email, id)
		if err == nil {
			return nil, apperrors.NewUserInput("Email already exists")
		}
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email conflict: %w", err)
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewUserInput("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = *input.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewUserInput("Email already exists")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and persists a re-hash of the
// new one. Its two validation failure modes report via the result value, not
// an error.
func (s *authService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) (*ChangePasswordResult, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewUserInput("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return &ChangePasswordResult{
			Success: false,
			Message: "Current password is incorrect",
		}, nil
	}

	if len(newPassword) < 8 {
		return &ChangePasswordResult{
			Success: false,
			Message: "New password must be at least 8 characters",
		}, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &ChangePasswordResult{
		Success: true,
		Message: "Password changed successfully",
	}, nil
}
