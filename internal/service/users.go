package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"photovault/internal/apperr"
	"photovault/internal/auth"
	"photovault/internal/models"
	"photovault/internal/repository"
)

// UserService handles registration, login and profile reads.
type UserService struct {
	repo repository.UserRepository
	log  *zap.SugaredLogger
}

func NewUserService(repo repository.UserRepository, log *zap.SugaredLogger) *UserService {
	return &UserService{repo: repo, log: log}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", apperr.ErrBadRequest)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", apperr.ErrBadRequest)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if err == apperr.ErrConflict {
			return nil, fmt.Errorf("%w: username or email already taken", apperr.ErrConflict)
		}
		return nil, err
	}
	s.log.Infow("user registered", "user", user.Username)
	return user, nil
}

// Login verifies credentials and records the login time. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}
	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warnw("update last login failed", "user", user.ID, "err", err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
