package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// authService implements AuthService.
type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	jwtExpiry time.Duration
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiry time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account with the given role and returns it with a
// fresh signed token.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest, role string) (*model.User, string, error) {
	if err := validateRegistration(req); err != nil {
		return nil, "", err
	}

	// The store has exactly one admin account. Once it exists, the open
	// admin registration route is closed for good.
	if role == model.RoleAdmin {
		count, err := s.userRepo.CountByRole(ctx, model.RoleAdmin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to count admins: %w", err)
		}
		if count > 0 {
			return nil, "", model.ErrAdminExists
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", model.ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:        uuid.New(),
		FullName:  strings.TrimSpace(req.FullName),
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Password:  string(hashed),
		Role:      role,
		Cart:      []model.CartEntry{},
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("role", role).
		Msg("account registered")

	return user, token, nil
}

// Login verifies credentials for an account holding the given role. The
// failure message never reveals which part of the credentials was wrong.
func (s *authService) Login(ctx context.Context, creds model.Credentials, role string) (*model.User, string, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, "", model.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.Role != role {
		return nil, "", model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Debug().Str("user_id", user.ID.String()).Msg("login succeeded")

	return user, token, nil
}

// AdminExists reports whether at least one admin account exists.
func (s *authService) AdminExists(ctx context.Context) (bool, error) {
	count, err := s.userRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	return count > 0, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  now.Add(s.jwtExpiry).Unix(),
		"iat":  now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func validateRegistration(req model.RegisterRequest) error {
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		return model.NewValidationError("all fields (Fullname, Email, Password, Phone) are required")
	}

	if len(strings.TrimSpace(req.FullName)) < 3 {
		return model.NewValidationError("full name must be at least 3 characters long")
	}

	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return model.NewValidationError("please provide a valid email address")
	}

	if !phonePattern.MatchString(strings.TrimSpace(req.Phone)) {
		return model.NewValidationError("phone number must be exactly 10 digits")
	}

	if len(req.Password) < 8 {
		return model.NewValidationError("password must be at least 8 characters long")
	}

	return nil
}
