package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/internal/app/repository"
	"github.com/nchoi/atelier-backend/pkg/logger"
	"github.com/nchoi/atelier-backend/pkg/util"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrProviderFailed     = errors.New("identity provider sign-in failed")
	ErrUserNotFound       = errors.New("user not found")
)

// adminEmail is promoted to the admin role on login and registration.
const adminEmail = "admin@example.com"

// IdentityProvider is a pluggable external sign-in source. Exchange
// turns a provider credential into a verified profile.
type IdentityProvider interface {
	Name() string
	Exchange(credential string) (email, name, avatar string, err error)
}

type AuthService interface {
	Register(email, password, name string) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	// LoginWithProvider signs in through the configured identity
	// provider. Provider failures are reported, never panicked on, and
	// come back as ErrProviderFailed.
	LoginWithProvider(credential string) (*model.User, *util.TokenPair, error)
	GetUserByID(id string) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	provider      IdentityProvider
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	provider IdentityProvider,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		provider:      provider,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(email, password, name string) (*model.User, *util.TokenPair, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
	})

	if len(password) < 6 {
		return nil, nil, ErrPasswordTooShort
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if existing != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		Role:         roleForEmail(email),
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to persist user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    user.Role,
	})
	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	if len(password) < 6 {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		logger.Warn("Login failed: user not found", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Login successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, tokens, nil
}

func (s *authService) LoginWithProvider(credential string) (*model.User, *util.TokenPair, error) {
	email, name, avatar, err := s.provider.Exchange(credential)
	if err != nil {
		logger.Error("Identity provider exchange failed", err, map[string]interface{}{
			"provider": s.provider.Name(),
		})
		return nil, nil, ErrProviderFailed
	}

	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &model.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			Avatar:    avatar,
			Role:      roleForEmail(email),
			CreatedAt: time.Now(),
		}
		if err := s.userRepo.Create(user); err != nil {
			logger.Error("Failed to persist provider user", err, map[string]interface{}{
				"email": email,
			})
			return nil, nil, err
		}
	} else if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Provider login successful", map[string]interface{}{
		"user_id":  user.ID,
		"email":    email,
		"provider": s.provider.Name(),
	})
	return user, tokens, nil
}

func (s *authService) GetUserByID(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(user *model.User) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}
	return tokens, nil
}

func roleForEmail(email string) model.UserRole {
	if strings.EqualFold(email, adminEmail) {
		return model.RoleAdmin
	}
	return model.RoleUser
}
