package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/infrastructure/config"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/ports"
)

// Claims represents the JWT session token payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService resolves the active user and owns signup, login and logout.
// Credentials are compared and stored as entered; the storage format keeps
// them plaintext, so the only hardening here is a constant-time compare.
// The mutex serializes rewrites of the shared users collection and the
// active-user key; in-process operations never interleave.
type AuthService struct {
	userRepo       ports.UserRepository
	onboardingRepo ports.OnboardingRepository
	jwtConfig      config.JWTConfig
	logger         *logger.Logger
	ids            *idGenerator
	now            func() time.Time
	mu             sync.Mutex
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo ports.UserRepository, onboardingRepo ports.OnboardingRepository, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		onboardingRepo: onboardingRepo,
		jwtConfig:      jwtConfig,
		logger:         logger,
		ids:            newIDGenerator(nil),
		now:            time.Now,
	}
}

// Signup creates a new local account and makes it the active user.
func (s *AuthService) Signup(ctx context.Context, req ports.SignupRequest) (*ports.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, entities.ErrPasswordMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, entities.ErrUsernameTaken
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	user := entities.User{
		ID:        s.ids.next(),
		Username:  req.Username,
		Password:  req.Password,
		CreatedAt: s.now(),
	}

	users = append(users, user)
	if err := s.userRepo.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("persist users: %w", err)
	}
	if err := s.userRepo.SetCurrentUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("set current user: %w", err)
	}

	showOnboarding, err := s.markOnboarding(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User signed up", "user_id", user.ID, "username", user.Username)

	return s.authResponse(user, showOnboarding)
}

// Login authenticates against the stored users collection and makes the
// matched account the active user.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			s.logger.Warn("Login attempt with unknown username", "username", req.Username)
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(req.Password)) != 1 {
		s.logger.Warn("Login attempt with invalid password", "username", req.Username, "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	if err := s.userRepo.SetCurrentUser(ctx, user); err != nil {
		return nil, fmt.Errorf("set current user: %w", err)
	}

	showOnboarding, err := s.markOnboarding(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "user_id", user.ID, "username", user.Username)

	return s.authResponse(*user, showOnboarding)
}

// Logout clears the active user.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.userRepo.ClearCurrentUser(ctx); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}

	s.logger.Info("User logged out")
	return nil
}

// CurrentUser returns the active user record.
func (s *AuthService) CurrentUser(ctx context.Context) (*entities.User, error) {
	return s.userRepo.CurrentUser(ctx)
}

// ValidateToken validates a session token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return &ports.Claims{
		UserID:   userID,
		Username: claims.Username,
	}, nil
}

// markOnboarding reports whether the first-run walkthrough should be
// shown, recording the flag so it only shows once.
func (s *AuthService) markOnboarding(ctx context.Context, userID int64) (bool, error) {
	seen, err := s.onboardingRepo.Seen(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check onboarding flag: %w", err)
	}
	if seen {
		return false, nil
	}
	if err := s.onboardingRepo.MarkSeen(ctx, userID); err != nil {
		return false, fmt.Errorf("mark onboarding seen: %w", err)
	}
	return true, nil
}

func (s *AuthService) authResponse(user entities.User, showOnboarding bool) (*ports.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	return &ports.AuthResponse{
		Token:          token,
		ExpiresIn:      int64(s.jwtConfig.ExpiresIn.Seconds()),
		User:           user.Sanitized(),
		ShowOnboarding: showOnboarding,
	}, nil
}

func (s *AuthService) generateToken(user entities.User) (string, error) {
	now := s.now()
	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.jwtConfig.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
