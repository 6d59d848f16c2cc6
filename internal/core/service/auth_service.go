package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
	"github.com/cafecritique/review-api/internal/core/validation"
)

// AuthService implements registration, login and username availability.
type AuthService struct {
	repo      ports.UserRepository
	validate  *validation.Validator
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, validate *validation.Validator, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, validate: validate, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.UserType = strings.ToLower(strings.TrimSpace(in.UserType))
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Internal("Could not register account", err)
	}

	user := &domain.User{
		Username:     strings.ToLower(in.Username),
		PasswordHash: string(hash),
		Name:         domain.CapitalizeEachWord(in.Name),
		Email:        strings.ToLower(in.Email),
		Role:         domain.Role(in.UserType),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, &domain.ConflictError{Msg: "Username or e-mail already exists"}
	}
	if err != nil {
		s.log.Error().Err(err).Str("username", user.Username).Msg("failed to register account")
		return nil, domain.Internal("Could not register account", err)
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("account registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, *domain.Principal, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.UserType = strings.ToLower(strings.TrimSpace(in.UserType))
	if err := s.validate.Struct(in); err != nil {
		return "", nil, err
	}

	user, err := s.repo.FindByUsername(ctx, in.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.Invalid("username",
			fmt.Sprintf("\"%s\" is not associated to any account", in.Username), in.Username)
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	role := domain.Role(in.UserType)
	if user.Role != role {
		return "", nil, domain.Invalid("userType",
			fmt.Sprintf("\"%s\" is not associated to any \"%s\" account", in.Username, role.Label()), in.UserType)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return "", nil, domain.ErrInvalidPassword
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, domain.Internal("Could not sign in", err)
	}

	return token, &domain.Principal{Username: user.Username, Role: user.Role}, nil
}

func (s *AuthService) IsUsernameAvailable(ctx context.Context, in ports.UsernameInput) (bool, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if err := s.validate.Struct(in); err != nil {
		return false, err
	}

	_, err := s.repo.FindByUsername(ctx, in.Username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("username availability: %w", err)
	}
	return false, nil
}

// generateToken signs an HS256 token bound to the account identifier.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
