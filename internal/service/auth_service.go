package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

// ErrInvalidCredentials indicates an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService signs dashboard users in.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type authService struct {
	users     repository.UserRepository
	secret    []byte
	ttl       time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the auth service issuing HS256 tokens.
func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration, validate *validator.Validate, logger zerolog.Logger) AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &authService{
		users:     users,
		secret:    []byte(secret),
		ttl:       ttl,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Str("email", maskEmail(payload.Email)).Msg("login rejected: unknown account")
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, fmt.Errorf("find user: %w", err)
	}
	if !user.CheckPassword(payload.Password) {
		s.logger.Warn().Uint("user_id", user.ID).Msg("login rejected")
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	issuedAt := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": strings.ToLower(user.Role),
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(s.ttl).Unix(),
	}
	if user.OfficeID != nil {
		claims["office_id"] = *user.OfficeID
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.ttl.Seconds()),
		User:      dto.NewUserResponse(user),
	}, nil
}
