package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sefazor/eventrsvp-backend/internal/apperror"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/sefazor/eventrsvp-backend/internal/repository"
	"github.com/sefazor/eventrsvp-backend/pkg/bcrypt"
	jwtPkg "github.com/sefazor/eventrsvp-backend/pkg/jwt"
	"github.com/sefazor/eventrsvp-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid credentials"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	tokens    *jwtPkg.TokenManager
	validator *utils.Validator
	log       *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, tokens *jwtPkg.TokenManager, validator *utils.Validator, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		validator: validator,
		log:       log,
	}
}

// Register creates a non-admin user. The returned user never serializes its
// password hash.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict(msgEmailExists)
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		IsAdmin:  false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(msgEmailExists)
		}
		return nil, apperror.Internal(err)
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// Login checks the credentials and issues a fresh session token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", apperror.Validation(err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperror.Auth(msgInvalidCredentials)
	}
	if err != nil {
		return "", apperror.Internal(err)
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatch) {
			s.log.Error("stored password hash is unusable", zap.Uint("user_id", user.ID), zap.Error(err))
		}
		return "", apperror.Auth(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return "", apperror.Internal(err)
	}

	s.log.Info("user logged in", zap.Uint("user_id", user.ID), zap.Bool("is_admin", user.IsAdmin))
	return token, nil
}

// Authenticate validates a session token and returns the identity it carries.
func (s *AuthService) Authenticate(token string) (*models.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, jwtPkg.ErrExpiredToken) {
			return nil, apperror.Auth("Token has expired")
		}
		return nil, apperror.Auth("Invalid token")
	}
	return &models.Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
