package service

import (
	"context"
	"errors"

	"github.com/sefazor/eventrsvp-backend/internal/apperror"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/sefazor/eventrsvp-backend/internal/repository"
	jwtPkg "github.com/sefazor/eventrsvp-backend/pkg/jwt"
	"gorm.io/gorm"
)

const msgUserNotFound = "User not found."

type UserService struct {
	userRepo *repository.UserRepository
	rsvpRepo *repository.RSVPRepository
	tokens   *jwtPkg.TokenManager
}

func NewUserService(userRepo *repository.UserRepository, rsvpRepo *repository.RSVPRepository, tokens *jwtPkg.TokenManager) *UserService {
	return &UserService{
		userRepo: userRepo,
		rsvpRepo: rsvpRepo,
		tokens:   tokens,
	}
}

// GetProfile resolves the user a session token belongs to. The token is only
// decoded here; signature and expiry are the auth middleware's job.
func (s *UserService) GetProfile(ctx context.Context, token string) (*models.PublicUser, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, apperror.Auth("Invalid token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	profile := user.Public()
	return &profile, nil
}

// ListRSVPs returns the ids of the events the caller attends.
func (s *UserService) ListRSVPs(ctx context.Context, identity models.Identity) ([]uint, error) {
	ids, err := s.rsvpRepo.EventIDsForUser(ctx, identity.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return ids, nil
}
