package service

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/sefazor/eventrsvp-backend/internal/apperror"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/sefazor/eventrsvp-backend/internal/repository"
	"github.com/sefazor/eventrsvp-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgEventNotFound = "Event not found"
	msgAdminRequired = "Admin access required"
)

type EventService struct {
	eventRepo *repository.EventRepository
	rsvpRepo  *repository.RSVPRepository
	validator *utils.Validator
	log       *zap.Logger
}

func NewEventService(eventRepo *repository.EventRepository, rsvpRepo *repository.RSVPRepository, validator *utils.Validator, log *zap.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
		validator: validator,
		log:       log,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, identity models.Identity, req models.EventRequest) (*models.Event, error) {
	if !identity.IsAdmin {
		return nil, apperror.Forbidden(msgAdminRequired)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Location = strings.TrimSpace(req.Location)
	if err := s.validator.Struct(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	event := &models.Event{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		CreatedBy:   identity.UserID,
	}

	createdEvent, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Info("event created", zap.Uint("event_id", createdEvent.ID), zap.Uint("admin_id", identity.UserID))
	return createdEvent, nil
}

// DeleteEvent removes the event and every RSVP pointing at it.
func (s *EventService) DeleteEvent(ctx context.Context, identity models.Identity, eventID uint) error {
	if !identity.IsAdmin {
		return apperror.Forbidden(msgAdminRequired)
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(msgEventNotFound)
		}
		return apperror.Internal(err)
	}

	s.log.Info("event deleted", zap.Uint("event_id", eventID), zap.Uint("admin_id", identity.UserID))
	return nil
}

// ListEvents yields every event with its attendee count. When viewer is set,
// each summary also reports whether the viewer has RSVPed. The sequence can
// be ranged over more than once; an empty sequence means there are no events.
func (s *EventService) ListEvents(ctx context.Context, viewer *models.Identity) iter.Seq2[models.EventSummary, error] {
	var viewerID uint
	if viewer != nil {
		viewerID = viewer.UserID
	}

	return func(yield func(models.EventSummary, error) bool) {
		for summary, err := range s.eventRepo.List(ctx, viewerID) {
			if err != nil {
				yield(models.EventSummary{}, apperror.Internal(err))
				return
			}
			if !yield(summary, nil) {
				return
			}
		}
	}
}

func (s *EventService) GetEvent(ctx context.Context, viewer *models.Identity, eventID uint) (*models.EventSummary, error) {
	var viewerID uint
	if viewer != nil {
		viewerID = viewer.UserID
	}

	summary, err := s.eventRepo.GetSummary(ctx, eventID, viewerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(msgEventNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return summary, nil
}

// ToggleRSVP adds the caller to the event's attendee set, or removes them if
// they are already in it.
func (s *EventService) ToggleRSVP(ctx context.Context, identity models.Identity, eventID uint) (*models.RSVPResult, error) {
	attending, err := s.rsvpRepo.Toggle(ctx, eventID, identity.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(msgEventNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.Debug("rsvp toggled",
		zap.Uint("event_id", eventID),
		zap.Uint("user_id", identity.UserID),
		zap.Bool("rsvped", attending),
	)
	return &models.RSVPResult{EventID: eventID, RSVPed: attending}, nil
}

func (s *EventService) ListAttendees(ctx context.Context, eventID uint) ([]models.PublicUser, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(msgEventNotFound)
		}
		return nil, apperror.Internal(err)
	}

	users, err := s.rsvpRepo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	attendees := make([]models.PublicUser, 0, len(users))
	for i := range users {
		attendees = append(attendees, users[i].Public())
	}
	return attendees, nil
}
