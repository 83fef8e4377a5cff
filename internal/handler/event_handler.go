package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventrsvp-backend/internal/middleware"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/sefazor/eventrsvp-backend/internal/service"
	"go.uber.org/zap"
)

type EventHandler struct {
	eventService *service.EventService
	log          *zap.Logger
}

func NewEventHandler(eventService *service.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		log:          log,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), identity, req)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	var viewer *models.Identity
	if identity, ok := middleware.IdentityFrom(c); ok {
		viewer = &identity
	}

	// Non-nil so an empty listing renders as [] rather than null.
	events := []models.EventSummary{}
	for summary, err := range h.eventService.ListEvents(c.UserContext(), viewer) {
		if err != nil {
			return respondError(c, h.log, err)
		}
		events = append(events, summary)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    events,
	})
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}

	var viewer *models.Identity
	if identity, ok := middleware.IdentityFrom(c); ok {
		viewer = &identity
	}

	event, err := h.eventService.GetEvent(c.UserContext(), viewer, eventID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event retrieved successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	if err := h.eventService.DeleteEvent(c.UserContext(), identity, eventID); err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event successfully deleted"))
}

func (h *EventHandler) ToggleRSVP(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	result, err := h.eventService.ToggleRSVP(c.UserContext(), identity, eventID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(result)
}

func (h *EventHandler) ListAttendees(c *fiber.Ctx) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return err
	}

	attendees, err := h.eventService.ListAttendees(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    attendees,
	})
}

// parseEventID reads the :id route parameter. A bad id is a 400 fiber.Error
// handled by ErrorHandler.
func parseEventID(c *fiber.Ctx) (uint, error) {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || eventID == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid event ID")
	}
	return uint(eventID), nil
}
