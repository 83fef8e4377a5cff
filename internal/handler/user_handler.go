package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventrsvp-backend/internal/middleware"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/sefazor/eventrsvp-backend/internal/service"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
	log         *zap.Logger
}

func NewUserHandler(userService *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.UserContext(), middleware.TokenFrom(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(profile)
}

func (h *UserHandler) GetMyRSVPs(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	ids, err := h.userService.ListRSVPs(c.UserContext(), identity)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    ids,
	})
}
