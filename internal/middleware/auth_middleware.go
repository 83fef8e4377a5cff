package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventrsvp-backend/internal/apperror"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	jwtPkg "github.com/sefazor/eventrsvp-backend/pkg/jwt"
	"go.uber.org/zap"
)

const (
	LocalIdentity = "identity"
	LocalUserID   = "userID"
	LocalToken    = "token"
)

// Authenticator turns a raw session token into a verified identity.
type Authenticator interface {
	Authenticate(token string) (*models.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's identity in c.Locals.
func AuthMiddleware(auth Authenticator, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required")
		}

		tokenString, err := jwtPkg.TokenFromHeader(authHeader)
		if err != nil {
			return unauthorized(c, "Invalid authorization header format")
		}

		identity, err := auth.Authenticate(tokenString)
		if err != nil {
			log.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
			return unauthorized(c, apperror.PublicMessage(err))
		}

		c.Locals(LocalIdentity, *identity)
		c.Locals(LocalUserID, identity.UserID)
		c.Locals(LocalToken, tokenString)

		return c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return unauthorized(c, "User not authenticated")
		}
		if !identity.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
		}
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthMiddleware.
func IdentityFrom(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(LocalIdentity).(models.Identity)
	return identity, ok
}

// TokenFrom returns the raw bearer token accepted by AuthMiddleware.
func TokenFrom(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalToken).(string)
	return token
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(msg))
}
