package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sefazor/eventrsvp-backend/internal/handler"
	"github.com/sefazor/eventrsvp-backend/internal/middleware"
	"go.uber.org/zap"
)

type Options struct {
	AllowOrigins       string
	RateLimitPerMinute int
}

type Handlers struct {
	Auth  *handler.AuthHandler
	User  *handler.UserHandler
	Event *handler.EventHandler
}

// New builds the fiber app with every route mounted.
func New(h Handlers, auth middleware.Authenticator, log *zap.Logger, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "eventrsvp",
		ErrorHandler: handler.ErrorHandler(log),
		BodyLimit:    1 << 20,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE",
	}))
	if opts.RateLimitPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimitPerMinute,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)

	// Protected routes
	requireAuth := middleware.AuthMiddleware(auth, log)

	users := api.Group("/users", requireAuth)
	users.Get("/profile", h.User.GetMyProfile)
	users.Get("/rsvps", h.User.GetMyRSVPs)

	events := api.Group("/events", requireAuth)
	events.Get("/", h.Event.ListEvents)
	events.Post("/", middleware.RequireAdmin(), h.Event.CreateEvent)
	events.Get("/:id", h.Event.GetEvent)
	events.Delete("/:id", middleware.RequireAdmin(), h.Event.DeleteEvent)
	events.Post("/:id/rsvp", h.Event.ToggleRSVP)
	events.Get("/:id/attendees", h.Event.ListAttendees)

	return app
}
