package router

import (
	"github.com/anonto42/socialgraph/backend/internal/handlers"
	"github.com/anonto42/socialgraph/backend/internal/middleware"
	"github.com/anonto42/socialgraph/backend/internal/services"
	"github.com/anonto42/socialgraph/backend/internal/validators"
	"github.com/anonto42/socialgraph/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer is built from.
type Deps struct {
	Services *services.Services
	Tokens   middleware.TokenParser
	// Firebase is optional; Firebase login is only routed when it is set.
	Firebase handlers.IDTokenVerifier
	Logger   *zap.Logger
}

// New builds a fully configured echo instance.
func New(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.ErrorHandler(d.Logger)
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, d.Logger)
	SetupRoutes(e, d)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) {
	log := d.Logger
	svc := d.Services

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Every other route resolves the caller; anonymous requests pass through
	// and the services decide what they may do.
	root := e.Group("", middleware.Identify(d.Tokens))

	handlers.NewAuthHandler(svc.Accounts, d.Firebase).RegisterAuthRoutes(root)
	log.Debug("Auth routes configured.", zap.Bool("firebase", d.Firebase != nil))

	handlers.NewUserHandler(svc.Accounts, svc.Graph).RegisterUserRoutes(root)
	handlers.NewFollowHandler(svc.Graph).RegisterFollowRoutes(root)
	log.Debug("User and follow routes configured.")

	handlers.NewPostHandler(svc.Content).RegisterPostRoutes(root)
	handlers.NewLikeHandler(svc.Engagement).RegisterLikeRoutes(root)
	handlers.NewCommentHandler(svc.Content).RegisterCommentRoutes(root)
	log.Debug("Post, like and comment routes configured.")

	handlers.NewFeedHandler(svc.Feed).RegisterFeedRoutes(root)
	handlers.NewNotificationHandler(svc.Notifications).RegisterNotificationRoutes(root)
	log.Debug("Feed and notification routes configured.")

	api := root.Group("/api")
	handlers.NewBookHandler(svc.Catalog).RegisterBookRoutes(api)
	log.Debug("Catalog routes configured.")

	log.Info("All routes configured.")
}
