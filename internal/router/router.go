package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"portfolio/internal/handler"
	"portfolio/internal/logging"
	"portfolio/internal/validation"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Session  *handler.SessionMiddleware
	Auth     *handler.AuthHandler
	Settings *handler.SettingsHandler
	Projects *handler.ProjectHandler
	Contact  *handler.ContactHandler
	Users    *handler.UserHandler
}

// Register wires routes and middleware. Unless the caller installed an
// IPExtractor, client addresses come from the socket and forwarding headers
// are ignored.
func Register(e *echo.Echo, log logging.Logger, h Handlers) {
	if e.IPExtractor == nil {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(log)))

	e.Validator = validation.NewEchoValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", h.Session.LoadSession)

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/projects/featured", h.Projects.Featured)
	api.GET("/projects/:id", h.Projects.Get)
	api.GET("/users/:username", h.Users.GetProfile)
	api.POST("/contact", h.Contact.Submit)

	// Secured routes (require a session)
	secured := api.Group("", h.Session.RequireUser)

	secured.GET("/me", h.Auth.Me)

	// Project routes
	secured.GET("/dashboard/projects", h.Projects.Dashboard)
	secured.POST("/projects", h.Projects.Create)
	secured.PATCH("/projects/:id", h.Projects.Update)
	secured.DELETE("/projects/:id", h.Projects.Delete)
	secured.POST("/projects/:id/technologies", h.Projects.AddTechnology)
	secured.PATCH("/projects/:id/technologies/:techId", h.Projects.UpdateTechnology)
	secured.DELETE("/projects/:id/technologies/:techId", h.Projects.RemoveTechnology)

	// Settings routes
	secured.GET("/settings", h.Settings.Get)
	secured.PUT("/settings/profile", h.Settings.UpdateProfile)
	secured.PUT("/settings/password", h.Settings.UpdatePassword)
	secured.DELETE("/settings/sessions", h.Settings.ClearSessions)
	secured.GET("/settings/preferences", h.Settings.GetPreferences)
	secured.PUT("/settings/preferences", h.Settings.SavePreferences)
	secured.DELETE("/settings/account", h.Settings.DeleteAccount)
}

func requestLoggerConfig(log logging.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			switch {
			case v.Status >= http.StatusInternalServerError:
				log.Error(ctx, "request", append(args, "error", v.Error)...)
			case v.Status >= http.StatusBadRequest:
				log.Warn(ctx, "request", args...)
			default:
				log.Info(ctx, "request", args...)
			}
			return nil
		},
	}
}
