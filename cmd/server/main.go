package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"portfolio/docs" // swagger docs
	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/handler"
	"portfolio/internal/logging"
	"portfolio/internal/repository"
	"portfolio/internal/router"
	"portfolio/internal/service"
)

// @title Portfolio API
// @version 1.0
// @description Portfolio service: session-cookie authentication, projects with technologies, settings and a contact form.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogLevel)
	ctx := context.Background()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	gormDB, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)
	log.Info(ctx, "database connected", "driver", cfg.DBDriver)

	if cfg.ResetDB {
		log.Warn(ctx, "RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn(ctx, "redis unavailable, throttling and preferences disabled", "addr", cfg.RedisAddr, "error", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)

	// Initialize auth components
	sessions := auth.NewSessionStore(sessionRepo)
	hasher := auth.NewArgon2Hasher(auth.DefaultPasswordParams())
	loginLimiter := auth.NewAttemptLimiter(cacheClient, "login", cfg.LoginMaxAttempts, 15*time.Minute)
	contactLimiter := auth.NewAttemptLimiter(cacheClient, "contact", cfg.ContactMaxPerHour, time.Hour)
	cookies := auth.CookieOptions{Secure: cfg.SessionCookieSecure}

	if pruned, err := sessions.PruneExpired(ctx); err != nil {
		log.Warn(ctx, "prune expired sessions", "error", err)
	} else if pruned > 0 {
		log.Info(ctx, "pruned expired sessions", "count", pruned)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions, hasher, loginLimiter, log)
	settingsService := service.NewSettingsService(userRepo, sessions, hasher, cacheClient, log)
	projectService := service.NewProjectService(projectRepo, log)
	contactService := service.NewContactService(contactLimiter, log)
	userService := service.NewUserService(userRepo, projectRepo)

	e := echo.New()
	e.HideBanner = true
	if cfg.TrustProxy {
		// X-Forwarded-For is honored only from loopback and private proxies.
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	}
	router.Register(e, log, router.Handlers{
		Session:  handler.NewSessionMiddleware(authService, cookies, log),
		Auth:     handler.NewAuthHandler(authService, cookies, log),
		Settings: handler.NewSettingsHandler(settingsService, cookies, log),
		Projects: handler.NewProjectHandler(projectService, log),
		Contact:  handler.NewContactHandler(contactService, log),
		Users:    handler.NewUserHandler(userService, log),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Info(ctx, "swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "http server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info(ctx, "shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
