// Package main runs the Conference Central HTTP API.
//
// @title Conference Central API
// @version 1.0
// @description Conferences, sessions, registrations, wishlists and announcements.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/app"
	httpdelivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger(&config.Config{}).Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger, true)
	if err != nil {
		logger.Error("startup", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Conference:   controllers.NewConferenceController(logger, a.Conferences),
		Profile:      controllers.NewProfileController(logger, a.Profiles),
		Registration: controllers.NewRegistrationController(logger, a.Registration),
		Session:      controllers.NewSessionController(logger, a.Sessions),
		Announcement: controllers.NewAnnouncementController(a.Announcements),
	}, auth.NewJWTVerifier(cfg.JWTSecret), httpdelivery.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	// With inline tasks there is no separate worker, so the nearly-sold-out
	// announcement is refreshed here.
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	if a.Inline != nil {
		go worker.NewAnnouncementRefresher(a.Announcements, cfg.AnnouncementRefreshInterval, logger).Run(bgCtx)
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	bgCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	logger.Info("server stopped")
}
