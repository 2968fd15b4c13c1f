// Package app wires configuration into the repositories, services and task
// plumbing shared by the API server and the worker.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/adapters/redis"
	"conferencecentral/internal/cache"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/queue"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
	"conferencecentral/internal/worker"
)

// App holds the wired dependencies. Close releases them.
type App struct {
	DB    *sql.DB
	Redis *goredis.Client

	Profiles      domain.ProfileService
	Conferences   domain.ConferenceService
	Sessions      domain.SessionService
	Registration  domain.RegistrationService
	Announcements domain.AnnouncementService

	// Processor executes tasks; Dispatcher is what the services enqueue on.
	Processor  *worker.Processor
	Dispatcher domain.TaskDispatcher
	// Queue is set when TASK_DRIVER is redis.
	Queue *queue.Queue
	// Inline is set when TASK_DRIVER is inline.
	Inline *queue.Inline
}

// New opens the database (running migrations when migrate is set), connects to
// Redis if a driver needs it, and builds every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrate bool) (*App, error) {
	a := &App{}
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	a.DB = db
	if migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.UsesRedis() {
		rdb, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.Redis = rdb
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("mailer: %w", err)
	}

	a.wire(cfg, logger, mailer)
	return a, nil
}

func (a *App) wire(cfg *config.Config, logger *slog.Logger, mailer domain.Mailer) {
	profileRepo := postgres.NewProfileRepository(a.DB)
	conferenceRepo := postgres.NewConferenceRepository(a.DB)
	sessionRepo := postgres.NewSessionRepository(a.DB)
	transactor := postgres.NewTransactor(a.DB)

	var announcementCache domain.AnnouncementCache = cache.NewMemory()
	if cfg.CacheDriver == config.DriverRedis {
		announcementCache = cache.NewRedis(a.Redis, logger)
	}

	a.Announcements = services.NewAnnouncementService(conferenceRepo, sessionRepo, announcementCache, logger, cfg.ContextTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	a.Processor = worker.NewProcessor(emailService, a.Announcements, logger)

	if cfg.TaskDriver == config.DriverRedis {
		a.Queue = queue.NewQueue(a.Redis, logger)
		a.Dispatcher = a.Queue
	} else {
		a.Inline = queue.NewInline(a.Processor, cfg.ContextTimeout, logger)
		a.Dispatcher = a.Inline
	}

	a.Profiles = services.NewProfileService(profileRepo, cfg.ContextTimeout)
	a.Conferences = services.NewConferenceService(conferenceRepo, profileRepo, transactor, a.Dispatcher, logger, cfg.ContextTimeout)
	a.Sessions = services.NewSessionService(sessionRepo, conferenceRepo, profileRepo, a.Dispatcher, logger, cfg.ContextTimeout)
	a.Registration = services.NewRegistrationService(transactor, cfg.ContextTimeout)
}

// Close waits for inline tasks and closes the connections.
func (a *App) Close() error {
	if a.Inline != nil {
		a.Inline.Wait()
	}
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
