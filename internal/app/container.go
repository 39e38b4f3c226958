package app

import (
	"context"
	"errors"
	"log"
	"time"

	"talent-hive/internal/config"
	"talent-hive/internal/database"
	dbpostgres "talent-hive/internal/database/postgres"
	"talent-hive/internal/infrastructure/cache"
	"talent-hive/internal/infrastructure/mail"
	"talent-hive/internal/mailer"
	"talent-hive/internal/pkg/jwt"
	"talent-hive/internal/repository"
	"talent-hive/internal/scraper"
	"talent-hive/internal/usecase"
	"talent-hive/internal/ws"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Applications repository.ApplicationRepository
	Resources    *usecase.InterviewResources
	Transport    mail.Transport
	Dispatcher   *mailer.Dispatcher
	Hub          *ws.Hub
	JWT          *jwt.HMACService
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)

	var store repository.InterviewResourceStore = repository.NewPostgresInterviewResourceRepository(db)
	store = repository.NewCachedInterviewResourceRepository(store, redis, cfg.Resources.FreshnessWindow, logger)

	resources := usecase.NewInterviewResourceUsecase(store, scraper.NewSynthesizer(logger), cfg.Resources.FreshnessWindow, logger)

	hub := ws.NewHub(logger)
	transport := mail.NewTransport(cfg.SMTP, logger)
	dispatcher := mailer.NewDispatcher(resources, transport, mailer.DispatcherOptions{
		Workers:     cfg.Dispatch.Workers,
		QueueSize:   cfg.Dispatch.QueueSize,
		RatePerSec:  cfg.Dispatch.RatePerSec,
		TaskTimeout: cfg.Dispatch.TaskTimeout,
		Notifier:    ws.NewNotifier(hub),
	}, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Cache:        redis,
		Applications: repository.NewPostgresApplicationRepository(db),
		Resources:    resources,
		Transport:    transport,
		Dispatcher:   dispatcher,
		Hub:          hub,
		JWT:          jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn),
	}, nil
}

// Close drains queued mail up to ctx, then releases connections.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Dispatcher != nil {
		if err := c.Dispatcher.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
