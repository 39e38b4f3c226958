package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-hive/internal/app"
	"talent-hive/internal/config"
	"talent-hive/internal/database/migration"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := (migration.Runner{Logger: logger}).Run(migCtx, c.DB.SQLDB()); err != nil {
		migCancel()
		log.Fatalf("migration failed: %v", err)
	}
	migCancel()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap := app.New(c)
	g, gCtx := errgroup.WithContext(ctx)

	// Workers run on their own context so queued mail survives shutdown
	// until Close drains it.
	c.Dispatcher.Start(context.Background())

	g.Go(func() error {
		c.Hub.Run(gCtx)
		return nil
	})
	g.Go(func() error {
		logger.Printf("[Server] Listening addr=%s env=%s", addr, cfg.App.Environment)
		return bootstrap.Fiber.Listen(addr)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return bootstrap.Fiber.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Printf("[Server] Stopped with error err=%v", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := c.Close(closeCtx); err != nil {
		logger.Printf("[Server] Cleanup error err=%v", err)
	}
}
