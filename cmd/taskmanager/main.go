package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.Logger

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	closer, err := logging.Init(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authSvc := service.NewAuthService(userRepo, hasher, tokens, cfg.AccessTokenTTL)
	taskSvc := service.NewTaskService(taskRepo)
	statsSvc := service.NewStatsService(userRepo, taskRepo)

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.StatsInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.StatsInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := statsSvc.Report(jobCtx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("stats: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule stats: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Infof("scheduled %d background job(s)", scheduler.Entries())
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewServer(authSvc, taskSvc, db).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped with error: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}
	log.Info("Shutdown complete.")
}
