// Package main provides the entry point for the booking API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/config"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/handler"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/logger"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/mailer"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/notifyqueue"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/ratelimit"
	"github.com/SiliveruSumanth/pest-protect-gallery-web/internal/store"
)

// Run is the testable entrypoint for the application.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env)
	log.Info("Starting booking API", zap.String("addr", cfg.Addr()))

	db, err := store.NewDatabase(cfg)
	if err != nil {
		log.Error("database connection failed", zap.Error(err))
		return err
	}
	defer db.Close()

	mail := mailer.NewSMTPMailer(cfg.SMTP)
	limiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)
	queue := notifyqueue.New(mail, log, time.Minute)
	h := handler.New(log, db, mail, limiter, queue, cfg.OwnerEmail, cfg.FromEmail)

	r := chi.NewRouter()
	r.Get("/healthz", h.Healthz)
	r.Post("/appointments", h.Book)
	r.Options("/appointments", h.Book)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go queue.Start()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	queue.Stop()
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx); err != nil {
		os.Exit(1)
	}
}
