package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/siteadmin/internal/adapter/fsm"
	oteladapter "github.com/neomorfeo/siteadmin/internal/adapter/otel"
	riveradapter "github.com/neomorfeo/siteadmin/internal/adapter/river"
	"github.com/neomorfeo/siteadmin/internal/adapter/sqlite"
	"github.com/neomorfeo/siteadmin/internal/app"
	"github.com/neomorfeo/siteadmin/internal/config"
	"github.com/neomorfeo/siteadmin/internal/guard"

	handler "github.com/neomorfeo/siteadmin/internal/adapter/http"
)

const (
	serviceName    = "siteadmin"
	serviceVersion = "0.1.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// run wires the process and blocks until SIGINT or SIGTERM.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	providers, err := oteladapter.Setup(ctx, oteladapter.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := oteladapter.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	store, err := sqlite.NewFromDB(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()

	queue, err := riveradapter.Setup(ctx, db, riveradapter.Options{
		MaxWorkers: cfg.RiverWorkers,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	// Stop is driven by the deferred call below, not by signal cancellation.
	if err := queue.Start(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("starting queue: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := queue.Stop(stopCtx); err != nil {
			logger.Error("queue shutdown", "error", err)
		}
	}()

	publisher := oteladapter.NewTracingPublisher(riveradapter.NewPublisher(queue))

	// --- Application ---
	svc := handler.Services{
		Pages: app.NewPageService(
			oteladapter.NewTracingPageRepository(store.Pages()),
			publisher,
			fsm.NewPublication(),
			guard.NewSet(cfg.ProtectedPageKeys...),
		),
		LegalPages: app.NewLegalPageService(store.LegalPages(), publisher,
			guard.NewSet(cfg.ProtectedLegalPageTypes...)),
		BusinessModels: app.NewBusinessModelService(store.BusinessModels(), publisher,
			guard.NewSet(cfg.ProtectedBusinessModelCodes...)),
		Specialties: app.NewSpecialtyService(store.Specialties(), publisher,
			guard.NewSet(cfg.ProtectedSpecialtySlugs...)),
		Programs:    app.NewProgramService(store.Programs(), store.Specialties(), store.BusinessModels(), publisher),
		Instructors: app.NewInstructorService(store.Instructors(), store.Specialties(), publisher),
		Leads: app.NewLeadService(
			oteladapter.NewTracingLeadRepository(store.Leads()),
			store.Programs(),
			publisher,
			fsm.NewFunnel(),
		),
	}

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig(serviceName, serviceVersion))
	handler.Register(api, svc)
	handler.RegisterHealth(api, store)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "docs", "http://localhost:"+cfg.Port+"/docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
