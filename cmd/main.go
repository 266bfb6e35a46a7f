// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"github.com/mbamerni/tzbi-vo/internal/config"
	"github.com/mbamerni/tzbi-vo/internal/handlers"
	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/repository"
	"github.com/mbamerni/tzbi-vo/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	if err := config.LoadConfig("configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion))

	db, err := repository.NewDB(config.Cfg.Database.Path, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Dependency injection
	remote := repository.NewHTTPRemoteStore(
		config.Cfg.Remote.BaseURL,
		config.Cfg.Remote.APIKey,
		time.Duration(config.Cfg.Remote.TimeoutSeconds)*time.Second,
		logger,
	)
	schedRepo := repository.NewGormScheduleRepository()
	queueRepo := repository.NewGormQueueRepository()
	prefRepo := repository.NewGormPreferenceRepository()

	defService := service.NewDefinitionService(remote)
	scheduleService := service.NewScheduleService(db, schedRepo, defService)
	syncService := service.NewSyncService(db, queueRepo, remote)
	counterService := service.NewCounterService(remote, syncService, scheduleService, defService, config.Cfg.Sync, logger)
	statsService := service.NewStatsService(remote, defService)
	prefService := service.NewPreferenceService(db, prefRepo)

	scheduleHandler := handlers.NewScheduleHandler(scheduleService, logger)
	counterHandler := handlers.NewCounterHandler(counterService, logger)
	statsHandler := handlers.NewStatsHandler(statsService, config.Cfg.Stats, logger)
	syncHandler := handlers.NewSyncHandler(syncService, logger)
	prefHandler := handlers.NewPreferenceHandler(prefService, logger)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(&config.Cfg))

			r.Route("/schedule", func(r chi.Router) {
				r.Get("/{date}", scheduleHandler.GetSchedule)
				r.Put("/{date}", scheduleHandler.PutSchedule)
				r.Get("/{date}/groups", scheduleHandler.GetScheduleGroups)
			})

			r.Get("/days/{date}", counterHandler.GetDay)
			r.Route("/items/{item_id}", func(r chi.Router) {
				r.Post("/increment", counterHandler.PostIncrement)
				r.Post("/reset", counterHandler.PostReset)
				r.Put("/count", counterHandler.PutCount)
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/streaks", statsHandler.GetStreaks)
				r.Get("/heatmap", statsHandler.GetHeatmap)
				r.Get("/summary", statsHandler.GetSummary)
			})

			r.Route("/sync", func(r chi.Router) {
				r.Post("/drain", syncHandler.PostDrain)
				r.Get("/status", syncHandler.GetStatus)
			})

			r.Route("/preferences", func(r chi.Router) {
				r.Get("/{key}", prefHandler.GetPreference)
				r.Put("/{key}", prefHandler.PutPreference)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Background outbox retry. The UI triggers extra drains through
	// POST /api/v1/sync/drain on its connectivity and foreground events.
	drainCtx, stopDrain := context.WithCancel(context.Background())
	defer stopDrain()
	go func() {
		syncService.DrainAll(drainCtx)

		interval := time.Duration(config.Cfg.Sync.DrainIntervalSeconds) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-drainCtx.Done():
				return
			case <-ticker.C:
				syncService.DrainAll(drainCtx)
			}
		}
	}()

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	stopDrain()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	// Pending debounced counter writes must not die with the process.
	counterService.Flush(ctx)

	log.Println("Server exiting")
}
