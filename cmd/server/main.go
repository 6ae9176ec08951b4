package main // Entry point package

import (
	"context"   // Root context cancelled on shutdown signals
	"errors"    // Distinguishes a clean server close from failures
	"log/slog"  // Structured logging
	"net/http"  // http.ErrServerClosed
	"os"        // Log file and process exit
	"os/signal" // SIGINT/SIGTERM handling
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/exam-seating/internal/config"     // Internal config loader
	"github.com/iliyamo/exam-seating/internal/database"   // MySQL connection and schema
	"github.com/iliyamo/exam-seating/internal/handler"    // HTTP handlers
	"github.com/iliyamo/exam-seating/internal/middleware" // Request logging and rate limiting
	"github.com/iliyamo/exam-seating/internal/queue"      // Published-arrangement consumer
	"github.com/iliyamo/exam-seating/internal/repository" // MySQL repositories
	"github.com/iliyamo/exam-seating/internal/router"     // Internal router setup
	"github.com/iliyamo/exam-seating/internal/service"    // Planner and event publisher
	"github.com/iliyamo/exam-seating/internal/session"    // Session stores
)

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	cfg := config.Load() // Load environment config
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Error("database unavailable", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		logger.Error("schema migration failed", slog.Any("err", err))
		os.Exit(1)
	}

	halls := repository.NewHallRepo(db)
	candidates := repository.NewCandidateRepo(db)
	arrangements := repository.NewArrangementRepo(db)

	seatCfg := config.LoadSeatingConfig()
	rdb := config.NewRedisClient() // nil when Redis is unreachable
	var store session.Store
	if rdb != nil {
		defer rdb.Close()
		store = session.NewRedisStore(rdb, seatCfg.SessionPrefix, seatCfg.SessionTTL)
		logger.Info("sessions in redis", slog.String("prefix", seatCfg.SessionPrefix), slog.Duration("ttl", seatCfg.SessionTTL))
	} else {
		store = session.NewMemoryStore()
		logger.Warn("redis unavailable; sessions kept in memory and rate limiting disabled")
	}

	planner := &service.Planner{
		Halls:        halls,
		Candidates:   candidates,
		Sessions:     store,
		Arrangements: arrangements,
		Config: service.PlannerConfig{
			LookAhead: seatCfg.LookAhead,
			Restarts:  seatCfg.Restarts,
			Seed:      seatCfg.Seed,
		},
		Logger: logger.With(slog.String("component", "planner")),
	}

	if config.EventsEnabled() {
		url := config.AMQPURL()
		planner.Events = &service.AMQPPublisher{URL: url}
		if err := os.MkdirAll("logs", 0o755); err != nil {
			logger.Warn("cannot create logs dir", slog.Any("err", err))
		} else if f, err := os.OpenFile(filepath.Join("logs", "seating.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err != nil {
			logger.Warn("cannot open seating log", slog.Any("err", err))
		} else {
			defer f.Close()
			go func() {
				_ = queue.StartPublishedConsumer(ctx, url, f, logger.With(slog.String("component", "consumer")))
			}()
		}
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(middleware.RequestLogger(logger))
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger)

	router.RegisterRoutes(e) // Register application routes
	router.RegisterRecords(e, handler.NewRecordHandler(halls, candidates, logger), cfg.JWTSecret)
	router.RegisterSessions(e, handler.NewSessionHandler(planner, logger), cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port // Address string with port
	go func() {
		logger.Info("listening", slog.String("addr", addr), slog.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("err", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.Any("err", err))
	}
	logger.Info("stopped")
}
