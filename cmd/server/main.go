package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examdesk/examdesk-backend/internal/config"
	"github.com/examdesk/examdesk-backend/internal/database"
	"github.com/examdesk/examdesk-backend/internal/handler"
	"github.com/examdesk/examdesk-backend/internal/logger"
	"github.com/examdesk/examdesk-backend/internal/middleware"
	"github.com/examdesk/examdesk-backend/internal/repository"
	"github.com/examdesk/examdesk-backend/internal/router"
	"github.com/examdesk/examdesk-backend/internal/service"
	"github.com/examdesk/examdesk-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Bool("allow_self_role_change", cfg.AllowSelfRoleChange).
		Bool("clear_choices_when_absent", cfg.ClearChoicesWhenAbsent).
		Msg("Starting ExamDesk Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	txManager := repository.NewTxManager(pool)
	userRepo := repository.NewUserRepository(pool)
	choiceRepo := repository.NewChoiceRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	answerRepo := repository.NewExamineeAnswerRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	policy := service.KeepWhenAbsent
	if cfg.ClearChoicesWhenAbsent {
		policy = service.ClearWhenAbsent
	}

	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, txManager, authService, cfg.AllowSelfRoleChange, log)
	choiceService := service.NewChoiceService(choiceRepo, log)
	questionService := service.NewQuestionService(questionRepo, choiceRepo, txManager, policy, log)
	answerService := service.NewAnswerService(answerRepo, questionRepo, txManager, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		User:     handler.NewUserHandler(userService, log),
		Question: handler.NewQuestionHandler(questionService, log),
		Choice:   handler.NewChoiceHandler(choiceService, log),
		Answer:   handler.NewAnswerHandler(answerService, log),
		System: handler.NewSystemHandler(map[string]handler.HealthCheck{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}, log),
	}

	// Token endpoint budget per client IP per minute.
	tokenLimiter := middleware.NewRateLimiter(rdb, "token", cfg.TokenRateLimit, time.Minute, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(userService, tokenLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
