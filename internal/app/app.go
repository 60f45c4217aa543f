package app

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

	"insurance-portal/internal/config"
	"insurance-portal/internal/database"
	"insurance-portal/internal/handler"
	"insurance-portal/internal/middleware"
	"insurance-portal/internal/repository"
	"insurance-portal/internal/router"
	"insurance-portal/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	policyRepo := repository.NewPolicyRepository(pool)
	claimRepo := repository.NewClaimRepository(pool)
	slog.Info("database ready")

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTAccessTTL)
	authService := service.NewAuthService(userRepo, tokenService)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	claimService := service.NewClaimService(policyRepo, claimRepo)
	policyService := service.NewPolicyService(policyRepo)
	chatService := service.NewChatService(cfg.AIServiceURL, cfg.AIRequestTimeout)
	documentService, err := service.NewDocumentService(cfg.UploadDir, cfg.AIServiceURL, cfg.AIRequestTimeout)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize document service: %w", err)
	}

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Claim:  handler.NewClaimHandler(claimService),
		Policy: handler.NewPolicyHandler(policyService),
		Chat:   handler.NewChatHandler(chatService),
		Admin:  handler.NewAdminHandler(documentService, cfg.MaxUploadSize),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
