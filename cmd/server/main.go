package main

import (
	"GiftHunt/internal/config"
	"GiftHunt/internal/handlers"
	"GiftHunt/internal/linkmeta"
	"GiftHunt/internal/middleware"
	"GiftHunt/internal/notify"
	"GiftHunt/internal/repo"
	"GiftHunt/internal/service"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	//context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	notifier, err := notify.NewSESNotifier(ctx, notify.Options{
		Region:    cfg.AWSRegion,
		FromEmail: cfg.SESFromEmail,
		FromName:  cfg.SESFromName,
	}, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize email notifier", "error", err)
	}
	if !notifier.Enabled() {
		sugar.Warnw("SES sender is not configured, invitation emails are only logged")
	}

	repos := repo.NewRepositories(gormDB)
	svc := handlers.Services{
		Users:       service.NewUserService(repos.Users),
		Wishlists:   service.NewWishlistService(repos, cfg.AppBaseURL, sugar),
		Invitations: service.NewInvitationService(repos, notifier, cfg.AppBaseURL, sugar),
		Admins:      service.NewAdminService(repos, sugar),
		ShareLinks:  service.NewShareLinkService(repos, cfg.ShareLinkTTL, cfg.AppBaseURL, sugar),
		Claims:      service.NewClaimService(repos, sugar),
	}

	h := handlers.NewHandler(svc, linkmeta.NewFetcher(nil), sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"AppBaseURL", cfg.AppBaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"ShareLinkTTL", cfg.ShareLinkTTL,
		"SESEnabled", notifier.Enabled(),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
