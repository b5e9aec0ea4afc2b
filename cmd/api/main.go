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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rekberhq/rekber/internal/audit"
	auditStore "github.com/rekberhq/rekber/internal/audit/store"
	"github.com/rekberhq/rekber/internal/config"
	"github.com/rekberhq/rekber/internal/database"
	"github.com/rekberhq/rekber/internal/escrow"
	escrowStore "github.com/rekberhq/rekber/internal/escrow/store"
	rekberHttp "github.com/rekberhq/rekber/internal/http"
	escrowHandler "github.com/rekberhq/rekber/internal/http/escrow"
	authMiddleware "github.com/rekberhq/rekber/internal/http/middleware"
	notificationHandler "github.com/rekberhq/rekber/internal/http/notification"
	reviewHandler "github.com/rekberhq/rekber/internal/http/review"
	settingHandler "github.com/rekberhq/rekber/internal/http/setting"
	"github.com/rekberhq/rekber/internal/metrics"
	"github.com/rekberhq/rekber/internal/notify"
	notifyStore "github.com/rekberhq/rekber/internal/notify/store"
	"github.com/rekberhq/rekber/internal/proof"
	proofStore "github.com/rekberhq/rekber/internal/proof/store"
	"github.com/rekberhq/rekber/internal/review"
	reviewStore "github.com/rekberhq/rekber/internal/review/store"
	"github.com/rekberhq/rekber/internal/setting"
	settingStore "github.com/rekberhq/rekber/internal/setting/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	m := metrics.New(prometheus.DefaultRegisterer)

	var (
		settingService = setting.NewService(settingStore.New(db), cfg.Escrow.AdminFeeFallback)
		notifyService  = notify.NewService(notifyStore.New(db))
		auditService   = audit.NewService(auditStore.New(db))
		proofService   = proof.NewService(proofStore.New(db))
	)

	dispatcher := escrow.NewDispatcher(notifyService, auditService)

	escrowService := escrow.NewService(escrowStore.New(db), settingService, proofService, dispatcher, m).
		WithAutoCompleteWindow(cfg.Escrow.AutoCompleteAfter)
	reviewService := review.NewService(reviewStore.New(db), escrowService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go dispatcher.Run(ctx)
	go escrow.NewSweeper(escrowService, m, cfg.Escrow.SweepInterval).Run(ctx)

	var (
		transactionH = escrowHandler.NewHandler(escrowService, proofService, auditService)
		reviewH      = reviewHandler.NewHandler(reviewService)
		notifH       = notificationHandler.NewHandler(notifyService)
		settingH     = settingHandler.NewHandler(settingService)
	)

	router := rekberHttp.New(
		authMiddleware.NewAuth(cfg.Auth.JWTSecret),
		transactionH, reviewH, notifH, settingH,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("starting server", "port", cfg.App.Port, "sweep_interval", cfg.Escrow.SweepInterval)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
