package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/sa-academy/cms-backend/internal/api"
	"github.com/sa-academy/cms-backend/internal/api/handler"
	"github.com/sa-academy/cms-backend/internal/core/service"
	mongostore "github.com/sa-academy/cms-backend/internal/infrastructure/db/mongo"
	redisstore "github.com/sa-academy/cms-backend/internal/infrastructure/db/redis"
	"github.com/sa-academy/cms-backend/internal/infrastructure/mail"
	"github.com/sa-academy/cms-backend/internal/infrastructure/security"
	"github.com/sa-academy/cms-backend/internal/pkg/config"
	"github.com/sa-academy/cms-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	mongoClient, accounts, err := openAccountStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := openRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	})
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	issuer, err := newIssuer(cfg)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(accounts, hasher, issuer, logger.Component("auth")),
		Accounts: service.NewAccountService(accounts, hasher, logger.Component("accounts")),
		Resets: service.NewPasswordResetService(accounts, hasher, mailer, logger.Component("reset"), service.ResetOptions{
			BaseURL:       cfg.Reset.BaseURL,
			Throttle:      redisstore.NewResetThrottle(rdb, cfg.Reset.ThrottleWindow),
			ResponseFloor: cfg.Reset.ResponseFloor,
		}),
		Gate:            service.NewGate(issuer),
		ExtraAdminRoles: extraAdminRoles(cfg.Auth.ExtraAdminRoles),
		Checks: []handler.DependencyCheck{
			{Name: "mongodb", Check: mongostore.Pinger(mongoClient)},
			{Name: "redis", Check: redisstore.Pinger(rdb)},
		},
		Registry: reg,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
