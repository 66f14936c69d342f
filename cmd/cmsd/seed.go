package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sa-academy/cms-backend/internal/core/service"
	"github.com/sa-academy/cms-backend/internal/infrastructure/security"
	"github.com/sa-academy/cms-backend/internal/pkg/config"
)

const (
	defaultSeedTimeout = 30 * time.Second
	passwordEnv        = "SUPERADMIN_PASSWORD"
)

type seedConfig struct {
	username string
	email    string
	timeout  time.Duration
}

// NewSeedSuperAdminCmd creates the seed-superadmin subcommand.
func NewSeedSuperAdminCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed-superadmin",
		Short: "Create or promote the SuperAdmin account",
		Long: `Creates a SuperAdmin account, or promotes the account already registered
under --email. The password is read from SUPERADMIN_PASSWORD and is only used
when a new account is created. Running it again is harmless.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.username, "username", "", "username of the SuperAdmin account")
	cmd.Flags().StringVar(&cfg.email, "email", "", "email of the SuperAdmin account")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runSeed(cmd *cobra.Command, sc *seedConfig) error {
	password := os.Getenv(passwordEnv)
	if password == "" {
		return errors.New(passwordEnv + " environment variable is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sc.timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	client, accounts, err := openAccountStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.WithoutCancel(ctx)) }()

	svc := service.NewAccountService(accounts, security.NewBcryptHasher(cfg.Auth.BcryptCost), log)
	account, err := svc.EnsureSuperAdmin(ctx, sc.username, sc.email, password)
	if err != nil {
		return err
	}

	cmd.Printf("SuperAdmin ready: %s (%s)\n", account.Email, account.ID)
	return nil
}
