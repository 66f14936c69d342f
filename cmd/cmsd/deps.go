package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sa-academy/cms-backend/internal/core/domain"
	mongostore "github.com/sa-academy/cms-backend/internal/infrastructure/db/mongo"
	redisstore "github.com/sa-academy/cms-backend/internal/infrastructure/db/redis"
	"github.com/sa-academy/cms-backend/internal/infrastructure/security"
	"github.com/sa-academy/cms-backend/internal/pkg/config"
	"github.com/sa-academy/cms-backend/pkg/logger"
)

func initLogger(cfg *config.Config) zerolog.Logger {
	return logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "cms-backend",
	})
}

// openAccountStore connects to MongoDB and makes sure the account indexes exist.
func openAccountStore(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongostore.AccountRepository, error) {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	repo := mongostore.NewAccountRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, err
	}
	return client, repo, nil
}

func openRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	return redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
}

func newIssuer(cfg *config.Config) (*security.JWTIssuer, error) {
	issuer, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}
	return issuer, nil
}

// extraAdminRoles converts the configured gate values. Blank entries are
// dropped.
func extraAdminRoles(values []string) []domain.Role {
	out := make([]domain.Role, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, domain.Role(v))
		}
	}
	return out
}
