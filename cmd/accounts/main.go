package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/config"
	httptransport "github.com/ledgerdesk/ledgerdesk-accounts/internal/http"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/http/handler"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/http/middleware"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/identity"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/repository"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/server"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/service"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/storage"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/telemetry"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/token"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newPGXPool,
			newProfileRepository,
			newAccountRepository,
			newCardRepository,
			newCustomerRepository,
			newMerchantRepository,
			newRateLimiter,
			newTokenManager,
			newIdentityStore,
			newStorageResolver,
			service.NewProvisionService,
			service.NewAuthService,
			service.NewRecordService,
			middleware.NewGate,
			handler.NewAdminHandler,
			handler.NewAuthHandler,
			handler.NewRecordsHandler,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newProfileRepository(pool *pgxpool.Pool) repository.ProfileRepository {
	return repository.NewPostgresProfileRepo(pool)
}

func newAccountRepository(pool *pgxpool.Pool) repository.AccountRepository {
	return repository.NewPostgresAccountRepo(pool)
}

func newCardRepository(pool *pgxpool.Pool) repository.CardRepository {
	return repository.NewPostgresCardRepo(pool)
}

func newCustomerRepository(pool *pgxpool.Pool) repository.CustomerRepository {
	return repository.NewPostgresCustomerRepo(pool)
}

func newMerchantRepository(pool *pgxpool.Pool) repository.MerchantRepository {
	return repository.NewPostgresMerchantRepo(pool)
}

func newRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimitRPM)
}

func newTokenManager(cfg config.Config) *token.Manager {
	return token.NewManager([]byte(cfg.TokenSecret), cfg.AccessTokenTTL)
}

func newIdentityStore(pool *pgxpool.Pool, tokens *token.Manager) identity.Store {
	return identity.NewPostgresStore(pool, tokens)
}

func newStorageResolver(cfg config.Config) *storage.Resolver {
	return storage.NewResolver(cfg.StorageBaseURL)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
