package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	postsrepo "github.com/bnema/stockboard-cli/internal/adapters/repo/posts"
	"github.com/bnema/stockboard-cli/internal/adapters/secrets/pass"
	chainstore "github.com/bnema/stockboard-cli/internal/adapters/storage/chain"
	filestore "github.com/bnema/stockboard-cli/internal/adapters/storage/file"
	redisstore "github.com/bnema/stockboard-cli/internal/adapters/storage/redis"
	"github.com/bnema/stockboard-cli/internal/adapters/trends/httpclient"
	"github.com/bnema/stockboard-cli/internal/application"
	"github.com/bnema/stockboard-cli/internal/config"
	"github.com/bnema/stockboard-cli/internal/logging"
	"github.com/bnema/stockboard-cli/internal/ports"
	"github.com/spf13/viper"
)

const redisPingTimeout = 3 * time.Second

type app struct {
	cfg     config.Config
	logger  *slog.Logger
	board   *application.BoardService
	fetcher ports.TrendFetcher
	closers []func() error
}

func (a *app) wire(ctx context.Context, configFile string, logOutput io.Writer) error {
	cfg, err := config.Load(viper.New(), configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logOutput, cfg.Log.Level, cfg.Log.Format)

	store, closers, err := wireStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("wire storage backend: %w", err)
	}

	fetcher, err := httpclient.New(cfg.Trends.Endpoint,
		httpclient.WithHTTPClient(&http.Client{Timeout: cfg.Trends.Timeout}),
		httpclient.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("wire trends client: %w", err)
	}

	repo := postsrepo.NewRepository(store, cfg.Storage.Key, logger)

	*a = app{
		cfg:     cfg,
		logger:  logger,
		board:   application.NewBoardService(repo, logger),
		fetcher: fetcher,
		closers: closers,
	}
	logger.Debug("app wired", "storage", cfg.Storage.Backend, "endpoint", cfg.Trends.Endpoint)

	return nil
}

func wireStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.KeyValueStore, []func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		store, err := filestore.NewStore(cfg.Storage.Path)
		return store, nil, err
	case config.BackendRedis:
		store, err := newRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if err := pingRedis(ctx, store); err != nil {
			return nil, nil, errors.Join(err, store.Close())
		}
		return store, []func() error{store.Close}, nil
	case config.BackendChain:
		primary, err := newRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if err := pingRedis(ctx, primary); err != nil {
			logger.Warn("redis unreachable, board is read-only from the file mirror", "addr", cfg.Redis.Addr, "error", err)
		}
		fallback, err := filestore.NewStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, errors.Join(err, primary.Close())
		}
		store, err := chainstore.NewStoreChecked(primary, fallback, chainstore.WithLogger(logger))
		if err != nil {
			return nil, nil, errors.Join(err, primary.Close())
		}
		return store, []func() error{primary.Close}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

func newRedisStore(ctx context.Context, cfg config.RedisConfig) (*redisstore.Store, error) {
	password := cfg.Password
	if password == "" && cfg.PasswordPass != "" {
		resolved, err := pass.NewResolver().Lookup(ctx, cfg.PasswordPass)
		if err != nil {
			return nil, fmt.Errorf("resolve redis password: %w", err)
		}
		password = resolved
	}

	store, err := redisstore.NewStore(redisstore.Options{
		Addr:      cfg.Addr,
		Username:  cfg.Username,
		Password:  password,
		DB:        cfg.DB,
		TLS:       cfg.TLS,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

func pingRedis(ctx context.Context, store *redisstore.Store) error {
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	return store.Ping(pingCtx)
}

func (a *app) close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil

	return errors.Join(errs...)
}
