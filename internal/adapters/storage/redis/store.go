package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/stockboard-cli/internal/domain"
	"github.com/bnema/stockboard-cli/internal/ports"
	goredis "github.com/redis/go-redis/v9"
)

const DefaultNamespace = "stockboard"

type Options struct {
	Addr      string
	Username  string
	Password  string
	DB        int
	TLS       bool
	Namespace string
}

// Store maps storage items onto plain redis string keys under a namespace prefix.
type Store struct {
	client    goredis.UniversalClient
	namespace string
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, errors.New("redis address is empty")
	}

	clientOpts := &goredis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	}
	if opts.TLS {
		host := opts.Addr
		if i := strings.LastIndex(host, ":"); i > 0 {
			host = host[:i]
		}
		clientOpts.TLSConfig = &tls.Config{ServerName: host}
	}

	return NewStoreWithClient(goredis.NewClient(clientOpts), opts.Namespace), nil
}

func NewStoreWithClient(client goredis.UniversalClient, namespace string) *Store {
	if strings.TrimSpace(namespace) == "" {
		namespace = DefaultNamespace
	}

	return &Store{client: client, namespace: namespace}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	redisKey, err := s.keyFor(key)
	if err != nil {
		return "", err
	}

	value, err := s.client.Get(ctx, redisKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", fmt.Errorf("redis item %q: %w", key, domain.ErrKeyNotFound)
		}
		return "", fmt.Errorf("get redis item %q: %w", key, err)
	}

	return value, nil
}

func (s *Store) SetItem(ctx context.Context, key string, value string) error {
	redisKey, err := s.keyFor(key)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, redisKey, value, 0).Err(); err != nil {
		return fmt.Errorf("set redis item %q: %w", key, err)
	}

	return nil
}

func (s *Store) RemoveItem(ctx context.Context, key string) error {
	redisKey, err := s.keyFor(key)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("delete redis item %q: %w", key, err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) keyFor(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("storage key is empty")
	}

	return s.namespace + ":" + trimmed, nil
}
