package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/stockboard"
	envPrefix  = "SB"

	BackendFile  = "file"
	BackendRedis = "redis"
	BackendChain = "chain"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Trends  TrendsConfig  `mapstructure:"trends"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// PasswordPass names a pass entry holding the password when Password is empty.
	PasswordPass string `mapstructure:"password_pass"`
	DB           int    `mapstructure:"db"`
	TLS          bool   `mapstructure:"tls"`
	Namespace    string `mapstructure:"namespace"`
}

type TrendsConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Listen string  `mapstructure:"listen"`
	Rate   float64 `mapstructure:"rate"`
	Burst  int     `mapstructure:"burst"`
}

// Load reads defaults, an optional .env file, the config file and SB_* environment
// overrides, in increasing precedence. A missing config file is not an error; an explicit
// configFile that cannot be read is.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	setDefaults(v, baseDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(baseDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, baseDir string) {
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", filepath.Join(baseDir, "storage.toml"))
	v.SetDefault("storage.key", "discussionPosts")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.password_pass", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.tls", false)
	v.SetDefault("redis.namespace", "stockboard")
	v.SetDefault("trends.endpoint", "http://127.0.0.1:5000/get_trends")
	v.SetDefault("trends.timeout", 60*time.Second)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.listen", "127.0.0.1:8080")
	v.SetDefault("server.rate", 1.0)
	v.SetDefault("server.burst", 5)
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendChain:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("storage.path is required for the file backend")
		}
	case BackendRedis:
	default:
		return fmt.Errorf("unsupported storage backend %q (want file, redis or chain)", c.Storage.Backend)
	}

	if c.Storage.Backend != BackendFile && strings.TrimSpace(c.Redis.Addr) == "" {
		return errors.New("redis.addr is required for the redis backend")
	}
	if strings.TrimSpace(c.Trends.Endpoint) == "" {
		return errors.New("trends.endpoint is required")
	}
	if c.Trends.Timeout <= 0 {
		return fmt.Errorf("trends.timeout must be positive, got %s", c.Trends.Timeout)
	}
	if c.Server.Rate <= 0 || c.Server.Burst <= 0 {
		return errors.New("server.rate and server.burst must be positive")
	}

	return nil
}
