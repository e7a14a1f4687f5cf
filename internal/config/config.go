package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

const (
	EnvPrefix = "UIFORGE_"

	defaultAddr           = ":8080"
	defaultDataDir        = "data"
	defaultStorageKey     = "localizations_db"
	defaultRedisAddr      = "localhost:6379"
	defaultRedisPrefix    = "uiforge:"
	defaultModel          = "gpt-4o-mini"
	defaultTimeoutSeconds = 60
	defaultIssuer         = "uiforge"
	defaultTokenTTL       = 24 * 60
	defaultLogLevel       = "info"
	defaultLogMaxSizeMB   = 10
	defaultLogMaxFiles    = 5
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server       ServerConfig       `toml:"server" envPrefix:"SERVER_"`
	Storage      StorageConfig      `toml:"storage" envPrefix:"STORAGE_"`
	Localization LocalizationConfig `toml:"localization" envPrefix:"LOCALIZATION_"`
	Assistant    AssistantConfig    `toml:"assistant" envPrefix:"ASSISTANT_"`
	Auth         AuthConfig         `toml:"auth" envPrefix:"AUTH_"`
	Logging      LoggingConfig      `toml:"logging" envPrefix:"LOGGING_"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr" env:"ADDR"`
	TrustedProxies []string `toml:"trusted_proxies" env:"TRUSTED_PROXIES"`
}

type StorageConfig struct {
	Backend       string `toml:"backend" env:"BACKEND"` // file, redis or memory
	DataDir       string `toml:"data_dir" env:"DATA_DIR"`
	Key           string `toml:"key" env:"KEY"`
	RedisAddr     string `toml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"REDIS_DB"`
	RedisPrefix   string `toml:"redis_prefix" env:"REDIS_PREFIX"`
}

type LocalizationConfig struct {
	Extractor string `toml:"extractor" env:"EXTRACTOR"` // regex or syntax
}

type AssistantConfig struct {
	Provider       string `toml:"provider" env:"PROVIDER"` // mock or openai
	BaseURL        string `toml:"base_url" env:"BASE_URL"`
	APIKey         string `toml:"api_key" env:"API_KEY"`
	Model          string `toml:"model" env:"MODEL"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

// AuthConfig guards mutating routes when Secret is set.
type AuthConfig struct {
	Secret          string `toml:"secret" env:"SECRET"`
	Issuer          string `toml:"issuer" env:"ISSUER"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes" env:"TOKEN_TTL_MINUTES"`
}

type LoggingConfig struct {
	Level     string `toml:"level" env:"LEVEL"`
	Format    string `toml:"format" env:"FORMAT"` // json or console
	File      string `toml:"file" env:"FILE"`
	MaxSizeMB int    `toml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxFiles  int    `toml:"max_files" env:"MAX_FILES"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr: defaultAddr,
		},
		Storage: StorageConfig{
			Backend:     "file",
			DataDir:     defaultDataDir,
			Key:         defaultStorageKey,
			RedisAddr:   defaultRedisAddr,
			RedisPrefix: defaultRedisPrefix,
		},
		Localization: LocalizationConfig{
			Extractor: "regex",
		},
		Assistant: AssistantConfig{
			Provider:       "mock",
			Model:          defaultModel,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Auth: AuthConfig{
			Issuer:          defaultIssuer,
			TokenTTLMinutes: defaultTokenTTL,
		},
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			Format:    "json",
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
	}
}

// Load layers defaults, the TOML file at path (skipped when path is empty or
// the file does not exist) and UIFORGE_* environment variables.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load reading overrides from environ instead of the process
// environment when environ is non-nil.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	cfg := DefaultConfig()

	if err := applyFile(path, &cfg); err != nil {
		return Config{}, err
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("%w: environment: %v", ErrInvalidConfig, err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse TOML file %q: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func validate(cfg Config) error {
	var problems []string

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		problems = append(problems, "server.addr must not be empty")
	}

	switch cfg.Storage.Backend {
	case "file":
		if strings.TrimSpace(cfg.Storage.DataDir) == "" {
			problems = append(problems, "storage.data_dir must not be empty for the file backend")
		}
	case "redis":
		if strings.TrimSpace(cfg.Storage.RedisAddr) == "" {
			problems = append(problems, "storage.redis_addr must not be empty for the redis backend")
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("storage.backend %q must be file, redis or memory", cfg.Storage.Backend))
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		problems = append(problems, "storage.key must not be empty")
	}

	if !slices.Contains([]string{"regex", "syntax"}, cfg.Localization.Extractor) {
		problems = append(problems, fmt.Sprintf("localization.extractor %q must be regex or syntax", cfg.Localization.Extractor))
	}

	switch cfg.Assistant.Provider {
	case "mock":
	case "openai":
		if strings.TrimSpace(cfg.Assistant.Model) == "" {
			problems = append(problems, "assistant.model must not be empty for the openai provider")
		}
	default:
		problems = append(problems, fmt.Sprintf("assistant.provider %q must be mock or openai", cfg.Assistant.Provider))
	}
	if cfg.Assistant.TimeoutSeconds <= 0 {
		problems = append(problems, "assistant.timeout_seconds must be positive")
	}

	if cfg.Auth.TokenTTLMinutes <= 0 {
		problems = append(problems, "auth.token_ttl_minutes must be positive")
	}

	if _, err := zapcore.ParseLevel(cfg.Logging.Level); err != nil {
		problems = append(problems, fmt.Sprintf("logging.level %q is not a valid level", cfg.Logging.Level))
	}
	if !slices.Contains([]string{"json", "console"}, cfg.Logging.Format) {
		problems = append(problems, fmt.Sprintf("logging.format %q must be json or console", cfg.Logging.Format))
	}
	if cfg.Logging.MaxSizeMB <= 0 || cfg.Logging.MaxFiles <= 0 {
		problems = append(problems, "logging.max_size_mb and logging.max_files must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
