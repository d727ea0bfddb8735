package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Secretbox  SecretboxConfig  `mapstructure:"secretbox"`
	PNW        PNWConfig        `mapstructure:"pnw"`
	Ingestion  IngestionConfig  `mapstructure:"ingestion"`
	Session    SessionConfig    `mapstructure:"session"`
	Withdrawal WithdrawalConfig `mapstructure:"withdrawal"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Migrate         bool          `mapstructure:"migrate"` // apply embedded schema at startup
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type SecretboxConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key
}

// PNWConfig configures the game API used for payments and the bank feed.
type PNWConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	BotKey  string        `mapstructure:"bot_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type IngestionConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	MaxPages int           `mapstructure:"max_pages"`
	PageSize int           `mapstructure:"page_size"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
	// TaxPageLimit caps one tax walk; max_pages only bounds bank cache ingestion.
	TaxPageLimit int `mapstructure:"tax_page_limit"`
}

type SessionConfig struct {
	TTL     time.Duration `mapstructure:"ttl"`
	Backend string        `mapstructure:"backend"` // redis, memory
}

// WithdrawalConfig controls how new requests are checked against balances.
type WithdrawalConfig struct {
	// ReserveOutstanding counts PENDING and unpaid APPROVED requests against the balance.
	ReserveOutstanding bool          `mapstructure:"reserve_outstanding"`
	PaymentTimeout     time.Duration `mapstructure:"payment_timeout"` // defaults to pnw.timeout
}

// NotifyConfig points withdrawal events at a chat webhook. Empty URL disables it.
type NotifyConfig struct {
	WebhookURL     string          `mapstructure:"webhook_url"`
	Secret         string          `mapstructure:"secret"`
	RetryIntervals []time.Duration `mapstructure:"retry_intervals"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: AB_ (Alliance Bank).
// Nested keys use underscore: AB_DATABASE_HOST, AB_PNW_BOT_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "alliance_bank")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrate", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "alliance-bank")
	v.SetDefault("secretbox.key", "")
	v.SetDefault("pnw.base_url", "https://api.politicsandwar.com/graphql")
	v.SetDefault("pnw.bot_key", "")
	v.SetDefault("pnw.timeout", "15s")
	v.SetDefault("ingestion.enabled", true)
	v.SetDefault("ingestion.interval", "10m")
	v.SetDefault("ingestion.max_pages", 5)
	v.SetDefault("ingestion.page_size", 50)
	v.SetDefault("ingestion.lock_ttl", "5m")
	v.SetDefault("ingestion.tax_page_limit", 1000)
	v.SetDefault("session.ttl", "15m")
	v.SetDefault("session.backend", "redis")
	v.SetDefault("withdrawal.reserve_outstanding", false)
	v.SetDefault("withdrawal.payment_timeout", "0s")
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.secret", "")
	v.SetDefault("notify.retry_intervals", []string{"5s", "30s", "2m"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: AB_DATABASE_HOST -> database.host
	v.SetEnvPrefix("AB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.PNW.Timeout <= 0 {
		return fmt.Errorf("pnw.timeout must be positive")
	}
	if c.Ingestion.MaxPages < 1 {
		return fmt.Errorf("ingestion.max_pages must be at least 1")
	}
	if c.Ingestion.TaxPageLimit < 1 {
		return fmt.Errorf("ingestion.tax_page_limit must be at least 1")
	}
	if c.Ingestion.PageSize < 1 || c.Ingestion.PageSize > 500 {
		return fmt.Errorf("ingestion.page_size must be between 1 and 500")
	}
	switch c.Session.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("session.backend must be redis or memory, got %q", c.Session.Backend)
	}
	return nil
}
