package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Identity    IdentityConfig
	Encryption  EncryptionConfig
	Forwarding  ForwardingConfig
	Analytics   AnalyticsConfig
	Reconciler  ReconcilerConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxConn      int
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// IdentityConfig points at the identity provider. The anon key authenticates
// token-verification calls; the service role key is reserved for provider
// admin calls. JWTSecret enables local token verification without a network
// round trip.
type IdentityConfig struct {
	ProviderURL    string
	AnonKey        string
	ServiceRoleKey string
	JWTSecret      string
	VerifyTimeout  time.Duration
}

type EncryptionConfig struct {
	Key string
}

// ForwardingConfig covers the inbound-mail forwarding surface. The secret
// authenticates webhook deliveries in place of a bearer token.
type ForwardingConfig struct {
	Domain string
	Secret string
}

type AnalyticsConfig struct {
	Path string
}

type ReconcilerConfig struct {
	Schedule string
	Batch    int
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env),
// applies defaults, and fails fast on missing required settings.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "studentos-backend"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:      getInt("SERVER_MAX_CONN", 0),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "studentos"),
			User:            getString("DB_USER", "studentos"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Identity: IdentityConfig{
			ProviderURL:    os.Getenv("SUPABASE_URL"),
			AnonKey:        os.Getenv("SUPABASE_ANON_KEY"),
			ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
			JWTSecret:      os.Getenv("SUPABASE_JWT_SECRET"),
			VerifyTimeout:  getDuration("IDENTITY_VERIFY_TIMEOUT", 5*time.Second),
		},
		Encryption: EncryptionConfig{
			Key: os.Getenv("ENCRYPTION_KEY"),
		},
		Forwarding: ForwardingConfig{
			Domain: os.Getenv("FORWARDING_DOMAIN"),
			Secret: os.Getenv("FORWARDING_SECRET"),
		},
		Analytics: AnalyticsConfig{
			Path: getString("ANALYTICS_DB_PATH", "./data/analytics.db"),
		},
		Reconciler: ReconcilerConfig{
			Schedule: getString("RECONCILER_SCHEDULE", "@every 1m"),
			Batch:    getInt("RECONCILER_BATCH", 100),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required setting at once rather than
// failing on the first.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Identity.ProviderURL == "" {
		result = multierror.Append(result, fmt.Errorf("SUPABASE_URL is required"))
	}
	if c.Identity.AnonKey == "" {
		result = multierror.Append(result, fmt.Errorf("SUPABASE_ANON_KEY is required"))
	}
	if c.Identity.ServiceRoleKey == "" {
		result = multierror.Append(result, fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required"))
	}
	if c.Database.URL == "" {
		result = multierror.Append(result, fmt.Errorf("DATABASE_URL is required"))
	}
	if len(c.Encryption.Key) < 32 {
		result = multierror.Append(result, fmt.Errorf("ENCRYPTION_KEY must be at least 32 characters"))
	}

	return result.ErrorOrNil()
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
