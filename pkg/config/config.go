package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
	Pricing      PricingConfig
	RateLimit    RateLimitConfig
	Cron         CronConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PROPDOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"PROPDOCK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PROPDOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PROPDOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PROPDOCK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"PROPDOCK_DB_DSN"`
	Driver string `envconfig:"PROPDOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PROPDOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"PROPDOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PROPDOCK_DB_USER"`
	LegacyPassword string `envconfig:"PROPDOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PROPDOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PROPDOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PROPDOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PROPDOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PROPDOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PROPDOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PROPDOCK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PROPDOCK_REDIS_ADDR"`
	Password     string        `envconfig:"PROPDOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROPDOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROPDOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROPDOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROPDOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROPDOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROPDOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PROPDOCK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PROPDOCK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PROPDOCK_JWT_EXPIRATION_MINUTES" required:"true"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PROPDOCK_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PROPDOCK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PROPDOCK_AUTO_MIGRATE" default:"false"`
}

type PricingConfig struct {
	// MasterCurrency is the currency tier base prices are stored in.
	MasterCurrency string        `envconfig:"PROPDOCK_PRICING_MASTER_CURRENCY" default:"GBP"`
	CatalogTTL     time.Duration `envconfig:"PROPDOCK_PRICING_CATALOG_TTL" default:"5m"`
	IdempotencyTTL time.Duration `envconfig:"PROPDOCK_PRICING_IDEMPOTENCY_TTL" default:"24h"`
}

type RateLimitConfig struct {
	QuoteWindow   time.Duration `envconfig:"PROPDOCK_RATE_LIMIT_QUOTE_WINDOW" default:"1h"`
	QuoteOrgLimit int           `envconfig:"PROPDOCK_RATE_LIMIT_QUOTE_ORG_LIMIT" default:"5"`
	QuoteIPLimit  int           `envconfig:"PROPDOCK_RATE_LIMIT_QUOTE_IP_LIMIT" default:"20"`
}

type CronConfig struct {
	Interval             time.Duration `envconfig:"PROPDOCK_CRON_INTERVAL" default:"24h"`
	LockTTL              time.Duration `envconfig:"PROPDOCK_CRON_LOCK_TTL" default:"25h"`
	MetricsPort          string        `envconfig:"PROPDOCK_CRON_METRICS_PORT" default:"9090"`
	ComplianceNoticeDays int           `envconfig:"PROPDOCK_CRON_COMPLIANCE_NOTICE_DAYS" default:"30"`
	QuotationStaleDays   int           `envconfig:"PROPDOCK_CRON_QUOTATION_STALE_DAYS" default:"7"`
	InspectionGraceDays  int           `envconfig:"PROPDOCK_CRON_INSPECTION_GRACE_DAYS" default:"1"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
