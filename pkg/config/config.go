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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Identity     IdentityConfig
	API          APIConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUOTATION_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTATION_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"QUOTATION_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTATION_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUOTATION_DB_DSN"`
	Driver string `envconfig:"QUOTATION_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"QUOTATION_DB_HOST"`
	Port     int    `envconfig:"QUOTATION_DB_PORT" default:"5432"`
	User     string `envconfig:"QUOTATION_DB_USER"`
	Password string `envconfig:"QUOTATION_DB_PASSWORD"`
	Name     string `envconfig:"QUOTATION_DB_NAME"`
	SSLMode  string `envconfig:"QUOTATION_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTATION_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTATION_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTATION_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTATION_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTATION_REDIS_URL"`
	Address      string        `envconfig:"QUOTATION_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTATION_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTATION_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTATION_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTATION_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTATION_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTATION_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTATION_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"QUOTATION_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"QUOTATION_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"QUOTATION_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the configured access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// IdentityConfig controls how callers are resolved to user ids.
type IdentityConfig struct {
	CacheTTL       time.Duration `envconfig:"QUOTATION_IDENTITY_CACHE_TTL" default:"10m"`
	AllowDevHeader bool          `envconfig:"QUOTATION_IDENTITY_ALLOW_DEV_HEADER" default:"false"`
}

type APIConfig struct {
	IdempotencyTTL  time.Duration `envconfig:"QUOTATION_IDEMPOTENCY_TTL" default:"24h"`
	ExportMaxRows   int           `envconfig:"QUOTATION_EXPORT_MAX_ROWS" default:"5000"`
	WriteRateLimit  int           `envconfig:"QUOTATION_WRITE_RATE_LIMIT" default:"60"`
	WriteRateWindow time.Duration `envconfig:"QUOTATION_WRITE_RATE_WINDOW" default:"1m"`
	CORSOrigins     []string      `envconfig:"QUOTATION_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"QUOTATION_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"QUOTATION_AUTO_MIGRATE" default:"false"`
	Outbox      bool `envconfig:"QUOTATION_FEATURE_OUTBOX" default:"true"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"QUOTATION_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"QUOTATION_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	QuotationsTopic string `envconfig:"QUOTATION_PUBSUB_QUOTATIONS_TOPIC" default:"quotation-events"`
}

type OutboxConfig struct {
	BatchSize      int           `envconfig:"QUOTATION_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int           `envconfig:"QUOTATION_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int           `envconfig:"QUOTATION_OUTBOX_MAX_ATTEMPTS" default:"10"`
	DedupeTTL      time.Duration `envconfig:"QUOTATION_OUTBOX_DEDUPE_TTL" default:"24h"`
	MetricsPort    string        `envconfig:"QUOTATION_OUTBOX_METRICS_PORT" default:"9091"`
}

// PollInterval returns the publisher poll interval as a duration.
func (o OutboxConfig) PollInterval() time.Duration {
	if o.PollIntervalMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(o.PollIntervalMS) * time.Millisecond
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}
	if useSQLite {
		db.DSN = DefaultSQLiteDSN
		return nil
	}

	missing := []string{}
	discreteValues := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if discreteValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
