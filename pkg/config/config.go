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
	Cache        CacheConfig
	Publish      PublishConfig
	Canonical    CanonicalConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"LEGALTOOLS_APP_ENV" required:"true"`
	Port         string `envconfig:"LEGALTOOLS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LEGALTOOLS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LEGALTOOLS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"LEGALTOOLS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"LEGALTOOLS_DB_DSN"`
	Driver string `envconfig:"LEGALTOOLS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LEGALTOOLS_DB_HOST"`
	LegacyPort     int    `envconfig:"LEGALTOOLS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LEGALTOOLS_DB_USER"`
	LegacyPassword string `envconfig:"LEGALTOOLS_DB_PASSWORD"`
	LegacyName     string `envconfig:"LEGALTOOLS_DB_NAME"`
	LegacySSLMode  string `envconfig:"LEGALTOOLS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LEGALTOOLS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LEGALTOOLS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LEGALTOOLS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LEGALTOOLS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LEGALTOOLS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LEGALTOOLS_REDIS_ADDR"`
	Password     string        `envconfig:"LEGALTOOLS_REDIS_PASSWORD"`
	DB           int           `envconfig:"LEGALTOOLS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LEGALTOOLS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LEGALTOOLS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LEGALTOOLS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LEGALTOOLS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LEGALTOOLS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CacheConfig controls the rendered legal-code page cache.
type CacheConfig struct {
	Enabled bool          `envconfig:"LEGALTOOLS_PAGE_CACHE_ENABLED" default:"true"`
	TTL     time.Duration `envconfig:"LEGALTOOLS_PAGE_CACHE_TTL" default:"1h"`
}

// PublishConfig controls the static-site publisher.
type PublishConfig struct {
	OutputDir      string        `envconfig:"LEGALTOOLS_PUBLISH_OUTPUT_DIR" default:"./published"`
	RequestTimeout time.Duration `envconfig:"LEGALTOOLS_PUBLISH_REQUEST_TIMEOUT" default:"30s"`
}

// CanonicalConfig carries the public site origin used when deriving
// deed/legalcode/about URLs.
type CanonicalConfig struct {
	BaseURL string `envconfig:"LEGALTOOLS_CANONICAL_BASE_URL" default:"https://creativecommons.org"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool          `envconfig:"LEGALTOOLS_AUTO_MIGRATE" default:"false"`
	CronInterval time.Duration `envconfig:"LEGALTOOLS_CRON_INTERVAL" default:"24h"`
	StaleAfter   time.Duration `envconfig:"LEGALTOOLS_TRANSLATION_STALE_AFTER" default:"2160h"`
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
