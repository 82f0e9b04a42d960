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
	Drafts       DraftsConfig
	Pricing      PricingConfig
	Quotes       QuotesConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"QUOTELINE_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTELINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUOTELINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTELINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUOTELINE_DB_DSN"`
	Driver string `envconfig:"QUOTELINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUOTELINE_DB_HOST"`
	LegacyPort     int    `envconfig:"QUOTELINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUOTELINE_DB_USER"`
	LegacyPassword string `envconfig:"QUOTELINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUOTELINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUOTELINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTELINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTELINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTELINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTELINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTELINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QUOTELINE_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTELINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTELINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTELINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTELINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTELINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTELINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTELINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// DraftsConfig governs server-side quote draft state.
type DraftsConfig struct {
	TTL time.Duration `envconfig:"QUOTELINE_DRAFT_TTL" default:"24h"`
}

// PricingConfig carries the tunable knobs of the pricing engine. The volume
// tier schedule itself is fixed business policy, not configuration.
type PricingConfig struct {
	MatrixCacheTTL time.Duration `envconfig:"QUOTELINE_MATRIX_CACHE_TTL" default:"5m"`
}

type QuotesConfig struct {
	NumberPrefix string `envconfig:"QUOTELINE_QUOTE_NUMBER_PREFIX" default:"Q"`
	PDFTitle     string `envconfig:"QUOTELINE_QUOTE_PDF_TITLE" default:"Sales Quote"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"QUOTELINE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"QUOTELINE_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"QUOTELINE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
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
