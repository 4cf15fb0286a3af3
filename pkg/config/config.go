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
	Supabase     SupabaseConfig
	Pricing      PricingConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"TRENDYSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"TRENDYSHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TRENDYSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRENDYSHOP_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"TRENDYSHOP_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TRENDYSHOP_DB_DSN"`
	Driver string `envconfig:"TRENDYSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TRENDYSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"TRENDYSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TRENDYSHOP_DB_USER"`
	LegacyPassword string `envconfig:"TRENDYSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"TRENDYSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"TRENDYSHOP_DB_SSLMODE" default:"require"`

	SQLitePath string `envconfig:"TRENDYSHOP_SQLITE_PATH" default:"trendyshop.db"`

	MaxOpenConns    int           `envconfig:"TRENDYSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRENDYSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRENDYSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRENDYSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TRENDYSHOP_REDIS_URL"`
	Address      string        `envconfig:"TRENDYSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"TRENDYSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRENDYSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRENDYSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRENDYSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRENDYSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRENDYSHOP_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"TRENDYSHOP_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// SupabaseConfig holds what the API needs to verify Supabase-issued access tokens.
type SupabaseConfig struct {
	URL       string `envconfig:"TRENDYSHOP_SUPABASE_URL"`
	JWTSecret string `envconfig:"TRENDYSHOP_SUPABASE_JWT_SECRET" required:"true"`
	Audience  string `envconfig:"TRENDYSHOP_SUPABASE_JWT_AUDIENCE" default:"authenticated"`
	AdminRole string `envconfig:"TRENDYSHOP_SUPABASE_ADMIN_ROLE" default:"admin"`
}

// Issuer returns the token issuer derived from the project URL.
func (s SupabaseConfig) Issuer() string {
	base := strings.TrimRight(strings.TrimSpace(s.URL), "/")
	if base == "" {
		return ""
	}
	return base + "/auth/v1"
}

type PricingConfig struct {
	TierCacheTTL time.Duration `envconfig:"TRENDYSHOP_PRICING_TIER_CACHE_TTL" default:"10m"`
	MaxCartQty   int           `envconfig:"TRENDYSHOP_PRICING_MAX_CART_QTY" default:"9999"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TRENDYSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TRENDYSHOP_AUTO_MIGRATE" default:"false"`
	TierCache   bool `envconfig:"TRENDYSHOP_TIER_CACHE" default:"true"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite || db.DSN != "" {
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
