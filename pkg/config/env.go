package config

const EnvPrefix = "TRENDYSHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv          = "TRENDYSHOP_APP_ENV"
	EnvPort            = "TRENDYSHOP_APP_PORT"
	EnvDBDSN           = "TRENDYSHOP_DB_DSN"
	EnvDBHost          = "TRENDYSHOP_DB_HOST"
	EnvDBUser          = "TRENDYSHOP_DB_USER"
	EnvDBName          = "TRENDYSHOP_DB_NAME"
	EnvDBPassword      = "TRENDYSHOP_DB_PASSWORD"
	EnvRedisURL        = "TRENDYSHOP_REDIS_URL"
	EnvSupabaseURL     = "TRENDYSHOP_SUPABASE_URL"
	EnvSupabaseSecret  = "TRENDYSHOP_SUPABASE_JWT_SECRET"
	EnvUseSQLite       = "TRENDYSHOP_USE_SQLITE"
	EnvTierCacheTTL    = "TRENDYSHOP_PRICING_TIER_CACHE_TTL"
	EnvPricingMaxCartQ = "TRENDYSHOP_PRICING_MAX_CART_QTY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
