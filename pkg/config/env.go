package config

// EnvPrefix is passed to envconfig; every field carries its full variable name.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv               = "STOREFRONT_APP_ENV"
	EnvPort                 = "STOREFRONT_APP_PORT"
	EnvLogLevel             = "STOREFRONT_LOG_LEVEL"
	EnvDBDSN                = "STOREFRONT_DB_DSN"
	EnvDBDriver             = "STOREFRONT_DB_DRIVER"
	EnvDBHost               = "STOREFRONT_DB_HOST"
	EnvDBPort               = "STOREFRONT_DB_PORT"
	EnvDBUser               = "STOREFRONT_DB_USER"
	EnvDBPassword           = "STOREFRONT_DB_PASSWORD"
	EnvDBName               = "STOREFRONT_DB_NAME"
	EnvRedisURL             = "STOREFRONT_REDIS_URL"
	EnvIdentityCookieSecret = "STOREFRONT_IDENTITY_COOKIE_SECRET"
	EnvIdentityCookieName   = "STOREFRONT_IDENTITY_COOKIE_NAME"
	EnvGCPProjectID         = "STOREFRONT_GCP_PROJECT_ID"
	EnvPubSubOrdersTopic    = "STOREFRONT_PUBSUB_ORDERS_TOPIC"
	EnvPubSubBasketTopic    = "STOREFRONT_PUBSUB_BASKET_TOPIC"
	EnvOutboxRetentionDays  = "STOREFRONT_OUTBOX_RETENTION_DAYS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

const (
	defaultSQLiteDSN = "file:storefront.db?_foreign_keys=on"
	devCookieSecret  = "storefront-dev-cookie-secret"
)
