package config

const (
	EnvPrefix = "QUOTATION"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DefaultSQLiteDSN = "file:quotation.db?cache=shared&_fk=1"
)

const (
	EnvAppEnv   = "QUOTATION_APP_ENV"
	EnvPort     = "QUOTATION_APP_PORT"
	EnvLogLevel = "QUOTATION_LOG_LEVEL"

	EnvDBDSN  = "QUOTATION_DB_DSN"
	EnvDBHost = "QUOTATION_DB_HOST"
	EnvDBUser = "QUOTATION_DB_USER"
	EnvDBName = "QUOTATION_DB_NAME"
	EnvDBPort = "QUOTATION_DB_PORT"

	EnvRedisURL = "QUOTATION_REDIS_URL"

	EnvJWTSecret  = "QUOTATION_JWT_SECRET"
	EnvJWTIssuer  = "QUOTATION_JWT_ISSUER"
	EnvJWTExpMins = "QUOTATION_JWT_EXPIRATION_MINUTES"

	EnvIdentityCacheTTL  = "QUOTATION_IDENTITY_CACHE_TTL"
	EnvIdentityDevHeader = "QUOTATION_IDENTITY_ALLOW_DEV_HEADER"

	EnvUseSQLite = "QUOTATION_USE_SQLITE"

	EnvGCPProjectID          = "QUOTATION_GCP_PROJECT_ID"
	EnvPubSubQuotationsTopic = "QUOTATION_PUBSUB_QUOTATIONS_TOPIC"

	EnvOutboxPollMS = "QUOTATION_OUTBOX_PUBLISH_POLL_MS"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
