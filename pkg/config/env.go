package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "PROPDOCK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "PROPDOCK_APP_ENV"
	EnvPort       = "PROPDOCK_APP_PORT"
	EnvDBDSN      = "PROPDOCK_DB_DSN"
	EnvDBHost     = "PROPDOCK_DB_HOST"
	EnvDBUser     = "PROPDOCK_DB_USER"
	EnvDBName     = "PROPDOCK_DB_NAME"
	EnvRedisURL   = "PROPDOCK_REDIS_URL"
	EnvJWTSecret  = "PROPDOCK_JWT_SECRET"
	EnvJWTIssuer  = "PROPDOCK_JWT_ISSUER"
	EnvJWTExpMins = "PROPDOCK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
