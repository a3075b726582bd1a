package config

// EnvPrefix is passed to envconfig; individual tags spell the full name so
// the prefix stays informational.
const EnvPrefix = "DUKAMART"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Supported database drivers.
const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Environment variable names, shared with tests and deploy tooling.
const (
	EnvAppEnv      = "DUKAMART_APP_ENV"
	EnvLogLevel    = "DUKAMART_LOG_LEVEL"
	EnvDBDSN       = "DUKAMART_DB_DSN"
	EnvDBDriver    = "DUKAMART_DB_DRIVER"
	EnvDBHost      = "DUKAMART_DB_HOST"
	EnvDBPort      = "DUKAMART_DB_PORT"
	EnvDBUser      = "DUKAMART_DB_USER"
	EnvDBPassword  = "DUKAMART_DB_PASSWORD"
	EnvDBName      = "DUKAMART_DB_NAME"
	EnvDBSSLMode   = "DUKAMART_DB_SSLMODE"
	EnvAutoMigrate = "DUKAMART_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
