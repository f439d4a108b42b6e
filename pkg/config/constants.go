package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "legaltools"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error
// messages).
const (
	EnvAppEnv   = "LEGALTOOLS_APP_ENV"
	EnvPort     = "LEGALTOOLS_APP_PORT"
	EnvDBDSN    = "LEGALTOOLS_DB_DSN"
	EnvDBHost   = "LEGALTOOLS_DB_HOST"
	EnvDBUser   = "LEGALTOOLS_DB_USER"
	EnvDBName   = "LEGALTOOLS_DB_NAME"
	EnvRedisURL = "LEGALTOOLS_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
