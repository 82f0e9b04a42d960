package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "quoteline"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "QUOTELINE_DB_DSN"
	EnvDBHost = "QUOTELINE_DB_HOST"
	EnvDBUser = "QUOTELINE_DB_USER"
	EnvDBName = "QUOTELINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
