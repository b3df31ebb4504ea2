package config

import "time"

// Environment variable names
const (
	EnvPort              = "PORT"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvEnvironment       = "ENVIRONMENT"
	EnvVersion           = "VERSION"
	EnvAPIKey            = "API_KEY"
	EnvServiceName       = "SERVICE_NAME"
	EnvLogDir            = "LOG_DIR"
	EnvTrustedProxies    = "TRUSTED_PROXIES"
	EnvStorageBackend    = "STORAGE_BACKEND"
	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBName            = "DB_NAME"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime = "DB_MAX_CONN_LIFETIME"
	EnvSQLitePath        = "SQLITE_PATH"
	EnvCatalogPath       = "CATALOG_PATH"
	EnvCacheSize         = "CACHE_SIZE"
	EnvCacheTTL          = "CACHE_TTL"
	EnvShutdownTimeout   = "SHUTDOWN_TIMEOUT"
	EnvSchemaVersion     = "ENV_SCHEMA_VERSION"
)

// Storage backends
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Defaults
const (
	DefaultPort              = "8080"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultVersion           = "dev"
	DefaultServiceName       = "satchel"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultSQLitePath        = "data/satchel.db"
	DefaultCacheSize         = 1024
	DefaultCacheTTL          = 10 * time.Minute
	DefaultShutdownTimeout   = 10 * time.Second
)
