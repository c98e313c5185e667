package config

// EnvPrefix is passed to envconfig; individual fields carry full names.
const EnvPrefix = "FOODFETCH"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Cart storage backends.
const (
	CartBackendMemory = "memory"
	CartBackendFile   = "file"
	CartBackendRedis  = "redis"
	CartBackendDB     = "db"
)

// Env var names used by tests and error messages.
const (
	EnvAppEnv         = "FOODFETCH_APP_ENV"
	EnvPort           = "FOODFETCH_APP_PORT"
	EnvGatewayBaseURL = "FOODFETCH_GATEWAY_BASE_URL"
	EnvJWTSecret      = "FOODFETCH_JWT_SECRET"
	EnvCartBackend    = "FOODFETCH_CART_STORAGE_BACKEND"
	EnvCartKey        = "FOODFETCH_CART_STORAGE_KEY"
	EnvRedisURL       = "FOODFETCH_REDIS_URL"
	EnvDBDSN          = "FOODFETCH_DB_DSN"
)
