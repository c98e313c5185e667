package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Cart     CartConfig
	Checkout CheckoutConfig
	Gateway  GatewayConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	PubSub   PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"FOODFETCH_APP_ENV" required:"true"`
	Port         string   `envconfig:"FOODFETCH_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"FOODFETCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"FOODFETCH_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"FOODFETCH_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CartConfig selects the durable slot backend for the cart store.
type CartConfig struct {
	StorageBackend string `envconfig:"FOODFETCH_CART_STORAGE_BACKEND" default:"file"`
	StorageKey     string `envconfig:"FOODFETCH_CART_STORAGE_KEY" default:"foodfetch_cart"`
	FileDir        string `envconfig:"FOODFETCH_CART_FILE_DIR" default:"./data"`
}

func (c CartConfig) validate() error {
	switch c.Backend() {
	case CartBackendMemory, CartBackendFile, CartBackendRedis, CartBackendDB:
		return nil
	}
	return fmt.Errorf("unknown cart storage backend %q", c.StorageBackend)
}

// Backend returns the normalized cart storage backend name.
func (c CartConfig) Backend() string {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend))
}

type CheckoutConfig struct {
	DeliveryFee string `envconfig:"FOODFETCH_CHECKOUT_DELIVERY_FEE" default:"2.99"`
	TaxRate     string `envconfig:"FOODFETCH_CHECKOUT_TAX_RATE" default:"0.07"`
}

// GatewayConfig points at the remote order/auth/menu/restaurant API gateway.
type GatewayConfig struct {
	BaseURL string        `envconfig:"FOODFETCH_GATEWAY_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"FOODFETCH_GATEWAY_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	DSN    string `envconfig:"FOODFETCH_DB_DSN"`
	Driver string `envconfig:"FOODFETCH_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"FOODFETCH_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"FOODFETCH_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"FOODFETCH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODFETCH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODFETCH_REDIS_URL"`
	Address      string        `envconfig:"FOODFETCH_REDIS_ADDR"`
	Password     string        `envconfig:"FOODFETCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODFETCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODFETCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODFETCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODFETCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODFETCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODFETCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FOODFETCH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FOODFETCH_JWT_ISSUER" default:"foodfetch"`
	ExpirationMinutes int    `envconfig:"FOODFETCH_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PubSubConfig struct {
	ProjectID         string `envconfig:"FOODFETCH_GCP_PROJECT_ID"`
	NotificationTopic string `envconfig:"FOODFETCH_PUBSUB_NOTIFICATION_TOPIC" default:"ff-notification-events"`
}

// Enabled reports whether Pub/Sub notifications are configured.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.ProjectID) != "" && strings.TrimSpace(p.NotificationTopic) != ""
}
