package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root configuration of the persistence gateway server.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Lookup    LookupConfig    `yaml:"lookup"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ClientConfig is the configuration of the vocab CLI. It never needs
// database or signing credentials.
type ClientConfig struct {
	Lookup     LookupConfig     `yaml:"lookup"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Log        LogConfig        `yaml:"log"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	SkipMigrations  bool          `yaml:"skip_migrations"  env:"SERVER_SKIP_MIGRATIONS"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token validation settings. Tokens are issued by an
// external identity provider that shares the signing secret.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"vocabook"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LookupConfig holds dictionary lookup service settings.
type LookupConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"LOOKUP_BASE_URL"    env-default:"https://www.dictionaryapi.com/api/v3/references/collegiate/json"`
	APIKey     string        `yaml:"api_key"     env:"LOOKUP_API_KEY"`
	Timeout    time.Duration `yaml:"timeout"     env:"LOOKUP_TIMEOUT"     env-default:"10s"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"LOOKUP_RETRY_DELAY" env-default:"500ms"`
}

// GatewayConfig tells the CLI where the persistence gateway lives.
type GatewayConfig struct {
	BaseURL string        `yaml:"base_url" env:"GATEWAY_BASE_URL" env-default:"http://localhost:8080"`
	Token   string        `yaml:"token"    env:"GATEWAY_TOKEN"`
	Timeout time.Duration `yaml:"timeout"  env:"GATEWAY_TIMEOUT"  env-default:"15s"`
}

// VocabularyConfig holds client-side vocabulary settings.
type VocabularyConfig struct {
	// Locale is a BCP 47 tag used for word ordering.
	Locale            string `yaml:"locale"             env:"VOCAB_LOCALE"             env-default:"en"`
	LookupConcurrency int    `yaml:"lookup_concurrency" env:"VOCAB_LOOKUP_CONCURRENCY" env-default:"4"`
	ExportPath        string `yaml:"export_path"        env:"VOCAB_EXPORT_PATH"        env-default:"vocabulary.txt"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP rate limiting for the vocabulary API.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"              env-default:"120"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
