package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppName           = "Resulto"
	defaultAppEnv            = "development"
	defaultPort              = "5000"
	defaultLogLevel          = "info"
	defaultShutdownDelay     = 10 * time.Second
	defaultIdempotencyTTL    = 24 * time.Hour
	defaultSessionTTL        = 24 * time.Hour
	defaultResultRetention   = 14 * 24 * time.Hour
	defaultPurgeInterval     = 24 * time.Hour
	defaultPaymentTimeout    = 15 * time.Second
	defaultAuthRatePerMin    = 10
	defaultPaystackBaseURL   = "https://api.paystack.co"
	defaultFontPath          = "fonts/DejaVuSans.ttf"
	defaultS3Region          = "us-east-1"
	defaultOCRLanguages      = "eng"
	defaultAllowedOrigins    = "http://localhost:5000,http://127.0.0.1:5000"
	shutdownSecondsEnvVar    = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar   = "SHUTDOWN_TIMEOUT"
	idemTTLSecondsEnvVar     = "IDEMPOTENCY_TTL_SECONDS"
	idemTTLDurEnvVar         = "IDEMPOTENCY_TTL"
	sessionTTLEnvVar         = "SESSION_TTL"
	retentionEnvVar          = "RESULT_RETENTION"
	purgeIntervalEnvVar      = "PURGE_INTERVAL"
	paymentTimeoutEnvVar     = "PAYMENT_TIMEOUT"
	authRateLimitEnvVar      = "AUTH_RATE_LIMIT_PER_MIN"
	defaultJWTSecretInDev    = "dev-only-jwt-secret"
	defaultGoogleClientInDev = "dev-google-client-id"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	Env            string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	JWTSecret  string
	SessionTTL time.Duration

	GoogleClientID string

	PaystackSecretKey string
	PaystackBaseURL   string
	PaymentTimeout    time.Duration

	Storage StorageConfig

	FontPath     string
	OCRLanguages []string

	ResultRetention time.Duration
	PurgeInterval   time.Duration

	AllowedOrigins      []string
	AuthRateLimitPerMin int
}

// StorageConfig describes the S3-compatible bucket rendered result images are uploaded to.
type StorageConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// Enabled reports whether a bucket has been configured.
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

// Load reads configuration values from the environment and populates a Config instance.
// A .env file in the working directory is applied first when present; real
// environment variables take precedence over it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		AppName:           getEnv("APP_NAME", defaultAppName),
		Env:               getEnv("APP_ENV", defaultAppEnv),
		Port:              getEnv("PORT", defaultPort),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		ShutdownPeriod:    defaultShutdownDelay,
		IdempotencyTTL:    defaultIdempotencyTTL,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:   strings.TrimRight(getEnv("PAYSTACK_BASE_URL", defaultPaystackBaseURL), "/"),
		Storage: StorageConfig{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    getEnv("S3_REGION", defaultS3Region),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			PublicURL: strings.TrimRight(os.Getenv("STORAGE_PUBLIC_URL"), "/"),
		},
		FontPath:       getEnv("FONT_PATH", defaultFontPath),
		OCRLanguages:   splitList(getEnv("TESSERACT_LANGUAGES", defaultOCRLanguages)),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins)),
	}

	var err error
	if cfg.ShutdownPeriod, err = secondsOrDuration(shutdownSecondsEnvVar, shutdownDurationEnvVar, defaultShutdownDelay); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = secondsOrDuration(idemTTLSecondsEnvVar, idemTTLDurEnvVar, defaultIdempotencyTTL); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationEnv(sessionTTLEnvVar, defaultSessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.ResultRetention, err = durationEnv(retentionEnvVar, defaultResultRetention); err != nil {
		return Config{}, err
	}
	if cfg.PurgeInterval, err = durationEnv(purgeIntervalEnvVar, defaultPurgeInterval); err != nil {
		return Config{}, err
	}
	if cfg.PaymentTimeout, err = durationEnv(paymentTimeoutEnvVar, defaultPaymentTimeout); err != nil {
		return Config{}, err
	}

	cfg.AuthRateLimitPerMin = defaultAuthRatePerMin
	if v := os.Getenv(authRateLimitEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", authRateLimitEnvVar, err)
		}
		cfg.AuthRateLimitPerMin = n
	}

	if cfg.ResultRetention <= 0 {
		return Config{}, fmt.Errorf("%s must be positive", retentionEnvVar)
	}
	// Zero disables the purge job.
	if cfg.PurgeInterval < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", purgeIntervalEnvVar)
	}

	if cfg.IsDev() {
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = defaultJWTSecretInDev
		}
		if cfg.GoogleClientID == "" {
			cfg.GoogleClientID = defaultGoogleClientInDev
		}
		return cfg, nil
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.GoogleClientID == "" {
		return Config{}, fmt.Errorf("GOOGLE_CLIENT_ID must be set")
	}

	return cfg, nil
}

// IsDev reports whether the service runs in a local/development environment,
// where Postgres, Redis and object storage may be replaced by in-memory fallbacks.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func secondsOrDuration(secondsKey, durationKey string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(secondsKey); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", secondsKey, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	return durationEnv(durationKey, fallback)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
