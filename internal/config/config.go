package config

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devJWTSecret signs tokens only when APP_ENV=dev and JWT_SECRET is unset.
const devJWTSecret = "dev-secret-change-me"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set outside dev")

type Config struct {
	Env  string
	Port int

	DBURL      string
	DBMaxConns int32
	// apply embedded migrations before serving
	MigrateOnStart bool

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	CORSAllowedOrigins []string
	MaxBodyBytes       int64

	OTELEndpoint string
	ServiceName  string
}

// Load reads the environment, after merging a .env file when one exists.
// Variables already set in the process win over the file.
func Load() Config {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" && env == "dev" {
		jwtSecret = devJWTSecret
	}

	return Config{
		Env:  env,
		Port: getEnvInt("PORT", 5000),

		DBURL:          getEnv("DATABASE_URL", buildDBURL()),
		DBMaxConns:     int32(getEnvInt("DB_MAX_CONNS", 5)),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),

		JWTSecret:  jwtSecret,
		JWTTTL:     getEnvDuration("JWT_TTL", time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),

		OTELEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "beacon-api"),
	}
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "beacon")
	pass := getEnv("DB_PASSWORD", "beacon")
	name := getEnv("DB_NAME", "coastal")
	ssl := getEnv("DB_SSLMODE", "disable")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     host + ":" + port,
		Path:     "/" + name,
		RawQuery: url.Values{"sslmode": {ssl}}.Encode(),
	}
	return u.String()
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid int in env, using default", "key", key, "value", v)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid bool in env, using default", "key", key, "value", v)
			return fallback
		}
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("invalid duration in env, using default", "key", key, "value", v)
			return fallback
		}
		return d
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
