package switchback

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr    = ":8080"
	defaultBaseURL = "http://localhost:8080"
	defaultEnvFile = ".env"

	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 5 * time.Second
)

// A Config holds the settings a switchback server starts with.
type Config struct {
	Addr       string
	BasePath   string
	BaseURL    *url.URL
	CORSOrigin string
	Env        Environment
	LogLevel   string
	SentryDSN  string

	// RateLimit is the number of requests per second a single IP address may make.
	// Zero disables rate limiting.
	RateLimit float64
	Burst     int

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// LoadConfig reads the dotenv files, .env by default, into the process environment
// and builds a [Config] from SWITCHBACK_ prefixed variables.
//
// A missing default .env file is not an error; a missing named file is.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		err := godotenv.Load(defaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrBadConfig, err)
	}

	cfg := Config{
		Addr:       EnvVarOrString("SWITCHBACK_ADDR", defaultAddr),
		BasePath:   strings.TrimRight(EnvVarOrString("SWITCHBACK_BASE_PATH", ""), "/"),
		BaseURL:    EnvVarOrURL("SWITCHBACK_BASE_URL", defaultBaseURL),
		CORSOrigin: EnvVarOrString("SWITCHBACK_CORS_ORIGIN", ""),
		Env:        EnvVarOrEnv("SWITCHBACK_ENV", Development),
		LogLevel:   strings.ToUpper(EnvVarOrString("SWITCHBACK_LOG_LEVEL", "INFO")),
		SentryDSN:  EnvVarOrString("SENTRY_DSN", ""),
		RateLimit:  EnvVarOrFloat("SWITCHBACK_RATE_LIMIT", 0),
		Burst:      EnvVarOrInt("SWITCHBACK_RATE_BURST", 20),

		ReadHeaderTimeout: EnvVarOrDuration("SWITCHBACK_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),
		ShutdownTimeout:   EnvVarOrDuration("SWITCHBACK_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if cfg.BasePath != "" && !strings.HasPrefix(cfg.BasePath, "/") {
		return cfg, fmt.Errorf("%w: base path %q must begin with /", ErrBadConfig, cfg.BasePath)
	}

	if cfg.RateLimit < 0 || cfg.Burst < 0 {
		return cfg, fmt.Errorf("%w: rate limit and burst cannot be negative", ErrBadConfig)
	}

	if cfg.ReadHeaderTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		return cfg, fmt.Errorf("%w: timeouts must be positive", ErrBadConfig)
	}

	return cfg, nil
}
