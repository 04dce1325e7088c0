package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the GitWiki server.
type Config struct {
	RepoPath      string
	Homepage      string
	PageExtension string
	AuthorName    string
	AuthorEmail   string
	ServerPort    int
	LogLevel      string
	SentryDSN     string
	Environment   string
	ShutdownGrace time.Duration

	RateLimitPerSecond float64
	RateLimitBurst     int
	RateLimitClientTTL time.Duration
}

const (
	defaultRepoPath      = "./data/wiki"
	defaultHomepage      = "Home"
	defaultPageExtension = ".md"
	defaultAuthorName    = "gitwiki"
	defaultAuthorEmail   = "gitwiki@localhost"
	defaultServerPort    = 8080
	defaultLogLevel      = "info"
	defaultShutdownGrace = 10 * time.Second

	defaultRateLimitPerSecond = 10.0
	defaultRateLimitBurst     = 20
	defaultRateLimitClientTTL = 10 * time.Minute
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		RepoPath:      getEnv("REPO_PATH", defaultRepoPath),
		Homepage:      getEnv("HOMEPAGE", defaultHomepage),
		PageExtension: getEnv("PAGE_EXTENSION", defaultPageExtension),
		AuthorName:    getEnv("COMMIT_AUTHOR_NAME", defaultAuthorName),
		AuthorEmail:   getEnv("COMMIT_AUTHOR_EMAIL", defaultAuthorEmail),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		Environment:   os.Getenv("ENV"),
		ShutdownGrace: defaultShutdownGrace,

		RateLimitClientTTL: defaultRateLimitClientTTL,
	}

	extension, err := normalizeExtension(cfg.PageExtension)
	if err != nil {
		return nil, eris.Wrap(err, "validating PAGE_EXTENSION")
	}
	cfg.PageExtension = extension

	if strings.TrimSpace(cfg.Homepage) == "" {
		return nil, eris.New("HOMEPAGE must not be blank")
	}

	portValue := getEnv("SERVER_PORT", strconv.Itoa(defaultServerPort))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid SERVER_PORT value: %s", portValue)
	}
	cfg.ServerPort = port

	perSecondValue := getEnv("RATE_LIMIT_PER_SECOND", strconv.FormatFloat(defaultRateLimitPerSecond, 'f', -1, 64))
	perSecond, err := strconv.ParseFloat(perSecondValue, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid RATE_LIMIT_PER_SECOND value: %s", perSecondValue)
	}
	if perSecond <= 0 {
		return nil, eris.Errorf("RATE_LIMIT_PER_SECOND must be greater than zero: %s", perSecondValue)
	}
	cfg.RateLimitPerSecond = perSecond

	burstValue := getEnv("RATE_LIMIT_BURST", strconv.Itoa(defaultRateLimitBurst))
	burst, err := strconv.Atoi(burstValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid RATE_LIMIT_BURST value: %s", burstValue)
	}
	if burst <= 0 {
		return nil, eris.Errorf("RATE_LIMIT_BURST must be greater than zero: %s", burstValue)
	}
	cfg.RateLimitBurst = burst

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func normalizeExtension(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "." {
		return "", eris.New("page extension must not be blank")
	}

	if !strings.HasPrefix(trimmed, ".") {
		trimmed = "." + trimmed
	}

	return trimmed, nil
}
