package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REPO_PATH", "")
	t.Setenv("HOMEPAGE", "")
	t.Setenv("PAGE_EXTENSION", "")
	t.Setenv("COMMIT_AUTHOR_NAME", "")
	t.Setenv("COMMIT_AUTHOR_EMAIL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.RepoPath != defaultRepoPath {
		t.Errorf("expected default repo path %q, got %q", defaultRepoPath, cfg.RepoPath)
	}

	if cfg.Homepage != defaultHomepage {
		t.Errorf("expected default homepage %q, got %q", defaultHomepage, cfg.Homepage)
	}

	if cfg.PageExtension != defaultPageExtension {
		t.Errorf("expected default page extension %q, got %q", defaultPageExtension, cfg.PageExtension)
	}

	if cfg.AuthorName != defaultAuthorName {
		t.Errorf("expected default author name %q, got %q", defaultAuthorName, cfg.AuthorName)
	}

	if cfg.ServerPort != defaultServerPort {
		t.Errorf("expected default server port %d, got %d", defaultServerPort, cfg.ServerPort)
	}

	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("expected default log level %q, got %q", defaultLogLevel, cfg.LogLevel)
	}

	if cfg.ShutdownGrace != defaultShutdownGrace {
		t.Errorf("expected shutdown grace %s, got %s", defaultShutdownGrace, cfg.ShutdownGrace)
	}

	if cfg.SentryDSN != "" {
		t.Errorf("expected empty Sentry DSN, got %q", cfg.SentryDSN)
	}

	if cfg.RateLimitPerSecond != defaultRateLimitPerSecond {
		t.Errorf("expected default rate limit %v/s, got %v", defaultRateLimitPerSecond, cfg.RateLimitPerSecond)
	}

	if cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Errorf("expected default burst %d, got %d", defaultRateLimitBurst, cfg.RateLimitBurst)
	}

	if cfg.RateLimitClientTTL != defaultRateLimitClientTTL {
		t.Errorf("expected default client TTL %s, got %s", defaultRateLimitClientTTL, cfg.RateLimitClientTTL)
	}
}

func TestLoadWithExplicitValues(t *testing.T) {
	t.Setenv("REPO_PATH", "/tmp/wiki-repo")
	t.Setenv("HOMEPAGE", "FrontPage")
	t.Setenv("PAGE_EXTENSION", ".markdown")
	t.Setenv("COMMIT_AUTHOR_NAME", "librarian")
	t.Setenv("COMMIT_AUTHOR_EMAIL", "librarian@example.com")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SENTRY_DSN", "dsn")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.RepoPath != "/tmp/wiki-repo" {
		t.Errorf("expected repo path %q, got %q", "/tmp/wiki-repo", cfg.RepoPath)
	}

	if cfg.Homepage != "FrontPage" {
		t.Errorf("expected homepage FrontPage, got %q", cfg.Homepage)
	}

	if cfg.PageExtension != ".markdown" {
		t.Errorf("expected page extension .markdown, got %q", cfg.PageExtension)
	}

	if cfg.AuthorName != "librarian" {
		t.Errorf("expected author name librarian, got %q", cfg.AuthorName)
	}

	if cfg.AuthorEmail != "librarian@example.com" {
		t.Errorf("expected author email librarian@example.com, got %q", cfg.AuthorEmail)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.ServerPort)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}

	if cfg.SentryDSN != "dsn" {
		t.Errorf("expected Sentry DSN dsn, got %q", cfg.SentryDSN)
	}

	if cfg.Environment != "production" {
		t.Errorf("expected environment production, got %q", cfg.Environment)
	}
}

func TestLoadNormalizesExtensionWithoutDot(t *testing.T) {
	t.Setenv("PAGE_EXTENSION", "txt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.PageExtension != ".txt" {
		t.Errorf("expected extension normalized to .txt, got %q", cfg.PageExtension)
	}
}

func TestLoadRejectsBlankExtension(t *testing.T) {
	t.Setenv("PAGE_EXTENSION", ".")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for blank extension, got nil")
	}

	if !strings.Contains(err.Error(), "validating PAGE_EXTENSION") {
		t.Fatalf("expected error to mention validating PAGE_EXTENSION, got %v", err)
	}
}

func TestLoadRateLimitOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.RateLimitPerSecond != 2.5 {
		t.Errorf("expected rate limit 2.5/s, got %v", cfg.RateLimitPerSecond)
	}

	if cfg.RateLimitBurst != 5 {
		t.Errorf("expected burst 5, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadRejectsNonPositiveRateLimits(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_SECOND", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero rate limit, got nil")
	}

	t.Setenv("RATE_LIMIT_PER_SECOND", "")
	t.Setenv("RATE_LIMIT_BURST", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative burst, got nil")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "invalid")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid port, got nil")
	}

	if !strings.Contains(err.Error(), "invalid SERVER_PORT value") {
		t.Fatalf("expected error to mention invalid SERVER_PORT value, got %v", err)
	}
}
