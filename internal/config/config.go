package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultDatabaseURL     = "host=localhost user=postgres password=password dbname=automate port=5432 sslmode=disable"
	defaultScraperURL      = "http://localhost:5000"
	defaultJobSearch       = "software engineer intern"
	defaultJobLocation     = "New York"
	defaultJobCacheTTL     = 3 * time.Hour
	defaultProfileCacheTTL = 7 * 24 * time.Hour
	defaultGeminiModel     = "gemini-2.5-flash"
)

// GitHubConfig holds the OAuth app used by the GitHub connect flow.
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether a client id was configured.
func (g GitHubConfig) Enabled() bool {
	return g.ClientID != ""
}

type LLMConfig struct {
	APIKey string
	Model  string
}

func (l LLMConfig) Enabled() bool {
	return l.APIKey != ""
}

type Config struct {
	Port            string
	DatabaseURL     string
	ScraperURL      string
	DefaultSearch   string
	DefaultLocation string
	JobCacheTTL     time.Duration
	ProfileCacheTTL time.Duration
	AllowedOrigins  []string
	GitHub          GitHubConfig
	LLM             LLMConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests don't touch os.Environ.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:            valueOr(getenv("PORT"), defaultPort),
		DatabaseURL:     valueOr(getenv("DATABASE_URL"), defaultDatabaseURL),
		ScraperURL:      strings.TrimRight(valueOr(getenv("SCRAPER_API_URL"), defaultScraperURL), "/"),
		DefaultSearch:   valueOr(getenv("DEFAULT_JOB_SEARCH"), defaultJobSearch),
		DefaultLocation: valueOr(getenv("DEFAULT_JOB_LOCATION"), defaultJobLocation),
		GitHub: GitHubConfig{
			ClientID:     getenv("GITHUB_CLIENT_ID"),
			ClientSecret: getenv("GITHUB_CLIENT_SECRET"),
			RedirectURL:  getenv("GITHUB_REDIRECT_URL"),
		},
		LLM: LLMConfig{
			APIKey: getenv("GEMINI_API_KEY"),
			Model:  valueOr(getenv("GEMINI_MODEL"), defaultGeminiModel),
		},
	}

	var err error
	if cfg.JobCacheTTL, err = durationOr(getenv("JOB_CACHE_TTL"), defaultJobCacheTTL); err != nil {
		return nil, fmt.Errorf("JOB_CACHE_TTL: %w", err)
	}
	if cfg.ProfileCacheTTL, err = durationOr(getenv("PROFILE_CACHE_TTL"), defaultProfileCacheTTL); err != nil {
		return nil, fmt.Errorf("PROFILE_CACHE_TTL: %w", err)
	}

	for _, origin := range strings.Split(getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func durationOr(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
