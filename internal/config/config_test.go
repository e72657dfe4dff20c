package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.ScraperURL)
	assert.Equal(t, "software engineer intern", cfg.DefaultSearch)
	assert.Equal(t, "New York", cfg.DefaultLocation)
	assert.Equal(t, 3*time.Hour, cfg.JobCacheTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.ProfileCacheTTL)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.False(t, cfg.GitHub.Enabled())
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":                 "9090",
		"SCRAPER_API_URL":      "http://scraper:5000/",
		"JOB_CACHE_TTL":        "30m",
		"CORS_ALLOWED_ORIGINS": "http://localhost:3000, https://automate.dev ,",
		"GITHUB_CLIENT_ID":     "client",
		"GEMINI_API_KEY":       "key",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://scraper:5000", cfg.ScraperURL)
	assert.Equal(t, 30*time.Minute, cfg.JobCacheTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://automate.dev"}, cfg.AllowedOrigins)
	assert.True(t, cfg.GitHub.Enabled())
	assert.True(t, cfg.LLM.Enabled())
}

func TestFromEnv_InvalidTTL(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unparsable job ttl", env: map[string]string{"JOB_CACHE_TTL": "three hours"}},
		{name: "negative profile ttl", env: map[string]string{"PROFILE_CACHE_TTL": "-1h"}},
		{name: "zero job ttl", env: map[string]string{"JOB_CACHE_TTL": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envOf(tt.env))
			assert.Error(t, err)
		})
	}
}
