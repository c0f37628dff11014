package config

import (
	"os"
	"time"
)

type Config struct {
	CacheTTL           time.Duration
	CacheMaxEntries    int
	MonthlyCostLimit   float64
	ProviderTimeout    time.Duration
	MockMode           bool
	RateLimitPerMinute int
}

func NewConfig() *Config {
	return &Config{
		CacheTTL:           24 * time.Hour,
		CacheMaxEntries:    50,
		MonthlyCostLimit:   50.00,
		ProviderTimeout:    15 * time.Second,
		MockMode:           os.Getenv("CLASSIFIER_MOCK_MODE") == "true",
		RateLimitPerMinute: 30,
	}
}
