package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:4000",
			Timeout:        5 * time.Second,
			RetryAttempts:  0,
			UserAgent:      "agrilearn-test/1.0",
			AllowLocalhost: true,
		},
		Weather: WeatherConfig{
			BaseURL: "http://localhost:4001",
			Timeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Path:    ":memory:",
			Timeout: 1 * time.Second,
		},
		News: NewsConfig{
			RefreshInterval: 1 * time.Minute,
			HTTPTimeout:     5 * time.Second,
		},
		UI:    defaultConfig().UI,
		Media: defaultConfig().Media,
		Keys:  defaultConfig().Keys,
		Log:   LogConfig{Level: "off"},
	}
}
