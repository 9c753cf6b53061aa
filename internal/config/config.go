package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Weather WeatherConfig `mapstructure:"weather"`
	Cache   CacheConfig   `mapstructure:"cache"`
	News    NewsConfig    `mapstructure:"news"`
	UI      UIConfig      `mapstructure:"ui"`
	Media   MediaConfig   `mapstructure:"media"`
	Keys    KeyConfig     `mapstructure:"keys"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RetryAttempts  int           `mapstructure:"retry_attempts"`
	UserAgent      string        `mapstructure:"user_agent"`
	AllowLocalhost bool          `mapstructure:"allow_localhost"`
}

type WeatherConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Path        string        `mapstructure:"path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SearchIndex string        `mapstructure:"search_index"`
}

type NewsConfig struct {
	Sources         []string      `mapstructure:"sources"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
}

type UIConfig struct {
	Colors    UIColors     `mapstructure:"colors"`
	PageSizes PageSizes    `mapstructure:"page_sizes"`
	Reader    ReaderConfig `mapstructure:"reader"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

// PageSizes fixes the page size per listing screen.
type PageSizes struct {
	Articles int `mapstructure:"articles"`
	Videos   int `mapstructure:"videos"`
	Forum    int `mapstructure:"forum"`
	Admin    int `mapstructure:"admin"`
	News     int `mapstructure:"news"`
}

type ReaderConfig struct {
	MaxDescriptionLength int `mapstructure:"max_description_length"`
	WordWrapMaxWidth     int `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth     int `mapstructure:"word_wrap_min_width"`
}

type MediaConfig struct {
	Darwin        MediaPlayers `mapstructure:"darwin"`
	Linux         MediaPlayers `mapstructure:"linux"`
	Windows       MediaPlayers `mapstructure:"windows"`
	DefaultOpener string       `mapstructure:"default_opener"`
}

type MediaPlayers struct {
	Video []string `mapstructure:"video"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit      string `mapstructure:"quit"`
	Search    string `mapstructure:"search"`
	Refresh   string `mapstructure:"refresh"`
	NextPage  string `mapstructure:"next_page"`
	PrevPage  string `mapstructure:"prev_page"`
	Category  string `mapstructure:"category"`
	OpenMedia string `mapstructure:"open_media"`
	Back      string `mapstructure:"back"`
	Help      string `mapstructure:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	cachePath := filepath.Join(homeDir, ".agrilearn.db")
	searchIndexPath := filepath.Join(homeDir, ".agrilearn", "index.bleve")
	logPath := filepath.Join(homeDir, ".agrilearn", "agrilearn.log")

	return &Config{
		API: APIConfig{
			BaseURL:       "https://api.agrilearn.id",
			Timeout:       30 * time.Second,
			RetryAttempts: 1,
			UserAgent:     "agrilearn/1.0 (terminal client)",
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.bmkg.go.id",
			Timeout: 15 * time.Second,
		},
		Cache: CacheConfig{
			Path:        cachePath,
			Timeout:     1 * time.Second,
			SearchIndex: searchIndexPath,
		},
		News: NewsConfig{
			RefreshInterval: 30 * time.Minute,
			HTTPTimeout:     30 * time.Second,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#A8E063",
				Secondary:  "#355E3B",
				Accent:     "#4ECDC4",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			PageSizes: PageSizes{
				Articles: 6,
				Videos:   6,
				Forum:    10,
				Admin:    10,
				News:     10,
			},
			Reader: ReaderConfig{
				MaxDescriptionLength: 150,
				WordWrapMaxWidth:     120,
				WordWrapMinWidth:     40,
			},
		},
		Media: MediaConfig{
			Darwin:        MediaPlayers{Video: []string{"iina", "mpv", "vlc"}},
			Linux:         MediaPlayers{Video: []string{"mpv", "vlc", "mplayer"}},
			Windows:       MediaPlayers{Video: []string{"mpv", "vlc"}},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:      "q",
				Search:    "s",
				Refresh:   "r",
				NextPage:  "right",
				PrevPage:  "left",
				Category:  "c",
				OpenMedia: "o",
				Back:      "esc",
				Help:      "?",
			},
		},
		Log: LogConfig{
			Level: "off",
			Path:  logPath,
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("weather", cfg.Weather)
	v.SetDefault("cache", cfg.Cache)
	v.SetDefault("news", cfg.News)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("media", cfg.Media)
	v.SetDefault("keys", cfg.Keys)
	v.SetDefault("log", cfg.Log)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "agrilearn")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("AGRILEARN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Cache.Path = expandPath(cfg.Cache.Path)
	cfg.Cache.SearchIndex = expandPath(cfg.Cache.SearchIndex)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations become strings so the generated TOML stays readable
	apiCfg := map[string]interface{}{
		"base_url":        config.API.BaseURL,
		"timeout":         config.API.Timeout.String(),
		"retry_attempts":  config.API.RetryAttempts,
		"user_agent":      config.API.UserAgent,
		"allow_localhost": config.API.AllowLocalhost,
	}

	weatherCfg := map[string]interface{}{
		"base_url": config.Weather.BaseURL,
		"timeout":  config.Weather.Timeout.String(),
	}

	cacheCfg := map[string]interface{}{
		"path":         config.Cache.Path,
		"timeout":      config.Cache.Timeout.String(),
		"search_index": config.Cache.SearchIndex,
	}

	newsCfg := map[string]interface{}{
		"sources":          config.News.Sources,
		"refresh_interval": config.News.RefreshInterval.String(),
		"http_timeout":     config.News.HTTPTimeout.String(),
	}

	v.Set("api", apiCfg)
	v.Set("weather", weatherCfg)
	v.Set("cache", cacheCfg)
	v.Set("news", newsCfg)
	v.Set("ui", config.UI)
	v.Set("media", config.Media)
	v.Set("keys", config.Keys)
	v.Set("log", config.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
