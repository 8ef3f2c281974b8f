package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Catalog
		Search
		Sessions
		TUI
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Catalog struct {
		APIKey    string
		BaseURL   string
		UserAgent string
		Timeout   time.Duration // 0 means no client-side timeout
		RateLimit float64       // requests per second
		RateBurst int
	}
	Search struct {
		Debounce        time.Duration // wait before issuing a lookup, 0 disables
		IdleTimeout     time.Duration // evict per-session searchers idle this long
		JanitorSchedule string        // cron format
		DiagnosticsSize int           // recent lookup failures kept in memory
	}
	Sessions struct {
		Lifetime      time.Duration
		CookieName    string
		SecureCookies bool   // Set to false for local dev without HTTPS
		CSRFSecret    string // 32 bytes, hex or raw; generated when empty
	}
	TUI struct {
		LogFile string
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("google_books_api_key", "")
	v.SetDefault("catalog_base_url", DefaultCatalogBaseURL)
	v.SetDefault("catalog_user_agent", DefaultUserAgent)
	v.SetDefault("catalog_timeout", "0s")
	v.SetDefault("catalog_rate_limit", 5.0)
	v.SetDefault("catalog_rate_burst", 5)

	v.SetDefault("search_debounce", "0s")
	v.SetDefault("search_idle_timeout", DefaultIdleTimeout.String())
	v.SetDefault("search_janitor_schedule", DefaultJanitorSchedule)
	v.SetDefault("search_diagnostics_size", 50)

	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("session_cookie_name", "bookclub_session")
	v.SetDefault("session_secure_cookies", false)
	v.SetDefault("csrf_secret", "") // Auto-generated if empty

	v.SetDefault("tui_log_file", DefaultTUILogFile)
}

// NewConfig builds the configuration from defaults and environment variables.
func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

// Load layers an optional config file (any format viper understands) under
// the environment. An empty path behaves like NewConfig.
func Load(path string) (*Config, error) {
	if path == "" {
		return NewConfig(), nil
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Catalog: Catalog{
			APIKey:    v.GetString("GOOGLE_BOOKS_API_KEY"),
			BaseURL:   v.GetString("CATALOG_BASE_URL"),
			UserAgent: v.GetString("CATALOG_USER_AGENT"),
			Timeout:   v.GetDuration("CATALOG_TIMEOUT"),
			RateLimit: v.GetFloat64("CATALOG_RATE_LIMIT"),
			RateBurst: v.GetInt("CATALOG_RATE_BURST"),
		},
		Search: Search{
			Debounce:        v.GetDuration("SEARCH_DEBOUNCE"),
			IdleTimeout:     v.GetDuration("SEARCH_IDLE_TIMEOUT"),
			JanitorSchedule: v.GetString("SEARCH_JANITOR_SCHEDULE"),
			DiagnosticsSize: v.GetInt("SEARCH_DIAGNOSTICS_SIZE"),
		},
		Sessions: Sessions{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			CookieName:    v.GetString("SESSION_COOKIE_NAME"),
			SecureCookies: v.GetBool("SESSION_SECURE_COOKIES"),
			CSRFSecret:    v.GetString("CSRF_SECRET"),
		},
		TUI: TUI{
			LogFile: v.GetString("TUI_LOG_FILE"),
		},
	}
}
