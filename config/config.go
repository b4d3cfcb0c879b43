package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigFile is read when no --config flag is given. It is optional.
const DefaultConfigFile = ".env"

// Config is built once at startup and handed to the constructors that need it.
type Config struct {
	TMDB    TMDBConfig
	Server  ServerConfig
	Search  SearchConfig
	Web     WebConfig
	Logging LoggingConfig
}

// TMDBConfig holds the upstream API settings.
type TMDBConfig struct {
	APIKey        string
	BaseURL       string
	ImageBaseURL  string
	Language      string // language for search results
	CountryLocale string // locale used for country names and sorting
}

// ServerConfig configures the Aggregator HTTP server.
type ServerConfig struct {
	Port      int
	PublicDir string
}

// SearchConfig bounds the fan-out of a search.
type SearchConfig struct {
	MaxResults     int
	MaxProviders   int
	MaxConcurrency int
	DetailTimeout  time.Duration
	Attempts       int
}

// WebConfig configures the Presenter.
type WebConfig struct {
	Port         int
	APIBase      string
	APIFallbacks []string
}

// LoggingConfig configures log output and rotation.
type LoggingConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Addr returns the listen address of the Aggregator.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Addr returns the listen address of the Presenter.
func (c WebConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tmdb_api_key", "")
	v.SetDefault("tmdb_base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb_image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb_language", "en-US")
	v.SetDefault("country_locale", "nl")
	v.SetDefault("port", 3000)
	v.SetDefault("public_dir", "public")
	v.SetDefault("search_max_results", 18)
	v.SetDefault("search_max_providers", 12)
	v.SetDefault("search_max_concurrency", 18)
	v.SetDefault("search_detail_timeout", 8*time.Second)
	v.SetDefault("search_attempts", 2)
	v.SetDefault("web_port", 8080)
	v.SetDefault("app_api_base", "")
	v.SetDefault("web_api_fallbacks", "http://127.0.0.1:3000,http://localhost:3000")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)
}

// Load reads configuration from the process environment and an optional
// config file. Environment variables take precedence over the file. A missing
// file is only an error when explicit is true.
func Load(path string, explicit bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if ext := filepath.Ext(path); ext == "" || ext == ".env" {
				v.SetConfigType("env")
			}
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if explicit {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		TMDB: TMDBConfig{
			APIKey:        strings.TrimSpace(v.GetString("tmdb_api_key")),
			BaseURL:       strings.TrimRight(v.GetString("tmdb_base_url"), "/"),
			ImageBaseURL:  strings.TrimRight(v.GetString("tmdb_image_base_url"), "/"),
			Language:      v.GetString("tmdb_language"),
			CountryLocale: v.GetString("country_locale"),
		},
		Server: ServerConfig{
			Port:      v.GetInt("port"),
			PublicDir: v.GetString("public_dir"),
		},
		Search: SearchConfig{
			MaxResults:     v.GetInt("search_max_results"),
			MaxProviders:   v.GetInt("search_max_providers"),
			MaxConcurrency: v.GetInt("search_max_concurrency"),
			DetailTimeout:  v.GetDuration("search_detail_timeout"),
			Attempts:       v.GetInt("search_attempts"),
		},
		Web: WebConfig{
			Port:         v.GetInt("web_port"),
			APIBase:      strings.TrimSpace(v.GetString("app_api_base")),
			APIFallbacks: splitList(v.GetString("web_api_fallbacks")),
		},
		Logging: LoggingConfig{
			File:       v.GetString("log_file"),
			MaxSizeMB:  v.GetInt("log_max_size_mb"),
			MaxBackups: v.GetInt("log_max_backups"),
			MaxAgeDays: v.GetInt("log_max_age_days"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the services cannot run with. A missing API key is
// not an error here; searches report it per request.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Server.Port))
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		errs = append(errs, fmt.Errorf("WEB_PORT out of range: %d", c.Web.Port))
	}
	if c.TMDB.BaseURL == "" {
		errs = append(errs, errors.New("TMDB_BASE_URL is empty"))
	}
	if c.Search.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_MAX_RESULTS must be positive: %d", c.Search.MaxResults))
	}
	if c.Search.MaxProviders <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_MAX_PROVIDERS must be positive: %d", c.Search.MaxProviders))
	}
	if c.Search.MaxConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_MAX_CONCURRENCY must be positive: %d", c.Search.MaxConcurrency))
	}
	if c.Search.DetailTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_DETAIL_TIMEOUT must be positive: %s", c.Search.DetailTimeout))
	}
	if c.Search.Attempts <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_ATTEMPTS must be positive: %d", c.Search.Attempts))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
