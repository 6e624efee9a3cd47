// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/portfolio/internal/daterange"
	"github.com/jonathan/portfolio/internal/server/ratelimit"
	"github.com/jonathan/portfolio/internal/sitemap"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_SITE_BASE_URL
const EnvPrefix = "PORTFOLIO"

// Defaults
const (
	DefaultContentDir        = "content"
	DefaultOutputDir         = "out"
	DefaultPort              = 8080
	DefaultWorkers           = 8
	DefaultAboutUpdated      = "2025-01-01"
	DefaultLastModifiedFloor = "1970-01-01"
)

// Config represents the configuration loaded from a YAML or JSON file and the environment.
type Config struct {
	ContentDir string `mapstructure:"content_dir" json:"content_dir,omitempty" validate:"required"` // Root holding case-studies/ and writing/
	OutputDir  string `mapstructure:"output_dir" json:"output_dir,omitempty" validate:"required"`   // Static export destination
	Port       int    `mapstructure:"port" json:"port,omitempty" validate:"min=1,max=65535"`
	Workers    int    `mapstructure:"workers" json:"workers,omitempty" validate:"min=1,max=256"` // Concurrent document reads
	Verbose    bool   `mapstructure:"verbose" json:"verbose,omitempty"`

	Site      SiteConfig       `mapstructure:"site" json:"site"`
	RateLimit ratelimit.Config `mapstructure:"rate_limit" json:"rate_limit"`
}

// SiteConfig is the site identity plus the static sitemap dates
type SiteConfig struct {
	types.SiteIdentity `mapstructure:",squash"`

	AboutUpdated      string `mapstructure:"about_updated" json:"about_updated,omitempty"`
	LastModifiedFloor string `mapstructure:"last_modified_floor" json:"last_modified_floor,omitempty"`
}

// Identity returns the site identity
func (s SiteConfig) Identity() types.SiteIdentity {
	return s.SiteIdentity
}

// SitemapOptions resolves the configured static dates
func (s SiteConfig) SitemapOptions() (sitemap.Options, error) {
	opts := sitemap.DefaultOptions()
	if s.AboutUpdated != "" {
		t, err := daterange.Resolve(s.AboutUpdated)
		if err != nil {
			return opts, fmt.Errorf("config error: 'site.about_updated': %w", err)
		}
		opts.AboutUpdated = t
	}
	if s.LastModifiedFloor != "" {
		t, err := daterange.Resolve(s.LastModifiedFloor)
		if err != nil {
			return opts, fmt.Errorf("config error: 'site.last_modified_floor': %w", err)
		}
		opts.Floor = t
	}
	return opts, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("content_dir", DefaultContentDir)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("verbose", false)
	v.SetDefault("site.base_url", "")
	v.SetDefault("site.name", "")
	v.SetDefault("site.job_title", "")
	v.SetDefault("site.description", "")
	v.SetDefault("site.profile_url", "")
	v.SetDefault("site.email", "")
	v.SetDefault("site.alumni_of", "")
	v.SetDefault("site.locale", "en_US")
	v.SetDefault("site.about_updated", DefaultAboutUpdated)
	v.SetDefault("site.last_modified_floor", DefaultLastModifiedFloor)

	limits := ratelimit.DefaultConfig()
	v.SetDefault("rate_limit.enabled", limits.Enabled)
	v.SetDefault("rate_limit.limit", limits.Limit)
	v.SetDefault("rate_limit.window", limits.Window)
	v.SetDefault("rate_limit.burst", limits.Burst)
	v.SetDefault("rate_limit.idle_ttl", limits.IdleTTL)
	v.SetDefault("rate_limit.exempt", limits.Exempt)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from a file, the environment and defaults, in that
// order of precedence after the environment. An empty path searches the working
// directory for portfolio.yaml and falls back to defaults when none exists.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks struct constraints and the sitemap dates
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check", configKey(fe.Namespace()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if _, err := c.Site.SitemapOptions(); err != nil {
		return err
	}
	return nil
}

// newValidator names fields by their mapstructure key, so errors report what the user
// wrote in the config file
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
	})
	return v
}

// configKey trims a namespace such as Config.site.SiteIdentity.base_url to site.base_url.
// The root struct and squashed embeds have no key and keep their Go names.
func configKey(namespace string) string {
	parts := strings.Split(namespace, ".")[1:]
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || unicode.IsUpper([]rune(part)[0]) {
			continue
		}
		keys = append(keys, part)
	}
	return strings.Join(keys, ".")
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ContentDir == "" {
		result.ContentDir = defaults.ContentDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	site := &result.Site
	if site.BaseURL == "" {
		site.BaseURL = defaults.Site.BaseURL
	}
	if site.Name == "" {
		site.Name = defaults.Site.Name
	}
	if site.JobTitle == "" {
		site.JobTitle = defaults.Site.JobTitle
	}
	if site.Description == "" {
		site.Description = defaults.Site.Description
	}
	if site.ProfileURL == "" {
		site.ProfileURL = defaults.Site.ProfileURL
	}
	if site.Email == "" {
		site.Email = defaults.Site.Email
	}
	if site.AlumniOf == "" {
		site.AlumniOf = defaults.Site.AlumniOf
	}
	if site.Locale == "" {
		site.Locale = defaults.Site.Locale
	}
	if site.AboutUpdated == "" {
		site.AboutUpdated = defaults.Site.AboutUpdated
	}
	if site.LastModifiedFloor == "" {
		site.LastModifiedFloor = defaults.Site.LastModifiedFloor
	}

	// rate limiting is taken whole; a zero section means it was never set
	if result.RateLimit.Limit == 0 && result.RateLimit.Window == 0 && !result.RateLimit.Enabled {
		result.RateLimit = defaults.RateLimit
	}

	return result
}
