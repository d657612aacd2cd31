// Package config loads jsonview settings from a TOML file, a .env file and
// JSONVIEW_* environment variables, in increasing order of precedence.
//
// A config file looks like:
//
//	[view]
//	indent = 18
//	max_depth = 3
//	hidden_keys = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[log]
//	level = "debug"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/matzehuels/jsonview/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "jsonview"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "JSONVIEW_"

// Config is the complete set of settings.
type Config struct {
	View  ViewConfig  `toml:"view"`
	Cache CacheConfig `toml:"cache"`
	Log   LogConfig   `toml:"log"`
}

// ViewConfig holds tree and renderer defaults.
type ViewConfig struct {
	Indent        int  `toml:"indent"`
	MaxDepth      int  `toml:"max_depth"`
	MaxPreview    int  `toml:"max_preview"`
	HideSize      bool `toml:"hide_size"`
	HTML          bool `toml:"html"`
	HiddenKeys    bool `toml:"hidden_keys"`
	Titles        bool `toml:"titles"`
	EmptyBranch   bool `toml:"empty_branch"`
	StartExpanded bool `toml:"start_expanded"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	Prefix        string        `toml:"prefix"`
	TTL           time.Duration `toml:"ttl"`
}

// LogConfig holds the log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Indent:     18,
			MaxDepth:   3,
			MaxPreview: 80,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Prefix:  AppName + ":",
			TTL:     7 * 24 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/jsonview/config.toml, falling back
// to the user config directory of the platform.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Load reads the config file at path over the defaults, then applies .env
// and environment overrides and validates the result. An empty path reads
// [DefaultPath] if it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyEnv overrides settings from JSONVIEW_* variables.
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"CACHE_BACKEND":  &c.Cache.Backend,
		"CACHE_DIR":      &c.Cache.Dir,
		"REDIS_ADDR":     &c.Cache.RedisAddr,
		"REDIS_PASSWORD": &c.Cache.RedisPassword,
		"CACHE_PREFIX":   &c.Cache.Prefix,
		"LOG_LEVEL":      &c.Log.Level,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"INDENT":      &c.View.Indent,
		"MAX_DEPTH":   &c.View.MaxDepth,
		"MAX_PREVIEW": &c.View.MaxPreview,
		"REDIS_DB":    &c.Cache.RedisDB,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv(EnvPrefix + "CACHE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sCACHE_TTL", EnvPrefix)
		}
		c.Cache.TTL = d
	}
	return nil
}

// Validate checks value ranges and cross-field requirements.
func (c *Config) Validate() error {
	err := validation.Errors{
		"view": validation.ValidateStruct(&c.View,
			validation.Field(&c.View.Indent, validation.Min(0)),
			validation.Field(&c.View.MaxDepth, validation.Min(-1)),
			validation.Field(&c.View.MaxPreview, validation.Min(0)),
		),
		"cache": validation.ValidateStruct(&c.Cache,
			validation.Field(&c.Cache.Backend, validation.Required, validation.In(BackendFile, BackendRedis, BackendNone)),
			validation.Field(&c.Cache.RedisAddr, validation.When(c.Cache.Backend == BackendRedis, validation.Required)),
			validation.Field(&c.Cache.RedisDB, validation.Min(0)),
			validation.Field(&c.Cache.TTL, validation.Min(time.Duration(0))),
		),
		"log": validation.ValidateStruct(&c.Log,
			validation.Field(&c.Log.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		),
	}.Filter()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
	}
	return nil
}

// CacheDir returns the configured cache directory, or
// $XDG_CACHE_HOME/jsonview (~/.cache/jsonview) when none is set.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
