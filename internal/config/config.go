// Package config loads mekko settings from a TOML file, an optional .env
// file and MEKKO_* environment variables, in that order of precedence
// (later wins).
//
// Example config.toml:
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[render]
//	width = 1024
//	style = "outline"
//
//	[server]
//	addr = ":8080"
//	allowed_origins = ["https://example.com"]
package config

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/mekko/pkg/cache"
	"github.com/matzehuels/mekko/pkg/errors"
	"github.com/matzehuels/mekko/pkg/pipeline"
	"github.com/matzehuels/mekko/pkg/storage"
)

const (
	appName   = "mekko"
	envPrefix = "MEKKO_"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Upload UploadConfig `toml:"upload"`
}

type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// RenderConfig seeds pipeline render options. Command-line flags override it.
type RenderConfig struct {
	Width       float64  `toml:"width"`
	Height      float64  `toml:"height"`
	BorderWidth float64  `toml:"border_width"`
	Style       string   `toml:"style"`
	Formats     []string `toml:"formats"`
	Language    string   `toml:"language"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// StoreConfig selects chart persistence. An empty MongoURI keeps charts in
// memory.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

type UploadConfig struct {
	S3Bucket string `toml:"s3_bucket"`
	S3Prefix string `toml:"s3_prefix"`
	Region   string `toml:"region"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{Backend: BackendFile},
		Render: RenderConfig{
			Width:       pipeline.DefaultWidth,
			Height:      pipeline.DefaultHeight,
			BorderWidth: pipeline.DefaultBorderWidth,
			Style:       pipeline.DefaultStyle,
			Formats:     []string{pipeline.DefaultFormat},
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Store: StoreConfig{Database: appName},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mekko/config.toml, falling back to
// the platform config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// Load reads path (or [DefaultPath] when empty), then .env, then the
// environment. A missing default file is not an error; a missing explicit
// one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			switch {
			case os.IsNotExist(err) && !explicit:
			case os.IsNotExist(err):
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			default:
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
			}
		}
	}

	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from MEKKO_* variables. Unparsable numbers are
// ignored.
func (c *Config) applyEnv(getenv func(string) string) {
	env := func(key string, dst *string) {
		if v := getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v := getenv(envPrefix + key); v != "" {
			*dst = splitList(v)
		}
	}

	env("CACHE_BACKEND", &c.Cache.Backend)
	env("CACHE_DIR", &c.Cache.Dir)
	env("REDIS_ADDR", &c.Cache.RedisAddr)
	env("REDIS_PASSWORD", &c.Cache.RedisPassword)
	if v, err := strconv.Atoi(getenv(envPrefix + "REDIS_DB")); err == nil {
		c.Cache.RedisDB = v
	}
	if v, err := time.ParseDuration(getenv(envPrefix + "CACHE_TTL")); err == nil {
		c.Cache.TTL = v
	}

	if v, err := strconv.ParseFloat(getenv(envPrefix+"WIDTH"), 64); err == nil {
		c.Render.Width = v
	}
	if v, err := strconv.ParseFloat(getenv(envPrefix+"HEIGHT"), 64); err == nil {
		c.Render.Height = v
	}
	env("STYLE", &c.Render.Style)
	list("FORMATS", &c.Render.Formats)
	env("LANGUAGE", &c.Render.Language)

	env("ADDR", &c.Server.Addr)
	list("ALLOWED_ORIGINS", &c.Server.AllowedOrigins)

	env("MONGO_URI", &c.Store.MongoURI)
	env("MONGO_DATABASE", &c.Store.Database)

	env("S3_BUCKET", &c.Upload.S3Bucket)
	env("S3_PREFIX", &c.Upload.S3Prefix)
	env("AWS_REGION", &c.Upload.Region)
}

// Validate checks enumerations and render settings.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidOption, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidOption, "cache backend redis requires redis_addr")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "cache ttl must not be negative")
	}
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	return nil
}

// ApplyRender copies render settings into opts where opts has none.
func (c *Config) ApplyRender(opts *pipeline.Options) {
	if opts.Width <= 0 {
		opts.Width = c.Render.Width
	}
	if opts.Height <= 0 {
		opts.Height = c.Render.Height
	}
	if opts.BorderWidth <= 0 {
		opts.BorderWidth = c.Render.BorderWidth
	}
	if opts.Style == "" {
		opts.Style = c.Render.Style
	}
	if len(opts.Formats) == 0 {
		opts.Formats = append([]string(nil), c.Render.Formats...)
	}
	if opts.Language == "" {
		opts.Language = c.Render.Language
	}
}

// OpenCache builds the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	var (
		store cache.Cache
		err   error
	)
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		store, err = cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			Prefix:   appName + ":",
		})
	default:
		dir := c.Cache.Dir
		if dir == "" {
			if dir, err = cache.DefaultDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		store, err = cache.NewFileCache(dir)
	}
	if err != nil {
		return nil, err
	}
	if c.Cache.TTL > 0 {
		store = cache.WithTTL(store, c.Cache.TTL)
	}
	return store, nil
}

// OpenStore builds the configured chart store.
func (c *Config) OpenStore(ctx context.Context) (storage.Store, error) {
	if c.Store.MongoURI == "" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewMongoStore(ctx, c.Store.MongoURI, c.Store.Database)
}

// OpenUploader builds the S3 uploader, or returns nil when no bucket is
// configured.
func (c *Config) OpenUploader(ctx context.Context) (*storage.Uploader, error) {
	if c.Upload.S3Bucket == "" {
		return nil, nil
	}
	return storage.NewS3Uploader(ctx, c.Upload.S3Bucket, c.Upload.S3Prefix, c.Upload.Region)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
