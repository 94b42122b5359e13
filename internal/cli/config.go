package cli

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/coachmark/pkg/checkpoint"
	"github.com/matzehuels/coachmark/pkg/errors"
)

// Environment overrides, applied after the config file.
const (
	envBackend   = "COACHMARK_CHECKPOINT_BACKEND"
	envRedisAddr = "COACHMARK_REDIS_ADDR"
	envMongoURI  = "COACHMARK_MONGO_URI"
	envAddr      = "COACHMARK_ADDR"
)

// Checkpoint backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the optional config file.
//
//	[checkpoint]
//	backend = "redis"
//
//	[checkpoint.redis]
//	addr = "localhost:6379"
//	ttl = "720h"
type Config struct {
	Checkpoint CheckpointConfig `toml:"checkpoint"`
	Play       PlayConfig       `toml:"play"`
	Serve      ServeConfig      `toml:"serve"`
}

// CheckpointConfig selects where tour positions are saved.
type CheckpointConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	Prefix   string   `toml:"prefix"`
	TTL      duration `toml:"ttl"`
}

type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// PlayConfig holds defaults for the play command.
type PlayConfig struct {
	Strategy    string `toml:"strategy"`
	BubbleWidth int    `toml:"bubble_width"`
}

// ServeConfig holds defaults for the serve command.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "90s".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func defaultConfig() Config {
	return Config{
		Checkpoint: CheckpointConfig{Backend: backendFile},
		Serve:      ServeConfig{Addr: defaultAddr},
	}
}

// loadConfig reads the config file at path. An empty path means the default
// location, where a missing file is fine.
func loadConfig(path string) (Config, []string, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			applyEnv(&cfg)
			return cfg, nil, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	var unknown []string
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
		for _, k := range md.Undecoded() {
			unknown = append(unknown, k.String())
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return cfg, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	default:
		return cfg, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	applyEnv(&cfg)
	return cfg, unknown, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envBackend); v != "" {
		cfg.Checkpoint.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(envRedisAddr); v != "" {
		cfg.Checkpoint.Redis.Addr = v
	}
	if v := os.Getenv(envMongoURI); v != "" {
		cfg.Checkpoint.Mongo.URI = v
	}
	if v := os.Getenv(envAddr); v != "" {
		cfg.Serve.Addr = v
	}
}

// config loads the config for a command, logging unknown keys.
func (c *CLI) config() (Config, error) {
	cfg, unknown, err := loadConfig(c.configPath)
	if err != nil {
		return cfg, err
	}
	if len(unknown) > 0 {
		c.Logger.Warn("ignoring unknown config keys", "keys", strings.Join(unknown, ", "))
	}
	return cfg, nil
}

// openStore opens the configured checkpoint backend.
func openStore(ctx context.Context, cfg CheckpointConfig) (checkpoint.Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = backendFile
	}

	var (
		s   checkpoint.Store
		err error
	)
	switch backend {
	case backendFile:
		dir := cfg.Dir
		if dir == "" {
			base, derr := configDir()
			if derr != nil {
				return nil, errors.Wrap(errors.ErrCodeStore, derr, "resolve checkpoint dir")
			}
			dir = filepath.Join(base, "checkpoints")
		}
		s, err = checkpoint.NewFileStore(dir)
	case backendRedis:
		s, err = checkpoint.NewRedisStore(ctx, checkpoint.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
			TTL:      cfg.Redis.TTL.Duration,
		})
	case backendMongo:
		s, err = checkpoint.NewMongoStore(ctx, checkpoint.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	case backendNone:
		s = checkpoint.NewNullStore()
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown checkpoint backend %q (want %s)", backend, strings.Join(backends(), ", "))
	}
	if err != nil {
		return nil, err
	}
	return checkpoint.Observed(backend, s), nil
}

func backends() []string {
	return []string{backendFile, backendRedis, backendMongo, backendNone}
}

// parsePosition parses a step position argument.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "position %q", s)
	}
	return n, nil
}
