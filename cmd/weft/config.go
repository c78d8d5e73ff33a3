package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/blobstore"
	"github.com/hupe1980/weft/blobstore/badger"
	"github.com/hupe1980/weft/blobstore/minio"
	"github.com/hupe1980/weft/blobstore/redis"
	"github.com/hupe1980/weft/blobstore/s3"
	"github.com/hupe1980/weft/codec"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk CLI configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Codec    CodecConfig    `yaml:"codec"`
	Executor ExecutorConfig `yaml:"executor"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type StoreConfig struct {
	Type string `yaml:"type"` // local, memory, s3, minio, badger, redis

	// ThrottleBytesPerSec limits store throughput. 0 disables throttling.
	ThrottleBytesPerSec int `yaml:"throttle_bytes_per_sec"`

	Local  LocalConfig  `yaml:"local"`
	S3     S3Config     `yaml:"s3"`
	MinIO  MinIOConfig  `yaml:"minio"`
	Badger BadgerConfig `yaml:"badger"`
	Redis  RedisConfig  `yaml:"redis"`
}

type LocalConfig struct {
	Root string `yaml:"root"`
}

type S3Config struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	Secure    bool   `yaml:"secure"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

type BadgerConfig struct {
	Path      string `yaml:"path"`
	InMemory  bool   `yaml:"in_memory"`
	Namespace string `yaml:"namespace"`
}

type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix"`
}

type CodecConfig struct {
	Compression string `yaml:"compression"` // zstd or lz4
}

type ExecutorConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

// DefaultConfig stores graphs below ./graphs with zstd compression.
func DefaultConfig() Config {
	return Config{
		Log:   LogConfig{Level: "warn", Format: "text"},
		Store: StoreConfig{Type: "local", Local: LocalConfig{Root: "graphs"}},
		Codec: CodecConfig{Compression: "zstd"},
	}
}

// LoadConfig reads path (if non-empty) over the defaults and applies WEFT_* overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"WEFT_LOG_LEVEL":        &cfg.Log.Level,
		"WEFT_LOG_FORMAT":       &cfg.Log.Format,
		"WEFT_STORE_TYPE":       &cfg.Store.Type,
		"WEFT_LOCAL_ROOT":       &cfg.Store.Local.Root,
		"WEFT_S3_BUCKET":        &cfg.Store.S3.Bucket,
		"WEFT_S3_PREFIX":        &cfg.Store.S3.Prefix,
		"WEFT_MINIO_ENDPOINT":   &cfg.Store.MinIO.Endpoint,
		"WEFT_MINIO_ACCESS_KEY": &cfg.Store.MinIO.AccessKey,
		"WEFT_MINIO_SECRET_KEY": &cfg.Store.MinIO.SecretKey,
		"WEFT_MINIO_BUCKET":     &cfg.Store.MinIO.Bucket,
		"WEFT_BADGER_PATH":      &cfg.Store.Badger.Path,
		"WEFT_REDIS_URL":        &cfg.Store.Redis.URL,
		"WEFT_COMPRESSION":      &cfg.Codec.Compression,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WEFT_WORKERS":                &cfg.Executor.Workers,
		"WEFT_THROTTLE_BYTES_PER_SEC": &cfg.Store.ThrottleBytesPerSec,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}
	return nil
}

// newLogger builds the CLI logger. Output goes to w so commands stay testable.
func newLogger(cfg LogConfig, w io.Writer) (*weft.Logger, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "", "text":
		return weft.NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return weft.NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// codecOptions translates the codec section into codec options.
func codecOptions(cfg CodecConfig) ([]codec.Option, error) {
	c, err := codec.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}
	return []codec.Option{codec.WithCompression(c)}, nil
}

// openStore returns the configured BlobStore and a function releasing it.
func openStore(ctx context.Context, cfg StoreConfig, logger *weft.Logger) (blobstore.BlobStore, func() error, error) {
	noop := func() error { return nil }

	var (
		store   blobstore.BlobStore
		closeFn = noop
	)

	switch cfg.Type {
	case "", "local":
		if cfg.Local.Root == "" {
			return nil, nil, errors.New("store.local.root is required")
		}
		store = blobstore.NewLocalStore(cfg.Local.Root)
	case "memory":
		store = blobstore.NewMemoryStore()
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, nil, errors.New("store.s3.bucket is required")
		}
		s, err := s3.New(ctx, cfg.S3.Bucket, cfg.S3.Prefix)
		if err != nil {
			return nil, nil, err
		}
		store = s
	case "minio":
		s, err := minio.New(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Region:    cfg.MinIO.Region,
			Secure:    cfg.MinIO.Secure,
			Bucket:    cfg.MinIO.Bucket,
			Prefix:    cfg.MinIO.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		store = s
	case "badger":
		bcfg := badger.DefaultConfig(cfg.Badger.Path)
		if cfg.Badger.InMemory {
			bcfg = badger.InMemoryConfig()
		}
		bcfg.Namespace = cfg.Badger.Namespace
		bcfg.Logger = logger.Logger
		s, err := badger.Open(bcfg)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = s, s.Close
	case "redis":
		var opts []redis.Option
		if cfg.Redis.KeyPrefix != "" {
			opts = append(opts, redis.WithKeyPrefix(cfg.Redis.KeyPrefix))
		}
		s, err := redis.New(cfg.Redis.URL, opts...)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = s, s.Close
	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}

	if cfg.ThrottleBytesPerSec > 0 {
		store = blobstore.NewThrottledStore(store, cfg.ThrottleBytesPerSec)
	}
	return store, closeFn, nil
}
