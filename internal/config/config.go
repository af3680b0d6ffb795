// Package config assembles runtime configuration from AISUMO_* environment
// variables and optional dotenv files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"aisumo/internal/blob"
	"aisumo/internal/persistence"
)

// Prefix is prepended to every recognised environment key.
const Prefix = "AISUMO_"

// DefaultHTTPAddr is the listen address when AISUMO_HTTP_ADDR is unset.
const DefaultHTTPAddr = ":8080"

// DefaultPublicRefresh is how often the public store refetches when
// AISUMO_PUBLIC_REFRESH is unset.
const DefaultPublicRefresh = time.Minute

// Environment names accepted by AISUMO_ENV.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config is the resolved process configuration.
type Config struct {
	Env        string
	LogLevel   string
	HTTPAddr   string
	AdminToken string
	Storage    persistence.Config
	Blob       blob.Config
	// PublicRefresh is the public store's poll interval; zero disables it.
	PublicRefresh time.Duration
}

// Development reports whether AISUMO_ENV selects development mode.
func (c Config) Development() bool { return c.Env == EnvDevelopment }

// Load reads the given dotenv files (missing files are skipped) and then the
// process environment. Process variables win over file values. With no files,
// ".env" in the working directory is tried.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	fromFiles := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := fromFiles[k]; !seen {
				fromFiles[k] = v
			}
		}
	}
	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fromFiles[key]
		return v, ok
	})
}

// FromLookup resolves a Config from lookup, which receives fully prefixed
// keys such as AISUMO_STORAGE_DRIVER.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(Prefix + key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Env:        strings.ToLower(get("ENV", EnvProduction)),
		LogLevel:   strings.ToLower(get("LOG_LEVEL", "info")),
		HTTPAddr:   get("HTTP_ADDR", DefaultHTTPAddr),
		AdminToken: get("ADMIN_TOKEN", ""),
		Storage: persistence.Config{
			Driver:        persistence.Driver(strings.ToLower(get("STORAGE_DRIVER", string(persistence.DriverSQLite)))),
			SQLitePath:    get("SQLITE_PATH", ""),
			PostgresDSN:   get("POSTGRES_DSN", ""),
			MongoURI:      get("MONGO_URI", ""),
			MongoDatabase: get("MONGO_DB", ""),
		},
		Blob: blob.Config{
			Driver:        blob.Driver(strings.ToLower(get("BLOB_DRIVER", string(blob.DriverFilesystem)))),
			FSRoot:        get("BLOB_FS_ROOT", ""),
			PublicBaseURL: get("BLOB_PUBLIC_BASE_URL", ""),
			S3: blob.S3Config{
				Bucket:          get("BLOB_S3_BUCKET", ""),
				Region:          get("BLOB_S3_REGION", ""),
				Endpoint:        get("BLOB_S3_ENDPOINT", ""),
				AccessKeyID:     get("BLOB_S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: get("BLOB_S3_SECRET_ACCESS_KEY", ""),
				PublicBaseURL:   get("BLOB_PUBLIC_BASE_URL", ""),
			},
		},
	}

	refresh, err := time.ParseDuration(get("PUBLIC_REFRESH", DefaultPublicRefresh.String()))
	if err != nil {
		return Config{}, fmt.Errorf("%sPUBLIC_REFRESH: %w", Prefix, err)
	}
	cfg.PublicRefresh = refresh

	if raw := get("BLOB_S3_PATH_STYLE", ""); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%sBLOB_S3_PATH_STYLE: %w", Prefix, err)
		}
		cfg.Blob.S3.PathStyle = v
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown drivers and modes.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case persistence.DriverMemory, persistence.DriverSQLite, persistence.DriverPostgres:
	case persistence.DriverMongo:
		if c.Storage.MongoURI == "" {
			return fmt.Errorf("%sMONGO_URI is required for the mongo driver", Prefix)
		}
	default:
		return fmt.Errorf("unknown storage driver %s", c.Storage.Driver)
	}
	switch c.Blob.Driver {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if c.Blob.S3.Bucket == "" {
			return fmt.Errorf("%sBLOB_S3_BUCKET is required for the s3 driver", Prefix)
		}
	default:
		return fmt.Errorf("unknown blob driver %s", c.Blob.Driver)
	}
	if c.PublicRefresh < 0 {
		return fmt.Errorf("%sPUBLIC_REFRESH must not be negative", Prefix)
	}
	if c.Env != EnvProduction && c.Env != EnvDevelopment {
		return fmt.Errorf("unknown environment %s", c.Env)
	}
	return nil
}
