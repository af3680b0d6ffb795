package blob

import (
	"context"
	"fmt"

	"aisumo/internal/infra/blob/fs"
	memorystore "aisumo/internal/infra/blob/memory"
	infraS3 "aisumo/internal/infra/blob/s3"
)

// S3Config re-exports the infra S3 configuration.
type S3Config = infraS3.Config

// Config selects a blob backend. Driver defaults to fs.
type Config struct {
	Driver Driver
	// FSRoot is the directory root when Driver is fs.
	FSRoot string
	// PublicBaseURL prefixes public URLs for the fs and memory drivers.
	PublicBaseURL string
	S3            S3Config
}

// Open returns the Store selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return NewFilesystem(cfg.FSRoot, cfg.PublicBaseURL)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(cfg.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// NewFilesystem constructs a filesystem-backed Store rooted at root.
func NewFilesystem(root, publicBaseURL string) (Store, error) {
	s, err := fs.New(root, publicBaseURL)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemory returns an in-memory Store.
func NewMemory(publicBaseURL string) Store { return memorystore.New(publicBaseURL) }

// NewS3 constructs an S3-backed Store.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) {
	s, err := infraS3.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}
