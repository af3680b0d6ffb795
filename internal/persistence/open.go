// Package persistence selects and opens the table store backend.
package persistence

import (
	"context"
	"fmt"

	"aisumo/internal/infra/persistence/memory"
	"aisumo/internal/infra/persistence/mongo"
	"aisumo/internal/infra/persistence/postgres"
	"aisumo/internal/infra/persistence/sqlite"
	"aisumo/pkg/domain"
)

// Driver identifies a concrete table store implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
	DriverMongo    Driver = "mongo"    // MongoDB server
)

// Config carries the backend selection and its connection settings.
type Config struct {
	Driver        Driver
	SQLitePath    string
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string
}

// Open returns the table store selected by cfg.Driver, defaulting to sqlite.
func Open(ctx context.Context, cfg Config) (domain.TableStore, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	switch driver {
	case DriverMemory:
		return memory.NewStore(), nil
	case DriverSQLite:
		s, err := sqlite.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		s, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("mongo driver requires a connection uri")
		}
		s, err := mongo.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
