package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corray333/tutti-amici/internal/config"
	"github.com/corray333/tutti-amici/internal/dal/interfaces/idocumentrepo"
	mongodal "github.com/corray333/tutti-amici/internal/dal/mongo"
	"github.com/corray333/tutti-amici/internal/dal/postgres"
	memoryrepo "github.com/corray333/tutti-amici/internal/dal/repositories/document/memory"
	mongorepo "github.com/corray333/tutti-amici/internal/dal/repositories/document/mongo"
	postgresrepo "github.com/corray333/tutti-amici/internal/dal/repositories/document/postgres"
	"github.com/spf13/viper"
)

// storage holds the document repository and whatever must be closed with it.
// repo stays a nil interface when no database is usable.
type storage struct {
	repo   idocumentrepo.IDocumentRepository
	closer func(ctx context.Context) error
}

func (s storage) close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}

	return s.closer(ctx)
}

// openStorage never fails: a missing or broken database leaves the
// application running without storage.
func openStorage(ctx context.Context) storage {
	driver := viper.GetString("database.driver")
	url := viper.GetString("database.url")

	if driver == config.DriverMemory {
		slog.Warn("Using in-memory document storage, data will not survive a restart")

		return storage{repo: memoryrepo.NewDocumentRepository()}
	}

	if url == "" {
		slog.Warn("Database URL is not set, running without storage")

		return storage{}
	}

	s, err := connectStorage(ctx, driver, url)
	if err != nil {
		slog.Error("Error connecting to database, running without storage", "driver", driver, "error", err)

		return storage{}
	}

	slog.Info("Database connected", "driver", driver)

	return s
}

func connectStorage(ctx context.Context, driver, url string) (storage, error) {
	timeout := viper.GetDuration("database.timeout")

	switch driver {
	case config.DriverMongo:
		client, err := mongodal.NewClient(ctx, url, viper.GetString("database.name"), timeout)
		if err != nil {
			return storage{}, err
		}

		return storage{
			repo:   mongorepo.NewDocumentRepository(client),
			closer: client.Close,
		}, nil

	case config.DriverPostgres:
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		client, err := postgres.NewClient(connectCtx, url)
		if err != nil {
			return storage{}, err
		}
		if err := client.Migrate(connectCtx); err != nil {
			slog.Error("Error applying migrations", "error", err)
		}

		return storage{
			repo: postgresrepo.NewDocumentRepository(client.Pool()),
			closer: func(context.Context) error {
				client.Close()

				return nil
			},
		}, nil

	default:
		return storage{}, fmt.Errorf("unknown database driver %q", driver)
	}
}
