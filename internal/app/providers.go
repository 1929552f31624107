package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/bookmark"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/domain/job/sources/alerts"
	"github.com/honeycarbs/jobboard/internal/domain/job/sources/listings"
	"github.com/honeycarbs/jobboard/internal/export"
	"github.com/honeycarbs/jobboard/internal/storage/local"
	storageneo4j "github.com/honeycarbs/jobboard/internal/storage/neo4j"
	"github.com/honeycarbs/jobboard/internal/storage/postgres"
	storagepostgrest "github.com/honeycarbs/jobboard/internal/storage/postgrest"
	n4j "github.com/honeycarbs/jobboard/pkg/neo4j"
	"github.com/honeycarbs/jobboard/pkg/logging"
	"github.com/honeycarbs/jobboard/pkg/postgrest"
	"github.com/honeycarbs/jobboard/pkg/sheets"
)

// provideStore opens the remote store selected by REMOTE_BACKEND
func provideStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (job.Store, func(), error) {
	switch cfg.Remote.Backend {
	case config.RemotePostgres:
		pool, err := postgres.Open(ctx, cfg.Remote.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("remote store ready", "backend", config.RemotePostgres)
		return postgres.NewStore(pool), pool.Close, nil
	default:
		client, err := postgrest.NewClient(postgrest.Config{
			URL:               cfg.Remote.SupabaseURL,
			APIKey:            cfg.Remote.AnonKey,
			RequestsPerSecond: cfg.Remote.RequestsPerSecond,
			Burst:             2,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("remote store ready", "backend", config.RemotePostgREST, "url", cfg.Remote.SupabaseURL)
		return storagepostgrest.NewStore(client), func() {}, nil
	}
}

// provideSources builds the listings and alerts sources over one store
func provideSources(store job.Store) (job.Sources, error) {
	primary, err := listings.NewSource(store)
	if err != nil {
		return job.Sources{}, err
	}
	secondary, err := alerts.NewSource(store)
	if err != nil {
		return job.Sources{}, err
	}
	return job.Sources{Primary: primary, Secondary: secondary}, nil
}

// provideStorage opens the bookmark storage selected by STORAGE_BACKEND
func provideStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (bookmark.Storage, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		s, err := local.NewMemoryStore()
		return s, noop, err
	case config.StorageSQLite:
		s, err := local.OpenSQLite(ctx, cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warn("failed to close sqlite storage", "err", err)
			}
		}, nil
	case config.StorageNeo4j:
		client, err := n4j.NewClient(ctx, n4j.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
		})
		if err != nil {
			return nil, nil, err
		}
		s := storageneo4j.NewSettingStore(client)
		if err := s.EnsureSchema(ctx); err != nil {
			logger.Warn("failed to ensure neo4j schema", "err", err)
		}
		return s, func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("failed to close neo4j client", "err", err)
			}
		}, nil
	default:
		s, err := local.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("bookmark storage ready", "backend", config.StorageFile, "path", s.Path())
		return s, noop, nil
	}
}

func provideBookmarks(ctx context.Context, storage bookmark.Storage, logger *logging.Logger) (*bookmark.Set, error) {
	return bookmark.Load(ctx, storage, logger.Named("bookmarks"))
}

func providePageSize(cfg config.Config) job.PageSize {
	return job.PageSize(cfg.PageSize)
}

// provideExporter returns an exporter that reports ErrNotConfigured when no
// sheets credentials are set
func provideExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (*export.SheetsExporter, error) {
	if cfg.Sheets.CredentialsPath == "" {
		logger.Info("sheets export disabled", "reason", "GOOGLE_SHEETS_CREDENTIALS_PATH not set")
		return export.NewSheetsExporter(nil, logger), nil
	}

	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}
	return export.NewSheetsExporter(client, logger.Named("export")), nil
}

func provideAPIHandler(engine *gin.Engine) http.Handler {
	return engine
}

func provideRouterOrigins(cfg config.Config) []string {
	return cfg.CORSOrigins
}
