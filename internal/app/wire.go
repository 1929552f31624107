//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobboard/internal/api"
	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/internal/domain/bookmark"
	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/mcp"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Initialize wires the server process from configuration
func Initialize(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Remote store and sources
		provideStore,
		provideSources,

		// Bookmarks
		provideStorage,
		provideBookmarks,
		wire.Bind(new(job.Bookmarks), new(*bookmark.Set)),

		// Services
		providePageSize,
		job.NewServiceWithDeps,
		provideExporter,

		// Transports
		provideRouterOrigins,
		api.NewRouter,
		provideAPIHandler,
		mcp.NewServer,

		newApp,
	)
	return nil, nil, nil
}
