package app

import (
	"context"
	"errors"

	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/internal/mcp"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// App is the assembled server process
type App struct {
	Server *mcp.Server
	Jobs   job.Service
	logger *logging.Logger
}

func newApp(server *mcp.Server, jobs job.Service, logger *logging.Logger) *App {
	return &App{Server: server, Jobs: jobs, logger: logger}
}

// Run loads the first page and serves until the server is shut down. A failed
// initial load is logged and left to be retried by the first request.
func (a *App) Run(ctx context.Context) error {
	if err := a.Jobs.Fetch(ctx); err != nil && !errors.Is(err, job.ErrSuperseded) {
		a.logger.Warn("initial fetch failed", "err", err)
	}
	return a.Server.Run()
}
