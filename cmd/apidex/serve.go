package main

import (
	"context"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/ingest"
	"github.com/apidex/apidex/mcp"
	apidexslog "github.com/apidex/apidex/slog"
	"github.com/apidex/apidex/update"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	builder := &ingest.Builder{Store: deps.Store, Logger: deps.Logger}
	index := apidexslog.NewLoggingIndex(builder.Build(deps.Sources), deps.Logger)

	refresh := func(ctx context.Context) (apidex.Index, error) {
		updater := &update.Updater{
			Fetcher: deps.Fetcher,
			Store:   deps.Store,
			Limiter: update.NewHostLimiter(1),
		}
		for _, r := range updater.UpdateAll(ctx, deps.Sources) {
			if r.Err != nil {
				deps.Logger.Warn("refresh fetch failed",
					"source", r.Source.Name,
					"err", r.Err,
				)
			}
		}
		return apidexslog.NewLoggingIndex(builder.Build(deps.Sources), deps.Logger), nil
	}

	srv := mcp.NewServer(index,
		mcp.WithRefreshFunc(refresh),
		mcp.WithLogger(deps.Logger),
	)

	return srv.ServeStdio()
}
