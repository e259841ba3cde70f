package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/wdm0006/parqview/pkg/io/parquetio"
	"github.com/wdm0006/parqview/pkg/table"
)

// load reads cfg.Input, giving up early when ctx is already cancelled.
func load(ctx context.Context, cfg *Config) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	t, err := parquetio.Load(cfg.Input, cfg.Load)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded table",
		slog.String("path", cfg.Input),
		slog.Int("rows", t.Rows()),
		slog.Int("columns", t.Cols()),
		slog.Duration("took", time.Since(start)))
	return t, ctx.Err()
}
