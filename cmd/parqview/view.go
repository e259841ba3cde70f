package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wdm0006/parqview/pkg/chart"
	"github.com/wdm0006/parqview/pkg/grid"
	"github.com/wdm0006/parqview/pkg/series"
)

func newViewCmd() *cobra.Command {
	cmd := command(&cobra.Command{
		Use:   "view FILE",
		Short: "Show the first rows of a Parquet file and its daily chart.",
		Long: `Load a Parquet file and print its first rows as a grid.

When the table has the date and value columns, the daily mean of the value
column is plotted below the grid, and optionally saved as a PNG.

Examples:
  parqview view era5_wind.parquet
  parqview view era5_wind.parquet --rows 50 --value-column v10
  parqview view era5_wind.parquet --chart-out wind.png`,
		Args: cobra.ExactArgs(1),
	}, runView)
	cmd.Flags().Int("rows", DefaultRows, "Number of rows to show")
	cmd.Flags().Int("cell-width", grid.DefaultCellWidth, "Truncate cells longer than this (-1 disables)")
	cmd.Flags().String("chart-out", "", "Also write the chart as a PNG to this path")
	cmd.Flags().Int("width", 0, "Chart width (0 = default)")
	cmd.Flags().Int("height", 0, "Chart height (0 = default)")
	cmd.Flags().String("title", "", "Chart title (default \"Daily <value-column> Values\")")
	return cmd
}

func runView(cmd *cobra.Command, cfg *Config) error {
	t, err := load(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := grid.Render(out, t, cfg.Grid); err != nil {
		return err
	}

	opt := cfg.Series
	if t.ColumnIndex(orDefault(opt.DateColumn, series.DefaultDateColumn)) < 0 ||
		t.ColumnIndex(orDefault(opt.ValueColumn, series.DefaultValueColumn)) < 0 {
		slog.Debug("skipping chart; date or value column missing",
			slog.String("date_column", opt.DateColumn),
			slog.String("value_column", opt.ValueColumn))
		return nil
	}
	points, err := series.Aggregate(t, opt)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		warn(cmd.ErrOrStderr(), "no rows to plot")
		return nil
	}
	ascii, err := chart.RenderASCII(points, chart.Options{Title: cfg.Chart.Title, Series: cfg.Chart.Series})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "\n%s\n", ascii); err != nil {
		return err
	}
	if cfg.ChartOut != "" {
		if err := writePNG(cfg.ChartOut, points, cfg.Chart); err != nil {
			return err
		}
		status(cmd.ErrOrStderr(), "wrote chart to %s", cfg.ChartOut)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
