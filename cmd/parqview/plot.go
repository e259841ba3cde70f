package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wdm0006/parqview/pkg/chart"
	"github.com/wdm0006/parqview/pkg/grid"
	"github.com/wdm0006/parqview/pkg/series"
	"github.com/wdm0006/parqview/pkg/table"
)

func newPlotCmd() *cobra.Command {
	cmd := command(&cobra.Command{
		Use:   "plot FILE",
		Short: "Average a value column per day and plot it.",
		Long: `Group the rows of a Parquet file by the date column and average the value
column per group.

The points are printed as a table with a terminal chart, or as CSV or JSON.
With --out the chart is written as a PNG.

Examples:
  parqview plot era5_wind.parquet
  parqview plot era5_wind.parquet --value-column t2m --bucket exact
  parqview plot era5_wind.parquet --output json
  parqview plot era5_wind.parquet --out wind.png --width 1600 --height 800`,
		Args: cobra.ExactArgs(1),
	}, runPlot)
	cmd.Flags().String("output", OutText, "Output format: text or csv or json")
	cmd.Flags().String("out", "", "Write the chart as a PNG to this path")
	cmd.Flags().Int("width", 0, "Chart width (0 = default)")
	cmd.Flags().Int("height", 0, "Chart height (0 = default)")
	cmd.Flags().String("title", "", "Chart title (default \"Daily <value-column> Values\")")
	return cmd
}

func runPlot(cmd *cobra.Command, cfg *Config) error {
	t, err := load(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	points, err := series.Aggregate(t, cfg.Series)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return chart.ErrNoPoints
	}
	if cfg.ChartOut != "" {
		if err := writePNG(cfg.ChartOut, points, cfg.Chart); err != nil {
			return err
		}
		status(cmd.ErrOrStderr(), "wrote %d points to %s", len(points), cfg.ChartOut)
		return nil
	}

	out := cmd.OutOrStdout()
	switch cfg.Output {
	case OutJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	case OutCSV:
		return writePointsCSV(out, points)
	default:
		if err := grid.Points(out, points, cfg.Series.ValueColumn); err != nil {
			return err
		}
		ascii, err := chart.RenderASCII(points, chart.Options{Title: cfg.Chart.Title, Series: cfg.Chart.Series})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "\n%s\n", ascii)
		return err
	}
}

func writePointsCSV(w io.Writer, points []series.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "value", "count"}); err != nil {
		return err
	}
	for _, p := range points {
		rec := []string{table.FormatValue(p.Date), strconv.FormatFloat(p.Value, 'g', -1, 64), strconv.Itoa(p.Count)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePNG(path string, points []series.Point, opt chart.Options) error {
	const op = "write chart"
	f, err := os.Create(path)
	if err != nil {
		return table.Wrap(table.ErrIO, op, path, err)
	}
	if err := chart.RenderPNG(f, points, opt); err != nil {
		_ = f.Close()
		return table.Wrap(table.ErrExport, op, path, err)
	}
	if err := f.Close(); err != nil {
		return table.Wrap(table.ErrIO, op, path, err)
	}
	return nil
}
