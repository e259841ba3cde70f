package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/wdm0006/parqview/internal/synth"
	"github.com/wdm0006/parqview/pkg/io/parquetio"
)

func newSampleCmd() *cobra.Command {
	cmd := command(&cobra.Command{
		Use:   "sample DEST",
		Short: "Write a synthetic wind dataset as Parquet.",
		Long: `Generate a reanalysis-like table with a date, a station and u10, v10 and
t2m readings every six hours, and write it to DEST as Parquet.

Examples:
  parqview sample era5_wind.parquet
  parqview sample era5_wind.parquet --days 365 --seed 7`,
		Args: cobra.ExactArgs(1),
	}, runSample)
	cmd.Flags().Int("days", DefaultDays, "Number of days to generate")
	cmd.Flags().Int64("seed", 1, "Random seed")
	cmd.Flags().String("start", "2024-01-01", "First day (YYYY-MM-DD)")
	return cmd
}

func runSample(cmd *cobra.Command, cfg *Config) error {
	t := synth.Generate(cfg.Days, cfg.Seed, cfg.Start)
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if err := parquetio.WriteAll(cfg.Dest, t); err != nil {
		return err
	}
	status(cmd.ErrOrStderr(), "wrote %d rows over %d days from %s to %s", t.Rows(), cfg.Days, cfg.Start.Format(time.DateOnly), cfg.Dest)
	return nil
}
