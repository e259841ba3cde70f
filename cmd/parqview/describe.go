package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/wdm0006/parqview/pkg/profile"
)

func newDescribeCmd() *cobra.Command {
	cmd := command(&cobra.Command{
		Use:   "describe FILE",
		Short: "Profile every column of a Parquet file.",
		Long: `Load a Parquet file and summarize each column: counts and nulls, min, max,
mean, median and standard deviation of numbers, true/false counts of bools,
and the most frequent values of everything else.

Examples:
  parqview describe era5_wind.parquet
  parqview describe era5_wind.parquet --top 10 --format json`,
		Args: cobra.ExactArgs(1),
	}, runDescribe)
	cmd.Flags().String("format", OutText, "Output format: text or json")
	cmd.Flags().Int("top", DefaultTop, "Most frequent values to list per text column")
	return cmd
}

func runDescribe(cmd *cobra.Command, cfg *Config) error {
	t, err := load(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	c := profile.NewCollector(t.Schema(), cfg.Top)
	c.Consume(t)
	if cfg.Output == OutJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c.ReportJSON())
	}
	return c.WriteText(cmd.OutOrStdout())
}
