package main

import (
	"github.com/spf13/cobra"

	"github.com/wdm0006/parqview/pkg/io/csvio"
	"github.com/wdm0006/parqview/pkg/io/jsonlio"
	"github.com/wdm0006/parqview/pkg/io/parquetio"
	"github.com/wdm0006/parqview/pkg/io/xlsxio"
)

func newExportCmd() *cobra.Command {
	cmd := command(&cobra.Command{
		Use:   "export FILE DEST",
		Short: "Export a Parquet file to CSV, Excel, JSON Lines or Parquet.",
		Long: `Load a Parquet file and write it to DEST. The format follows the
extension of DEST (.csv, .xlsx, .jsonl, .parquet, optionally .gz for CSV and
JSON Lines) or --format. DEST "-" writes CSV to stdout.

CSV export writes at most --max-rows rows (0 writes all). Cells are joined
as-is unless --quote is given.

Examples:
  parqview export era5_wind.parquet wind.csv
  parqview export era5_wind.parquet wind.csv.gz --max-rows 0 --quote
  parqview export era5_wind.parquet wind.xlsx --sheet wind
  parqview export era5_wind.parquet - --delimiter ';'`,
		Args: cobra.ExactArgs(2),
	}, runExport)
	cmd.Flags().String("format", "", "Export format: csv or xlsx or jsonl or parquet (default from DEST)")
	cmd.Flags().Int("max-rows", DefaultMaxRows, "Maximum rows in CSV exports (0 = all)")
	cmd.Flags().Bool("quote", false, "Quote CSV cells per RFC 4180")
	cmd.Flags().String("delimiter", ",", "CSV delimiter")
	cmd.Flags().String("sheet", "", "Excel sheet name (default from FILE)")
	return cmd
}

func runExport(cmd *cobra.Command, cfg *Config) error {
	t, err := load(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	rows := t.Rows()
	switch cfg.Format {
	case FormatXLSX:
		err = xlsxio.Export(cfg.Dest, t, xlsxio.Options{Sheet: orDefault(cfg.Sheet, xlsxio.SheetName(cfg.Input))})
	case FormatJSONL:
		err = jsonlio.WriteAll(cfg.Dest, t)
	case FormatParquet:
		err = parquetio.WriteAll(cfg.Dest, t)
	default:
		rows, err = csvio.Export(cfg.Dest, t, cfg.CSV)
	}
	if err != nil {
		return err
	}
	status(cmd.ErrOrStderr(), "exported %d of %d rows to %s (%s)", rows, t.Rows(), cfg.Dest, cfg.Format)
	return nil
}
