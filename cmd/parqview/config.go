package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wdm0006/parqview/internal/logging"
	"github.com/wdm0006/parqview/pkg/chart"
	"github.com/wdm0006/parqview/pkg/grid"
	"github.com/wdm0006/parqview/pkg/io/csvio"
	"github.com/wdm0006/parqview/pkg/io/ioutils"
	"github.com/wdm0006/parqview/pkg/io/parquetio"
	"github.com/wdm0006/parqview/pkg/series"
)

const (
	DefaultMaxRows = csvio.DefaultMaxRows
	DefaultRows    = grid.DefaultRows
	DefaultTop     = 5
	DefaultDays    = 30

	minChartSize = 64
	maxChartSize = 8192
)

// Export formats.
const (
	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
	FormatJSONL   = "jsonl"
	FormatParquet = "parquet"
)

// Report formats.
const (
	OutText = "text"
	OutCSV  = "csv"
	OutJSON = "json"
	OutYAML = "yaml"
	OutTOML = "toml"
)

var validOutputs = map[string]map[string]bool{
	"plot":     {OutText: true, OutCSV: true, OutJSON: true},
	"schema":   {OutText: true, OutJSON: true, OutYAML: true, OutTOML: true},
	"describe": {OutText: true, OutJSON: true},
}

// RawInput holds the unvalidated values from flags, env and the config file.
// Viper unmarshals into this struct.
type RawInput struct {
	// Set from the invoked command and its positional args, so no tag.
	Command string
	Args    []string

	// --- root persistent flags ---
	Config      string `mapstructure:"config"`
	LogLevel    string `mapstructure:"log-level"`
	LogFormat   string `mapstructure:"log-format"`
	LogFile     string `mapstructure:"log-file"`
	Color       string `mapstructure:"color"`
	DateColumn  string `mapstructure:"date-column"`
	ValueColumn string `mapstructure:"value-column"`
	Bucket      string `mapstructure:"bucket"`
	Strict      bool   `mapstructure:"strict"`

	// --- view ---
	Rows      int    `mapstructure:"rows"`
	CellWidth int    `mapstructure:"cell-width"`
	ChartOut  string `mapstructure:"chart-out"`

	// --- view and plot ---
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`

	// --- plot ---
	Output string `mapstructure:"output"`
	Out    string `mapstructure:"out"`

	// --- export, schema, describe ---
	Format    string `mapstructure:"format"`
	MaxRows   int    `mapstructure:"max-rows"`
	Quote     bool   `mapstructure:"quote"`
	Delimiter string `mapstructure:"delimiter"`
	Sheet     string `mapstructure:"sheet"`
	Top       int    `mapstructure:"top"`

	// --- sample ---
	Days  int    `mapstructure:"days"`
	Seed  int64  `mapstructure:"seed"`
	Start string `mapstructure:"start"`
}

// Config is the validated configuration of one command run.
type Config struct {
	Input string
	Dest  string

	Load   parquetio.ReadOptions
	Series series.Options
	Grid   grid.Options
	Chart  chart.Options
	// ChartOut is the PNG destination of view and plot; empty skips the PNG.
	ChartOut string
	CSV      csvio.WriterOptions
	Sheet    string

	// Output is the report format of plot, schema and describe.
	Output string
	// Format is the export format, resolved from the destination when unset.
	Format string
	Top    int
	Days   int
	Seed   int64
	Start  time.Time

	Log   logging.Config
	Color string

	closeLog func() error
}

func (c *Config) close() {
	if c.closeLog != nil {
		_ = c.closeLog()
	}
}

// ProcessAndValidate checks input and fills cfg.
func ProcessAndValidate(cfg *Config, input *RawInput) error {
	if err := processArgs(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processOutput(cfg, input); err != nil {
		return err
	}
	if input.Command == "export" {
		return processExport(cfg, input)
	}
	return nil
}

func processArgs(cfg *Config, input *RawInput) error {
	want := 1
	if input.Command == "export" {
		want = 2
	}
	if len(input.Args) != want {
		return fmt.Errorf("%s expects %d argument(s), got %d", input.Command, want, len(input.Args))
	}
	switch input.Command {
	case "sample":
		cfg.Dest = input.Args[0]
	case "export":
		cfg.Input, cfg.Dest = input.Args[0], input.Args[1]
	default:
		cfg.Input = input.Args[0]
	}
	return nil
}

func validateSimpleInputs(cfg *Config, input *RawInput) error {
	cfg.Load = parquetio.ReadOptions{Strict: input.Strict}
	cfg.ChartOut = input.ChartOut
	if input.Out != "" {
		cfg.ChartOut = input.Out
	}
	cfg.Sheet = input.Sheet

	// --- 1. Series ---
	cfg.Series = series.Options{
		DateColumn:  strings.TrimSpace(input.DateColumn),
		ValueColumn: strings.TrimSpace(input.ValueColumn),
		Bucket:      series.Bucket(strings.ToLower(input.Bucket)),
	}
	switch cfg.Series.Bucket {
	case "", series.BucketDay, series.BucketExact:
	default:
		return fmt.Errorf("invalid bucket '%s'. must be day or exact", input.Bucket)
	}

	// --- 2. Row limits ---
	if input.Rows <= 0 {
		return fmt.Errorf("rows must be greater than 0 (received %d)", input.Rows)
	}
	cfg.Grid = grid.Options{MaxRows: input.Rows, CellWidth: input.CellWidth}
	if input.MaxRows < 0 {
		return fmt.Errorf("max-rows cannot be negative (received %d)", input.MaxRows)
	}
	if input.Top < 0 {
		return fmt.Errorf("top cannot be negative (received %d)", input.Top)
	}
	cfg.Top = input.Top

	// --- 3. CSV ---
	delim := ','
	if input.Delimiter != "" {
		if utf8.RuneCountInString(input.Delimiter) != 1 {
			return fmt.Errorf("delimiter must be a single character (received %q)", input.Delimiter)
		}
		delim, _ = utf8.DecodeRuneInString(input.Delimiter)
		if delim == '"' || delim == '\n' || delim == '\r' {
			return fmt.Errorf("delimiter %q is not allowed", input.Delimiter)
		}
	}
	cfg.CSV = csvio.WriterOptions{Delimiter: delim, MaxRows: input.MaxRows, Quote: input.Quote}

	// --- 4. Chart size ---
	for _, d := range []struct {
		name string
		v    int
	}{{"width", input.Width}, {"height", input.Height}} {
		if d.v != 0 && (d.v < minChartSize || d.v > maxChartSize) {
			return fmt.Errorf("%s must be between %d and %d (received %d)", d.name, minChartSize, maxChartSize, d.v)
		}
	}
	cfg.Chart = chart.Options{Title: input.Title, Series: cfg.Series.ValueColumn, Width: input.Width, Height: input.Height}

	// --- 5. Logging and color ---
	if _, err := logging.ParseLevel(input.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(input.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format '%s'. must be text or json", input.LogFormat)
	}
	cfg.Log = logging.Config{Level: input.LogLevel, Format: strings.ToLower(input.LogFormat), File: input.LogFile}
	cfg.Color = strings.ToLower(input.Color)
	switch cfg.Color {
	case "", "auto", "yes", "no", "true", "false", "1", "0":
	default:
		return fmt.Errorf("invalid color '%s'. must be yes, no or auto", input.Color)
	}

	// --- 6. Sample ---
	if input.Command == "sample" {
		if input.Days <= 0 {
			return fmt.Errorf("days must be greater than 0 (received %d)", input.Days)
		}
		cfg.Days = input.Days
		cfg.Seed = input.Seed
		start, err := series.ParseDate(input.Start)
		if err != nil {
			return fmt.Errorf("invalid start '%s': %w", input.Start, err)
		}
		cfg.Start = start
	}
	return nil
}

func processOutput(cfg *Config, input *RawInput) error {
	valid, ok := validOutputs[input.Command]
	if !ok {
		return nil
	}
	out := input.Format
	if input.Command == "plot" {
		out = input.Output
	}
	out = strings.ToLower(out)
	if out == "" {
		out = OutText
	}
	if !valid[out] {
		return fmt.Errorf("invalid output format '%s' for %s. must be one of %s", out, input.Command, strings.Join(keys(valid), ", "))
	}
	cfg.Output = out
	return nil
}

func processExport(cfg *Config, input *RawInput) error {
	format := strings.ToLower(input.Format)
	if format == "" {
		format = formatFor(cfg.Dest)
	}
	switch format {
	case FormatCSV, FormatJSONL:
	case FormatXLSX, FormatParquet:
		if cfg.Dest == ioutils.Stdio || strings.HasSuffix(strings.ToLower(cfg.Dest), ".gz") {
			return fmt.Errorf("%s export needs a plain file destination (received %s)", format, cfg.Dest)
		}
	case "":
		return fmt.Errorf("cannot infer export format from %s; use --format csv, xlsx, jsonl or parquet", cfg.Dest)
	default:
		return fmt.Errorf("invalid export format '%s'. must be csv, xlsx, jsonl or parquet", format)
	}
	cfg.Format = format
	return nil
}

// formatFor infers an export format from a destination path. A ".gz"
// suffix is looked through and "-" means CSV on stdout.
func formatFor(dest string) string {
	if dest == ioutils.Stdio {
		return FormatCSV
	}
	name := strings.TrimSuffix(strings.ToLower(dest), ".gz")
	switch filepath.Ext(name) {
	case ".csv", ".txt":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	case ".jsonl", ".ndjson":
		return FormatJSONL
	case ".parquet", ".pq":
		return FormatParquet
	default:
		return ""
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for _, k := range []string{OutText, OutCSV, OutJSON, OutYAML, OutTOML} {
		if m[k] {
			out = append(out, k)
		}
	}
	return out
}
