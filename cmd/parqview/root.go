package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wdm0006/parqview/internal/logging"
	"github.com/wdm0006/parqview/pkg/series"
)

// Linker flags set at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "parqview",
		Short: "View, plot and export Parquet files.",
		Long: `parqview loads a Parquet file into memory, prints it as a grid, plots a
daily-averaged time series of one numeric column, and exports the table to
CSV, Excel, JSON Lines or Parquet. FILE may be gzip-compressed (.gz) or "-"
for stdin.

Configuration is read from flags, PARQVIEW_* environment variables and an
optional .parqview.yaml in the current or home directory.`,
		Version:            version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to config file")
	pf.String("log-level", "warn", "Log level: debug or info or warn or error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("log-file", "", "Also append logs to this file")
	pf.String("color", "auto", "Colored status lines: yes or no or auto")
	pf.String("date-column", series.DefaultDateColumn, "Column holding dates")
	pf.String("value-column", series.DefaultValueColumn, "Numeric column to average and plot")
	pf.String("bucket", string(series.BucketDay), "Grouping of dates: day or exact")
	pf.Bool("strict", false, "Fail when columns of a row group decode to different lengths")

	root.AddCommand(
		newViewCmd(),
		newPlotCmd(),
		newExportCmd(),
		newSchemaCmd(),
		newDescribeCmd(),
		newSampleCmd(),
		newVersionCmd(),
	)
	return root
}

// newViper builds the layered config source for one invocation: defaults,
// config file, PARQVIEW_* env and the command's flags.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix("PARQVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".parqview")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetDefault("date-column", series.DefaultDateColumn)
	v.SetDefault("value-column", series.DefaultValueColumn)
	v.SetDefault("bucket", string(series.BucketDay))
	v.SetDefault("max-rows", DefaultMaxRows)
	v.SetDefault("rows", DefaultRows)
	v.SetDefault("log-level", "warn")
	v.SetDefault("color", "auto")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// setup resolves and validates the configuration of cmd into cfg and
// installs the logger.
func setup(cmd *cobra.Command, args []string, cfg *Config) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	input := &RawInput{}
	if err := v.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	input.Command = cmd.Name()
	input.Args = args
	if err := ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	cfg.Log.Output = cmd.ErrOrStderr()
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	cfg.closeLog = closeLog
	applyColor(cfg.Color)
	logger.Debug("config resolved",
		"command", input.Command,
		"config_file", v.ConfigFileUsed(),
		"input", cfg.Input,
		"dest", cfg.Dest)
	return nil
}

// command wires setup and cleanup around run.
func command(cmd *cobra.Command, run func(cmd *cobra.Command, cfg *Config) error) *cobra.Command {
	cfg := &Config{}
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return setup(cmd, args, cfg)
	}
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		defer cfg.close()
		return run(cmd, cfg)
	}
	return cmd
}
