package main

import (
	"encoding/json"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/parqview/pkg/grid"
	"github.com/wdm0006/parqview/pkg/table"
)

type schemaDoc struct {
	File    string      `json:"file" yaml:"file" toml:"file"`
	Rows    int         `json:"rows" yaml:"rows" toml:"rows"`
	Columns []columnDoc `json:"columns" yaml:"columns" toml:"columns"`
}

type columnDoc struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Kind     string `json:"kind" yaml:"kind" toml:"kind"`
	Nullable bool   `json:"nullable" yaml:"nullable" toml:"nullable"`
}

func newSchemaDoc(file string, t *table.Table) schemaDoc {
	doc := schemaDoc{File: file, Rows: t.Rows(), Columns: make([]columnDoc, 0, t.Cols())}
	for _, cs := range t.Schema().Columns {
		doc.Columns = append(doc.Columns, columnDoc{Name: cs.Name, Kind: cs.Type.String(), Nullable: cs.Nullable})
	}
	return doc
}

func newSchemaCmd() *cobra.Command {
	cmd := command(&cobra.Command{
		Use:   "schema FILE",
		Short: "Print the column schema of a Parquet file.",
		Long: `Load a Parquet file and print one entry per column: its name, the kind it
loads as, and whether it may hold nulls.

Examples:
  parqview schema era5_wind.parquet
  parqview schema era5_wind.parquet --format yaml`,
		Args: cobra.ExactArgs(1),
	}, runSchema)
	cmd.Flags().String("format", OutText, "Output format: text or json or yaml or toml")
	return cmd
}

func runSchema(cmd *cobra.Command, cfg *Config) error {
	t, err := load(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	return writeSchema(cmd.OutOrStdout(), cfg.Output, newSchemaDoc(cfg.Input, t), t.Schema())
}

func writeSchema(w io.Writer, format string, doc schemaDoc, s table.Schema) error {
	switch format {
	case OutJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case OutYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case OutTOML:
		return toml.NewEncoder(w).Encode(doc)
	default:
		if _, err := fmt.Fprintf(w, "%s: %d rows\n", doc.File, doc.Rows); err != nil {
			return err
		}
		return grid.Schema(w, s)
	}
}
