package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wdm0006/parqview/pkg/table"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errb bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errb)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errb.String(), err
}

// sampleFile writes a three-day synthetic dataset and returns its path.
func sampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "era5_wind.parquet")
	_, _, err := run(t, "sample", path, "--days", "3", "--seed", "5")
	require.NoError(t, err)
	return path
}

func TestView(t *testing.T) {
	path := sampleFile(t)
	png := filepath.Join(t.TempDir(), "wind.png")
	out, _, err := run(t, "view", path, "--rows", "5", "--chart-out", png)
	require.NoError(t, err)
	assert.Contains(t, out, "showing 5 of 12 rows")
	assert.Contains(t, out, "Daily u10 Values (2024-01-01 .. 2024-01-03)")

	b, err := os.ReadFile(png)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")))
}

func TestViewWithoutChartColumns(t *testing.T) {
	path := sampleFile(t)
	out, _, err := run(t, "view", path, "--value-column", "gust")
	require.NoError(t, err)
	assert.Contains(t, out, "showing 12 of 12 rows")
	assert.NotContains(t, out, "Daily")
}

func TestPlotOutputs(t *testing.T) {
	path := sampleFile(t)

	out, _, err := run(t, "plot", path, "--output", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,value,count", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-01,"))
	assert.True(t, strings.HasSuffix(lines[3], ",4"))

	out, _, err = run(t, "plot", path, "--output", "json")
	require.NoError(t, err)
	var pts []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &pts))
	assert.Len(t, pts, 3)

	out, _, err = run(t, "plot", path, "--value-column", "v10")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily v10 Values")

	png := filepath.Join(t.TempDir(), "plot.png")
	_, stderr, err := run(t, "plot", path, "--out", png, "--width", "400", "--height", "300")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote 3 points")
	assert.FileExists(t, png)
}

func TestPlotMissingColumn(t *testing.T) {
	_, _, err := run(t, "plot", sampleFile(t), "--value-column", "gust")
	assert.ErrorIs(t, err, table.ErrColumn)
}

func TestExportFormats(t *testing.T) {
	path := sampleFile(t)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "wind.csv")
	_, stderr, err := run(t, "export", path, csvPath, "--max-rows", "5")
	require.NoError(t, err)
	assert.Contains(t, stderr, "exported 5 of 12 rows")
	b, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Equal(t, "date,station,u10,v10,t2m", lines[0])
	assert.Len(t, lines, 6)

	xlsxPath := filepath.Join(dir, "wind.xlsx")
	_, _, err = run(t, "export", path, xlsxPath, "--sheet", "winds")
	require.NoError(t, err)
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	rows, err := f.GetRows("winds")
	require.NoError(t, err)
	_ = f.Close()
	assert.Len(t, rows, 13)
	assert.Equal(t, strings.Split(lines[1], ","), rows[1][:len(strings.Split(lines[1], ","))])

	jsonlPath := filepath.Join(dir, "wind.jsonl")
	_, _, err = run(t, "export", path, jsonlPath)
	require.NoError(t, err)
	b, err = os.ReadFile(jsonlPath)
	require.NoError(t, err)
	assert.Equal(t, 12, strings.Count(string(b), "\n"))

	pqPath := filepath.Join(dir, "copy.pq")
	_, _, err = run(t, "export", path, pqPath)
	require.NoError(t, err)
	out, _, err := run(t, "schema", pqPath, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"rows": 12`)
}

func TestExportSheetNamedForDataset(t *testing.T) {
	xlsxPath := filepath.Join(t.TempDir(), "out.xlsx")
	_, _, err := run(t, "export", sampleFile(t), xlsxPath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"era5_wind"}, f.GetSheetList())
}

func TestExportToStdout(t *testing.T) {
	out, _, err := run(t, "export", sampleFile(t), "-", "--max-rows", "2", "--delimiter", ";")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date;station;u10;v10;t2m", lines[0])
}

func TestSchemaFormats(t *testing.T) {
	path := sampleFile(t)
	for format, want := range map[string]string{
		"text": "u10",
		"json": `"name": "u10"`,
		"yaml": "name: u10",
		"toml": "[[columns]]",
	} {
		out, _, err := run(t, "schema", path, "--format", format)
		require.NoError(t, err, format)
		assert.Contains(t, out, want, format)
	}
}

func TestDescribe(t *testing.T) {
	path := sampleFile(t)
	out, _, err := run(t, "describe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Profile Summary (12 rows)")
	assert.Contains(t, out, "- u10 (any): count=12 nulls=0")

	out, _, err = run(t, "describe", path, "--format", "json", "--top", "2")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, float64(12), doc["rows"])
}

func TestLoadErrors(t *testing.T) {
	_, _, err := run(t, "view", filepath.Join(t.TempDir(), "missing.parquet"))
	assert.ErrorIs(t, err, table.ErrIO)

	bogus := filepath.Join(t.TempDir(), "bogus.parquet")
	require.NoError(t, os.WriteFile(bogus, []byte("date,u10\n"), 0o644))
	_, _, err = run(t, "view", bogus)
	assert.ErrorIs(t, err, table.ErrFormat)
}

func TestConfigFile(t *testing.T) {
	path := sampleFile(t)
	cfgPath := filepath.Join(t.TempDir(), "parqview.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("value-column: t2m\noutput: csv\n"), 0o644))
	out, _, err := run(t, "plot", path, "--config", cfgPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "date,value,count\n"))
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "parqview CLI")
}
