// Package synth generates reanalysis-like wind tables for demos and
// benchmarks.
package synth

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/wdm0006/parqview/pkg/table"
)

// SamplesPerDay is the number of rows generated per day, one every six hours.
const SamplesPerDay = 4

var stations = []string{"north", "south", "east", "west"}

// Schema is the layout of generated tables.
func Schema() table.Schema {
	return table.Schema{Columns: []table.ColumnSchema{
		{Name: "date", Type: table.KindTime},
		{Name: "station", Type: table.KindString},
		{Name: "u10", Type: table.KindFloat},
		{Name: "v10", Type: table.KindFloat},
		{Name: "t2m", Type: table.KindFloat, Nullable: true},
	}}
}

// Generate builds days*SamplesPerDay rows starting at start (truncated to
// the day, in UTC). The same seed always gives the same table. Every 17th
// t2m reading is missing.
func Generate(days int, seed int64, start time.Time) *table.Table {
	rnd := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	start = start.UTC().Truncate(24 * time.Hour)
	t := table.New(Schema())
	n := days * SamplesPerDay
	t.Grow(n)
	step := 24 * time.Hour / SamplesPerDay
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i) * step)
		day := float64(i) / SamplesPerDay
		// seasonal drift plus a diurnal cycle and noise
		u := 4*math.Sin(2*math.Pi*day/30) + 1.5*math.Sin(2*math.Pi*day) + rnd.NormFloat64()
		v := 2*math.Cos(2*math.Pi*day/30) + rnd.NormFloat64()*0.8
		_ = t.SetValue(i, 0, at)
		_ = t.SetValue(i, 1, stations[i%len(stations)])
		_ = t.SetValue(i, 2, round(u))
		_ = t.SetValue(i, 3, round(v))
		if i%17 != 16 {
			_ = t.SetValue(i, 4, round(283.15+6*math.Sin(2*math.Pi*(day-0.25))+rnd.NormFloat64()))
		}
	}
	return t
}

func round(f float64) float64 { return math.Round(f*1000) / 1000 }
