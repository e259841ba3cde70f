// Package golearn converts between tables and
// github.com/sjwhitworth/golearn/base DenseInstances.
package golearn

import (
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"

	"github.com/wdm0006/parqview/pkg/table"
)

// ToDenseInstances converts t into golearn DenseInstances. Numeric and bool
// columns, and any-kind columns holding only numbers, become float
// attributes with nulls stored as NaN. Every other column becomes a
// categorical attribute over the cell text, with nulls stored as "".
// A non-empty classColumn is registered as the class attribute.
func ToDenseInstances(t *table.Table, classColumn string) (*base.DenseInstances, error) {
	cols := t.Schema().Columns
	attrs := make([]base.Attribute, len(cols))
	numeric := make([]bool, len(cols))
	for i, cs := range cols {
		numeric[i] = isNumeric(t, i)
		if numeric[i] {
			attrs[i] = base.NewFloatAttribute(cs.Name)
		} else {
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(t.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < t.Rows(); r++ {
		for c := range cols {
			v := t.Value(r, c)
			if numeric[c] {
				f := math.NaN()
				if v != nil {
					f, _ = toFloat(v)
				}
				inst.Set(specs[c], r, base.PackFloatToBytes(f))
				continue
			}
			inst.Set(specs[c], r, attrs[c].GetSysValFromString(table.FormatValue(v)))
		}
	}
	if classColumn != "" {
		i := t.ColumnIndex(classColumn)
		if i < 0 {
			return nil, table.Errorf(table.ErrColumn, "golearn", "", "class column %q not found", classColumn)
		}
		if err := inst.AddClassAttribute(attrs[i]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a table. Float
// attributes load as nullable float columns (NaN is null) and the rest as
// nullable string columns ("" is null).
func FromDenseInstances(inst *base.DenseInstances) (*table.Table, error) {
	attrs := inst.AllAttributes()
	schema := table.Schema{Columns: make([]table.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := table.KindString
		if _, ok := a.(*base.FloatAttribute); ok {
			k = table.KindFloat
		}
		schema.Columns[i] = table.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", a.GetName(), err)
		}
		specs[i] = spec
	}
	t := table.New(schema)
	_, nrows := inst.Size()
	t.Grow(nrows)
	for r := 0; r < nrows; r++ {
		for c, cs := range schema.Columns {
			raw := inst.Get(specs[c], r)
			var v any
			if cs.Type == table.KindFloat {
				if f := base.UnpackBytesToFloat(raw); !math.IsNaN(f) {
					v = f
				}
			} else if s := attrs[c].GetStringFromSysVal(raw); s != "" {
				v = s
			}
			if err := t.SetValue(r, c, v); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func isNumeric(t *table.Table, c int) bool {
	switch t.Column(c).Kind() {
	case table.KindFloat, table.KindInt, table.KindBool:
		return true
	case table.KindAny:
		seen := false
		for r := 0; r < t.Rows(); r++ {
			v := t.Value(r, c)
			if v == nil {
				continue
			}
			if _, ok := toFloat(v); !ok {
				return false
			}
			seen = true
		}
		return seen
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
