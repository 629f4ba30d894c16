// Package validate checks that a filled table holds exactly the values
// the synthesizer produced. Comparison is exact: the generator's
// formulas introduce no rounding of their own, so any nonzero
// difference is a write-path bug.
package validate

import (
	"math"
	"math/cmplx"

	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/schema"
	"github.com/msbench/msbench/pkg/synth"
	"github.com/msbench/msbench/pkg/table"
)

// Validate compares the table against the dataset and returns the first
// discrepancy found. With no explicit columns all three are checked;
// naming columns restricts the check to just those, so a single-column
// fill validates only what it wrote. All declared cell shapes are
// checked before any value comparison runs. Validation is exhaustive,
// not sampled, and performs no repair.
func Validate(tab *table.Table, ds *synth.Dataset, cols ...string) error {
	if tab.NumRows() != ds.Dims.NRows() {
		return errors.Newf(errors.ErrorTypeShape,
			"table has %d rows, dataset has %d", tab.NumRows(), ds.Dims.NRows()).
			WithDetail("table", tab.Name())
	}

	if len(cols) == 0 {
		cols = []string{schema.ColTime, schema.ColUVW, schema.ColData}
	}

	var checks []func() error
	for _, name := range cols {
		switch name {
		case schema.ColTime:
			col, err := tab.Scalar(schema.ColTime)
			if err != nil {
				return err
			}
			checks = append(checks, func() error { return validateTime(tab.Name(), col, ds) })
		case schema.ColUVW:
			col, err := table.ArrayOf[float32](tab, schema.ColUVW)
			if err != nil {
				return err
			}
			if err := checkShape(tab.Name(), schema.ColUVW, col.CellShape(), []int{schema.UVWLen}); err != nil {
				return err
			}
			checks = append(checks, func() error { return validateUVW(tab.Name(), col, ds) })
		case schema.ColData:
			col, err := table.ArrayOf[complex64](tab, schema.ColData)
			if err != nil {
				return err
			}
			wantShape := []int{ds.Dims.NPolarizations, ds.Dims.NChannels}
			if err := checkShape(tab.Name(), schema.ColData, col.CellShape(), wantShape); err != nil {
				return err
			}
			checks = append(checks, func() error { return validateData(tab.Name(), col, ds) })
		default:
			return errors.Newf(errors.ErrorTypeConfig, "unknown column %q", name)
		}
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func validateTime(tableName string, col *table.ScalarColumn, ds *synth.Dataset) error {
	got, err := col.GetColumn()
	if err != nil {
		return err
	}
	for i, want := range ds.Times {
		if got[i] != want {
			return mismatch(tableName, schema.ColTime, i, 0, got[i], want, math.Abs(got[i]-want))
		}
	}
	return nil
}

func validateUVW(tableName string, col *table.ArrayColumn[float32], ds *synth.Dataset) error {
	for i := 0; i < ds.Dims.NRows(); i++ {
		got, err := col.Get(i)
		if err != nil {
			return err
		}
		want := ds.UVWRow(i)
		for j := range want {
			if got[j] != want[j] {
				return mismatch(tableName, schema.ColUVW, i, j, got[j], want[j],
					math.Abs(float64(got[j])-float64(want[j])))
			}
		}
	}
	return nil
}

func validateData(tableName string, col *table.ArrayColumn[complex64], ds *synth.Dataset) error {
	for i := 0; i < ds.Dims.NRows(); i++ {
		got, err := col.Get(i)
		if err != nil {
			return err
		}
		want := ds.DataRow(i)
		for j := range want {
			if got[j] != want[j] {
				return mismatch(tableName, schema.ColData, i, j, got[j], want[j],
					cmplx.Abs(complex128(got[j])-complex128(want[j])))
			}
		}
	}
	return nil
}

func checkShape(tableName, col string, got, want []int) error {
	if len(got) != len(want) {
		return shapeError(tableName, col, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			return shapeError(tableName, col, got, want)
		}
	}
	return nil
}

func shapeError(tableName, col string, got, want []int) error {
	return errors.Newf(errors.ErrorTypeShape,
		"column %s cell shape %v does not match expected %v", col, got, want).
		WithDetail("table", tableName).
		WithDetail("column", col)
}

func mismatch(tableName, col string, row, idx int, got, want interface{}, diff float64) error {
	return errors.Newf(errors.ErrorTypeMismatch,
		"column %s row %d index %d: got %v, want %v (abs diff %g)", col, row, idx, got, want, diff).
		WithDetail("table", tableName).
		WithDetail("column", col).
		WithDetail("row", row).
		WithDetail("index", idx).
		WithDetail("actual", got).
		WithDetail("expected", want)
}
