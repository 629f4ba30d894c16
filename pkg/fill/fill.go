// Package fill drives the table backend through a chosen traversal
// order and write granularity. Every strategy writes the same logical
// content; only the shape and order of the put calls differ.
package fill

import (
	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/schema"
	"github.com/msbench/msbench/pkg/synth"
	"github.com/msbench/msbench/pkg/table"
)

// Order selects which columns are written and in what interleaving.
type Order int

const (
	// TimeOnly writes just the TIME column.
	TimeOnly Order = iota
	// UVWOnly writes just the UVW column.
	UVWOnly
	// DataOnly writes just the DATA column.
	DataOnly
	// ColumnWise writes TIME fully, then UVW fully, then DATA fully.
	ColumnWise
	// RowWise writes TIME, UVW and DATA for each row or block before
	// advancing to the next one.
	RowWise
)

var orderNames = map[Order]string{
	TimeOnly:   "time",
	UVWOnly:    "uvw",
	DataOnly:   "data",
	ColumnWise: "all",
	RowWise:    "rows",
}

// Orders lists the order names accepted by ParseOrder.
func Orders() []string {
	return []string{"time", "uvw", "data", "all", "rows"}
}

func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return "unknown"
}

// Columns lists the table columns the order writes, in write order.
func (o Order) Columns() []string {
	switch o {
	case TimeOnly:
		return []string{schema.ColTime}
	case UVWOnly:
		return []string{schema.ColUVW}
	case DataOnly:
		return []string{schema.ColData}
	default:
		return []string{schema.ColTime, schema.ColUVW, schema.ColData}
	}
}

// ParseOrder converts an order name to its variant.
func ParseOrder(s string) (Order, error) {
	for o, name := range orderNames {
		if s == name {
			return o, nil
		}
	}
	return 0, errors.Newf(errors.ErrorTypeConfig, "unknown traversal order %q", s)
}

// Granularity is the unit size of a single write call.
type Granularity int

const (
	// Cell writes one row at a time.
	Cell Granularity = iota
	// Cells writes one timestep block of NBaselines rows at a time.
	Cells
	// Column writes the entire column in one call.
	Column
)

var granularityNames = map[Granularity]string{
	Cell:   "cell",
	Cells:  "cells",
	Column: "column",
}

// Granularities lists the granularity names accepted by ParseGranularity.
func Granularities() []string {
	return []string{"cell", "cells", "column"}
}

func (g Granularity) String() string {
	if s, ok := granularityNames[g]; ok {
		return s
	}
	return "unknown"
}

// ParseGranularity converts a granularity name to its variant.
func ParseGranularity(s string) (Granularity, error) {
	for g, name := range granularityNames {
		if s == name {
			return g, nil
		}
	}
	return 0, errors.Newf(errors.ErrorTypeConfig, "unknown write granularity %q", s)
}

// Check rejects illegal order/granularity combinations. A whole-column
// write cannot be row-interleaved.
func Check(o Order, g Granularity) error {
	if o == RowWise && g == Column {
		return errors.New(errors.ErrorTypeConfig,
			"row-wise traversal cannot use column granularity: a whole-column write has no per-row unit")
	}
	return nil
}

// columns bundles the opened backend columns a fill needs.
type columns struct {
	time *table.ScalarColumn
	uvw  *table.ArrayColumn[float32]
	data *table.ArrayColumn[complex64]
}

func open(tab *table.Table) (*columns, error) {
	tc, err := tab.Scalar(schema.ColTime)
	if err != nil {
		return nil, err
	}
	uc, err := table.ArrayOf[float32](tab, schema.ColUVW)
	if err != nil {
		return nil, err
	}
	dc, err := table.ArrayOf[complex64](tab, schema.ColData)
	if err != nil {
		return nil, err
	}
	return &columns{time: tc, uvw: uc, data: dc}, nil
}

// Execute fills the table from the dataset using the given traversal
// order and write granularity. It fails only on an illegal combination
// or a backend error; nothing is written in the illegal case.
func Execute(tab *table.Table, ds *synth.Dataset, o Order, g Granularity) error {
	if err := Check(o, g); err != nil {
		return err
	}
	cols, err := open(tab)
	if err != nil {
		return err
	}

	switch o {
	case TimeOnly:
		return fillTime(cols, ds, g)
	case UVWOnly:
		return fillUVW(cols, ds, g)
	case DataOnly:
		return fillData(cols, ds, g)
	case ColumnWise:
		if err := fillTime(cols, ds, g); err != nil {
			return err
		}
		if err := fillUVW(cols, ds, g); err != nil {
			return err
		}
		return fillData(cols, ds, g)
	case RowWise:
		return fillRowWise(cols, ds, g)
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown traversal order %d", o)
	}
}

func fillTime(cols *columns, ds *synth.Dataset, g Granularity) error {
	dims := ds.Dims
	switch g {
	case Cell:
		for i := 0; i < dims.NRows(); i++ {
			if err := cols.time.Put(i, ds.TimeRow(i)); err != nil {
				return err
			}
		}
	case Cells:
		for t := 0; t < dims.NTimes; t++ {
			rows := table.RowRange(t*dims.NBaselines, dims.NBaselines)
			if err := cols.time.PutRows(rows, ds.TimeBlock(t)); err != nil {
				return err
			}
		}
	case Column:
		return cols.time.PutColumn(ds.Times)
	}
	return nil
}

func fillUVW(cols *columns, ds *synth.Dataset, g Granularity) error {
	dims := ds.Dims
	switch g {
	case Cell:
		for i := 0; i < dims.NRows(); i++ {
			if err := cols.uvw.Put(i, ds.UVWRow(i)); err != nil {
				return err
			}
		}
	case Cells:
		for t := 0; t < dims.NTimes; t++ {
			rows := table.RowRange(t*dims.NBaselines, dims.NBaselines)
			if err := cols.uvw.PutRows(rows, ds.UVWBlock(t)); err != nil {
				return err
			}
		}
	case Column:
		return cols.uvw.PutColumn(ds.UVW)
	}
	return nil
}

func fillData(cols *columns, ds *synth.Dataset, g Granularity) error {
	dims := ds.Dims
	switch g {
	case Cell:
		for i := 0; i < dims.NRows(); i++ {
			if err := cols.data.Put(i, ds.DataRow(i)); err != nil {
				return err
			}
		}
	case Cells:
		for t := 0; t < dims.NTimes; t++ {
			rows := table.RowRange(t*dims.NBaselines, dims.NBaselines)
			if err := cols.data.PutRows(rows, ds.DataBlock(t)); err != nil {
				return err
			}
		}
	case Column:
		return cols.data.PutColumn(ds.Data)
	}
	return nil
}

// fillRowWise writes all three columns for each unit before advancing.
// The per-unit extraction is identical to the column-wise path, so the
// final table contents match a ColumnWise fill of the same granularity.
func fillRowWise(cols *columns, ds *synth.Dataset, g Granularity) error {
	dims := ds.Dims
	switch g {
	case Cell:
		for i := 0; i < dims.NRows(); i++ {
			if err := cols.time.Put(i, ds.TimeRow(i)); err != nil {
				return err
			}
			if err := cols.uvw.Put(i, ds.UVWRow(i)); err != nil {
				return err
			}
			if err := cols.data.Put(i, ds.DataRow(i)); err != nil {
				return err
			}
		}
	case Cells:
		for t := 0; t < dims.NTimes; t++ {
			rows := table.RowRange(t*dims.NBaselines, dims.NBaselines)
			if err := cols.time.PutRows(rows, ds.TimeBlock(t)); err != nil {
				return err
			}
			if err := cols.uvw.PutRows(rows, ds.UVWBlock(t)); err != nil {
				return err
			}
			if err := cols.data.PutRows(rows, ds.DataBlock(t)); err != nil {
				return err
			}
		}
	default:
		return Check(RowWise, g)
	}
	return nil
}
