package fill

import (
	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/schema"
	"github.com/msbench/msbench/pkg/synth"
	"github.com/msbench/msbench/pkg/table"
)

// StreamRows returns the number of rows one streamed write covers for
// the given granularity. Column granularity has no smaller reusable
// unit; callers fall back to a full non-streaming fill for it.
func StreamRows(dims schema.Dimensions, g Granularity) (int, bool) {
	switch g {
	case Cell:
		return 1, true
	case Cells:
		return dims.NBaselines, true
	default:
		return 0, false
	}
}

// ExecuteStream fills the table by writing the same minimal buffer into
// every row or block. No per-row values are computed or sliced from a
// full dataset, isolating the backend's write-call overhead. The
// resulting table contents do not match the synthesized dataset.
func ExecuteStream(tab *table.Table, st *synth.Stream, o Order, g Granularity) error {
	if err := Check(o, g); err != nil {
		return err
	}
	if g == Column {
		return errors.New(errors.ErrorTypeConfig,
			"streaming requires cell or cells granularity: a whole-column write has no reusable unit")
	}

	unit := 1
	nunits := st.Dims.NRows()
	if g == Cells {
		unit = st.Dims.NBaselines
		nunits = st.Dims.NTimes
	}
	if st.Rows != unit {
		return errors.Newf(errors.ErrorTypeConfig,
			"stream buffer covers %d row(s), granularity %s needs %d", st.Rows, g, unit)
	}

	cols, err := open(tab)
	if err != nil {
		return err
	}

	put := func(u int, writeTime, writeUVW, writeData bool) error {
		if g == Cell {
			if writeTime {
				if err := cols.time.Put(u, st.Times[0]); err != nil {
					return err
				}
			}
			if writeUVW {
				if err := cols.uvw.Put(u, st.UVW); err != nil {
					return err
				}
			}
			if writeData {
				if err := cols.data.Put(u, st.Data); err != nil {
					return err
				}
			}
			return nil
		}
		rows := table.RowRange(u*unit, unit)
		if writeTime {
			if err := cols.time.PutRows(rows, st.Times); err != nil {
				return err
			}
		}
		if writeUVW {
			if err := cols.uvw.PutRows(rows, st.UVW); err != nil {
				return err
			}
		}
		if writeData {
			if err := cols.data.PutRows(rows, st.Data); err != nil {
				return err
			}
		}
		return nil
	}

	writeTime := o == TimeOnly || o == ColumnWise || o == RowWise
	writeUVW := o == UVWOnly || o == ColumnWise || o == RowWise
	writeData := o == DataOnly || o == ColumnWise || o == RowWise

	if o == RowWise {
		for u := 0; u < nunits; u++ {
			if err := put(u, true, true, true); err != nil {
				return err
			}
		}
		return nil
	}

	// Column-at-a-time orders: finish each selected column across all
	// units before starting the next.
	if writeTime {
		for u := 0; u < nunits; u++ {
			if err := put(u, true, false, false); err != nil {
				return err
			}
		}
	}
	if writeUVW {
		for u := 0; u < nunits; u++ {
			if err := put(u, false, true, false); err != nil {
				return err
			}
		}
	}
	if writeData {
		for u := 0; u < nunits; u++ {
			if err := put(u, false, false, true); err != nil {
				return err
			}
		}
	}
	return nil
}
