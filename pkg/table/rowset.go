package table

import (
	"github.com/msbench/msbench/pkg/errors"
)

// Range is a contiguous run of rows.
type Range struct {
	Start int
	Len   int
}

// RowSet addresses an ordered set of rows for batched puts. The
// benchmark only ever supplies a single contiguous range (one timestep
// block), but the backend accepts disjoint ranges as well.
type RowSet struct {
	ranges []Range
}

// SingleRow returns a row set covering exactly one row.
func SingleRow(row int) RowSet {
	return RowSet{ranges: []Range{{Start: row, Len: 1}}}
}

// RowRange returns a row set covering n contiguous rows starting at start.
func RowRange(start, n int) RowSet {
	return RowSet{ranges: []Range{{Start: start, Len: n}}}
}

// Add appends another contiguous range to the set.
func (rs RowSet) Add(start, n int) RowSet {
	rs.ranges = append(append([]Range(nil), rs.ranges...), Range{Start: start, Len: n})
	return rs
}

// NumRows returns the total number of rows addressed by the set.
func (rs RowSet) NumRows() int {
	n := 0
	for _, r := range rs.ranges {
		n += r.Len
	}
	return n
}

// Ranges returns the ranges in order.
func (rs RowSet) Ranges() []Range {
	return rs.ranges
}

func (rs RowSet) validate(t *Table, col string) error {
	if len(rs.ranges) == 0 {
		return errors.New(errors.ErrorTypeBackend, "empty row set").
			WithDetail("table", t.path).
			WithDetail("column", col)
	}
	for _, r := range rs.ranges {
		if r.Len < 1 || r.Start < 0 || r.Start+r.Len > t.nrows {
			return errors.Newf(errors.ErrorTypeBackend,
				"row range [%d, %d) out of bounds [0, %d)", r.Start, r.Start+r.Len, t.nrows).
				WithDetail("table", t.path).
				WithDetail("column", col)
		}
	}
	return nil
}
