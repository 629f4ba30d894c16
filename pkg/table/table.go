// Package table implements the columnar table backend the benchmark
// writes against: typed scalar and fixed-shape array columns with
// single-row, batched and whole-column puts, backed by dense in-memory
// buffers and persisted as Arrow IPC files.
package table

import (
	"os"

	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/schema"
)

// Element constrains the element types array columns support.
type Element interface {
	~float32 | ~complex64
}

// column is the storage for a single column. data is one of []float64,
// []float32 or []complex64, sized nrows*cellLen.
type column struct {
	desc    schema.ColumnDescriptor
	cellLen int
	data    interface{}
}

// Table is a columnar table with a fixed row count and a fixed set of
// columns. It is exclusively owned by one benchmark run.
type Table struct {
	path  string
	nrows int
	descs []schema.ColumnDescriptor
	cols  map[string]*column
}

// Create creates a new table at the given path. Any pre-existing table
// at the same location is deleted first. The row count and column set
// are fixed for the table's lifetime.
func Create(path string, descs []schema.ColumnDescriptor, nrows int) (*Table, error) {
	if path == "" {
		return nil, errors.New(errors.ErrorTypeBackend, "table path must not be empty")
	}
	if nrows < 1 {
		return nil, errors.Newf(errors.ErrorTypeBackend, "row count must be positive, got %d", nrows).
			WithDetail("table", path)
	}
	if len(descs) == 0 {
		return nil, errors.New(errors.ErrorTypeBackend, "at least one column descriptor is required").
			WithDetail("table", path)
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeBackend, "failed to remove pre-existing table").
			WithDetail("table", path)
	}

	t := &Table{
		path:  path,
		nrows: nrows,
		descs: append([]schema.ColumnDescriptor(nil), descs...),
		cols:  make(map[string]*column, len(descs)),
	}

	for _, desc := range descs {
		if desc.Name == "" {
			return nil, errors.New(errors.ErrorTypeBackend, "column name must not be empty").
				WithDetail("table", path)
		}
		if _, exists := t.cols[desc.Name]; exists {
			return nil, errors.Newf(errors.ErrorTypeBackend, "duplicate column %q", desc.Name).
				WithDetail("table", path)
		}

		col := &column{desc: desc, cellLen: desc.CellLen()}
		switch desc.Kind {
		case schema.KindScalar:
			if desc.Element != schema.Float64 {
				return nil, errors.Newf(errors.ErrorTypeBackend,
					"scalar column %q must be float64, got %s", desc.Name, desc.Element).
					WithDetail("table", path)
			}
			col.data = make([]float64, nrows)
		case schema.KindArray:
			if col.cellLen < 1 {
				return nil, errors.Newf(errors.ErrorTypeBackend,
					"array column %q has empty cell shape", desc.Name).
					WithDetail("table", path)
			}
			switch desc.Element {
			case schema.Float32:
				col.data = make([]float32, nrows*col.cellLen)
			case schema.Complex64:
				col.data = make([]complex64, nrows*col.cellLen)
			default:
				return nil, errors.Newf(errors.ErrorTypeBackend,
					"array column %q has unsupported element type %s", desc.Name, desc.Element).
					WithDetail("table", path)
			}
		default:
			return nil, errors.Newf(errors.ErrorTypeBackend,
				"column %q has unknown kind", desc.Name).
				WithDetail("table", path)
		}

		t.cols[desc.Name] = col
	}

	return t, nil
}

// Name returns the table's filesystem path.
func (t *Table) Name() string {
	return t.path
}

// NumRows returns the table's fixed row count.
func (t *Table) NumRows() int {
	return t.nrows
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.cols)
}

// Descriptors returns the column descriptors in creation order.
func (t *Table) Descriptors() []schema.ColumnDescriptor {
	return t.descs
}

func (t *Table) lookup(name string) (*column, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeBackend, "no such column %q", name).
			WithDetail("table", t.path)
	}
	return col, nil
}

func (t *Table) checkRow(col string, row int) error {
	if row < 0 || row >= t.nrows {
		return errors.Newf(errors.ErrorTypeBackend, "row %d out of range [0, %d)", row, t.nrows).
			WithDetail("table", t.path).
			WithDetail("column", col).
			WithDetail("row", row)
	}
	return nil
}

// ScalarColumn gives typed access to a float64 scalar column.
type ScalarColumn struct {
	t    *Table
	col  *column
	vals []float64
}

// Scalar opens the named scalar column.
func (t *Table) Scalar(name string) (*ScalarColumn, error) {
	col, err := t.lookup(name)
	if err != nil {
		return nil, err
	}
	vals, ok := col.data.([]float64)
	if !ok || col.desc.Kind != schema.KindScalar {
		return nil, errors.Newf(errors.ErrorTypeBackend, "column %q is not a scalar column", name).
			WithDetail("table", t.path)
	}
	return &ScalarColumn{t: t, col: col, vals: vals}, nil
}

// Put writes a single value at the given row.
func (c *ScalarColumn) Put(row int, v float64) error {
	if err := c.t.checkRow(c.col.desc.Name, row); err != nil {
		return err
	}
	c.vals[row] = v
	return nil
}

// PutRows writes one value per row of the given row set. len(vals) must
// equal rows.NumRows().
func (c *ScalarColumn) PutRows(rows RowSet, vals []float64) error {
	if err := rows.validate(c.t, c.col.desc.Name); err != nil {
		return err
	}
	if len(vals) != rows.NumRows() {
		return errors.Newf(errors.ErrorTypeBackend,
			"value count %d does not match row set size %d", len(vals), rows.NumRows()).
			WithDetail("table", c.t.path).
			WithDetail("column", c.col.desc.Name)
	}
	off := 0
	for _, r := range rows.ranges {
		copy(c.vals[r.Start:r.Start+r.Len], vals[off:off+r.Len])
		off += r.Len
	}
	return nil
}

// PutColumn writes the entire column in one call. len(vals) must equal
// the table's row count.
func (c *ScalarColumn) PutColumn(vals []float64) error {
	if len(vals) != c.t.nrows {
		return errors.Newf(errors.ErrorTypeBackend,
			"value count %d does not match row count %d", len(vals), c.t.nrows).
			WithDetail("table", c.t.path).
			WithDetail("column", c.col.desc.Name)
	}
	copy(c.vals, vals)
	return nil
}

// Get reads the value at the given row.
func (c *ScalarColumn) Get(row int) (float64, error) {
	if err := c.t.checkRow(c.col.desc.Name, row); err != nil {
		return 0, err
	}
	return c.vals[row], nil
}

// GetColumn reads the entire column. The returned slice is a view of
// the table's storage and must not be modified.
func (c *ScalarColumn) GetColumn() ([]float64, error) {
	return c.vals, nil
}

// ArrayColumn gives typed access to a fixed-shape array column with
// element type T.
type ArrayColumn[T Element] struct {
	t    *Table
	col  *column
	vals []T
}

// ArrayOf opens the named array column with element type T. It fails if
// the column's stored element type does not match T.
func ArrayOf[T Element](t *Table, name string) (*ArrayColumn[T], error) {
	col, err := t.lookup(name)
	if err != nil {
		return nil, err
	}
	if col.desc.Kind != schema.KindArray {
		return nil, errors.Newf(errors.ErrorTypeBackend, "column %q is not an array column", name).
			WithDetail("table", t.path)
	}
	vals, ok := col.data.([]T)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeBackend,
			"column %q holds %s elements", name, col.desc.Element).
			WithDetail("table", t.path)
	}
	return &ArrayColumn[T]{t: t, col: col, vals: vals}, nil
}

// CellShape returns the per-row shape of the column.
func (c *ArrayColumn[T]) CellShape() []int {
	return c.col.desc.CellShape
}

func (c *ArrayColumn[T]) badCellLen(n, rows int) error {
	return errors.Newf(errors.ErrorTypeBackend,
		"buffer length %d does not match %d row(s) of cell length %d", n, rows, c.col.cellLen).
		WithDetail("table", c.t.path).
		WithDetail("column", c.col.desc.Name)
}

// Put writes one cell at the given row. The cell buffer must hold
// exactly one row's worth of elements, its unit row axis already
// collapsed.
func (c *ArrayColumn[T]) Put(row int, cell []T) error {
	if err := c.t.checkRow(c.col.desc.Name, row); err != nil {
		return err
	}
	if len(cell) != c.col.cellLen {
		return c.badCellLen(len(cell), 1)
	}
	copy(c.vals[row*c.col.cellLen:], cell)
	return nil
}

// PutRows writes one cell per row of the given row set, taken in order
// from the block buffer. The row set may be discontiguous.
func (c *ArrayColumn[T]) PutRows(rows RowSet, block []T) error {
	if err := rows.validate(c.t, c.col.desc.Name); err != nil {
		return err
	}
	if len(block) != rows.NumRows()*c.col.cellLen {
		return c.badCellLen(len(block), rows.NumRows())
	}
	off := 0
	for _, r := range rows.ranges {
		n := r.Len * c.col.cellLen
		copy(c.vals[r.Start*c.col.cellLen:], block[off:off+n])
		off += n
	}
	return nil
}

// PutColumn writes the entire column in one call.
func (c *ArrayColumn[T]) PutColumn(vals []T) error {
	if len(vals) != c.t.nrows*c.col.cellLen {
		return c.badCellLen(len(vals), c.t.nrows)
	}
	copy(c.vals, vals)
	return nil
}

// Get reads the cell at the given row. The returned slice is a view of
// the table's storage and must not be modified.
func (c *ArrayColumn[T]) Get(row int) ([]T, error) {
	if err := c.t.checkRow(c.col.desc.Name, row); err != nil {
		return nil, err
	}
	return c.vals[row*c.col.cellLen : (row+1)*c.col.cellLen], nil
}

// GetColumn reads the entire column as a view of the table's storage.
func (c *ArrayColumn[T]) GetColumn() ([]T, error) {
	return c.vals, nil
}
