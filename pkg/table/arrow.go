package table

import (
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/schema"
)

// Field metadata keys used to round-trip column descriptors through the
// Arrow schema. Complex columns are stored as interleaved re/im float32
// pairs, so the logical element type has to travel in metadata.
const (
	metaKind    = "msbench.kind"
	metaElement = "msbench.element"
	metaShape   = "msbench.shape"
)

// Save persists the table as an Arrow IPC file at the table's path.
// Scalar columns map to float64 fields, float32 array columns to
// fixed-size lists of float32, and complex64 array columns to
// fixed-size lists of interleaved re/im float32 pairs.
func (t *Table) Save() error {
	arrowSchema, err := t.arrowSchema()
	if err != nil {
		return err
	}

	pool := memory.NewGoAllocator()
	rb := array.NewRecordBuilder(pool, arrowSchema)
	defer rb.Release()

	for i, desc := range t.descs {
		col := t.cols[desc.Name]
		switch data := col.data.(type) {
		case []float64:
			rb.Field(i).(*array.Float64Builder).AppendValues(data, nil)
		case []float32:
			appendCells(rb.Field(i).(*array.FixedSizeListBuilder), data, col.cellLen, t.nrows)
		case []complex64:
			interleaved := make([]float32, 2*len(data))
			for j, v := range data {
				interleaved[2*j] = real(v)
				interleaved[2*j+1] = imag(v)
			}
			appendCells(rb.Field(i).(*array.FixedSizeListBuilder), interleaved, 2*col.cellLen, t.nrows)
		}
	}

	rec := rb.NewRecord()
	defer rec.Release()

	f, err := os.Create(t.path)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create table file").
			WithDetail("table", t.path)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(arrowSchema), ipc.WithAllocator(pool))
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeBackend, "failed to create table writer").
			WithDetail("table", t.path)
	}
	if err := w.Write(rec); err != nil {
		return errors.Wrap(err, errors.ErrorTypeBackend, "failed to write table").
			WithDetail("table", t.path)
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeBackend, "failed to finish table").
			WithDetail("table", t.path)
	}
	return nil
}

func appendCells(lb *array.FixedSizeListBuilder, vals []float32, cellLen, nrows int) {
	vb := lb.ValueBuilder().(*array.Float32Builder)
	for r := 0; r < nrows; r++ {
		lb.Append(true)
		vb.AppendValues(vals[r*cellLen:(r+1)*cellLen], nil)
	}
}

func (t *Table) arrowSchema() (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, len(t.descs))
	for _, desc := range t.descs {
		md := arrow.NewMetadata(
			[]string{metaKind, metaElement, metaShape},
			[]string{desc.Kind.String(), desc.Element.String(), shapeString(desc.CellShape)},
		)

		var dt arrow.DataType
		switch {
		case desc.Kind == schema.KindScalar:
			dt = arrow.PrimitiveTypes.Float64
		case desc.Element == schema.Float32:
			dt = arrow.FixedSizeListOf(int32(desc.CellLen()), arrow.PrimitiveTypes.Float32)
		case desc.Element == schema.Complex64:
			dt = arrow.FixedSizeListOf(int32(2*desc.CellLen()), arrow.PrimitiveTypes.Float32)
		default:
			return nil, errors.Newf(errors.ErrorTypeBackend,
				"column %q has unsupported element type %s", desc.Name, desc.Element).
				WithDetail("table", t.path)
		}

		fields = append(fields, arrow.Field{Name: desc.Name, Type: dt, Metadata: md})
	}
	return arrow.NewSchema(fields, nil), nil
}

// Open reads a table previously written by Save.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open table file").
			WithDetail("table", path)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeBackend, "failed to read table file").
			WithDetail("table", path)
	}
	defer r.Close()

	descs, err := descriptorsFromSchema(path, r.Schema())
	if err != nil {
		return nil, err
	}

	nrows := 0
	recs := make([]arrow.Record, 0, r.NumRecords())
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeBackend, "failed to read record batch").
				WithDetail("table", path)
		}
		recs = append(recs, rec)
		nrows += int(rec.NumRows())
	}
	if nrows == 0 {
		return nil, errors.New(errors.ErrorTypeBackend, "table file holds no rows").
			WithDetail("table", path)
	}

	t := &Table{
		path:  path,
		nrows: nrows,
		descs: descs,
		cols:  make(map[string]*column, len(descs)),
	}

	for i, desc := range descs {
		col := &column{desc: desc, cellLen: desc.CellLen()}
		switch {
		case desc.Kind == schema.KindScalar:
			vals := make([]float64, 0, nrows)
			for _, rec := range recs {
				arr, ok := rec.Column(i).(*array.Float64)
				if !ok {
					return nil, errColumnType(path, desc.Name)
				}
				vals = append(vals, arr.Float64Values()...)
			}
			col.data = vals
		case desc.Element == schema.Float32:
			vals := make([]float32, 0, nrows*col.cellLen)
			for _, rec := range recs {
				raw, err := listValues(path, desc.Name, rec.Column(i), col.cellLen)
				if err != nil {
					return nil, err
				}
				vals = append(vals, raw...)
			}
			col.data = vals
		case desc.Element == schema.Complex64:
			vals := make([]complex64, 0, nrows*col.cellLen)
			for _, rec := range recs {
				raw, err := listValues(path, desc.Name, rec.Column(i), 2*col.cellLen)
				if err != nil {
					return nil, err
				}
				for j := 0; j < len(raw); j += 2 {
					vals = append(vals, complex(raw[j], raw[j+1]))
				}
			}
			col.data = vals
		}
		t.cols[desc.Name] = col
	}

	return t, nil
}

func listValues(path, name string, col arrow.Array, cellLen int) ([]float32, error) {
	list, ok := col.(*array.FixedSizeList)
	if !ok {
		return nil, errColumnType(path, name)
	}
	inner, ok := list.ListValues().(*array.Float32)
	if !ok {
		return nil, errColumnType(path, name)
	}
	base := list.Offset() * cellLen
	return inner.Float32Values()[base : base+list.Len()*cellLen], nil
}

func errColumnType(path, name string) error {
	return errors.Newf(errors.ErrorTypeBackend, "column %q has unexpected physical type", name).
		WithDetail("table", path)
}

func descriptorsFromSchema(path string, s *arrow.Schema) ([]schema.ColumnDescriptor, error) {
	descs := make([]schema.ColumnDescriptor, 0, len(s.Fields()))
	for _, f := range s.Fields() {
		desc := schema.ColumnDescriptor{Name: f.Name}

		kind, err := metaValue(path, f, metaKind)
		if err != nil {
			return nil, err
		}
		elem, err := metaValue(path, f, metaElement)
		if err != nil {
			return nil, err
		}
		shape, err := metaValue(path, f, metaShape)
		if err != nil {
			return nil, err
		}

		switch kind {
		case schema.KindScalar.String():
			desc.Kind = schema.KindScalar
		case schema.KindArray.String():
			desc.Kind = schema.KindArray
		default:
			return nil, errors.Newf(errors.ErrorTypeBackend, "column %q has unknown kind %q", f.Name, kind).
				WithDetail("table", path)
		}

		switch elem {
		case schema.Float64.String():
			desc.Element = schema.Float64
		case schema.Float32.String():
			desc.Element = schema.Float32
		case schema.Complex64.String():
			desc.Element = schema.Complex64
		default:
			return nil, errors.Newf(errors.ErrorTypeBackend, "column %q has unknown element type %q", f.Name, elem).
				WithDetail("table", path)
		}

		if shape != "" {
			for _, part := range strings.Split(shape, ",") {
				n, err := strconv.Atoi(part)
				if err != nil {
					return nil, errors.Wrap(err, errors.ErrorTypeBackend, "malformed cell shape metadata").
						WithDetail("table", path).
						WithDetail("column", f.Name)
				}
				desc.CellShape = append(desc.CellShape, n)
			}
		}

		descs = append(descs, desc)
	}
	return descs, nil
}

func metaValue(path string, f arrow.Field, key string) (string, error) {
	idx := f.Metadata.FindKey(key)
	if idx < 0 {
		return "", errors.Newf(errors.ErrorTypeBackend, "column %q is missing %s metadata", f.Name, key).
			WithDetail("table", path)
	}
	return f.Metadata.Values()[idx], nil
}

func shapeString(shape []int) string {
	parts := make([]string, len(shape))
	for i, n := range shape {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
