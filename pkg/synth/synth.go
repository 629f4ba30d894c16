// Package synth generates deterministic synthetic column data for the
// benchmark table. Identical dimensions always produce identical buffers,
// so the validator can recompute expected values instead of persisting
// the dataset alongside the table.
package synth

import (
	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/schema"
)

// Dataset owns one dense, row-major buffer per column:
//
//	Times[i]                              = i
//	UVW[i*3 + j]                          = i + (j+1)*0.1
//	Data[(i*npol + p)*nchan + c]          = complex(i, c + (p+1)*0.1)
//
// The buffers are immutable once generated; every write strategy reads
// from the same dataset by reference.
type Dataset struct {
	Dims  schema.Dimensions
	Times []float64
	UVW   []float32
	Data  []complex64
}

// Generate builds the full dataset for the given dimensions.
func Generate(dims schema.Dimensions) (*Dataset, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}

	nrows := dims.NRows()
	npol := dims.NPolarizations
	nchan := dims.NChannels

	ds := &Dataset{
		Dims:  dims,
		Times: make([]float64, nrows),
		UVW:   make([]float32, nrows*schema.UVWLen),
		Data:  make([]complex64, nrows*npol*nchan),
	}

	for i := 0; i < nrows; i++ {
		ds.Times[i] = float64(i)
		for j := 0; j < schema.UVWLen; j++ {
			ds.UVW[i*schema.UVWLen+j] = float32(i) + float32(j+1)*0.1
		}
		for p := 0; p < npol; p++ {
			for c := 0; c < nchan; c++ {
				ds.Data[(i*npol+p)*nchan+c] = complex(float32(i), float32(c)+float32(p+1)*0.1)
			}
		}
	}

	return ds, nil
}

// TimeRow returns the TIME value at row i.
func (d *Dataset) TimeRow(i int) float64 {
	return d.Times[i]
}

// TimeBlock returns the TIME values of timestep block t, covering rows
// [t*NBaselines, (t+1)*NBaselines).
func (d *Dataset) TimeBlock(t int) []float64 {
	nbl := d.Dims.NBaselines
	return d.Times[t*nbl : (t+1)*nbl]
}

// UVWRow returns row i of the UVW column as a length-3 cell. The unit
// row axis introduced by single-row extraction is collapsed; the
// validator performs the identical collapse on its expected-value path.
func (d *Dataset) UVWRow(i int) []float32 {
	return d.UVW[i*schema.UVWLen : (i+1)*schema.UVWLen]
}

// UVWBlock returns timestep block t of the UVW column, shape [nbl, 3].
func (d *Dataset) UVWBlock(t int) []float32 {
	nbl := d.Dims.NBaselines
	return d.UVW[t*nbl*schema.UVWLen : (t+1)*nbl*schema.UVWLen]
}

// DataRow returns row i of the DATA column as an [npol, nchan] cell,
// with the unit row axis collapsed.
func (d *Dataset) DataRow(i int) []complex64 {
	cell := d.Dims.NPolarizations * d.Dims.NChannels
	return d.Data[i*cell : (i+1)*cell]
}

// DataBlock returns timestep block t of the DATA column, shape
// [nbl, npol, nchan].
func (d *Dataset) DataBlock(t int) []complex64 {
	cell := d.Dims.NPolarizations * d.Dims.NChannels
	nbl := d.Dims.NBaselines
	return d.Data[t*nbl*cell : (t+1)*nbl*cell]
}

// Stream is the minimal reusable buffer for streaming runs: a single
// row's worth of data, or a single timestep block's worth. The executor
// writes the same buffer into every row or block, so the written table
// does not match the full dataset. That is intentional: streaming
// isolates write-call overhead from the cost of slicing a
// pre-materialized array.
type Stream struct {
	Dims  schema.Dimensions
	Rows  int // rows covered by one write: 1 or NBaselines
	Times []float64
	UVW   []float32
	Data  []complex64
}

// GenerateStream builds a reusable buffer covering rowsPerWrite rows,
// filled with the same formulas as Generate applied to rows
// [0, rowsPerWrite).
func GenerateStream(dims schema.Dimensions, rowsPerWrite int) (*Stream, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if rowsPerWrite < 1 || rowsPerWrite > dims.NRows() {
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"stream buffer rows %d out of range [1, %d]", rowsPerWrite, dims.NRows())
	}

	npol := dims.NPolarizations
	nchan := dims.NChannels

	st := &Stream{
		Dims:  dims,
		Rows:  rowsPerWrite,
		Times: make([]float64, rowsPerWrite),
		UVW:   make([]float32, rowsPerWrite*schema.UVWLen),
		Data:  make([]complex64, rowsPerWrite*npol*nchan),
	}

	for i := 0; i < rowsPerWrite; i++ {
		st.Times[i] = float64(i)
		for j := 0; j < schema.UVWLen; j++ {
			st.UVW[i*schema.UVWLen+j] = float32(i) + float32(j+1)*0.1
		}
		for p := 0; p < npol; p++ {
			for c := 0; c < nchan; c++ {
				st.Data[(i*npol+p)*nchan+c] = complex(float32(i), float32(c)+float32(p+1)*0.1)
			}
		}
	}

	return st, nil
}
