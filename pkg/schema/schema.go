// Package schema describes the benchmark table: its dimensions and the
// fixed set of columns derived from them.
package schema

import (
	"github.com/msbench/msbench/pkg/errors"
)

// Column names of the benchmark table.
const (
	ColTime = "TIME"
	ColUVW  = "UVW"
	ColData = "DATA"
)

// UVWLen is the fixed per-row vector length of the UVW column.
const UVWLen = 3

// Dimensions defines the size of the benchmark table. NRows is always
// NTimes * NBaselines.
type Dimensions struct {
	NTimes         int `yaml:"times" json:"times"`
	NBaselines     int `yaml:"baselines" json:"baselines"`
	NChannels      int `yaml:"channels" json:"channels"`
	NPolarizations int `yaml:"polarizations" json:"polarizations"`
}

// Default returns the dimensions of a full-size correlator dump:
// 120 timesteps, 128 antennas (8256 baselines), 24x128 channels, 4 pols.
func Default() Dimensions {
	return Dimensions{
		NTimes:         120,
		NBaselines:     128 * (128 + 1) / 2,
		NChannels:      24 * 128,
		NPolarizations: 4,
	}
}

// NRows returns the total number of table rows.
func (d Dimensions) NRows() int {
	return d.NTimes * d.NBaselines
}

// Validate rejects non-positive dimensions.
func (d Dimensions) Validate() error {
	if d.NTimes < 1 {
		return errors.Newf(errors.ErrorTypeConfig, "times must be positive, got %d", d.NTimes)
	}
	if d.NBaselines < 1 {
		return errors.Newf(errors.ErrorTypeConfig, "baselines must be positive, got %d", d.NBaselines)
	}
	if d.NChannels < 1 {
		return errors.Newf(errors.ErrorTypeConfig, "channels must be positive, got %d", d.NChannels)
	}
	if d.NPolarizations < 1 {
		return errors.Newf(errors.ErrorTypeConfig, "polarizations must be positive, got %d", d.NPolarizations)
	}
	return nil
}

// ColumnKind distinguishes scalar columns from fixed-shape array columns.
type ColumnKind int

const (
	KindScalar ColumnKind = iota
	KindArray
)

func (k ColumnKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// ElementType is the physical element type of a column.
type ElementType int

const (
	Float64 ElementType = iota
	Float32
	Complex64
)

func (t ElementType) String() string {
	switch t {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Complex64:
		return "complex64"
	default:
		return "unknown"
	}
}

// ColumnDescriptor describes one column of the table. CellShape is the
// per-row shape of an array column, row-major; it is nil for scalars.
type ColumnDescriptor struct {
	Name      string
	Kind      ColumnKind
	Element   ElementType
	CellShape []int
}

// CellLen returns the number of elements a single row of the column holds.
func (c ColumnDescriptor) CellLen() int {
	n := 1
	for _, d := range c.CellShape {
		n *= d
	}
	return n
}

// Descriptors derives the three column descriptors from the table
// dimensions: a float64 TIME scalar, a float32 UVW[3] vector and a
// complex64 DATA[npol][nchan] matrix.
func Descriptors(d Dimensions) ([]ColumnDescriptor, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return []ColumnDescriptor{
		{Name: ColTime, Kind: KindScalar, Element: Float64},
		{Name: ColUVW, Kind: KindArray, Element: Float32, CellShape: []int{UVWLen}},
		{Name: ColData, Kind: KindArray, Element: Complex64, CellShape: []int{d.NPolarizations, d.NChannels}},
	}, nil
}
