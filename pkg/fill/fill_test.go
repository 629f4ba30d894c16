package fill

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/schema"
	"github.com/msbench/msbench/pkg/synth"
	"github.com/msbench/msbench/pkg/table"
	"github.com/msbench/msbench/pkg/testutil"
	"github.com/msbench/msbench/pkg/validate"
)

func testDims() schema.Dimensions {
	return schema.Dimensions{NTimes: 3, NBaselines: 4, NChannels: 5, NPolarizations: 2}
}

func newTable(t *testing.T, dims schema.Dimensions) *table.Table {
	t.Helper()
	descs, err := schema.Descriptors(dims)
	require.NoError(t, err)
	tab, err := table.Create(testutil.TempTable(t), descs, dims.NRows())
	require.NoError(t, err)
	return tab
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want Order
	}{
		{"time", TimeOnly},
		{"uvw", UVWOnly},
		{"data", DataOnly},
		{"all", ColumnWise},
		{"rows", RowWise},
	}
	for _, tt := range tests {
		got, err := ParseOrder(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.String())
	}

	_, err := ParseOrder("sideways")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in   string
		want Granularity
	}{
		{"cell", Cell},
		{"cells", Cells},
		{"column", Column},
	}
	for _, tt := range tests {
		got, err := ParseGranularity(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.in, got.String())
	}

	_, err := ParseGranularity("page")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestCheckRejectsRowWiseColumn(t *testing.T) {
	err := Check(RowWise, Column)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	for _, g := range []Granularity{Cell, Cells} {
		assert.NoError(t, Check(RowWise, g))
	}
	for _, o := range []Order{TimeOnly, UVWOnly, DataOnly, ColumnWise} {
		assert.NoError(t, Check(o, Column))
	}
}

func TestExecuteRowWiseColumnWritesNothing(t *testing.T) {
	dims := testDims()
	tab := newTable(t, dims)
	ds, err := synth.Generate(dims)
	require.NoError(t, err)

	err = Execute(tab, ds, RowWise, Column)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	tc, err := tab.Scalar(schema.ColTime)
	require.NoError(t, err)
	got, err := tc.GetColumn()
	require.NoError(t, err)
	for _, v := range got {
		assert.Zero(t, v)
	}
}

// Every legal strategy must persist the full synthesized content for
// the columns it writes.
func TestExecuteRoundTripAllStrategies(t *testing.T) {
	dims := testDims()
	ds, err := synth.Generate(dims)
	require.NoError(t, err)

	for _, o := range []Order{TimeOnly, UVWOnly, DataOnly, ColumnWise, RowWise} {
		for _, g := range []Granularity{Cell, Cells, Column} {
			if Check(o, g) != nil {
				continue
			}
			t.Run(fmt.Sprintf("%s_%s", o, g), func(t *testing.T) {
				tab := newTable(t, dims)
				require.NoError(t, Execute(tab, ds, o, g))
				assert.NoError(t, validate.Validate(tab, ds, o.Columns()...))
			})
		}
	}
}

func TestOrderColumns(t *testing.T) {
	assert.Equal(t, []string{schema.ColTime}, TimeOnly.Columns())
	assert.Equal(t, []string{schema.ColUVW}, UVWOnly.Columns())
	assert.Equal(t, []string{schema.ColData}, DataOnly.Columns())

	all := []string{schema.ColTime, schema.ColUVW, schema.ColData}
	assert.Equal(t, all, ColumnWise.Columns())
	assert.Equal(t, all, RowWise.Columns())
}

func TestExecuteSingleColumnOrders(t *testing.T) {
	dims := testDims()
	ds, err := synth.Generate(dims)
	require.NoError(t, err)

	for _, g := range []Granularity{Cell, Cells, Column} {
		t.Run(g.String(), func(t *testing.T) {
			tab := newTable(t, dims)
			require.NoError(t, Execute(tab, ds, TimeOnly, g))

			tc, err := tab.Scalar(schema.ColTime)
			require.NoError(t, err)
			got, err := tc.GetColumn()
			require.NoError(t, err)
			assert.Equal(t, ds.Times, got)

			// The other columns are untouched.
			uc, err := table.ArrayOf[float32](tab, schema.ColUVW)
			require.NoError(t, err)
			uvw, err := uc.GetColumn()
			require.NoError(t, err)
			for _, v := range uvw {
				require.Zero(t, v)
			}

			tab2 := newTable(t, dims)
			require.NoError(t, Execute(tab2, ds, UVWOnly, g))
			uc2, err := table.ArrayOf[float32](tab2, schema.ColUVW)
			require.NoError(t, err)
			uvw2, err := uc2.GetColumn()
			require.NoError(t, err)
			assert.Equal(t, ds.UVW, uvw2)

			tab3 := newTable(t, dims)
			require.NoError(t, Execute(tab3, ds, DataOnly, g))
			dc3, err := table.ArrayOf[complex64](tab3, schema.ColData)
			require.NoError(t, err)
			data3, err := dc3.GetColumn()
			require.NoError(t, err)
			assert.Equal(t, ds.Data, data3)
		})
	}
}

// ColumnWise and RowWise change write order, not written values: the
// final table contents must be identical.
func TestOrderIndependenceOfContent(t *testing.T) {
	dims := testDims()
	ds, err := synth.Generate(dims)
	require.NoError(t, err)

	for _, g := range []Granularity{Cell, Cells} {
		t.Run(g.String(), func(t *testing.T) {
			colTab := newTable(t, dims)
			require.NoError(t, Execute(colTab, ds, ColumnWise, g))

			rowTab := newTable(t, dims)
			require.NoError(t, Execute(rowTab, ds, RowWise, g))

			a, err := colTab.Scalar(schema.ColTime)
			require.NoError(t, err)
			b, err := rowTab.Scalar(schema.ColTime)
			require.NoError(t, err)
			av, _ := a.GetColumn()
			bv, _ := b.GetColumn()
			assert.Equal(t, av, bv)

			au, err := table.ArrayOf[float32](colTab, schema.ColUVW)
			require.NoError(t, err)
			bu, err := table.ArrayOf[float32](rowTab, schema.ColUVW)
			require.NoError(t, err)
			auv, _ := au.GetColumn()
			buv, _ := bu.GetColumn()
			assert.Equal(t, auv, buv)

			ad, err := table.ArrayOf[complex64](colTab, schema.ColData)
			require.NoError(t, err)
			bd, err := table.ArrayOf[complex64](rowTab, schema.ColData)
			require.NoError(t, err)
			adv, _ := ad.GetColumn()
			bdv, _ := bd.GetColumn()
			assert.Equal(t, adv, bdv)
		})
	}
}
