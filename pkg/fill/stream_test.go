package fill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/schema"
	"github.com/msbench/msbench/pkg/synth"
	"github.com/msbench/msbench/pkg/table"
)

func TestStreamRows(t *testing.T) {
	dims := testDims()

	rows, ok := StreamRows(dims, Cell)
	require.True(t, ok)
	assert.Equal(t, 1, rows)

	rows, ok = StreamRows(dims, Cells)
	require.True(t, ok)
	assert.Equal(t, dims.NBaselines, rows)

	_, ok = StreamRows(dims, Column)
	assert.False(t, ok)
}

// Streaming repeats the same buffer into every unit, so every row of a
// streamed column holds the unit's values, not the per-row reference.
func TestExecuteStreamRepeatsBuffer(t *testing.T) {
	dims := testDims()

	for _, g := range []Granularity{Cell, Cells} {
		t.Run(g.String(), func(t *testing.T) {
			rows, ok := StreamRows(dims, g)
			require.True(t, ok)
			st, err := synth.GenerateStream(dims, rows)
			require.NoError(t, err)

			tab := newTable(t, dims)
			require.NoError(t, ExecuteStream(tab, st, ColumnWise, g))

			tc, err := tab.Scalar(schema.ColTime)
			require.NoError(t, err)
			uc, err := table.ArrayOf[float32](tab, schema.ColUVW)
			require.NoError(t, err)
			dc, err := table.ArrayOf[complex64](tab, schema.ColData)
			require.NoError(t, err)

			for i := 0; i < dims.NRows(); i++ {
				v, err := tc.Get(i)
				require.NoError(t, err)
				assert.Equal(t, st.Times[i%rows], v, "TIME row %d", i)

				uvw, err := uc.Get(i)
				require.NoError(t, err)
				assert.Equal(t, st.UVW[(i%rows)*schema.UVWLen:(i%rows+1)*schema.UVWLen], uvw)

				cell := dims.NPolarizations * dims.NChannels
				data, err := dc.Get(i)
				require.NoError(t, err)
				assert.Equal(t, st.Data[(i%rows)*cell:(i%rows+1)*cell], data)
			}
		})
	}
}

func TestExecuteStreamSingleColumnOrders(t *testing.T) {
	dims := testDims()
	st, err := synth.GenerateStream(dims, 1)
	require.NoError(t, err)

	tab := newTable(t, dims)
	require.NoError(t, ExecuteStream(tab, st, TimeOnly, Cell))

	uc, err := table.ArrayOf[float32](tab, schema.ColUVW)
	require.NoError(t, err)
	uvw, err := uc.GetColumn()
	require.NoError(t, err)
	for _, v := range uvw {
		require.Zero(t, v, "UVW untouched by time-only stream")
	}
}

func TestExecuteStreamRejectsColumnGranularity(t *testing.T) {
	dims := testDims()
	st, err := synth.GenerateStream(dims, 1)
	require.NoError(t, err)

	tab := newTable(t, dims)
	err = ExecuteStream(tab, st, ColumnWise, Column)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestExecuteStreamRejectsBufferMismatch(t *testing.T) {
	dims := testDims()
	st, err := synth.GenerateStream(dims, 1)
	require.NoError(t, err)

	tab := newTable(t, dims)
	err = ExecuteStream(tab, st, ColumnWise, Cells)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
