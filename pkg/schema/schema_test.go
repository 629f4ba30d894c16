package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbench/msbench/pkg/errors"
)

func TestDimensionsNRows(t *testing.T) {
	d := Dimensions{NTimes: 3, NBaselines: 6, NChannels: 5, NPolarizations: 4}
	assert.Equal(t, 18, d.NRows())
}

func TestDimensionsValidate(t *testing.T) {
	tests := []struct {
		name string
		dims Dimensions
		ok   bool
	}{
		{"valid", Dimensions{1, 1, 1, 1}, true},
		{"default", Default(), true},
		{"zero times", Dimensions{0, 1, 1, 1}, false},
		{"zero baselines", Dimensions{1, 0, 1, 1}, false},
		{"zero channels", Dimensions{1, 1, 0, 1}, false},
		{"negative pols", Dimensions{1, 1, 1, -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dims.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
			}
		})
	}
}

func TestDefaultDimensions(t *testing.T) {
	d := Default()
	assert.Equal(t, 120, d.NTimes)
	assert.Equal(t, 8256, d.NBaselines)
	assert.Equal(t, 3072, d.NChannels)
	assert.Equal(t, 4, d.NPolarizations)
}

func TestDescriptors(t *testing.T) {
	d := Dimensions{NTimes: 3, NBaselines: 6, NChannels: 5, NPolarizations: 4}
	descs, err := Descriptors(d)
	require.NoError(t, err)
	require.Len(t, descs, 3)

	assert.Equal(t, ColTime, descs[0].Name)
	assert.Equal(t, KindScalar, descs[0].Kind)
	assert.Equal(t, Float64, descs[0].Element)
	assert.Nil(t, descs[0].CellShape)
	assert.Equal(t, 1, descs[0].CellLen())

	assert.Equal(t, ColUVW, descs[1].Name)
	assert.Equal(t, KindArray, descs[1].Kind)
	assert.Equal(t, Float32, descs[1].Element)
	assert.Equal(t, []int{3}, descs[1].CellShape)
	assert.Equal(t, 3, descs[1].CellLen())

	assert.Equal(t, ColData, descs[2].Name)
	assert.Equal(t, KindArray, descs[2].Kind)
	assert.Equal(t, Complex64, descs[2].Element)
	assert.Equal(t, []int{4, 5}, descs[2].CellShape)
	assert.Equal(t, 20, descs[2].CellLen())
}

func TestDescriptorsRejectsBadDimensions(t *testing.T) {
	_, err := Descriptors(Dimensions{NTimes: 0, NBaselines: 1, NChannels: 1, NPolarizations: 1})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
