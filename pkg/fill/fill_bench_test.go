package fill

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/msbench/msbench/pkg/schema"
	"github.com/msbench/msbench/pkg/synth"
	"github.com/msbench/msbench/pkg/table"
)

func benchDims() schema.Dimensions {
	return schema.Dimensions{NTimes: 8, NBaselines: 16, NChannels: 64, NPolarizations: 4}
}

// Benchmark the full strategy matrix against the in-memory backend.
func BenchmarkExecute(b *testing.B) {
	dims := benchDims()
	ds, err := synth.Generate(dims)
	if err != nil {
		b.Fatal(err)
	}
	descs, err := schema.Descriptors(dims)
	if err != nil {
		b.Fatal(err)
	}

	for _, o := range []Order{TimeOnly, UVWOnly, DataOnly, ColumnWise, RowWise} {
		for _, g := range []Granularity{Cell, Cells, Column} {
			if Check(o, g) != nil {
				continue
			}
			b.Run(fmt.Sprintf("%s/%s", o, g), func(b *testing.B) {
				tab, err := table.Create(filepath.Join(b.TempDir(), "table.data"), descs, dims.NRows())
				if err != nil {
					b.Fatal(err)
				}
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if err := Execute(tab, ds, o, g); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkExecuteStream(b *testing.B) {
	dims := benchDims()
	descs, err := schema.Descriptors(dims)
	if err != nil {
		b.Fatal(err)
	}

	for _, g := range []Granularity{Cell, Cells} {
		rows, _ := StreamRows(dims, g)
		st, err := synth.GenerateStream(dims, rows)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(g.String(), func(b *testing.B) {
			tab, err := table.Create(filepath.Join(b.TempDir(), "table.data"), descs, dims.NRows())
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := ExecuteStream(tab, st, ColumnWise, g); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
