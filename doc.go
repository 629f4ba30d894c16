// Package msbench benchmarks the performance impact of write granularity
// and traversal order when populating a columnar table.
//
// The benchmark table carries three columns whose shapes derive from the
// configured dimensions {times, baselines, channels, polarizations}:
//
//   - TIME: a float64 scalar per row
//   - UVW: a fixed float32 vector of length 3 per row
//   - DATA: a fixed complex64 matrix [polarizations, channels] per row
//
// A fill strategy is the combination of a write granularity (one row,
// one timestep block of `baselines` rows, or the whole column per call),
// a traversal order (a single column, all columns one after another, or
// all columns interleaved per row/block), and optionally streaming,
// where the same minimal buffer is written everywhere to isolate the
// backend's call overhead from data-slicing cost.
//
// Every non-streaming strategy writes bit-identical logical content, and
// the validator proves it by reading the table back and comparing each
// cell against the deterministic synthesized reference.
//
// # Quick start
//
// Validate a small table, then time a strategy:
//
//	msbench run -T 2 -B 2 -C 2 -P 1 -t all -w cell -V
//	msbench run -T 12 -B 36 -t time -w cells -i 100
//
// Inspect the resulting table file:
//
//	msbench-info table.data
package msbench
