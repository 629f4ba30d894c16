// Package bench runs a configured write strategy either once under
// validation or repeatedly under timing, and reports the results.
package bench

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/msbench/msbench/pkg/config"
	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/fill"
	"github.com/msbench/msbench/pkg/schema"
	"github.com/msbench/msbench/pkg/synth"
	"github.com/msbench/msbench/pkg/table"
	"github.com/msbench/msbench/pkg/validate"
)

// Run modes.
const (
	ModeValidate  = "validate"
	ModeBenchmark = "benchmark"
)

// Result reports the outcome of one run. In benchmark mode the three
// timings are aggregates across the whole iteration loop; a run that
// errors mid-loop reports no timings at all.
type Result struct {
	Mode        string        `json:"mode"`
	Order       string        `json:"order"`
	Granularity string        `json:"granularity"`
	Stream      bool          `json:"stream"`
	Rows        int           `json:"rows"`
	Iterations  int           `json:"iterations"`
	Wall        time.Duration `json:"wall_ns"`
	User        time.Duration `json:"user_ns"`
	System      time.Duration `json:"system_ns"`
	Validated   bool          `json:"validated"`
}

// Run executes one configured run. The configuration is fully checked
// before the table is created; every error aborts the run.
func Run(cfg *config.RunConfig, log *zap.Logger) (*Result, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	order, gran, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}

	dims := cfg.Dimensions
	descs, err := schema.Descriptors(dims)
	if err != nil {
		return nil, err
	}

	stream := cfg.Stream
	var st *synth.Stream
	var ds *synth.Dataset

	if stream {
		if rows, ok := fill.StreamRows(dims, gran); ok {
			st, err = synth.GenerateStream(dims, rows)
		} else {
			// A whole-column write has no smaller reusable unit, so the
			// degenerate case falls back to a fully materialized fill.
			log.Warn("column granularity cannot stream, falling back to full dataset",
				zap.String("granularity", gran.String()))
			stream = false
		}
		if err != nil {
			return nil, err
		}
	}
	if !stream {
		ds, err = synth.Generate(dims)
		if err != nil {
			return nil, err
		}
	}

	log.Info("creating table",
		zap.String("table", cfg.TablePath),
		zap.Int("rows", dims.NRows()),
		zap.String("order", order.String()),
		zap.String("granularity", gran.String()))

	tab, err := table.Create(cfg.TablePath, descs, dims.NRows())
	if err != nil {
		return nil, err
	}

	res := &Result{
		Order:       order.String(),
		Granularity: gran.String(),
		Stream:      stream,
		Rows:        dims.NRows(),
		Iterations:  cfg.Iterations,
	}

	execute := func() error {
		if stream {
			return fill.ExecuteStream(tab, st, order, gran)
		}
		return fill.Execute(tab, ds, order, gran)
	}

	if cfg.Validate {
		res.Mode = ModeValidate
		res.Iterations = 0
		if err := execute(); err != nil {
			return nil, err
		}
		// Only the columns the traversal writes are checked; the
		// untouched columns legitimately hold zeros.
		if err := validate.Validate(tab, ds, order.Columns()...); err != nil {
			return nil, err
		}
		res.Validated = true
		return res, saveTable(tab, log)
	}

	res.Mode = ModeBenchmark
	if cfg.Iterations > 0 {
		userBefore, sysBefore, err := cpuTimes()
		if err != nil {
			return nil, err
		}
		wallStart := time.Now()

		for i := 0; i < cfg.Iterations; i++ {
			if err := execute(); err != nil {
				return nil, err
			}
		}

		res.Wall = time.Since(wallStart)
		userAfter, sysAfter, err := cpuTimes()
		if err != nil {
			return nil, err
		}
		res.User = userAfter - userBefore
		res.System = sysAfter - sysBefore
	}

	return res, saveTable(tab, log)
}

// saveTable persists the table after the measured loop so that file
// serialization cost never pollutes the timings.
func saveTable(tab *table.Table, log *zap.Logger) error {
	start := time.Now()
	if err := tab.Save(); err != nil {
		return err
	}
	log.Debug("table saved",
		zap.String("table", tab.Name()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// cpuTimes reads the current process's accumulated user and system CPU
// time.
func cpuTimes() (user, system time.Duration, err error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrorTypeInternal, "failed to inspect current process")
	}
	ts, err := p.Times()
	if err != nil {
		return 0, 0, errors.Wrap(err, errors.ErrorTypeInternal, "failed to read process CPU times")
	}
	return time.Duration(ts.User * float64(time.Second)),
		time.Duration(ts.System * float64(time.Second)), nil
}
