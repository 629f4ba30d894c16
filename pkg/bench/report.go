package bench

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/msbench/msbench/pkg/errors"
)

// Summary formats the result the way the tool prints it: PASS for a
// successful validation, or the three aggregate timings in seconds.
func (r *Result) Summary() string {
	if r.Mode == ModeValidate {
		return "PASS"
	}
	return fmt.Sprintf("user:   %.6f\nsystem: %.6f\nreal:   %.6f",
		r.User.Seconds(), r.System.Seconds(), r.Wall.Seconds())
}

// WriteReport saves the result as a JSON report file.
func WriteReport(path string, r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to marshal result")
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write report").
			WithDetail("path", path)
	}
	return nil
}
