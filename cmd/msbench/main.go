// Command msbench benchmarks write-granularity and traversal-order
// strategies against a columnar measurement-set style table.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msbench/msbench/pkg/bench"
	"github.com/msbench/msbench/pkg/config"
	"github.com/msbench/msbench/pkg/fill"
	"github.com/msbench/msbench/pkg/logger"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "msbench",
		Short: "msbench - columnar table write-strategy benchmark",
		Long: `msbench fills a table with a scalar TIME column, a fixed UVW[3] column
and a fixed DATA[npol][nchan] column, one row / one timestep block / one
whole column at a time, and reports how long each strategy takes.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("msbench v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available traversal orders and write granularities",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Traversal orders:")
			for _, o := range fill.Orders() {
				fmt.Printf("  - %s\n", o)
			}
			fmt.Println("\nWrite granularities:")
			for _, g := range fill.Granularities() {
				fmt.Printf("  - %s\n", g)
			}
		},
	})

	root.AddCommand(newRunCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCommand() *cobra.Command {
	var configFile string
	flags := config.Default()

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a write-strategy benchmark or validation",
		Long: `Run the configured write strategy against a freshly created table.
With --validate the strategy runs once and the table contents are checked
against the synthesized reference; otherwise the fill is repeated
--iterations times and the aggregate user/system/real timings reported.

Example:
  msbench run -T 12 -B 36 -t all -w cells -i 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, configFile, flags)
			if err != nil {
				return err
			}
			return runBenchmark(cfg)
		},
	}

	runCmd.Flags().StringVar(&configFile, "config", "", "Path to run configuration YAML file (optional)")
	runCmd.Flags().IntVarP(&flags.Dimensions.NTimes, "times", "T", flags.Dimensions.NTimes, "Number of timesteps")
	runCmd.Flags().IntVarP(&flags.Dimensions.NBaselines, "baselines", "B", flags.Dimensions.NBaselines, "Number of baselines per timestep")
	runCmd.Flags().IntVarP(&flags.Dimensions.NChannels, "channels", "C", flags.Dimensions.NChannels, "Number of frequency channels")
	runCmd.Flags().IntVarP(&flags.Dimensions.NPolarizations, "pols", "P", flags.Dimensions.NPolarizations, "Number of polarizations")
	runCmd.Flags().StringVarP(&flags.Order, "order", "t", flags.Order, "Traversal order (time, uvw, data, all, rows)")
	runCmd.Flags().StringVarP(&flags.Granularity, "granularity", "w", flags.Granularity, "Write granularity (cell, cells, column)")
	runCmd.Flags().IntVarP(&flags.Iterations, "iterations", "i", flags.Iterations, "Number of timed fill iterations")
	runCmd.Flags().BoolVarP(&flags.Validate, "validate", "V", false, "Fill once and validate the table contents instead of timing")
	runCmd.Flags().BoolVar(&flags.Stream, "stream", false, "Write a reused minimal buffer into every row/block to isolate call overhead")
	runCmd.Flags().StringVar(&flags.TablePath, "table", flags.TablePath, "Filesystem path of the table (recreated per run)")
	runCmd.Flags().StringVarP(&flags.ResultPath, "output", "o", "", "Write the result as a JSON report to this path (optional)")
	runCmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level (debug, info, warn, error)")

	return runCmd
}

// resolveConfig merges the config file, if any, with explicitly set
// command line flags. Flags win.
func resolveConfig(cmd *cobra.Command, configFile string, flags *config.RunConfig) (*config.RunConfig, error) {
	if configFile == "" {
		return flags, nil
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("times") {
		cfg.Dimensions.NTimes = flags.Dimensions.NTimes
	}
	if cmd.Flags().Changed("baselines") {
		cfg.Dimensions.NBaselines = flags.Dimensions.NBaselines
	}
	if cmd.Flags().Changed("channels") {
		cfg.Dimensions.NChannels = flags.Dimensions.NChannels
	}
	if cmd.Flags().Changed("pols") {
		cfg.Dimensions.NPolarizations = flags.Dimensions.NPolarizations
	}
	if cmd.Flags().Changed("order") {
		cfg.Order = flags.Order
	}
	if cmd.Flags().Changed("granularity") {
		cfg.Granularity = flags.Granularity
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = flags.Iterations
	}
	if cmd.Flags().Changed("validate") {
		cfg.Validate = flags.Validate
	}
	if cmd.Flags().Changed("stream") {
		cfg.Stream = flags.Stream
	}
	if cmd.Flags().Changed("table") {
		cfg.TablePath = flags.TablePath
	}
	if cmd.Flags().Changed("output") {
		cfg.ResultPath = flags.ResultPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}

	return cfg, nil
}

func runBenchmark(cfg *config.RunConfig) error {
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Encoding: "console"}); err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	log := logger.With(
		zap.String("component", "msbench-cli"),
		zap.String("order", cfg.Order),
		zap.String("granularity", cfg.Granularity),
	)

	res, err := bench.Run(cfg, log)
	if err != nil {
		return err
	}

	fmt.Println(res.Summary())

	if cfg.ResultPath != "" {
		if err := bench.WriteReport(cfg.ResultPath, res); err != nil {
			return err
		}
		log.Info("report written", zap.String("path", cfg.ResultPath))
	}

	return nil
}
