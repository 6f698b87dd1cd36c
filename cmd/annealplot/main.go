package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GoSim-25-26J-441/annealplot/internal/improvement"
	"github.com/GoSim-25-26J-441/annealplot/internal/plot"
	"github.com/GoSim-25-26J-441/annealplot/internal/report"
	"github.com/GoSim-25-26J-441/annealplot/internal/trajectory"
	"github.com/GoSim-25-26J-441/annealplot/pkg/config"
	"github.com/GoSim-25-26J-441/annealplot/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: annealplot [flags] <input_file> <output_png>")
	fmt.Fprintln(w, "\nExample:")
	fmt.Fprintln(w, "  annealplot temp_log.dat annealing_plot.png")
}

// ensurePNGExtension appends ".png" unless name already ends with it, ignoring case
func ensurePNGExtension(name string) (string, bool) {
	if strings.HasSuffix(strings.ToLower(name), ".png") {
		return name, false
	}
	return name + ".png", true
}

func run(args []string, stdout, stderr io.Writer) int {
	var configPath string
	var logLevel string
	var summaryPath string

	fs := flag.NewFlagSet("annealplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "optional YAML file with chart and convergence settings")
	fs.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	fs.StringVar(&summaryPath, "summary", "", "also write the statistics to this .json or .yaml file")
	fs.Usage = func() {
		usage(stdout)
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 2 {
		usage(stdout)
		return 1
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		if !logger.ValidLevel(logLevel) {
			fmt.Fprintf(stdout, "Error: invalid log level %q (must be debug, info, warn, or error)\n", logLevel)
			return 1
		}
		cfg.LogLevel = logLevel
	}
	logger.SetDefault(logger.NewText(cfg.LogLevel, stderr))

	inputFile := fs.Arg(0)
	outputFile, added := ensurePNGExtension(fs.Arg(1))
	if added {
		fmt.Fprintln(stdout, "Note: Added .png extension to output filename")
	}

	if err := plotTrajectory(stdout, cfg, inputFile, outputFile, summaryPath); err != nil {
		switch {
		case errors.Is(err, trajectory.ErrInputNotFound):
			fmt.Fprintf(stdout, "Error: Could not find input file '%s'\n", inputFile)
		case errors.Is(err, report.ErrEmptyDataset):
			fmt.Fprintln(stdout, "Error: No valid data found in input file")
		default:
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
		logger.Debug("annealplot failed", "input", inputFile, "output", outputFile, "error", err)
		return 1
	}
	return 0
}

func plotTrajectory(stdout io.Writer, cfg *config.Config, inputFile, outputFile, summaryPath string) error {
	fmt.Fprintf(stdout, "Reading data from %s...\n", inputFile)
	ds, err := trajectory.Read(inputFile)
	if err != nil {
		return err
	}
	logger.Debug("trajectory parsed", "input", inputFile, "points", ds.Len(), "skipped_lines", ds.Skipped)
	if ds.Empty() {
		return report.ErrEmptyDataset
	}
	fmt.Fprintf(stdout, "Successfully read %d data points\n", ds.Len())

	strategy, err := improvement.NewStrategy(cfg.Convergence.Strategy, improvement.FromConfig(cfg.Convergence))
	if err != nil {
		return err
	}
	summary, err := report.Summarize(ds, strategy)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Creating plot...")
	if err := plot.SaveFile(outputFile, ds, summary, cfg.Chart); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Plot saved to %s\n", outputFile)

	if err := report.WriteStatistics(stdout, summary); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}

	if summaryPath != "" {
		if err := report.Export(summaryPath, summary); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Summary written to %s\n", summaryPath)
	}
	return nil
}
