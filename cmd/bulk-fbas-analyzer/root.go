// Command bulk-fbas-analyzer runs the same structural analysis as
// fbas-analyzer over many FBAS files at once, writing one CSV row per input.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fbas-go/analyzer/internal/cache"
	"github.com/fbas-go/analyzer/internal/logger"
)

type bulkOptions struct {
	outputPath      string
	batchConfigPath string
	ignoreForLabel  string
	concurrency     int
	cachePath       string
	logLevel        string
	logConfigFile   string
}

func newRootCmd() *cobra.Command {
	opts := &bulkOptions{}

	cmd := &cobra.Command{
		Use:   "bulk-fbas-analyzer [paths...]",
		Short: "Analyze many FBASs (in stellarbeat.org JSON format) and report the results as CSV",
		Long: "bulk-fbas-analyzer takes a list of files or directories, each containing a\n" +
			"stellarbeat.org \"nodes\" JSON document (optionally paired with an\n" +
			"\"organizations\" document named using the same label), and writes one CSV\n" +
			"row per input describing its structural properties.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.outputPath, "out", "o", "", "output CSV file (stdout if omitted)")
	flags.StringVarP(&opts.ignoreForLabel, "ignore-for-label", "i", "stellarbeat", "underscore-separated file name part to drop when deriving a data point's label")
	flags.StringVar(&opts.batchConfigPath, "config", "", "YAML batch-config file listing {label, nodesPath, organizationsPath} entries, instead of positional paths")
	flags.IntVarP(&opts.concurrency, "jobs", "j", 4, "maximum number of FBASs to analyze concurrently")
	flags.StringVar(&opts.cachePath, "cache", "", "path to a bbolt result cache keyed by FBAS fingerprint (disabled if omitted)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: trace, debug, info, warning, error, none")
	flags.StringVar(&opts.logConfigFile, "log-config", "", "path to a YAML logging config file (per-package levels, output path, console format); overrides --log-level")

	return cmd
}

func run(ctx context.Context, opts *bulkOptions, args []string) error {
	if opts.logConfigFile != "" {
		if err := logger.LoadConfigFile(opts.logConfigFile); err != nil {
			return fmt.Errorf("loading log config: %w", err)
		}
	} else if err := logger.Configure(logger.Config{DefaultLevel: opts.logLevel}); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	inputs, err := resolveInputs(opts, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files to analyze")
	}

	var c *cache.Cache
	if opts.cachePath != "" {
		c, err = cache.Open(opts.cachePath)
		if err != nil {
			return fmt.Errorf("opening result cache: %w", err)
		}
		defer c.Close()
	}

	out := os.Stdout
	if opts.outputPath != "" {
		if _, err := os.Stat(opts.outputPath); err == nil {
			return fmt.Errorf("output file %q already exists, refusing to overwrite", opts.outputPath)
		}
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return fmt.Errorf("creating output file %q: %w", opts.outputPath, err)
		}
		defer f.Close()
		return runBulk(ctx, inputs, opts.concurrency, c, f)
	}

	return runBulk(ctx, inputs, opts.concurrency, c, out)
}

func resolveInputs(opts *bulkOptions, args []string) ([]inputDataPoint, error) {
	if opts.batchConfigPath != "" {
		return loadBatchConfig(opts.batchConfigPath)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no input paths given (and no --config batch file)")
	}
	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}
	return buildInputs(paths, opts.ignoreForLabel)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "bulk-fbas-analyzer:", err)
		os.Exit(1)
	}
}
