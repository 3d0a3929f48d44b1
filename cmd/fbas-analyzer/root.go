// Command fbas-analyzer runs a one-shot structural analysis over a single
// FBAS described in stellarbeat.org "nodes" JSON format.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "FBAS_ANALYZER"

const (
	keyConfigFile = "config"

	keyMinimalQuorums          = "get-minimal-quorums"
	keyCheckQuorumIntersection = "check-quorum-intersection"
	keyMinimalBlockingSets     = "get-minimal-blocking-sets"
	keyMinimalSplittingSets    = "get-minimal-splitting-sets"
	keyAll                     = "all"
	keyDescribe                = "describe"
	keySilent                  = "silent"
	keyOrganizations           = "use-organizations"
	keyOutputPretty            = "output-pretty"
	keyWithoutNodes            = "without-nodes"
	keyLogLevel                = "log-level"
	keyLogConfig               = "log-config"
)

type options struct {
	nodesPath               string
	minimalQuorums          bool
	checkQuorumIntersection bool
	minimalBlockingSets     bool
	minimalSplittingSets    bool
	all                     bool
	describe                bool
	silent                  bool
	organizationsPath       string
	outputPretty            bool
	withoutNodes            []string
	logLevel                string
	logConfigFile           string
	configFile              string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "fbas-analyzer [nodes.json]",
		Short:         "Analyze the structure of a Federated Byzantine Agreement System",
		Long: "fbas-analyzer parses a stellarbeat.org \"nodes\" JSON document and reports\n" +
			"on its minimal quorums, quorum intersection, minimal blocking sets, and\n" +
			"minimal splitting sets.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindConfig(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.nodesPath = args[0]
			}
			return runAnalyze(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.minimalQuorums, keyMinimalQuorums, "q", false, "output (and find) minimal quorums")
	flags.BoolVarP(&opts.checkQuorumIntersection, keyCheckQuorumIntersection, "c", false, "check for quorum intersection, output result")
	flags.BoolVarP(&opts.minimalBlockingSets, keyMinimalBlockingSets, "b", false, "output (and find) minimal blocking sets")
	flags.BoolVarP(&opts.minimalSplittingSets, keyMinimalSplittingSets, "i", false, "output minimal splitting sets (minimal indispensable sets for safety)")
	flags.BoolVarP(&opts.all, keyAll, "a", false, "output (and find) everything")
	flags.BoolVarP(&opts.describe, keyDescribe, "d", false, "output metrics instead of node lists")
	flags.BoolVarP(&opts.silent, keySilent, "s", false, "silence the commentary about what is what and what it means")
	flags.StringVarP(&opts.organizationsPath, keyOrganizations, "o", "", "collapse nodes by organization; path to a stellarbeat.org \"organizations\" JSON file")
	flags.BoolVarP(&opts.outputPretty, keyOutputPretty, "p", false, "identify nodes by public key (or organization name) instead of index")
	flags.StringSliceVarP(&opts.withoutNodes, keyWithoutNodes, "x", nil, "pretend these public keys have permanently crashed before analyzing")
	flags.StringVar(&opts.logLevel, keyLogLevel, "info", "log level: trace, debug, info, warning, error, none")
	flags.StringVar(&opts.logConfigFile, keyLogConfig, "", "path to a YAML logging config file (per-package levels, output path, console format); overrides --log-level")
	flags.StringVar(&opts.configFile, keyConfigFile, "", "path to a YAML config file providing defaults for the flags above")

	return cmd
}

func bindConfig(cmd *cobra.Command, opts *options) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", opts.configFile, err)
		}
	}

	var bindErrs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == keyConfigFile {
			return
		}
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				bindErrs = append(bindErrs, err)
				return
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				bindErrs = append(bindErrs, fmt.Errorf("applying config value for %q: %w", f.Name, err))
			}
		}
	})
	return errors.Join(bindErrs...)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "fbas-analyzer:", err)
		os.Exit(1)
	}
}
