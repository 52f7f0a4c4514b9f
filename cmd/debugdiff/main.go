package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qri-io/debugdiff/internal/config"
	"github.com/qri-io/debugdiff/internal/log"
)

// errDifferences signals --exit-code found differences. it's reported by the
// exit status alone
var errDifferences = errors.New("documents differ")

// flags holds command line values. each one only overrides the config file
// when set explicitly
type flags struct {
	config        string
	format        string
	color         string
	listPolicy    string
	strictStructs bool
	maxDepth      int
	stats         bool
	exitCode      bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "debugdiff LEFT RIGHT",
		Short: "Structural diff of two debug-print dumps",
		Long: `debugdiff parses two files holding values in debug-print notation, the
output of derived debug printers, and reports how their structure differs.

Every difference reads the RIGHT file as what was expected and the LEFT file
as what was actually found.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], args[1], f.exitCode)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "config file (default $"+config.EnvVar+" or "+config.DefaultFile+")")
	fl.StringVar(&f.format, "format", defaults.Format, "output format: pretty or json")
	fl.StringVar(&f.color, "color", defaults.Color, "colorize output: auto, always or never")
	fl.StringVar(&f.listPolicy, "list-policy", defaults.ListPolicy.String(), "how one-sided list elements are reported: recorded or set")
	fl.BoolVar(&f.strictStructs, "strict-structs", defaults.StrictStructs, "report structs with different field counts as mismatched")
	fl.IntVar(&f.maxDepth, "max-depth", defaults.MaxDepth, "deepest value nesting accepted when parsing")
	fl.BoolVar(&f.stats, "stats", defaults.Stats, "print diff statistics")
	fl.BoolVar(&f.exitCode, "exit-code", false, "exit with status 1 when differences are found")

	return cmd
}

// resolve loads the config file & applies flags set on the command line
func (f *flags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		log.Debugf("loaded config from %s", cfg.Source)
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("color") {
		cfg.Color = f.color
	}
	if changed("list-policy") {
		if err := cfg.ListPolicy.UnmarshalText([]byte(f.listPolicy)); err != nil {
			return nil, err
		}
	}
	if changed("strict-structs") {
		cfg.StrictStructs = f.strictStructs
	}
	if changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if changed("stats") {
		cfg.Stats = f.stats
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	log.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDifferences) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
