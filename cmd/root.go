package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnolang/revfix/internal/probe"
	"github.com/gnolang/revfix/run"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile   string
	timeout   time.Duration
	verbose   bool
	steps     int
	probeKind string
	jsonOut   bool
	noColor   bool

	logger *zap.Logger
	config run.Config
)

var rootCmd = &cobra.Command{
	Use:           "revfix",
	Short:         "revfix - reversible computation fixtures with operation tallies",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}

		config, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		if !config.Output.Color {
			color.NoColor = true
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if logger != nil {
			logger.Error("Command failed", zap.Error(err))
		} else {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
		}
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default "+run.DefaultConfigFile+" if present)")
	flags.DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for the whole command")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.IntVar(&steps, "steps", run.DefaultSteps, "Iteration bound for every procedure")
	flags.StringVar(&probeKind, "probe", probe.KindHeap, "Memory probe: heap or rss")
	flags.BoolVar(&jsonOut, "json", false, "Output summaries in JSON format")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fibCmd)
	rootCmd.AddCommand(counterCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(watchCmd)
}

// newLogger writes to stderr so stdout carries only procedure output.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (run.Config, error) {
	cfg, err := run.LoadConfig(cfgFile)
	if err != nil {
		return cfg, err
	}
	return applyFlags(cmd, cfg)
}

func applyFlags(cmd *cobra.Command, cfg run.Config) (run.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("probe") {
		cfg.Probe = probeKind
	}
	if flags.Changed("json") && jsonOut {
		cfg.Output.Format = run.FormatJSON
	}
	if flags.Changed("no-color") && noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
