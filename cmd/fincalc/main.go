package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cliOptions holds the flags shared by every calculation command.
type cliOptions struct {
	outputFormat string
	logLevel     string
	schedule     bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "fincalc",
		Short:         "Personal finance calculators",
		Long:          "Amortization, compound interest, mortgage, retirement and student loan calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.outputFormat, "output-format", "", "output format override: pretty, csv, json, yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.schedule, "schedule", false, "include the full payment schedule where available")

	root.AddCommand(
		runCmd(opts),
		amortizationCmd(opts),
		compoundCmd(opts),
		mortgageCmd(opts),
		retirementCmd(opts),
		studentLoanCmd(opts),
		versionCmd(),
	)
	return root
}

func runCmd(opts *cliOptions) *cobra.Command {
	var configLocation string
	var export bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every calculation in a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var conf *config.Configuration
			var err error
			if configLocation == "-" {
				conf, err = config.LoadConfigurationFromReader(cmd.InOrStdin())
			} else {
				conf, err = config.LoadConfiguration(configLocation)
			}
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			if export {
				exported, err := conf.ExportYAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(exported)
				return err
			}

			return execute(cmd, opts, conf, false)
		},
	}
	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to configuration file, or - to read it from stdin")
	cmd.Flags().BoolVar(&export, "export", false, "print the loaded configuration as YAML instead of running it")
	return cmd
}

// execute runs conf through the calculator and writes the reports. With
// failOnError a calculation error is also returned so the process exits non-zero.
func execute(cmd *cobra.Command, opts *cliOptions, conf *config.Configuration, failOnError bool) error {
	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	reports, err := calculator.Run(logger, conf, calculator.Options{Schedule: opts.schedule})
	if err != nil {
		return fmt.Errorf("failed to run calculations: %w", err)
	}

	if err := output.Write(cmd.OutOrStdout(), outputFormat, reports); err != nil {
		return err
	}

	if failOnError {
		for _, report := range reports {
			if report.Error != "" {
				return errors.New(report.Error)
			}
		}
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fincalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(cmd.OutOrStdout(), bi.Main.Path)
			}
		},
	}
}

// loadDotEnv reads FINCALC_* defaults from a .env file when one exists.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func main() {
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"error\", \"msg\": \"%v\"}\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}
