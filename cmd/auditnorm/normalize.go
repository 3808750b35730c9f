package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/config"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/logger"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/runner"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/sink"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/source"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [files...]",
	Short: "Convert raw auditd logs → normalized record lines",
	RunE:  runNormalize,
}

var (
	flagInputs  []string
	flagOutput  string
	flagSink    string
	flagDSN     string
	flagSince   string
	flagUntil   string
	flagSummary bool
)

func init() {
	normalizeCmd.Flags().StringSliceVar(&flagInputs, "input", nil, "input audit log file(s), in order (default stdin)")
	normalizeCmd.Flags().StringVar(&flagOutput, "output", "", "output file (implies --sink file)")
	normalizeCmd.Flags().StringVar(&flagSink, "sink", "", "sink: stdout|file|postgres|mysql|kafka")
	normalizeCmd.Flags().StringVar(&flagDSN, "dsn", "", "database DSN for the postgres and mysql sinks")
	normalizeCmd.Flags().StringVar(&flagSince, "since", "", "skip events stamped before this time")
	normalizeCmd.Flags().StringVar(&flagUntil, "until", "", "skip events stamped after this time")
	normalizeCmd.Flags().BoolVar(&flagSummary, "summary", false, "print per-category counts to stderr")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	// Override config with command line flags
	if inputs := inputFiles(flagInputs, args); len(inputs) > 0 {
		cfg.Input.Files = inputs
	}
	if flagOutput != "" {
		cfg.Output.File = flagOutput
		if flagSink == "" {
			cfg.Output.Sink = "file"
		}
	}
	if flagSink != "" {
		cfg.Output.Sink = flagSink
	}
	if flagDSN != "" {
		cfg.Output.DSN = flagDSN
	}
	if flagSince != "" {
		cfg.Input.Since = flagSince
	}
	if flagUntil != "" {
		cfg.Input.Until = flagUntil
	}

	window, err := source.ParseWindow(cfg.Input.Since, cfg.Input.Until)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := sink.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create sink: %w", err)
	}

	src := source.NewFiles(source.Options{Window: window}, cfg.Input.Files)
	defer src.Close()

	stats, runErr := runner.RunNormalize(ctx, src, out, cfg)
	if err := out.Close(); err != nil {
		logger.L().Errorw("failed to close sink", "err", err.Error())
		if runErr == nil {
			runErr = fmt.Errorf("close sink: %w", err)
		}
	}
	if flagSummary {
		stats.PrintSummary(os.Stderr)
	}
	return runErr
}

// inputFiles returns the --input files followed by the positional ones, in a
// fresh slice so the flag value is never written through.
func inputFiles(flags, args []string) []string {
	return slices.Concat(flags, args)
}
