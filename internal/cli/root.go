package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// NewRootCmd builds the seqsum command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "seqsum",
		Short:   "Summarize sequencing run quality metrics",
		Version: version,
		Long: `seqsum reads the per-tile metrics of a sequencing run and reports
run, read, lane and surface level quality: cluster density, pass-filter rate,
phasing, alignment, error rate, first-cycle intensity, percent >= Q30 and yield.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is provided, print help
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newValidateCmd())
	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// newLogger returns a logfmt logger on w that drops lines below lvl.
func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn", "warning":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	case "none":
		opt = level.AllowNone()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}

// commandLogger builds the logger selected by the persistent flags.
func commandLogger(cmd *cobra.Command) (log.Logger, error) {
	lvl, _ := cmd.Flags().GetString("log-level")
	return newLogger(cmd.ErrOrStderr(), lvl)
}
