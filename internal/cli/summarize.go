package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wesleyorama2/seqsum/internal/config"
	"github.com/wesleyorama2/seqsum/internal/output"
	"github.com/wesleyorama2/seqsum/internal/summary"
)

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize <run-file>...",
		Short: "Summarize the metrics of one or more runs",
		Long: `Build the quality summary of each run file and print or export it.

Run files are YAML or JSON documents, optionally zstd-compressed (.zst).

Print a console report:
  seqsum summarize run.yaml

Export several runs as compressed JSON into a directory:
  seqsum summarize --format json --compress --output out/ run1.yaml run2.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSummarize,
	}

	cmd.Flags().StringP("format", "f", string(output.FormatText), "Output format: text, json or yaml")
	cmd.Flags().StringP("output", "o", "", "Output file, or directory when summarizing several runs")
	cmd.Flags().Bool("skip-median", false, "Do not compute medians")
	cmd.Flags().Bool("trim", false, "Drop lanes without tiles and order lanes by number")
	cmd.Flags().Bool("compress", false, "Compress exported files with zstd")
	cmd.Flags().IntP("concurrency", "c", runtime.NumCPU(), "Number of runs summarized at once")
	cmd.Flags().String("metrics-file", "", "Write summarization metrics in Prometheus text format to this file")
	return cmd
}

// summaryOptions holds the parsed flags of the summarize command.
type summaryOptions struct {
	format      output.OutputFormat
	output      string
	compress    bool
	noColor     bool
	concurrency int
	metricsFile string
	builder     summary.BuilderConfig
}

func summaryOptionsFromFlags(cmd *cobra.Command) (summaryOptions, error) {
	var opts summaryOptions
	formatName, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return opts, err
	}
	opts.format = format
	opts.output, _ = cmd.Flags().GetString("output")
	opts.compress, _ = cmd.Flags().GetBool("compress")
	opts.noColor, _ = cmd.Flags().GetBool("no-color")
	opts.concurrency, _ = cmd.Flags().GetInt("concurrency")
	opts.metricsFile, _ = cmd.Flags().GetString("metrics-file")
	opts.builder = summary.DefaultBuilderConfig()
	opts.builder.SkipMedian, _ = cmd.Flags().GetBool("skip-median")
	opts.builder.Trim, _ = cmd.Flags().GetBool("trim")

	if opts.concurrency < 1 {
		return opts, fmt.Errorf("concurrency must be at least 1, got %d", opts.concurrency)
	}
	if opts.compress && opts.output == "" {
		return opts, fmt.Errorf("--compress requires --output")
	}
	return opts, nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	opts, err := summaryOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	builder := summary.NewBuilderWithConfig(opts.builder, logger, summary.NewMetrics(reg))

	envelopes, err := summarizeFiles(cmd.Context(), builder, logger, args, opts.concurrency)
	if err != nil {
		return err
	}

	if err := writeEnvelopes(cmd.OutOrStdout(), envelopes, opts); err != nil {
		return err
	}
	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// summarizeFiles summarizes every file with at most concurrency passes in
// flight. Results keep the order of paths.
func summarizeFiles(ctx context.Context, builder *summary.Builder, logger log.Logger,
	paths []string, concurrency int) ([]output.Envelope, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	envelopes := make([]output.Envelope, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			env, err := summarizeFile(builder, path)
			if err != nil {
				level.Error(logger).Log("msg", "failed to summarize run", "file", path, "err", err)
				return fmt.Errorf("%s: %w", path, err)
			}
			envelopes[i] = env
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return envelopes, nil
}

func summarizeFile(builder *summary.Builder, path string) (output.Envelope, error) {
	m, err := config.LoadRunMetrics(path)
	if err != nil {
		return output.Envelope{}, err
	}
	var s summary.RunSummary
	pass, err := builder.Summarize(m, &s)
	if err != nil {
		return output.Envelope{}, err
	}
	return output.NewEnvelope(pass.ID, path, pass.Started, &s), nil
}

func writeEnvelopes(stdout io.Writer, envelopes []output.Envelope, opts summaryOptions) error {
	if opts.output == "" {
		scheme := output.SchemeFor(stdout, opts.noColor)
		for _, env := range envelopes {
			if err := output.WriteEnvelope(stdout, env, opts.format, scheme); err != nil {
				return err
			}
		}
		return nil
	}

	for _, env := range envelopes {
		path, err := outputPath(opts.output, env.Source, len(envelopes), opts.format, opts.compress)
		if err != nil {
			return err
		}
		if err := output.WriteFile(path, env, opts.format); err != nil {
			return err
		}
	}
	return nil
}

// outputPath picks the export file of a run. A single run goes to dest
// unless dest is a directory; several runs always go into dest as a
// directory, named after their source files.
func outputPath(dest, source string, runs int, format output.OutputFormat, compress bool) (string, error) {
	info, err := os.Stat(dest)
	isDir := err == nil && info.IsDir()
	if runs == 1 && !isDir && !strings.HasSuffix(dest, string(os.PathSeparator)) {
		if compress && !strings.HasSuffix(dest, ".zst") {
			dest += ".zst"
		}
		return dest, nil
	}
	if !isDir {
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	name := filepath.Base(source)
	for _, ext := range []string{".zst", ".json", ".yaml", ".yml"} {
		name = strings.TrimSuffix(name, ext)
	}
	name += ".summary" + format.Extension()
	if compress {
		name += ".zst"
	}
	return filepath.Join(dest, name), nil
}
