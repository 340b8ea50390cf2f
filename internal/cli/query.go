package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/seqsum/internal/output"
	"github.com/wesleyorama2/seqsum/internal/summary"
	"github.com/wesleyorama2/seqsum/pkg/jsonpath"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <file> <path>...",
		Short: "Extract values from a run summary",
		Long: `Evaluate JSONPath expressions against a run summary.

The file is either a JSON export written by "seqsum summarize --format json"
or a run file, which is summarized first. Paths address the export envelope:

  seqsum query run.yaml '$.summary.total.percent_gt_q30'
  seqsum query summary.json.zst '$.summary.reads[0].lanes[*].density.mean'`,
		Args: cobra.MinimumNArgs(2),
		RunE: runQuery,
	}
	cmd.Flags().Bool("skip-median", false, "Do not compute medians when summarizing a run file")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	doc, err := loadQueryDocument(cmd, args[0])
	if err != nil {
		return err
	}

	paths := args[1:]
	out := cmd.OutOrStdout()
	if len(paths) == 1 {
		value, err := jsonpath.Extract(doc, paths[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	}

	named := make(map[string]string, len(paths))
	for _, p := range paths {
		named[p] = p
	}
	values, err := jsonpath.ExtractMultiple(doc, named)
	for _, p := range paths {
		if v, ok := values[p]; ok {
			fmt.Fprintf(out, "%s = %s\n", p, v)
		}
	}
	return err
}

// loadQueryDocument returns the export envelope of path as JSON, summarizing
// it first when path is a run file.
func loadQueryDocument(cmd *cobra.Command, path string) (string, error) {
	if isExport(path) {
		data, err := output.ReadFile(path)
		if err != nil {
			return "", err
		}
		if gjson.GetBytes(data, "summary_id").Exists() {
			return string(data), nil
		}
	}

	logger, err := commandLogger(cmd)
	if err != nil {
		return "", err
	}
	config := summary.DefaultBuilderConfig()
	config.SkipMedian, _ = cmd.Flags().GetBool("skip-median")
	env, err := summarizeFile(summary.NewBuilderWithConfig(config, logger, nil), path)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// isExport reports whether path may hold a JSON export.
func isExport(path string) bool {
	return strings.HasSuffix(strings.TrimSuffix(strings.ToLower(path), ".zst"), ".json")
}
