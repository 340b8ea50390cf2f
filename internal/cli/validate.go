package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/seqsum/internal/config"
	"github.com/wesleyorama2/seqsum/internal/output"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <run-file>...",
		Short: "Check run files without summarizing them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	noColor, _ := cmd.Flags().GetBool("no-color")
	out := cmd.OutOrStdout()
	noColor = noColor || !output.IsTerminal(out)

	failed := 0
	for _, path := range args {
		problems := validateFile(path)
		if len(problems) == 0 {
			fmt.Fprintf(out, "%s %s\n", output.SuccessIcon(noColor), path)
			continue
		}
		failed++
		fmt.Fprintf(out, "%s %s\n", output.ErrorIcon(noColor), path)
		for _, p := range problems {
			fmt.Fprintf(out, "    %s\n", p)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d run files are invalid", failed, len(args))
	}
	return nil
}

// validateFile returns every problem found in a run file.
func validateFile(path string) []string {
	doc, err := config.LoadRun(path)
	if err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			problems := make([]string, len(verrs))
			for i, e := range verrs {
				problems[i] = e.Error()
			}
			return problems
		}
		return []string{err.Error()}
	}
	if _, err := doc.RunMetrics(); err != nil {
		return []string{err.Error()}
	}
	return nil
}
