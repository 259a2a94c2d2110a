package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/filtq/filtq/eval"
	"github.com/filtq/filtq/query"
)

// EvalResult holds the outcome of evaluating a query against a record.
type EvalResult struct {
	Matched bool `json:"matched"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <query> <record-file>",
		Short: "Evaluate a query against a YAML or JSON record",
		Long: `Evaluate a filter query against a record loaded from a file.

The record file is decoded as YAML; JSON documents load unchanged since
YAML is a superset. Exit code 0 means the record matched, 1 means it did
not (or the query was rejected), 2 means the record could not be loaded.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runEval(opts *RootOptions, input, recordPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(recordPath)
	if err != nil {
		_ = formatter.Error("E_RECORD", err.Error())
		return NewExitError(ExitCommandError, err.Error())
	}

	var record map[string]any
	if err := yaml.Unmarshal(data, &record); err != nil {
		_ = formatter.Error("E_RECORD", fmt.Sprintf("decode %s: %v", recordPath, err))
		return NewExitError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("loaded record %s (%d bytes)", recordPath, len(data))

	preds, err := query.Parse(input)
	if err != nil {
		_ = formatter.Error("E_SYNTAX", err.Error())
		return NewExitError(ExitFailure, err.Error())
	}

	matched := eval.Predicates(preds, eval.MapRecord(record))
	if opts.Format == "json" {
		if err := formatter.Success(EvalResult{Matched: matched}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, matched)
	}

	if !matched {
		return NewExitError(ExitFailure, "record did not match")
	}
	return nil
}
