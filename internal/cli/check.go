package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filtq/filtq/query"
)

// CheckResult holds the outcome of parsing a query.
type CheckResult struct {
	Valid     bool   `json:"valid"`
	Canonical string `json:"canonical,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <query>",
		Short: "Parse a query and report whether it is valid",
		Long: `Parse a filter query without evaluating it.

Prints the canonical form on success. Syntax errors (including invalid
date literals) are reported with their byte offset.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
}

func runCheck(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	preds, err := query.Parse(input)
	if err != nil {
		_ = formatter.Error("E_SYNTAX", err.Error())
		return NewExitError(ExitFailure, err.Error())
	}

	canonical := query.Serialize(preds)
	if opts.Format == "json" {
		return formatter.Success(CheckResult{Valid: true, Canonical: canonical})
	}
	fmt.Fprintln(formatter.Writer, "✓ query ok")
	fmt.Fprintln(formatter.Writer, canonical)
	return nil
}
