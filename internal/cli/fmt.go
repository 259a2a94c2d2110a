package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filtq/filtq/query"
)

// FmtResult holds the canonical form of a query.
type FmtResult struct {
	Canonical string `json:"canonical"`
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "fmt <query>",
		Short:         "Reprint a query in canonical form",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(rootOpts, args[0], cmd)
		},
	}
}

func runFmt(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	preds, err := query.Parse(input)
	if err != nil {
		_ = formatter.Error("E_SYNTAX", err.Error())
		return NewExitError(ExitFailure, err.Error())
	}

	canonical := query.Serialize(preds)
	if opts.Format == "json" {
		return formatter.Success(FmtResult{Canonical: canonical})
	}
	fmt.Fprintln(formatter.Writer, canonical)
	return nil
}
