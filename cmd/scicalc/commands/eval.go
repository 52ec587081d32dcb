package commands

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
)

func newEvalCmd(a *app) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate expressions",
		Long: `Evaluate each argument as an expression and print its result.

Successful results are added to the history. The command fails if any
expression fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, expr := range args {
				res := a.ev.Evaluate(expr)
				if !res.Ok() {
					failed++
					a.log.Debugw("Evaluation failed", "expression", expr, "error", res.Err())
					fmt.Fprint(cmd.ErrOrStderr(), pterm.Error.Sprintln(a.display.Expression(expr)+": "+a.display.Result(res)))
					continue
				}
				if quiet {
					fmt.Fprintln(cmd.OutOrStdout(), a.display.Result(res))
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", a.display.Expression(expr), a.display.Result(res))
				}
				a.record(commandContext(cmd), expr, res)
			}
			if failed > 0 {
				return errors.Newf("%d of %d expressions failed", failed, len(args))
			}
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only results")
	return cmd
}

// record adds a successful result to the history. History is best effort, so
// failures are logged and otherwise ignored.
func (a *app) record(ctx context.Context, expr string, res scicalc.Result) {
	if a.history == nil || !res.Ok() {
		return
	}
	if _, err := a.history.Add(ctx, expr, res.Value()); err != nil {
		a.log.Warnw("Failed to record history", "expression", expr, "error", err)
	}
}
