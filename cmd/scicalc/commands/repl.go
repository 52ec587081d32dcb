package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/input"
)

const replHelp = `Enter an expression to evaluate it. A line starting with an operator
continues from the last result.
  :history   show recent calculations
  :clear     clear history
  :m+ :m-    add the current value to memory, or subtract it
  :mr :mc    recall or clear memory
  :q         quit`

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator",
		Long:  "Read expressions line by line and print their results.\n\n" + replHelp,
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return a.repl(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
		}),
	}
}

func (a *app) repl(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	ctrl := input.New(a.ev,
		input.MaxLength(a.cfg.Evaluator.MaxExpressionLength),
		input.WithLogger(a.log.Named("input")),
	)
	ctrl.OnResult(func(expr string, res scicalc.Result) {
		a.record(commandContext(cmd), expr, res)
	})

	// continued is whether the controller holds a result that a line
	// beginning with an operator applies to.
	continued := false
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case ":q", ":quit", ":exit":
			return nil
		case ":help", "?":
			fmt.Fprintln(out, replHelp)
			continue
		case ":history":
			if err := a.printHistory(cmd, out, 10); err != nil {
				fmt.Fprint(out, pterm.Error.Sprintln(err))
			}
			continue
		case ":clear":
			if err := a.clearHistory(cmd); err != nil {
				fmt.Fprint(out, pterm.Error.Sprintln(err))
			}
			continue
		case ":m+", ":m-":
			op := ctrl.MemoryAdd
			if line == ":m-" {
				op = ctrl.MemorySubtract
			}
			if err := op(); err != nil {
				fmt.Fprint(out, pterm.Error.Sprintln(a.display.Message(scicalc.Classify(err))))
				continue
			}
			fmt.Fprintf(out, "M = %s\n", a.display.Number(ctrl.Memory()))
			continue
		case ":mr":
			if !continued {
				// Without a result to continue, the value starts a new
				// expression.
				ctrl.Clear()
			}
			if err := ctrl.MemoryRecall(); err != nil {
				fmt.Fprint(out, pterm.Error.Sprintln(err))
				continue
			}
			continued = true
			fmt.Fprintln(out, a.display.Expression(ctrl.Expression()))
			continue
		case ":mc":
			ctrl.MemoryClear()
			continue
		}

		expr := line
		if continued && startsWithOperator(line) {
			expr = ctrl.Expression() + line
		}
		var res scicalc.Result
		if err := ctrl.Set(expr); err != nil {
			res = a.ev.Evaluate(expr)
		} else {
			res = ctrl.Calculate()
		}
		if !res.Ok() {
			// The failed expression stays in the controller, but the next
			// line does not continue it.
			continued = false
			fmt.Fprint(out, pterm.Error.Sprintln(a.display.Result(res)))
			continue
		}
		continued = true
		fmt.Fprintf(out, "= %s\n", a.display.Result(res))
	}
	return sc.Err()
}

func startsWithOperator(line string) bool {
	for _, op := range []string{"+", "-", "*", "/", "%", "^", "!", "×", "÷", "−"} {
		if strings.HasPrefix(line, op) {
			return true
		}
	}
	return false
}
