package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.WithHint(errors.New("history is disabled"),
	"set history.enabled = true in the configuration")

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear past calculations",
	}
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List past calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return a.printHistory(cmd, cmd.OutOrStdout(), limit)
		}),
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many entries (0 for all)")
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all past calculations",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if err := a.clearHistory(cmd); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintln("History cleared"))
			return nil
		}),
	}
	cmd.AddCommand(listCmd, clearCmd)
	return cmd
}

func (a *app) printHistory(cmd *cobra.Command, out io.Writer, limit int) error {
	if a.history == nil {
		return errHistoryDisabled
	}
	entries, err := a.history.Entries(commandContext(cmd))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No history")
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	data := pterm.TableData{{"#", "Expression", "Result", "Time"}}
	for i, e := range entries {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			a.display.Expression(e.Expression),
			a.display.Number(e.Result),
			e.Time().Local().Format(time.DateTime),
		})
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render history")
	}
	fmt.Fprintln(out, s)
	return nil
}

func (a *app) clearHistory(cmd *cobra.Command) error {
	if a.history == nil {
		return errHistoryDisabled
	}
	return a.history.Clear(commandContext(cmd))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
