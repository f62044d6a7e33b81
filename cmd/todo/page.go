package main

import (
	"github.com/spf13/cobra"
)

func newNextCmd(a *app) *cobra.Command {
	return newPageCmd(a, "next", "Go to the next page", +1)
}

func newPrevCmd(a *app) *cobra.Command {
	return newPageCmd(a, "prev", "Go to the previous page", -1)
}

func newPageCmd(a *app, use, short string, delta int) *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensure(cmd, completed); err != nil {
				return describe(err)
			}

			var err error
			if delta > 0 {
				err = a.sync.NextPage(ctx, completed)
			} else {
				err = a.sync.PrevPage(ctx, completed)
			}
			if err != nil {
				return describe(err)
			}

			printSlot(cmd.OutOrStdout(), completed, a.slot(completed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&completed, "completed", "c", false, "Page through completed tasks")
	return cmd
}

// ensure loads the slot first, otherwise its page count is unknown.
func (a *app) ensure(cmd *cobra.Command, completed bool) error {
	if completed {
		return a.sync.EnsureCompleted(cmd.Context())
	}
	return a.sync.EnsureNotCompleted(cmd.Context())
}
