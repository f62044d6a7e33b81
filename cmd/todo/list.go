package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/todo/internal/client/cache"
)

func newListCmd(a *app) *cobra.Command {
	var (
		completed bool
		page      int
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of tasks",
		Long:  `Show the cached page of not-completed (or, with --completed, completed) tasks. The page is fetched when the cache is empty, when --page is given, or with --refresh.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var err error
			switch {
			case cmd.Flags().Changed("page"):
				if page < 1 {
					return fmt.Errorf("page must be positive, got %d", page)
				}
				err = a.listPage(cmd, completed, page)
			case refresh:
				err = a.listPage(cmd, completed, a.slot(completed).Page)
			case completed:
				err = a.sync.EnsureCompleted(ctx)
			default:
				err = a.sync.EnsureNotCompleted(ctx)
			}
			if err != nil {
				return describe(err)
			}

			printSlot(cmd.OutOrStdout(), completed, a.slot(completed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&completed, "completed", "c", false, "Show completed tasks")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to fetch")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Re-fetch the cached page")
	return cmd
}

func (a *app) listPage(cmd *cobra.Command, completed bool, page int) error {
	if completed {
		return a.sync.ListCompleted(cmd.Context(), page)
	}
	return a.sync.ListNotCompleted(cmd.Context(), page)
}

func (a *app) slot(completed bool) cache.Slot {
	if completed {
		return a.store.Completed()
	}
	return a.store.NotCompleted()
}

func printSlot(w io.Writer, completed bool, slot cache.Slot) {
	label := "To do"
	if completed {
		label = "Done"
	}

	if len(slot.Tasks) == 0 {
		fmt.Fprintf(w, "%s: no tasks on page %d.\n", label, slot.Page)
		return
	}

	fmt.Fprintf(w, "%s (page %d of %d):\n", label, slot.Page, slot.TotalPages)
	for _, t := range slot.Tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(w, "  %s %d  %s\n", mark, t.ID, t.Title)
		if t.Description != nil && *t.Description != "" {
			fmt.Fprintf(w, "         %s\n", *t.Description)
		}
	}
}
