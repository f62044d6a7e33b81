package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := a.sync.MarkCompleted(cmd.Context(), id); err != nil {
				return describe(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task %d completed\n", id)
			printSlot(cmd.OutOrStdout(), false, a.store.NotCompleted())
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if err := a.sync.Delete(cmd.Context(), id); err != nil {
				return describe(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task %d deleted\n", id)
			printSlot(cmd.OutOrStdout(), false, a.store.NotCompleted())
			return nil
		},
	}
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}
