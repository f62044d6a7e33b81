package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/todo/internal/client/wizard"
	"github.com/BuzzLyutic/todo/internal/model"
)

var errCancelled = errors.New("cancelled")

func newAddCmd(a *app) *cobra.Command {
	var (
		title       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new task",
		Long:  `Add a new task. Without --title the task is entered interactively: title first, then description.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				in  model.CreateTaskInput
				err error
			)
			if cmd.Flags().Changed("title") {
				in, err = fromFlags(title, description)
			} else {
				in, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			if err != nil {
				return err
			}

			if err := a.sync.Create(cmd.Context(), in); err != nil {
				return describe(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task created: %s\n", in.Title)
			printSlot(cmd.OutOrStdout(), false, a.store.NotCompleted())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	return cmd
}

// fromFlags runs the same wizard as the prompt so both paths validate alike.
func fromFlags(title, description string) (model.CreateTaskInput, error) {
	w := wizard.New()
	if err := w.Start(); err != nil {
		return model.CreateTaskInput{}, err
	}
	if err := w.SubmitTitle(title); err != nil {
		return model.CreateTaskInput{}, err
	}
	return w.SubmitDescription(description)
}

// prompt cancels on an empty title or EOF, before anything is sent.
func prompt(in io.Reader, out io.Writer) (model.CreateTaskInput, error) {
	w := wizard.New()
	lines := bufio.NewScanner(in)

	readLine := func(label string) (string, bool) {
		fmt.Fprint(out, label)
		if !lines.Scan() {
			return "", false
		}
		return strings.TrimRight(lines.Text(), "\r"), true
	}

	if err := w.Start(); err != nil {
		return model.CreateTaskInput{}, err
	}

	title, ok := readLine("Title: ")
	if !ok {
		w.Cancel()
		return model.CreateTaskInput{}, errCancelled
	}
	if err := w.SubmitTitle(title); err != nil {
		w.Cancel()
		return model.CreateTaskInput{}, errCancelled
	}

	description, ok := readLine("Description (optional): ")
	if !ok {
		w.Cancel()
		return model.CreateTaskInput{}, errCancelled
	}
	return w.SubmitDescription(description)
}
