package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskflow/internal/client/models"
)

var errTaskIDRequired = errors.New("task id is required")

func (a *App) List(ctx context.Context, _ []string) error {
	list, err := a.taskService.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tasks.")
		return nil
	}
	for _, t := range list {
		fmt.Fprintln(a.out, t)
	}
	return nil
}

// Add creates a task. With a title on the command line nothing else is
// asked; otherwise title and description are prompted for.
func (a *App) Add(ctx context.Context, args []string) error {
	var in models.TaskInput

	title, err := a.argOrPrompt(args, "Enter title")
	if err != nil {
		return err
	}
	in.Title = &title

	if len(args) == 0 {
		desc, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
		if err != nil {
			return err
		}
		if desc != "" {
			in.Description = &desc
		}
	}

	t, err := a.taskService.Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created:", t)
	return nil
}

// Update prompts for each field; an empty answer keeps the current value.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errTaskIDRequired
	}

	var in models.TaskInput
	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"New title (empty to keep)", &in.Title},
		{"New description (empty to keep)", &in.Description},
		{"New status: pending, in-progress, completed (empty to keep)", &in.Status},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	t, err := a.taskService.Update(ctx, args[0], in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Updated:", t)
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errTaskIDRequired
	}
	t, err := a.taskService.Done(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Completed:", t)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errTaskIDRequired
	}
	if err := a.taskService.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Task removed.")
	return nil
}
