package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/sync/errgroup"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/viewmodel"
)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false)
}

func runLists(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("lists", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, _, err := loadConfig(common, e)
	if err != nil {
		return err
	}
	client, logger, err := newClient(cfg, e)
	if err != nil {
		return err
	}
	defer logger.Close()

	lists, err := client.ListTaskLists(ctx)
	if err != nil {
		return fmt.Errorf("load lists: %w", err)
	}

	page := viewmodel.BuildListsPage(lists, e.now())
	fmt.Fprintln(e.stdout, page.CountLabel)
	if page.Empty {
		return nil
	}

	t := newTable().Headers("ID", "TITLE", "DESCRIPTION", "CREATED")
	for _, card := range page.Cards {
		t.Row(card.ID, card.Title, card.Description, card.Created)
	}
	fmt.Fprintln(e.stdout, t.String())
	return nil
}

func parseFilter(s string) (model.Filter, error) {
	f := model.Filter(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range model.Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (want all, open or closed)", s)
}

func runTasks(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var common commonFlags
	common.register(fs)
	filterFlag := fs.String("filter", "all", "all, open or closed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: taskflow tasks [--filter all|open|closed] <list-id>", errUsage)
	}
	listID := fs.Arg(0)
	filter, err := parseFilter(*filterFlag)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(common, e)
	if err != nil {
		return err
	}
	client, logger, err := newClient(cfg, e)
	if err != nil {
		return err
	}
	defer logger.Close()

	var (
		list  model.TaskList
		tasks []model.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = client.GetTaskList(gctx, listID)
		if err != nil {
			return fmt.Errorf("load list: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = client.ListTasks(gctx, listID)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	header := viewmodel.BuildHeader(list)
	page := viewmodel.BuildTasksPage(tasks, filter)

	fmt.Fprintln(e.stdout, header.Title)
	if header.Description != "" {
		fmt.Fprintln(e.stdout, header.Description)
	}
	fmt.Fprintf(e.stdout, "%d total · %d open · %d done\n", page.Stats.Total, page.Stats.Open, page.Stats.Done)
	if page.Empty {
		fmt.Fprintln(e.stdout, "No tasks")
		return nil
	}

	t := newTable().Headers("", "TITLE", "PRIORITY", "STATUS", "DUE", "ID")
	for _, item := range page.Items {
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		t.Row(check, item.Title, item.PriorityLabel, item.StatusLabel, item.DueLabel, item.ID)
	}
	fmt.Fprintln(e.stdout, t.String())
	return nil
}

func runAdd(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: taskflow add <list-id> \"Buy milk !low due:tomorrow\"", errUsage)
	}
	listID := fs.Arg(0)
	in := parseQuickAdd(strings.Join(fs.Args()[1:], " "), e.now())
	if _, err := model.NormalizeTitle(in.Title); err != nil {
		return errors.New("task title is empty after removing markers")
	}

	cfg, _, err := loadConfig(common, e)
	if err != nil {
		return err
	}
	client, logger, err := newClient(cfg, e)
	if err != nil {
		return err
	}
	defer logger.Close()

	task, err := client.CreateTask(ctx, listID, in)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	fmt.Fprintf(e.stdout, "Created: %s\n", task.Title)
	if due := viewmodel.FormatDueDate(task.DueDate); due != "" {
		fmt.Fprintf(e.stdout, "Due: %s\n", due)
	}
	if task.Priority != model.PriorityMedium {
		fmt.Fprintf(e.stdout, "Priority: %s\n", viewmodel.PriorityLabel(task.Priority))
	}
	fmt.Fprintf(e.stdout, "ID: %s\n", task.ID)
	return nil
}
