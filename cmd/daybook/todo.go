package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/format"
	"github.com/daybook-app/daybook/internal/search"
	"github.com/spf13/cobra"
)

type todoClient interface {
	AddTodo(ctx context.Context, text string) (domain.TodoItem, error)
	ToggleTodo(id int64) (domain.TodoItem, error)
	EditTodo(id int64, text string) (domain.TodoItem, error)
	RemoveTodo(ctx context.Context, id int64) (domain.TodoItem, error)
	ClearTodos(ctx context.Context) (int, error)
	ListTodos(filter domain.TodoFilter, order domain.TodoSort) []domain.TodoItem
	Theme() domain.Theme
	T(key string, args ...any) string
}

const todoCommandLong = `Manage the todo list.

USAGE:
    daybook todo <subcommand>

SUBCOMMANDS:
    add <text>         Add a task
    list               List tasks
    done <id>          Toggle a task between done and pending
    edit <id> <text>   Change the text of a task
    rm <id>            Delete a task
    clear              Delete every task

EXAMPLES:
    daybook todo add buy milk
    daybook todo list --filter pending --sort alphabetical --format table
    daybook todo list --search "milk|bread" --search-mode regex
    daybook todo done 1767340800000`

// NewTodoCmd creates the todo command with explicit dependencies.
func NewTodoCmd(client todoClient) *cobra.Command {
	if client == nil {
		panic("NewTodoCmd: client dependency cannot be nil")
	}

	todoCmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"todos"},
		Short:   "Manage the todo list",
		Long:    todoCommandLong,
	}
	todoCmd.AddCommand(
		newTodoAddCmd(client),
		newTodoListCmd(client),
		newTodoDoneCmd(client),
		newTodoEditCmd(client),
		newTodoRemoveCmd(client),
		newTodoClearCmd(client),
	)
	return todoCmd
}

func newTodoAddCmd(client todoClient) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("add requires the task text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := client.AddTodo(cmd.Context(), strings.Join(args, " "))
			return err
		},
	}
}

func newTodoListCmd(client todoClient) *cobra.Command {
	var filterFlag, sortFlag, formatFlag, searchFlag, searchModeFlag string

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := domain.ParseTodoFilter(filterFlag)
			if err != nil {
				return err
			}
			order, err := domain.ParseTodoSort(sortFlag)
			if err != nil {
				return err
			}
			formatterType, err := format.ParseFormatterType(formatFlag)
			if err != nil {
				return err
			}

			provider, err := search.NewProvider(searchModeFlag)
			if err != nil {
				return err
			}
			if v, ok := provider.(interface{ Validate(string) error }); ok && searchFlag != "" {
				if err := v.Validate(searchFlag); err != nil {
					return fmt.Errorf("invalid search pattern: %w", err)
				}
			}

			items := search.Filter(client.ListTodos(filter, order), provider, searchFlag)
			if len(items) == 0 && formatterType != format.FormatterTypeJSON {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), client.T("todo_empty_list"))
				return nil
			}
			formatter := format.NewFormatter(formatterType, format.NewStyles(client.Theme()))
			return formatter.FormatTodos(items, cmd.OutOrStdout())
		},
	}
	listCmd.Flags().StringVar(&filterFlag, "filter", "all", "Filter tasks: all, pending, completed")
	listCmd.Flags().StringVar(&sortFlag, "sort", "newest", "Sort tasks: newest, oldest, alphabetical")
	listCmd.Flags().StringVar(&formatFlag, "format", "simple", "Output format: simple, compact, table, json")
	listCmd.Flags().StringVar(&searchFlag, "search", "", "Only list tasks matching this query")
	listCmd.Flags().StringVar(&searchModeFlag, "search-mode", search.ModeSubstring, "Search mode: substring, regex, token")
	return listCmd
}

func newTodoDoneCmd(client todoClient) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between done and pending",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTodoID(args[0])
			if err != nil {
				return err
			}
			_, err = client.ToggleTodo(id)
			return err
		},
	}
}

func newTodoEditCmd(client todoClient) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Change the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTodoID(args[0])
			if err != nil {
				return err
			}
			_, err = client.EditTodo(id, strings.Join(args[1:], " "))
			return err
		},
	}
}

func newTodoRemoveCmd(client todoClient) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTodoID(args[0])
			if err != nil {
				return err
			}
			_, err = client.RemoveTodo(cmd.Context(), id)
			return err
		},
	}
}

func newTodoClearCmd(client todoClient) *cobra.Command {
	var force bool

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd, client.T("confirm_clear")) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
				return nil
			}
			_, err := client.ClearTodos(cmd.Context())
			return err
		},
	}
	clearCmd.Flags().BoolVar(&force, "force", false, "Clear without confirmation")
	return clearCmd
}

func parseTodoID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %s", value)
	}
	return id, nil
}

// confirm asks prompt on the command output and reads a y/yes answer from its input.
func confirm(cmd *cobra.Command, prompt string) bool {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt+" ")
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
