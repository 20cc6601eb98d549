package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/store"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the companion todo list",
	Long: `A plain todo list tracked alongside the timers. Items are independent
of the time-accrual engine; completing one earns nothing but satisfaction.

Examples:
  focuswatch todo add write the lab report
  focuswatch todo list
  focuswatch todo done 3
  focuswatch todo edit 3 rewrite the lab report
  focuswatch todo rm 3`,
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *store.DB) error {
			todo, err := db.AddTodo(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("added #%d %s\n", todo.ID, todo.Text)
			return nil
		})
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *store.DB) error {
			todos, err := db.ListTodos()
			if err != nil {
				return err
			}
			if len(todos) == 0 {
				fmt.Println(output.StyleMuted.Render("nothing to do"))
				return nil
			}
			tbl := output.NewTable("ID", "", "TODO")
			for _, t := range todos {
				mark := " "
				text := t.Text
				if t.Completed {
					mark = "✓"
					text = output.StyleMuted.Render(text)
				}
				tbl.AddRow(strconv.FormatInt(t.ID, 10), mark, text)
			}
			tbl.Print()
			return nil
		})
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo done",
	Args:  cobra.ExactArgs(1),
	RunE:  setCompleted(true),
}

var todoUndoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Mark a todo not done",
	Args:  cobra.ExactArgs(1),
	RunE:  setCompleted(false),
}

var todoEditCmd = &cobra.Command{
	Use:   "edit <id> <text>...",
	Short: "Replace a todo's text",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *store.DB) error {
			return db.UpdateTodoText(id, strings.Join(args[1:], " "))
		})
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *store.DB) error {
			return db.DeleteTodo(id)
		})
	},
}

func init() {
	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoDoneCmd, todoUndoneCmd, todoEditCmd, todoRmCmd)
	rootCmd.AddCommand(todoCmd)
}

func setCompleted(done bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *store.DB) error {
			return db.SetTodoCompleted(id, done)
		})
	}
}

func parseTodoID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", s)
	}
	return id, nil
}
