package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Todo is one companion todo-list item.
type Todo struct {
	ID        int64
	Text      string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AddTodo inserts a new todo and returns it. Text is trimmed;
// whitespace-only text is rejected.
func (db *DB) AddTodo(text string) (*Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("todo text is empty")
	}

	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339)
	result, err := db.conn.Exec(
		"INSERT INTO todos (text, completed, created_at, updated_at) VALUES (?, false, ?, ?)",
		text, stamp, stamp,
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Todo{ID: id, Text: text, CreatedAt: now, UpdatedAt: now}, nil
}

// ListTodos returns all todos in creation order.
func (db *DB) ListTodos() ([]Todo, error) {
	rows, err := db.conn.Query(
		"SELECT id, text, completed, created_at, updated_at FROM todos ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		var created, updated string
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &created, &updated); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, created)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// GetTodo returns a todo by ID, or nil if it does not exist.
func (db *DB) GetTodo(id int64) (*Todo, error) {
	var t Todo
	var created, updated string
	row := db.conn.QueryRow(
		"SELECT id, text, completed, created_at, updated_at FROM todos WHERE id = ?", id)
	if err := row.Scan(&t.ID, &t.Text, &t.Completed, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, created)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &t, nil
}

// SetTodoCompleted marks a todo done or not done.
func (db *DB) SetTodoCompleted(id int64, completed bool) error {
	return db.updateTodo(id,
		"UPDATE todos SET completed = ?, updated_at = ? WHERE id = ?",
		completed, time.Now().UTC().Format(time.RFC3339), id)
}

// UpdateTodoText replaces a todo's text.
func (db *DB) UpdateTodoText(id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("todo text is empty")
	}
	return db.updateTodo(id,
		"UPDATE todos SET text = ?, updated_at = ? WHERE id = ?",
		text, time.Now().UTC().Format(time.RFC3339), id)
}

// DeleteTodo removes a todo.
func (db *DB) DeleteTodo(id int64) error {
	return db.updateTodo(id, "DELETE FROM todos WHERE id = ?", id)
}

func (db *DB) updateTodo(id int64, query string, args ...any) error {
	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no todo with id %d", id)
	}
	return nil
}
