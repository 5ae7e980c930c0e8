package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Task struct {
	ID          int64      `json:"id"`
	Num         int64      `json:"num"` // display order, mirrors id after creation
	Category    string     `json:"category"`
	TaskTitle   string     `json:"task_title"`
	Description *string    `json:"description"`
	Assignee    *string    `json:"assignee"`
	StartDate   *string    `json:"start_date"` // YYYY-MM-DD
	DueDate     *string    `json:"due_date"`   // YYYY-MM-DD
	Progress    int        `json:"progress"`
	Status      TaskStatus `json:"status"`
	Memo        *string    `json:"memo"`
	MenuName    *string    `json:"menu_name"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateTaskInput struct {
	Category    string      `json:"category"`
	TaskTitle   string      `json:"task_title"`
	Description *string     `json:"description"`
	Assignee    *string     `json:"assignee"`
	StartDate   *string     `json:"start_date"`
	DueDate     *string     `json:"due_date"`
	Progress    *int        `json:"progress"`
	Status      *TaskStatus `json:"status"`
	Memo        *string     `json:"memo"`
	MenuName    *string     `json:"menu_name"`
}

const taskColumns = `id, num, category, task_title, description, assignee,
	start_date, due_date, progress, status, memo, menu_name, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var startDate, dueDate sql.NullTime

	err := row.Scan(
		&t.ID, &t.Num, &t.Category, &t.TaskTitle, &t.Description, &t.Assignee,
		&startDate, &dueDate, &t.Progress, &t.Status, &t.Memo, &t.MenuName,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		s := startDate.Time.Format("2006-01-02")
		t.StartDate = &s
	}
	if dueDate.Valid {
		s := dueDate.Time.Format("2006-01-02")
		t.DueDate = &s
	}
	return &t, nil
}

// ListTasks returns every task ordered by its display number
func ListTasks(db *sql.DB) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY num ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ListTasksByAssignee returns the tasks of one assignee, same ordering as ListTasks
func ListTasksByAssignee(db *sql.DB, assignee string) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assignee = $1 ORDER BY num ASC`

	rows, err := db.Query(query, assignee)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks by assignee: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ListAssignees returns the distinct non-null assignee names, ordered by the
// lowest display number of each assignee's tasks
func ListAssignees(db *sql.DB) ([]string, error) {
	query := `SELECT assignee FROM tasks WHERE assignee IS NOT NULL
		GROUP BY assignee ORDER BY MIN(num) ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignees: %w", err)
	}
	defer rows.Close()

	assignees := []string{}
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("failed to scan assignee: %w", err)
		}
		assignees = append(assignees, a)
	}
	return assignees, rows.Err()
}

// ListCategories returns the distinct category names, ordered by the lowest
// display number within each category
func ListCategories(db *sql.DB) ([]string, error) {
	query := `SELECT category FROM tasks GROUP BY category ORDER BY MIN(num) ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Validate checks the input before any SQL is issued
func (in *CreateTaskInput) Validate() error {
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.TaskTitle) == "" {
		return fmt.Errorf("%w: task_title is required", ErrInvalidInput)
	}
	if in.Progress != nil && (*in.Progress < 0 || *in.Progress > 100) {
		return fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalidInput)
	}
	if in.Status != nil && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *in.Status)
	}
	if err := validateDate(in.StartDate); err != nil {
		return fmt.Errorf("%w: start_date: %v", ErrInvalidInput, err)
	}
	if err := validateDate(in.DueDate); err != nil {
		return fmt.Errorf("%w: due_date: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateDate(s *string) error {
	if s == nil {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD, got %q", *s)
	}
	return nil
}

// CreateTask inserts a task and mirrors the assigned id into num. The id is
// not known before the insert, so both statements run in one transaction:
// either the row exists with num == id, or it does not exist at all.
func CreateTask(db *sql.DB, input CreateTaskInput) (task *Task, err error) {
	if err = input.Validate(); err != nil {
		return nil, err
	}

	progress := 0
	if input.Progress != nil {
		progress = *input.Progress
	}
	status := StatusWaiting
	if input.Status != nil {
		status = *input.Status
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	query := `
		INSERT INTO tasks (category, task_title, description, assignee,
			start_date, due_date, progress, status, memo, menu_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id int64
	err = tx.QueryRow(query,
		strings.TrimSpace(input.Category),
		strings.TrimSpace(input.TaskTitle),
		input.Description,
		input.Assignee,
		input.StartDate,
		input.DueDate,
		progress,
		status,
		input.Memo,
		input.MenuName,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	task, err = scanTask(tx.QueryRow(
		`UPDATE tasks SET num = id WHERE id = $1 RETURNING `+taskColumns, id))
	if err != nil {
		return nil, fmt.Errorf("failed to set task num: %w", err)
	}
	return task, nil
}

// taskUpdateColumns lists the mutable fields in the order the SET clause is
// built, keyed by their JSON names
var taskUpdateColumns = []string{
	"category", "task_title", "description", "assignee", "start_date",
	"due_date", "progress", "status", "memo", "menu_name",
}

// buildTaskUpdate turns a partial JSON body into a SET clause and its
// arguments. Present keys are applied, absent keys left untouched; an
// explicit JSON null clears a nullable column.
func buildTaskUpdate(fields map[string]json.RawMessage) (string, []interface{}, error) {
	for key := range fields {
		known := false
		for _, col := range taskUpdateColumns {
			if key == col {
				known = true
				break
			}
		}
		if !known {
			return "", nil, fmt.Errorf("%w: unknown field %q", ErrInvalidInput, key)
		}
	}

	setClauses := []string{}
	args := []interface{}{}
	paramCount := 1

	addClause := func(col string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, paramCount))
		args = append(args, value)
		paramCount++
	}

	for _, col := range taskUpdateColumns {
		raw, ok := fields[col]
		if !ok {
			continue
		}

		switch col {
		case "category", "task_title":
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return "", nil, fmt.Errorf("%w: %s must be a string", ErrInvalidInput, col)
			}
			if strings.TrimSpace(v) == "" {
				return "", nil, fmt.Errorf("%w: %s must not be empty", ErrInvalidInput, col)
			}
			addClause(col, strings.TrimSpace(v))

		case "progress":
			var v int
			if err := json.Unmarshal(raw, &v); err != nil {
				return "", nil, fmt.Errorf("%w: progress must be an integer", ErrInvalidInput)
			}
			if v < 0 || v > 100 {
				return "", nil, fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalidInput)
			}
			addClause(col, v)

		case "status":
			var v TaskStatus
			if err := json.Unmarshal(raw, &v); err != nil {
				return "", nil, fmt.Errorf("%w: status must be a string", ErrInvalidInput)
			}
			if !v.Valid() {
				return "", nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, v)
			}
			addClause(col, string(v))

		case "start_date", "due_date":
			var v *string
			if err := json.Unmarshal(raw, &v); err != nil {
				return "", nil, fmt.Errorf("%w: %s must be a string or null", ErrInvalidInput, col)
			}
			if err := validateDate(v); err != nil {
				return "", nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, col, err)
			}
			addClause(col, v)

		default: // description, assignee, memo, menu_name
			var v *string
			if err := json.Unmarshal(raw, &v); err != nil {
				return "", nil, fmt.Errorf("%w: %s must be a string or null", ErrInvalidInput, col)
			}
			addClause(col, v)
		}
	}

	if len(setClauses) == 0 {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	return strings.Join(setClauses, ", "), args, nil
}

// UpdateTask applies a partial update and stamps updated_at. It returns the
// full updated row, or ErrTaskNotFound for an unknown id.
func UpdateTask(db *sql.DB, id int64, fields map[string]json.RawMessage) (*Task, error) {
	setClause, args, err := buildTaskUpdate(fields)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE tasks SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		setClause, len(args)+1, taskColumns)
	args = append(args, id)

	task, err := scanTask(db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask permanently removes a task
func DeleteTask(db *sql.DB, id int64) error {
	result, err := db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
