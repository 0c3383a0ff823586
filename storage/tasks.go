package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/taskhub/task-manager-api/models"
)

const taskColumns = "id, title, description, status, user_id, created_at"

// TaskStore runs task queries against an injected database handle.
// Every mutation is a single atomic statement; ownership scoping lives
// in the WHERE clause.
type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a task owned by ownerID. Status defaults to pending
// when the input omits it; id and created_at are server-assigned.
func (s *TaskStore) Create(ctx context.Context, ownerID int64, input models.CreateTaskInput) (*models.Task, error) {
	status := models.StatusPending
	if input.Status != nil {
		status = *input.Status
	}
	row := s.db.QueryRowContext(ctx,
		"INSERT INTO tasks (title, description, status, user_id) VALUES ($1, $2, $3, $4) RETURNING "+taskColumns,
		input.Title, input.Description, status, ownerID,
	)
	return scanTask(row)
}

// Get fetches a task by primary key regardless of owner. The caller is
// responsible for the ownership check. Returns (nil, nil) when absent.
func (s *TaskStore) Get(ctx context.Context, id int64) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1", id,
	)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the tasks owned by ownerID, narrowed by the filter. All
// predicates compose with AND. A secondary sort on id keeps ordering
// deterministic when creation timestamps collide.
func (s *TaskStore) List(ctx context.Context, ownerID int64, filter models.TaskFilter) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = $1"
	args := []any{ownerID}

	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		query += fmt.Sprintf(" AND LOWER(title) LIKE $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	switch filter.Sort {
	case "desc":
		query += " ORDER BY created_at DESC, id DESC"
	case "asc":
		query += " ORDER BY created_at ASC, id ASC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// Update applies the supplied fields to the task matching both id and
// ownerID. Missing and not-owned rows look the same: (nil, nil).
func (s *TaskStore) Update(ctx context.Context, id, ownerID int64, input models.UpdateTaskInput) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE tasks
		 SET title = COALESCE($1, title),
		     description = COALESCE($2, description),
		     status = COALESCE($3, status)
		 WHERE id = $4 AND user_id = $5
		 RETURNING `+taskColumns,
		input.Title, input.Description, input.Status, id, ownerID,
	)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task matching both id and ownerID. Reports
// whether a row was actually deleted.
func (s *TaskStore) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, ownerID,
	)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
