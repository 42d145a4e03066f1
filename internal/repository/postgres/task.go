package postgres

import (
	"context"
	"strconv"

	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type taskRepo struct {
	db *pgxpool.Pool
}

func newTaskRepo(db *pgxpool.Pool) Task {
	return &taskRepo{
		db: db,
	}
}

func (r *taskRepo) Create(ctx context.Context, task model.Task, columnID int64) (*model.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO tasks(creator_id, column_id, title, description, status, priority, due_date)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		task.CreatorID,
		columnID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	for _, assigneeID := range task.AssigneeIDs {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO task_assignees(task_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			task.ID,
			assigneeID,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *taskRepo) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	if err := r.db.QueryRow(
		ctx,
		`SELECT t.id, t.creator_id, t.title, t.description, t.status, t.priority, t.due_date, t.created_at, t.updated_at
		FROM tasks t
		WHERE t.id = $1`,
		id,
	).Scan(
		&task.ID,
		&task.CreatorID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	assigneeIDs, err := r.findAssigneeIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	task.AssigneeIDs = assigneeIDs

	return &task, nil
}

func (r *taskRepo) ExistsWithTitle(ctx context.Context, creatorID uuid.UUID, title string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM tasks WHERE creator_id = $1 AND title = $2)",
		creatorID,
		title,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *taskRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	allowedFields := map[string]struct{}{
		"title":       {},
		"description": {},
		"status":      {},
		"priority":    {},
		"due_date":    {},
	}
	for field := range updates {
		if _, ok := allowedFields[field]; !ok {
			return ErrFieldsNotAllowedToUpdate
		}
	}

	query := "UPDATE tasks SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query += "updated_at = now() WHERE id = $" + strconv.Itoa(i)
	args = append(args, id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *taskRepo) ReplaceAssignees(ctx context.Context, id int64, assigneeIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM task_assignees WHERE task_id = $1", id); err != nil {
		return err
	}

	for _, assigneeID := range assigneeIDs {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO task_assignees(task_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
			id,
			assigneeID,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *taskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	return err
}

// FindContext walks the task up to its column, board and project, and gathers
// the user sets the audience resolver unions over.
func (r *taskRepo) FindContext(ctx context.Context, taskID int64) (*model.TaskContext, error) {
	var tc model.TaskContext
	if err := r.db.QueryRow(
		ctx,
		`SELECT
		t.id, t.creator_id, t.title, t.description, t.status, t.priority, t.due_date, t.created_at, t.updated_at,
		c.id, c.title, b.id, b.title, p.id, p.project_manager_id
		FROM tasks t
		JOIN board_columns c ON c.id = t.column_id
		JOIN boards b ON b.id = c.board_id
		JOIN projects p ON p.id = b.project_id
		WHERE t.id = $1`,
		taskID,
	).Scan(
		&tc.Task.ID,
		&tc.Task.CreatorID,
		&tc.Task.Title,
		&tc.Task.Description,
		&tc.Task.Status,
		&tc.Task.Priority,
		&tc.Task.DueDate,
		&tc.Task.CreatedAt,
		&tc.Task.UpdatedAt,
		&tc.ColumnID,
		&tc.ColumnTitle,
		&tc.BoardID,
		&tc.BoardTitle,
		&tc.ProjectID,
		&tc.ProjectManagerID,
	); err != nil {
		return nil, err
	}

	memberIDs, err := r.findMemberIDs(ctx, tc.BoardID)
	if err != nil {
		return nil, err
	}
	tc.MemberIDs = memberIDs

	assigneeIDs, err := r.findAssigneeIDs(ctx, taskID)
	if err != nil {
		return nil, err
	}
	tc.Task.AssigneeIDs = assigneeIDs

	return &tc, nil
}

func (r *taskRepo) findMemberIDs(ctx context.Context, boardID int64) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT m.user_id FROM board_members m WHERE m.board_id = $1", boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUUIDs(rows)
}

func (r *taskRepo) findAssigneeIDs(ctx context.Context, taskID int64) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT a.user_id FROM task_assignees a WHERE a.task_id = $1", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanUUIDs(rows)
}

func scanUUIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
