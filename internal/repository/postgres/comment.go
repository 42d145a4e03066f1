package postgres

import (
	"context"

	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type commentRepo struct {
	db *pgxpool.Pool
}

func newCommentRepo(db *pgxpool.Pool) Comment {
	return &commentRepo{
		db: db,
	}
}

// CreateRoot appends a top-level comment past every existing interval of the
// task, so no other row has to be renumbered.
func (r *commentRepo) CreateRoot(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO comments(task_id, author_id, parent_id, content, image_url, lft, rgt)
		SELECT $1, $2, NULL, $3, $4, COALESCE(MAX(rgt), 0) + 1, COALESCE(MAX(rgt), 0) + 2
		FROM comments WHERE task_id = $1
		RETURNING id, lft, rgt, created_at, updated_at`,
		comment.TaskID,
		comment.AuthorID,
		comment.Content,
		comment.ImageURL,
	).Scan(&comment.ID, &comment.Left, &comment.Right, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return nil, err
	}

	return &comment, nil
}

// CreateReply opens a 2-wide gap just inside the parent's closing boundary and
// inserts the new node into it. The gap shift rewrites every row of the task
// whose boundaries lie at or past parent.rgt, so the whole sequence runs in
// one transaction: a partial shift would corrupt the interval nesting for the
// entire tree, not just this subtree.
func (r *commentRepo) CreateReply(ctx context.Context, comment model.Comment, parent model.Comment) (*model.Comment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		"UPDATE comments SET rgt = rgt + 2 WHERE task_id = $1 AND rgt >= $2",
		parent.TaskID,
		parent.Right,
	); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(
		ctx,
		"UPDATE comments SET lft = lft + 2 WHERE task_id = $1 AND lft > $2",
		parent.TaskID,
		parent.Right,
	); err != nil {
		return nil, err
	}

	comment.Left = parent.Right
	comment.Right = parent.Right + 1
	if err := tx.QueryRow(
		ctx,
		`INSERT INTO comments(task_id, author_id, parent_id, content, image_url, lft, rgt)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		comment.TaskID,
		comment.AuthorID,
		comment.ParentID,
		comment.Content,
		comment.ImageURL,
		comment.Left,
		comment.Right,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		`SELECT c.id, c.task_id, c.author_id, c.parent_id, c.content, c.image_url, c.lft, c.rgt, c.created_at, c.updated_at
		FROM comments c
		WHERE c.id = $1`,
		id,
	).Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.AuthorID,
		&comment.ParentID,
		&comment.Content,
		&comment.ImageURL,
		&comment.Left,
		&comment.Right,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}

	comment.HasReplies = comment.Right-comment.Left > 1
	return &comment, nil
}

func (r *commentRepo) FindRoots(ctx context.Context, taskID int64) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.task_id, c.author_id, c.parent_id, c.content, c.image_url, c.lft, c.rgt, c.created_at, c.updated_at,
		u.username, u.display_name, u.avatar_url
		FROM comments c
		JOIN cached_users u ON c.author_id = u.id
		WHERE c.task_id = $1 AND c.parent_id IS NULL
		ORDER BY c.created_at ASC`,
		taskID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFullComments(rows)
}

func (r *commentRepo) FindReplies(ctx context.Context, parentID int64) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		c.id, c.task_id, c.author_id, c.parent_id, c.content, c.image_url, c.lft, c.rgt, c.created_at, c.updated_at,
		u.username, u.display_name, u.avatar_url
		FROM comments c
		JOIN cached_users u ON c.author_id = u.id
		WHERE c.parent_id = $1
		ORDER BY c.created_at ASC`,
		parentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFullComments(rows)
}

func scanFullComments(rows pgx.Rows) ([]*model.FullComment, error) {
	var comments []*model.FullComment
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.TaskID,
			&comment.Comment.AuthorID,
			&comment.Comment.ParentID,
			&comment.Comment.Content,
			&comment.Comment.ImageURL,
			&comment.Comment.Left,
			&comment.Comment.Right,
			&comment.Comment.CreatedAt,
			&comment.Comment.UpdatedAt,
			&comment.Author.Username,
			&comment.Author.DisplayName,
			&comment.Author.AvatarURL,
		); err != nil {
			return nil, err
		}

		comment.Comment.HasReplies = comment.Comment.Right-comment.Comment.Left > 1
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepo) UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		`UPDATE comments SET content = $2, updated_at = now() WHERE id = $1
		RETURNING id, task_id, author_id, parent_id, content, image_url, lft, rgt, created_at, updated_at`,
		id,
		content,
	).Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.AuthorID,
		&comment.ParentID,
		&comment.Content,
		&comment.ImageURL,
		&comment.Left,
		&comment.Right,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		return nil, err
	}

	comment.HasReplies = comment.Right-comment.Left > 1
	return &comment, nil
}

// DeleteSubtree removes the target and everything inside its interval, then
// closes the gap so the remaining numbering keeps the nesting property.
func (r *commentRepo) DeleteSubtree(ctx context.Context, comment model.Comment) (int64, error) {
	width := comment.Right - comment.Left + 1

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		"DELETE FROM comments WHERE task_id = $1 AND lft >= $2 AND rgt <= $3",
		comment.TaskID,
		comment.Left,
		comment.Right,
	)
	if err != nil {
		return 0, err
	}
	deleted := tag.RowsAffected()

	// lft shrinks first: closing rgt before lft would leave rows right of
	// the gap with rgt < lft mid-transaction and trip the lft < rgt check.
	if _, err := tx.Exec(
		ctx,
		"UPDATE comments SET lft = lft - $3 WHERE task_id = $1 AND lft > $2",
		comment.TaskID,
		comment.Right,
		width,
	); err != nil {
		return 0, err
	}

	if _, err := tx.Exec(
		ctx,
		"UPDATE comments SET rgt = rgt - $3 WHERE task_id = $1 AND rgt > $2",
		comment.TaskID,
		comment.Right,
		width,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
