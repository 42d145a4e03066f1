// Package inmem holds in-memory repository implementations used by tests.
// CommentDB mirrors the SQL nested-set operations of the postgres repository
// exactly, so the service-level interval invariants can be exercised without
// a database.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ postgres.Comment = (*CommentDB)(nil)

type CommentDB struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*model.Comment
	authors  map[uuid.UUID]model.UserAuthor
}

func NewCommentDB() *CommentDB {
	return &CommentDB{
		comments: make(map[int64]*model.Comment),
		authors:  make(map[uuid.UUID]model.UserAuthor),
	}
}

func (db *CommentDB) SetAuthor(id uuid.UUID, author model.UserAuthor) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.authors[id] = author
}

func (db *CommentDB) CreateRoot(_ context.Context, comment model.Comment) (*model.Comment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	maxRight := 0
	for _, c := range db.comments {
		if c.TaskID == comment.TaskID && c.Right > maxRight {
			maxRight = c.Right
		}
	}

	comment.Left = maxRight + 1
	comment.Right = maxRight + 2
	db.insert(&comment)

	out := comment
	return &out, nil
}

func (db *CommentDB) CreateReply(_ context.Context, comment model.Comment, parent model.Comment) (*model.Comment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r := parent.Right
	for _, c := range db.comments {
		if c.TaskID != parent.TaskID {
			continue
		}
		if c.Right >= r {
			c.Right += 2
		}
		if c.Left > r {
			c.Left += 2
		}
	}

	comment.Left = r
	comment.Right = r + 1
	db.insert(&comment)

	out := comment
	return &out, nil
}

// insert assumes db.mu is held.
func (db *CommentDB) insert(comment *model.Comment) {
	db.nextID++
	comment.ID = db.nextID
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt

	stored := *comment
	db.comments[stored.ID] = &stored
}

func (db *CommentDB) FindByID(_ context.Context, id int64) (*model.Comment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	out := *c
	out.HasReplies = out.Right-out.Left > 1
	return &out, nil
}

func (db *CommentDB) FindRoots(_ context.Context, taskID int64) ([]*model.FullComment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.collect(func(c *model.Comment) bool {
		return c.TaskID == taskID && c.ParentID == nil
	}), nil
}

func (db *CommentDB) FindReplies(_ context.Context, parentID int64) ([]*model.FullComment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.collect(func(c *model.Comment) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}), nil
}

// collect assumes db.mu is held.
func (db *CommentDB) collect(match func(*model.Comment) bool) []*model.FullComment {
	var comments []*model.FullComment
	for _, c := range db.comments {
		if !match(c) {
			continue
		}

		out := *c
		out.HasReplies = out.Right-out.Left > 1
		comments = append(comments, &model.FullComment{
			Comment: out,
			Author:  db.authors[out.AuthorID],
		})
	}

	sort.Slice(comments, func(i, j int) bool {
		a, b := comments[i].Comment, comments[j].Comment
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return comments
}

func (db *CommentDB) UpdateContent(_ context.Context, id int64, content string) (*model.Comment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	c.Content = content
	c.UpdatedAt = time.Now()

	out := *c
	out.HasReplies = out.Right-out.Left > 1
	return &out, nil
}

func (db *CommentDB) DeleteSubtree(_ context.Context, comment model.Comment) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	width := comment.Right - comment.Left + 1

	var deleted int64
	for id, c := range db.comments {
		if c.TaskID == comment.TaskID && c.Left >= comment.Left && c.Right <= comment.Right {
			delete(db.comments, id)
			deleted++
		}
	}

	for _, c := range db.comments {
		if c.TaskID != comment.TaskID {
			continue
		}
		if c.Right > comment.Right {
			c.Right -= width
		}
		if c.Left > comment.Right {
			c.Left -= width
		}
	}

	return deleted, nil
}

// All returns a snapshot of every comment of a task, ordered by left
// boundary. Test helper, not part of the repository interface.
func (db *CommentDB) All(taskID int64) []model.Comment {
	db.mu.Lock()
	defer db.mu.Unlock()

	var comments []model.Comment
	for _, c := range db.comments {
		if c.TaskID == taskID {
			comments = append(comments, *c)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Left < comments[j].Left
	})

	return comments
}
