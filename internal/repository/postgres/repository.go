package postgres

import (
	"context"
	"errors"

	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrFieldsNotAllowedToUpdate = errors.New("provided fields are not allowed to update")

type Comment interface {
	CreateRoot(ctx context.Context, comment model.Comment) (*model.Comment, error)
	CreateReply(ctx context.Context, comment model.Comment, parent model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindRoots(ctx context.Context, taskID int64) ([]*model.FullComment, error)
	FindReplies(ctx context.Context, parentID int64) ([]*model.FullComment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error)
	DeleteSubtree(ctx context.Context, comment model.Comment) (int64, error)
}

type Task interface {
	Create(ctx context.Context, task model.Task, columnID int64) (*model.Task, error)
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	ExistsWithTitle(ctx context.Context, creatorID uuid.UUID, title string) (bool, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	ReplaceAssignees(ctx context.Context, id int64, assigneeIDs []uuid.UUID) error
	Delete(ctx context.Context, id int64) error
	FindContext(ctx context.Context, taskID int64) (*model.TaskContext, error)
}

type UserCache interface {
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type PostgresRepository struct {
	Comment
	Task
	UserCache
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Comment:   newCommentRepo(db),
		Task:      newTaskRepo(db),
		UserCache: newUserCacheRepo(db),
	}
}
