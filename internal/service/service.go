package service

import (
	"context"

	"github.com/huynhmanh2003/RAJI-BE/internal/dto"
	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/huynhmanh2003/RAJI-BE/internal/rabbitmq"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier pushes an event to every audience member who is currently
// connected. It never returns an error and never blocks the mutation path:
// delivery is best-effort and failures stay inside the implementation.
type Notifier interface {
	Notify(audience []uuid.UUID, event model.NotificationEvent)
}

type Comment interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error)
	FindRoots(ctx context.Context, taskID int64) ([]*model.FullComment, error)
	FindReplies(ctx context.Context, parentID int64) ([]*model.FullComment, error)
	Edit(ctx context.Context, commentID int64, actorID uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, commentID int64, actorID uuid.UUID) (int64, error)
}

type Task interface {
	Create(ctx context.Context, creatorID uuid.UUID, input dto.CreateTaskRequest) (*model.Task, error)
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	Update(ctx context.Context, id int64, actorID uuid.UUID, input dto.UpdateTaskRequest) (*model.Task, error)
	Delete(ctx context.Context, id int64, actorID uuid.UUID) error
}

type UserCache interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.CachedUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	StartConsume(ctx context.Context)
}

type Service struct {
	Comment
	Task
	UserCache
}

func New(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn, notifier Notifier) *Service {
	return &Service{
		Comment:   newCommentService(logger, repo, notifier),
		Task:      newTaskService(logger, repo, notifier),
		UserCache: newUserCacheService(logger, repo, mq),
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	s.UserCache.StartConsume(ctx)
}
