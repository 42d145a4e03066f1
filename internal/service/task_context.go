package service

import (
	"context"
	"time"

	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
)

const taskContextTTL = time.Minute * 10

// taskContext resolves the column/board/project surrounding of a task, with a
// redis cache-aside in front of the postgres joins. Task mutations must
// invalidate the cached entry.
func taskContext(ctx context.Context, repo *repository.Repository, taskID int64) (*model.TaskContext, error) {
	cached, err := redisrepo.Get[model.TaskContext](repo.Redis.Default, ctx, redisrepo.TaskContextKey(taskID))
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil && err != redis.Nil {
		return nil, err
	}

	tc, err := repo.Postgres.Task.FindContext(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := repo.Redis.Default.SetJSON(ctx, redisrepo.TaskContextKey(taskID), tc, taskContextTTL); err != nil {
		return nil, err
	}

	return tc, nil
}

func invalidateTaskContext(ctx context.Context, repo *repository.Repository, taskID int64) error {
	return repo.Redis.Default.Del(ctx, redisrepo.TaskContextKey(taskID)).Err()
}
