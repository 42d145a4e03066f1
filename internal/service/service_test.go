package service

import (
	"context"
	"sync"
	"time"

	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository/inmem"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository/postgres"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type notifyCall struct {
	audience []uuid.UUID
	event    model.NotificationEvent
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (f *fakeNotifier) Notify(audience []uuid.UUID, event model.NotificationEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, notifyCall{audience: audience, event: event})
}

// waitCalls polls until at least n Notify calls happened; notification
// dispatch is asynchronous with respect to the mutation.
func (f *fakeNotifier) waitCalls(n int, timeout time.Duration) []notifyCall {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		f.mu.Lock()
		if len(f.calls) >= n {
			calls := make([]notifyCall, len(f.calls))
			copy(calls, f.calls)
			f.mu.Unlock()
			return calls
		}
		f.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]notifyCall, len(f.calls))
	copy(calls, f.calls)
	return calls
}

type fakeTaskRepo struct {
	mu       sync.Mutex
	nextID   int64
	tasks    map[int64]*model.Task
	contexts map[int64]*model.TaskContext
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:    make(map[int64]*model.Task),
		contexts: make(map[int64]*model.TaskContext),
	}
}

func (f *fakeTaskRepo) setContext(taskID int64, tc model.TaskContext) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tc.Task.ID = taskID
	f.contexts[taskID] = &tc
}

func (f *fakeTaskRepo) Create(_ context.Context, task model.Task, _ int64) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	task.ID = f.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	stored := task
	f.tasks[task.ID] = &stored
	return &task, nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id int64) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	out := *task
	return &out, nil
}

func (f *fakeTaskRepo) ExistsWithTitle(_ context.Context, creatorID uuid.UUID, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, task := range f.tasks {
		if task.CreatorID == creatorID && task.Title == title {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, id int64, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	task, ok := f.tasks[id]
	if !ok {
		return pgx.ErrNoRows
	}

	if title, ok := updates["title"].(string); ok {
		task.Title = title
	}
	if description, ok := updates["description"].(string); ok {
		task.Description = description
	}
	if status, ok := updates["status"].(string); ok {
		task.Status = status
	}
	if priority, ok := updates["priority"].(string); ok {
		task.Priority = priority
	}

	return nil
}

func (f *fakeTaskRepo) ReplaceAssignees(_ context.Context, id int64, assigneeIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if task, ok := f.tasks[id]; ok {
		task.AssigneeIDs = assigneeIDs
	}

	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) FindContext(_ context.Context, taskID int64) (*model.TaskContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if tc, ok := f.contexts[taskID]; ok {
		out := *tc
		return &out, nil
	}

	// Fall back to a bare context so notifications for tasks without an
	// explicitly seeded board surrounding still resolve.
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	return &model.TaskContext{Task: *task}, nil
}

type fakeUserCacheRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.CachedUser
}

func newFakeUserCacheRepo() *fakeUserCacheRepo {
	return &fakeUserCacheRepo{
		users: make(map[uuid.UUID]model.CachedUser),
	}
}

func (f *fakeUserCacheRepo) Create(_ context.Context, cachedUser model.CachedUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[cachedUser.ID] = cachedUser
	return nil
}

func (f *fakeUserCacheRepo) Update(_ context.Context, _ uuid.UUID, _ map[string]interface{}) error {
	return nil
}

func (f *fakeUserCacheRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CachedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	return &user, nil
}

// nopRedis satisfies the cache interface with permanent misses, so every
// lookup in tests goes straight to the backing repository fakes.
type nopRedis struct{}

func (nopRedis) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (nopRedis) SetJSON(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (nopRedis) Get(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

func (nopRedis) Del(_ context.Context, _ ...string) *redis.IntCmd {
	return redis.NewIntResult(0, nil)
}

func newTestRepository(commentDB *inmem.CommentDB, taskRepo *fakeTaskRepo, userRepo *fakeUserCacheRepo) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Comment:   commentDB,
			Task:      taskRepo,
			UserCache: userRepo,
		},
		Redis: &redisrepo.RedisRepository{
			Default: nopRedis{},
		},
	}
}

func newTestCommentService(repo *repository.Repository, notifier Notifier) *commentService {
	return &commentService{
		logger:   zap.NewNop(),
		repo:     repo,
		notifier: notifier,
		locks:    newTaskLockTable(),
		now:      time.Now,
	}
}

func newTestTaskService(repo *repository.Repository, notifier Notifier) *taskService {
	return &taskService{
		logger:   zap.NewNop(),
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}
