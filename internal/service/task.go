package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huynhmanh2003/RAJI-BE/internal/dto"
	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type taskService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	notifier Notifier
	now      func() time.Time
}

func newTaskService(logger *zap.Logger, repo *repository.Repository, notifier Notifier) Task {
	return &taskService{
		logger:   logger,
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *taskService) Create(ctx context.Context, creatorID uuid.UUID, input dto.CreateTaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, ErrEmptyTaskFields
	}

	exists, err := s.repo.Postgres.Task.ExistsWithTitle(ctx, creatorID, title)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check user(%s) task titles: %s", creatorID.String(), err.Error())
		return nil, ErrInternal
	}
	if exists {
		return nil, ErrTaskAlreadyExists
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	task, err := s.repo.Postgres.Task.Create(ctx, model.Task{
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		Status:      "todo",
		Priority:    priority,
		DueDate:     input.DueDate,
		AssigneeIDs: input.AssigneeIDs,
	}, input.ColumnID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) task: %s", creatorID.String(), err.Error())
		return nil, ErrInternal
	}

	go s.notifyTask(task.ID, creatorID, nil, func(tc *model.TaskContext) string {
		return fmt.Sprintf("Task %q was created in column %q on board %q.", tc.Task.Title, tc.ColumnTitle, tc.BoardTitle)
	})

	return task, nil
}

func (s *taskService) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	task, err := s.repo.Postgres.Task.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTaskNotFound
		}

		s.logger.Sugar().Errorf("failed to find task(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	return task, nil
}

func (s *taskService) Update(ctx context.Context, id int64, actorID uuid.UUID, input dto.UpdateTaskRequest) (*model.Task, error) {
	before, err := s.repo.Postgres.Task.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTaskNotFound
		}

		s.logger.Sugar().Errorf("failed to find task(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	updates := make(map[string]interface{})
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrEmptyTaskFields
		}
		updates["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			return nil, ErrEmptyTaskFields
		}
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Priority != nil {
		updates["priority"] = *input.Priority
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}

	if err := s.repo.Postgres.Task.Update(ctx, id, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update task(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	if input.AssigneeIDs != nil {
		if err := s.repo.Postgres.Task.ReplaceAssignees(ctx, id, input.AssigneeIDs); err != nil {
			s.logger.Sugar().Errorf("failed to replace task(%d) assignees: %s", id, err.Error())
			return nil, ErrInternal
		}
	}

	if err := invalidateTaskContext(ctx, s.repo, id); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate task(%d) context cache: %s", id, err.Error())
	}

	updated, err := s.repo.Postgres.Task.FindByID(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find task(%d) after update: %s", id, err.Error())
		return nil, ErrInternal
	}

	// Assignees removed by the update are still told about it.
	go s.notifyTask(id, actorID, before.AssigneeIDs, func(tc *model.TaskContext) string {
		return fmt.Sprintf("Task %q in column %q was updated.", tc.Task.Title, tc.ColumnTitle)
	})

	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, id int64, actorID uuid.UUID) error {
	if _, err := s.repo.Postgres.Task.FindByID(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return ErrTaskNotFound
		}

		s.logger.Sugar().Errorf("failed to find task(%d): %s", id, err.Error())
		return ErrInternal
	}

	// The board/project context must be captured before the row disappears.
	tc, err := taskContext(ctx, s.repo, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve task(%d) context: %s", id, err.Error())
		tc = nil
	}

	if err := s.repo.Postgres.Task.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete task(%d): %s", id, err.Error())
		return ErrInternal
	}

	if err := invalidateTaskContext(ctx, s.repo, id); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate task(%d) context cache: %s", id, err.Error())
	}

	if tc != nil {
		message := fmt.Sprintf("Task %q in column %q was deleted.", tc.Task.Title, tc.ColumnTitle)
		go s.notifier.Notify(resolveAudience(tc, nil, actorID), s.taskEvent(message, tc))
	}

	return nil
}

// notifyTask resolves the audience from the task's current context and fans
// the event out. Failures are logged and dropped: the mutation has already
// committed.
func (s *taskService) notifyTask(taskID int64, actorID uuid.UUID, extra []uuid.UUID, message func(*model.TaskContext) string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	tc, err := taskContext(ctx, s.repo, taskID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve task(%d) context for task notification: %s", taskID, err.Error())
		return
	}

	s.notifier.Notify(resolveAudience(tc, extra, actorID), s.taskEvent(message(tc), tc))
}

func (s *taskService) taskEvent(message string, tc *model.TaskContext) model.NotificationEvent {
	return model.NotificationEvent{
		Message:   message,
		Type:      model.NotificationTypeTask,
		Unread:    true,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		TaskID:    tc.Task.ID,
		BoardID:   tc.BoardID,
		ProjectID: tc.ProjectID,
	}
}
