package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huynhmanh2003/RAJI-BE/internal/dto"
	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository/inmem"
	"github.com/google/uuid"
)

func newTaskFixture(t *testing.T) (*taskService, *fakeTaskRepo, *fakeNotifier) {
	t.Helper()

	taskRepo := newFakeTaskRepo()
	notifier := &fakeNotifier{}
	repo := newTestRepository(inmem.NewCommentDB(), taskRepo, newFakeUserCacheRepo())
	return newTestTaskService(repo, notifier), taskRepo, notifier
}

func TestTaskCreate(t *testing.T) {
	s, taskRepo, notifier := newTaskFixture(t)
	creator := uuid.New()
	member := uuid.New()

	task, err := s.Create(context.Background(), creator, dto.CreateTaskRequest{
		ColumnID:    5,
		Title:       "Write the migration",
		Description: "Move the comments table to the new schema.",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if task.Status != "todo" {
		t.Errorf("new task status = %q, want %q", task.Status, "todo")
	}
	if task.Priority != "medium" {
		t.Errorf("new task priority = %q, want %q", task.Priority, "medium")
	}

	taskRepo.setContext(task.ID, model.TaskContext{
		Task:        model.Task{Title: task.Title},
		ColumnTitle: "Backlog",
		BoardTitle:  "Platform",
		MemberIDs:   []uuid.UUID{member, creator},
	})

	calls := notifier.waitCalls(1, time.Second)
	if len(calls) != 1 {
		t.Fatalf("got %d Notify calls, want 1", len(calls))
	}
	if calls[0].event.Type != model.NotificationTypeTask {
		t.Errorf("event type = %q, want %q", calls[0].event.Type, model.NotificationTypeTask)
	}
}

func TestTaskCreate_Validation(t *testing.T) {
	s, _, _ := newTaskFixture(t)
	creator := uuid.New()

	_, err := s.Create(context.Background(), creator, dto.CreateTaskRequest{
		ColumnID: 5,
		Title:    "   ",
	})
	if !errors.Is(err, ErrEmptyTaskFields) {
		t.Fatalf("blank title: err = %v, want %v", err, ErrEmptyTaskFields)
	}

	if _, err := s.Create(context.Background(), creator, dto.CreateTaskRequest{
		ColumnID:    5,
		Title:       "Duplicate me",
		Description: "first",
	}); err != nil {
		t.Fatalf("first Create error: %v", err)
	}

	_, err = s.Create(context.Background(), creator, dto.CreateTaskRequest{
		ColumnID:    5,
		Title:       "Duplicate me",
		Description: "second",
	})
	if !errors.Is(err, ErrTaskAlreadyExists) {
		t.Fatalf("duplicate title: err = %v, want %v", err, ErrTaskAlreadyExists)
	}
}

func TestTaskUpdate(t *testing.T) {
	s, taskRepo, notifier := newTaskFixture(t)
	creator := uuid.New()

	task, err := s.Create(context.Background(), creator, dto.CreateTaskRequest{
		ColumnID:    5,
		Title:       "Prepare the demo",
		Description: "Slides plus a live walkthrough.",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	taskRepo.setContext(task.ID, model.TaskContext{
		Task:        model.Task{Title: task.Title},
		ColumnTitle: "Doing",
	})

	status := "done"
	assignee := uuid.New()
	updated, err := s.Update(context.Background(), task.ID, creator, dto.UpdateTaskRequest{
		Status:      &status,
		AssigneeIDs: []uuid.UUID{assignee},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Status != "done" {
		t.Errorf("updated status = %q, want %q", updated.Status, "done")
	}
	if len(updated.AssigneeIDs) != 1 || updated.AssigneeIDs[0] != assignee {
		t.Errorf("updated assignees = %v, want [%s]", updated.AssigneeIDs, assignee)
	}

	if calls := notifier.waitCalls(2, time.Second); len(calls) < 2 {
		t.Fatalf("got %d Notify calls after update, want 2", len(calls))
	}
}

func TestTaskUpdate_NotFound(t *testing.T) {
	s, _, _ := newTaskFixture(t)

	title := "ghost"
	_, err := s.Update(context.Background(), 999, uuid.New(), dto.UpdateTaskRequest{Title: &title})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Update(999): err = %v, want %v", err, ErrTaskNotFound)
	}
}

func TestTaskDelete(t *testing.T) {
	s, taskRepo, notifier := newTaskFixture(t)
	creator := uuid.New()
	member := uuid.New()

	task, err := s.Create(context.Background(), creator, dto.CreateTaskRequest{
		ColumnID:    5,
		Title:       "Throwaway",
		Description: "Created only to be deleted.",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	taskRepo.setContext(task.ID, model.TaskContext{
		Task:        model.Task{Title: task.Title},
		ColumnTitle: "Done",
		MemberIDs:   []uuid.UUID{member},
	})

	if err := s.Delete(context.Background(), task.ID, creator); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.FindByID(context.Background(), task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("FindByID after delete: err = %v, want %v", err, ErrTaskNotFound)
	}

	calls := notifier.waitCalls(2, time.Second)
	var deleteCall *notifyCall
	for i := range calls {
		if len(calls[i].audience) == 1 && calls[i].audience[0] == member {
			deleteCall = &calls[i]
		}
	}
	if deleteCall == nil {
		t.Fatalf("no delete notification addressed to the remaining member")
	}

	if err := s.Delete(context.Background(), task.ID, creator); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second Delete: err = %v, want %v", err, ErrTaskNotFound)
	}
}
