package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huynhmanh2003/RAJI-BE/internal/dto"
	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository"
	"github.com/huynhmanh2003/RAJI-BE/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const notifyTimeout = time.Second * 5

type commentService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	notifier Notifier
	locks    *taskLockTable
	now      func() time.Time
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, notifier Notifier) Comment {
	return &commentService{
		logger:   logger,
		repo:     repo,
		notifier: notifier,
		locks:    newTaskLockTable(),
		now:      time.Now,
	}
}

func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreateCommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if input.ParentID != nil {
		return s.addReply(ctx, input.TaskID, *input.ParentID, authorID, content, input.ImageURL)
	}

	return s.addRoot(ctx, input.TaskID, authorID, content, input.ImageURL)
}

// addRoot appends a top-level comment after every existing interval of the
// task. No sibling is renumbered, but the max-right read and the insert still
// have to be serialized against concurrent structural writes.
func (s *commentService) addRoot(ctx context.Context, taskID int64, authorID uuid.UUID, content string, imageURL *string) (*model.Comment, error) {
	lock := s.locks.of(taskID)
	lock.Lock()
	created, err := s.repo.Postgres.Comment.CreateRoot(ctx, model.Comment{
		TaskID:   taskID,
		AuthorID: authorID,
		Content:  content,
		ImageURL: imageURL,
	})
	lock.Unlock()
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment on task(%d): %s", authorID.String(), taskID, err.Error())
		return nil, ErrInternal
	}

	go s.notifyCreated(created, nil)

	return created, nil
}

// addReply inserts the new node just inside its parent's closing boundary.
// The whole parent-read + shift + insert sequence holds the task's write lock:
// two replies racing on the same boundary would otherwise both claim it and
// break the interval nesting for the entire tree.
func (s *commentService) addReply(ctx context.Context, taskID int64, parentID int64, authorID uuid.UUID, content string, imageURL *string) (*model.Comment, error) {
	lock := s.locks.of(taskID)
	lock.Lock()
	defer lock.Unlock()

	parent, err := s.repo.Postgres.Comment.FindByID(ctx, parentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrParentCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find parent comment(%d): %s", parentID, err.Error())
		return nil, ErrInternal
	}
	if parent.TaskID != taskID {
		return nil, ErrParentTaskMismatch
	}

	created, err := s.repo.Postgres.Comment.CreateReply(ctx, model.Comment{
		TaskID:   taskID,
		AuthorID: authorID,
		ParentID: &parentID,
		Content:  content,
		ImageURL: imageURL,
	}, *parent)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) reply to comment(%d): %s", authorID.String(), parentID, err.Error())
		return nil, ErrInternal
	}

	go s.notifyCreated(created, parent)

	return created, nil
}

func (s *commentService) FindRoots(ctx context.Context, taskID int64) ([]*model.FullComment, error) {
	lock := s.locks.of(taskID)
	lock.RLock()
	comments, err := s.repo.Postgres.Comment.FindRoots(ctx, taskID)
	lock.RUnlock()
	if err != nil {
		s.logger.Sugar().Errorf("failed to find task(%d) root comments: %s", taskID, err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}

func (s *commentService) FindReplies(ctx context.Context, parentID int64) ([]*model.FullComment, error) {
	parent, err := s.repo.Postgres.Comment.FindByID(ctx, parentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%d): %s", parentID, err.Error())
		return nil, ErrInternal
	}

	lock := s.locks.of(parent.TaskID)
	lock.RLock()
	replies, err := s.repo.Postgres.Comment.FindReplies(ctx, parentID)
	lock.RUnlock()
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comment(%d) replies: %s", parentID, err.Error())
		return nil, ErrInternal
	}

	return replies, nil
}

// Edit rewrites the content only. It never reads or writes lft/rgt, so it
// does not take part in the per-task serialization.
func (s *commentService) Edit(ctx context.Context, commentID int64, actorID uuid.UUID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%d): %s", commentID, err.Error())
		return nil, ErrInternal
	}
	if comment.AuthorID != actorID {
		return nil, ErrNotCommentAuthor
	}

	updated, err := s.repo.Postgres.Comment.UpdateContent(ctx, commentID, content)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update comment(%d): %s", commentID, err.Error())
		return nil, ErrInternal
	}

	go s.notifyEdited(updated)

	return updated, nil
}

// Delete removes the comment together with its whole reply subtree and
// reports how many comments went away.
func (s *commentService) Delete(ctx context.Context, commentID int64, actorID uuid.UUID) (int64, error) {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%d): %s", commentID, err.Error())
		return 0, ErrInternal
	}

	lock := s.locks.of(comment.TaskID)
	lock.Lock()

	// The interval may have shifted between the lookup above and acquiring
	// the lock; the delete range must come from a read made inside it.
	comment, err = s.repo.Postgres.Comment.FindByID(ctx, commentID)
	if err != nil {
		lock.Unlock()
		if err == pgx.ErrNoRows {
			return 0, ErrCommentNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%d): %s", commentID, err.Error())
		return 0, ErrInternal
	}

	deleted, err := s.repo.Postgres.Comment.DeleteSubtree(ctx, *comment)
	lock.Unlock()
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%d) subtree: %s", commentID, err.Error())
		return 0, ErrInternal
	}

	go s.notifyDeleted(comment, actorID)

	return deleted, nil
}

func (s *commentService) notifyCreated(comment *model.Comment, parent *model.Comment) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	tc, err := taskContext(ctx, s.repo, comment.TaskID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve task(%d) context for comment notification: %s", comment.TaskID, err.Error())
		return
	}

	actorName := s.actorName(ctx, comment.AuthorID)

	var message string
	var extra []uuid.UUID
	if parent != nil {
		message = fmt.Sprintf("%s replied to a comment on task %q in column %q.", actorName, tc.Task.Title, tc.ColumnTitle)
		extra = append(extra, parent.AuthorID)
	} else {
		message = fmt.Sprintf("%s commented on task %q in column %q.", actorName, tc.Task.Title, tc.ColumnTitle)
	}

	s.notifier.Notify(resolveAudience(tc, extra, comment.AuthorID), s.commentEvent(message, comment, tc))
}

func (s *commentService) notifyEdited(comment *model.Comment) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	tc, err := taskContext(ctx, s.repo, comment.TaskID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve task(%d) context for comment notification: %s", comment.TaskID, err.Error())
		return
	}

	actorName := s.actorName(ctx, comment.AuthorID)
	message := fmt.Sprintf("%s edited a comment on task %q in column %q.", actorName, tc.Task.Title, tc.ColumnTitle)

	s.notifier.Notify(resolveAudience(tc, nil, comment.AuthorID), s.commentEvent(message, comment, tc))
}

// notifyDeleted runs after the delete has already committed: if the context
// lookup fails here, the event is dropped and the deletion stands.
func (s *commentService) notifyDeleted(comment *model.Comment, actorID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	tc, err := taskContext(ctx, s.repo, comment.TaskID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve task(%d) context for comment notification: %s", comment.TaskID, err.Error())
		return
	}

	message := fmt.Sprintf("A comment on task %q in column %q was removed.", tc.Task.Title, tc.ColumnTitle)

	s.notifier.Notify(resolveAudience(tc, []uuid.UUID{comment.AuthorID}, actorID), s.commentEvent(message, comment, tc))
}

func (s *commentService) commentEvent(message string, comment *model.Comment, tc *model.TaskContext) model.NotificationEvent {
	return model.NotificationEvent{
		Message:   message,
		Type:      model.NotificationTypeComment,
		Unread:    true,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		TaskID:    comment.TaskID,
		CommentID: comment.ID,
		BoardID:   tc.BoardID,
		ProjectID: tc.ProjectID,
	}
}

func (s *commentService) actorName(ctx context.Context, id uuid.UUID) string {
	user, err := redisrepo.Get[model.CachedUser](s.repo.Redis.Default, ctx, redisrepo.UserCacheKey(id.String()))
	if err == nil && user != nil {
		return user.Username
	}

	user, err = s.repo.Postgres.UserCache.FindByID(ctx, id)
	if err != nil || user.Username == "" {
		return "User " + id.String()
	}

	return user.Username
}
