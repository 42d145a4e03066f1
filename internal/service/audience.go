package service

import (
	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/google/uuid"
)

// resolveAudience unions the board members, the task assignees, the project
// manager and any extra ids (e.g. a parent-comment author) into the recipient
// set for one mutation. The acting user is excluded and every user appears at
// most once regardless of how many source sets contain them.
func resolveAudience(tc *model.TaskContext, extra []uuid.UUID, actorID uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var audience []uuid.UUID

	add := func(id uuid.UUID) {
		if id == uuid.Nil || id == actorID {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		audience = append(audience, id)
	}

	for _, id := range tc.MemberIDs {
		add(id)
	}
	for _, id := range tc.Task.AssigneeIDs {
		add(id)
	}
	add(tc.ProjectManagerID)
	for _, id := range extra {
		add(id)
	}

	return audience
}
