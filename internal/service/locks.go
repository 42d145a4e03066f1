package service

import "sync"

// taskLockTable hands out one RWMutex per task id. Structural writes to a
// task's comment tree (root insert, reply insert, subtree delete) take the
// write side for the whole read-shift-write sequence; tree reads take the
// read side, so a reader never observes a half-shifted numbering. Content
// edits bypass the table entirely since they never touch lft/rgt.
// Entries are never removed; the table grows with the number of distinct
// tasks commented on during the process lifetime.
type taskLockTable struct {
	mu    sync.Mutex
	locks map[int64]*sync.RWMutex
}

func newTaskLockTable() *taskLockTable {
	return &taskLockTable{
		locks: make(map[int64]*sync.RWMutex),
	}
}

func (t *taskLockTable) of(taskID int64) *sync.RWMutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[taskID]
	if !ok {
		lock = &sync.RWMutex{}
		t.locks[taskID] = lock
	}

	return lock
}
