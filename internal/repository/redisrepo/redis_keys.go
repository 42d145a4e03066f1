package redisrepo

import "fmt"

const (
	TASK_CONTEXT_KEY = "task-context:%d" // <taskID>
	USER_CACHE_KEY   = "user-cache:%s"   // <userID>
)

func TaskContextKey(taskID int64) string {
	return fmt.Sprintf(TASK_CONTEXT_KEY, taskID)
}

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}
