package database

import "sync"

// In-memory view of the enabled channel set, kept in sync by the gorm
// hooks so the per-message watch check stays off the database.
var (
	watchedChatsID   = make(map[int64]struct{})
	watchedChatsIDMu = &sync.RWMutex{}
)

func watch(chatID int64) {
	watchedChatsIDMu.Lock()
	defer watchedChatsIDMu.Unlock()
	watchedChatsID[chatID] = struct{}{}
}

func unwatch(chatID int64) {
	watchedChatsIDMu.Lock()
	defer watchedChatsIDMu.Unlock()
	delete(watchedChatsID, chatID)
}

func Watching(chatID int64) bool {
	watchedChatsIDMu.RLock()
	defer watchedChatsIDMu.RUnlock()
	_, ok := watchedChatsID[chatID]
	return ok
}

func WatchedChatIDs() []int64 {
	watchedChatsIDMu.RLock()
	defer watchedChatsIDMu.RUnlock()
	ids := make([]int64, 0, len(watchedChatsID))
	for id := range watchedChatsID {
		ids = append(ids, id)
	}
	return ids
}
