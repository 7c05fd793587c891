package memory

import (
	"sort"
	"sync"

	"github.com/omarshaarawi/scorebot/internal/league"
)

// Repository keeps which leagues each chat follows for the daily digest.
// Nothing fetched from ESPN is stored here.
type Repository struct {
	follows map[int64]map[league.Key]struct{}
	mu      sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{follows: make(map[int64]map[league.Key]struct{})}
}

// Follow reports whether the subscription is new.
func (r *Repository) Follow(chatID int64, key league.Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	leagues, ok := r.follows[chatID]
	if !ok {
		leagues = make(map[league.Key]struct{})
		r.follows[chatID] = leagues
	}
	if _, exists := leagues[key]; exists {
		return false
	}
	leagues[key] = struct{}{}
	return true
}

// Unfollow reports whether a subscription was removed.
func (r *Repository) Unfollow(chatID int64, key league.Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	leagues, ok := r.follows[chatID]
	if !ok {
		return false
	}
	if _, exists := leagues[key]; !exists {
		return false
	}
	delete(leagues, key)
	if len(leagues) == 0 {
		delete(r.follows, chatID)
	}
	return true
}

// Following lists a chat's leagues in command order.
func (r *Repository) Following(chatID int64) []league.Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []league.Key
	for _, k := range league.All() {
		if _, ok := r.follows[chatID][k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Chats lists every chat with at least one subscription, ascending.
func (r *Repository) Chats() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chats := make([]int64, 0, len(r.follows))
	for id := range r.follows {
		chats = append(chats, id)
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i] < chats[j] })
	return chats
}
