package memory

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"legal-intake-bot/internal/domain"
)

// Store keeps conversations in process memory. Entries expire after ttl
// without writes; nothing survives a restart.
type Store struct {
	cache *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	cleanup := ttl / 2
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}
	return &Store{
		cache: gocache.New(ttl, cleanup),
	}
}

func (s *Store) Get(chatID int64) (domain.Conversation, bool) {
	v, ok := s.cache.Get(key(chatID))
	if !ok {
		return domain.Conversation{}, false
	}
	conv, ok := v.(domain.Conversation)
	if !ok {
		return domain.Conversation{}, false
	}
	return conv.Clone(), true
}

func (s *Store) Set(chatID int64, conv domain.Conversation) {
	s.cache.Set(key(chatID), conv.Clone(), gocache.DefaultExpiration)
}

func (s *Store) Delete(chatID int64) {
	s.cache.Delete(key(chatID))
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
