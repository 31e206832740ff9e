package memory

import (
	"context"
	"time"

	"cooking-assistant-be/internal/repository/contract"
	"cooking-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	// Expired sessions are purged every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// Save stores a copy so callers mutating the session afterwards do not
// change what later requests load.
func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	session.UpdatedAt = time.Now()
	r.cache.Set(session.ID, clone(session), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, key string) (*store.Session, bool, error) {
	if x, found := r.cache.Get(key); found {
		return clone(x.(*store.Session)), true, nil
	}
	return nil, false, nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}

func clone(s *store.Session) *store.Session {
	out := *s
	out.CurrentResults = append([]store.Recipe(nil), s.CurrentResults...)
	out.ModifiedRecipes = make(map[string]store.Recipe, len(s.ModifiedRecipes))
	for k, v := range s.ModifiedRecipes {
		out.ModifiedRecipes[k] = v
	}
	out.EnsureDefaults()
	return &out
}
