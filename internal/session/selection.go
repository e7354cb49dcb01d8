// Package session keeps each visitor's last filter selection. The enriched
// dataset itself is read-only and shared; only the selection is
// session-scoped, held in Redis keyed by a cookie id.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/retailpulse/retailpulse/internal/aggregate"
)

const keyPrefix = "retailpulse:selection:"

// SelectionStore persists filter selections per session id.
type SelectionStore struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool

	mu     sync.Mutex
	memory map[string][]byte
}

// NewSelectionStore constructs a SelectionStore. A nil client degrades to an
// in-process map, which is enough for a single-user deployment.
func NewSelectionStore(client *redis.Client, cookieName string, ttl time.Duration, secure bool) *SelectionStore {
	return &SelectionStore{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		memory:     make(map[string][]byte),
	}
}

// SessionID returns the visitor's session id, minting one and setting the
// cookie when absent.
func (s *SelectionStore) SessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(s.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Save stores the selection for a session id.
func (s *SelectionStore) Save(ctx context.Context, id string, filter aggregate.Filter) error {
	payload, err := json.Marshal(filter)
	if err != nil {
		return err
	}
	if s.client == nil {
		s.mu.Lock()
		s.memory[id] = payload
		s.mu.Unlock()
		return nil
	}
	return s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err()
}

// Load returns the stored selection, or an empty (unrestricted) filter when
// none exists.
func (s *SelectionStore) Load(ctx context.Context, id string) (aggregate.Filter, error) {
	var payload []byte
	if s.client == nil {
		s.mu.Lock()
		payload = s.memory[id]
		s.mu.Unlock()
		if payload == nil {
			return aggregate.Filter{}, nil
		}
	} else {
		var err error
		payload, err = s.client.Get(ctx, keyPrefix+id).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return aggregate.Filter{}, nil
			}
			return aggregate.Filter{}, err
		}
	}

	var filter aggregate.Filter
	if err := json.Unmarshal(payload, &filter); err != nil {
		return aggregate.Filter{}, err
	}
	return filter, nil
}
